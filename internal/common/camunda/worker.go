// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/common/metrics"
	"housing-workers/internal/common/observability"
	"housing-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// InputValidator checks raw job variables before a handler sees them.
type InputValidator interface {
	Validate(taskType string, variables []byte) (*validation.ValidationResult, error)
}

// Pipeline holds the cross-cutting steps every job passes through.
type Pipeline struct {
	Validator     InputValidator
	Observability *observability.Observability
	Responder     Responder
	Logger        logger.Logger
}

// Wrap returns a handler that validates variables, traces and times the job,
// and recovers handler panics into a failed job.
func (p Pipeline) Wrap(taskType string, handler worker.JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		ctx := context.Background()

		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		defer metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()

		rc := &recordingClient{JobClient: client}

		var endSpan func(code string)
		if p.Observability != nil {
			spanCtx, sp := p.Observability.StartSpan(ctx, taskType, job.Key)
			ctx = spanCtx
			endSpan = func(code string) { observability.EndSpan(sp, code) }
		}
		rc.ctx = ctx

		defer func() {
			if rec := recover(); rec != nil {
				p.Logger.Error("handler panicked", map[string]interface{}{
					"taskType": taskType,
					"jobKey":   job.Key,
					"panic":    fmt.Sprint(rec),
				})
				p.Responder.Fail(ctx, rc, job, apperrors.NewInternalError(fmt.Errorf("panic: %v", rec)))
			}

			outcome := rc.Outcome()
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
			if p.Observability != nil {
				p.Observability.RecordJobProcessed(ctx, taskType, outcome)
				p.Observability.RecordJobDuration(ctx, taskType, time.Since(start), outcome)
			}
			if endSpan != nil {
				code := ""
				if outcome != OutcomeCompleted {
					code = outcome
				}
				endSpan(code)
			}
		}()

		if p.Validator != nil {
			res, err := p.Validator.Validate(taskType, []byte(job.Variables))
			if err != nil {
				p.Responder.Fail(ctx, rc, job, apperrors.NewParseError(err))
				return
			}
			if !res.Valid {
				p.Responder.Fail(ctx, rc, job, apperrors.NewValidationFailedError(taskType, res.Messages()))
				return
			}
		}

		handler(rc, job)
	}
}

// Job outcomes as observed through the client.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeThrown    = "thrown"
	OutcomeNone      = "none"
)

// recordingClient notes which terminal command a handler issued and carries
// the job's context to it.
type recordingClient struct {
	worker.JobClient
	ctx     context.Context
	mu      sync.Mutex
	outcome string
}

// JobContext returns the context a Pipeline opened for the job handled through
// client. It carries the job's trace span. Other clients get context.Background().
func JobContext(client worker.JobClient) context.Context {
	if rc, ok := client.(*recordingClient); ok && rc.ctx != nil {
		return rc.ctx
	}
	return context.Background()
}

func (c *recordingClient) set(outcome string) {
	c.mu.Lock()
	c.outcome = outcome
	c.mu.Unlock()
}

func (c *recordingClient) Outcome() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outcome == "" {
		return OutcomeNone
	}
	return c.outcome
}

func (c *recordingClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	c.set(OutcomeCompleted)
	return c.JobClient.NewCompleteJobCommand()
}

func (c *recordingClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	c.set(OutcomeFailed)
	return c.JobClient.NewFailJobCommand()
}

func (c *recordingClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	c.set(OutcomeThrown)
	return c.JobClient.NewThrowErrorCommand()
}

// WorkerOptions maps config.WorkerConfig onto the job worker builder.
type WorkerOptions struct {
	MaxJobsActive int
	Timeout       time.Duration
	Concurrency   int
}

// CamundaWorker is one open job subscription.
type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// NewWorker opens a job worker for taskType with handler wrapped by p.
func NewWorker(client zbc.Client, taskType string, opts WorkerOptions, handler worker.JobHandler, p Pipeline) *CamundaWorker {
	builder := client.NewJobWorker().
		JobType(taskType).
		Handler(p.Wrap(taskType, handler)).
		Name(taskType)

	if opts.MaxJobsActive > 0 {
		builder = builder.MaxJobsActive(opts.MaxJobsActive)
	}
	if opts.Timeout > 0 {
		builder = builder.Timeout(opts.Timeout)
	}
	if opts.Concurrency > 0 {
		builder = builder.Concurrency(opts.Concurrency)
	}

	log := p.Logger.WithFields(map[string]interface{}{"taskType": taskType})
	log.Info("worker started", map[string]interface{}{
		"maxJobsActive": opts.MaxJobsActive,
		"timeout":       opts.Timeout.String(),
	})

	return &CamundaWorker{
		worker:   builder.Open(),
		logger:   log,
		taskType: taskType,
	}
}

func (w *CamundaWorker) TaskType() string { return w.taskType }

// Stop closes the subscription and waits for in-flight jobs.
func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}

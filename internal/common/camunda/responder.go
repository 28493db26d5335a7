package camunda

import (
	"context"

	apperrors "housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// Responder reports a job's outcome to the broker.
type Responder interface {
	Complete(ctx context.Context, client worker.JobClient, job entities.Job, output interface{})
	Fail(ctx context.Context, client worker.JobClient, job entities.Job, err error)
}

// JobResponder completes jobs with their output variables and routes errors
// through the shared error handler.
type JobResponder struct {
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

func NewJobResponder(log logger.Logger) *JobResponder {
	return &JobResponder{
		logger:       log,
		errorHandler: apperrors.NewErrorHandler(log),
	}
}

func (r *JobResponder) Complete(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		r.Fail(ctx, client, job, apperrors.NewInternalError(err))
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(job.Type).Inc()
	r.logger.Info("job completed successfully", map[string]interface{}{
		"jobKey":  job.Key,
		"jobType": job.Type,
	})
}

func (r *JobResponder) Fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	d := r.errorHandler.HandleJobError(ctx, client, job, err)
	metrics.WorkerJobsFailed.WithLabelValues(job.Type, d.Error.Code).Inc()
}

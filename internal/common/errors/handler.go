// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// Logger is the slice of logger.Logger the handler needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// Action is what the handler does with a failed job.
type Action int

const (
	// ActionThrow throws a BPMN error the process can catch.
	ActionThrow Action = iota
	// ActionFail fails the job so the broker retries it, or raises an
	// incident when no retries remain.
	ActionFail
)

// Decision is the outcome of classifying a job error.
type Decision struct {
	Action  Action
	Retries int32
	Error   *BPMNError
	Source  *StandardError
}

// Decide classifies err for a job with the given remaining retries. Business
// errors are thrown. Technical errors are failed with one retry fewer, capped
// by the code's retry budget.
func Decide(err error, remainingRetries int32) Decision {
	stdErr := FromError(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	if !stdErr.Retryable {
		return Decision{Action: ActionThrow, Error: bpmnErr, Source: stdErr}
	}

	retries := remainingRetries - 1
	if budget := int32(GetRetryCount(stdErr.Code)); retries > budget {
		retries = budget
	}
	if retries < 0 {
		retries = 0
	}
	return Decision{Action: ActionFail, Retries: retries, Error: bpmnErr, Source: stdErr}
}

// ErrorHandler reports job errors back to the broker.
type ErrorHandler struct {
	logger Logger
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleJobError fails or throws the job depending on the error's code.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) Decision {
	d := Decide(err, job.Retries)
	h.logError(job, d)

	switch d.Action {
	case ActionFail:
		h.failJob(ctx, client, job, d)
	default:
		h.throwBPMNError(ctx, client, job, d.Error)
	}
	return d
}

func (h *ErrorHandler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, d Decision) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(d.Retries).
		ErrorMessage(d.Error.Message)

	if vars, ok := encodeVariables(d.Error); ok {
		if withVars, err := cmd.VariablesFromString(vars); err == nil {
			h.send(ctx, job, "fail", func() error { _, err := withVars.Send(ctx); return err })
			return
		}
	}
	h.send(ctx, job, "fail", func() error { _, err := cmd.Send(ctx); return err })
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if vars, ok := encodeVariables(bpmnErr); ok {
		if withVars, err := cmd.VariablesFromString(vars); err == nil {
			h.send(ctx, job, "throw", func() error { _, err := withVars.Send(ctx); return err })
			return
		}
	}
	h.send(ctx, job, "throw", func() error { _, err := cmd.Send(ctx); return err })
}

func (h *ErrorHandler) send(_ context.Context, job entities.Job, command string, fn func() error) {
	if err := fn(); err != nil {
		h.logger.Error("failed to send job command", map[string]interface{}{
			"jobKey":  job.Key,
			"command": command,
			"error":   err,
		})
	}
}

func encodeVariables(bpmnErr *BPMNError) (string, bool) {
	vars := bpmnErr.ToErrorVariables()
	if len(vars) == 0 {
		return "", false
	}
	raw, err := json.Marshal(vars)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func (h *ErrorHandler) logError(job entities.Job, d Decision) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(d.Source.Code),
		"bpmnErrorCode":    d.Error.Code,
		"message":          d.Error.Message,
		"details":          d.Source.Details,
		"retryable":        d.Source.Retryable,
		"retries":          d.Retries,
		"errorCategory":    GetErrorCategory(d.Source.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}

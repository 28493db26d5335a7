// internal/workers/application/update-application-status/handler.go
package updateapplicationstatus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"housing-workers/internal/common/camunda"
	apperrors "housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/common/metrics"
	"housing-workers/internal/domain/progress"
	"housing-workers/internal/models"
	"housing-workers/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "update-application-status"
)

var (
	ErrApplicationNotFound  = errors.New("APPLICATION_NOT_FOUND")
	ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")
)

type AuditRecorder interface {
	Record(ctx context.Context, organizationID, eventType, resourceType, resourceID string, details map[string]interface{}) error
}

type Handler struct {
	config    *Config
	apps      repository.Repository[*models.Application]
	audit     AuditRecorder
	responder camunda.Responder
	logger    logger.Logger
	now       func() time.Time
}

func NewHandler(config *Config, apps repository.Repository[*models.Application], audit AuditRecorder, responder camunda.Responder, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		apps:      apps,
		audit:     audit,
		responder: responder,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	jobCtx := camunda.JobContext(client)

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.responder.Fail(jobCtx, client, job, apperrors.NewParseError(err))
		return
	}

	ctx, cancel := context.WithTimeout(jobCtx, h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.responder.Fail(jobCtx, client, job, err)
		return
	}

	h.responder.Complete(jobCtx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	app, err := h.apps.Get(ctx, input.OrganizationID, input.ApplicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrApplicationNotFound, input.ApplicationID)
		}
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}

	previous := app.Status
	tracker, err := progress.UpdateStatus(app.Tracker(), input.Status, input.Notes, h.now())
	if err != nil {
		return nil, err
	}
	app.Apply(tracker)

	if err := h.apps.Put(ctx, app); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}
	metrics.ApplicationStatusTransitions.WithLabelValues(app.Status).Inc()

	if err := h.audit.Record(ctx, app.OrganizationID, "application_status_updated", "application", app.ID, map[string]interface{}{
		"previousStatus": previous,
		"status":         app.Status,
		"notes":          app.Notes,
	}); err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":         err,
			"applicationId": app.ID,
		})
	}

	h.logger.Info("application status updated", map[string]interface{}{
		"applicationId":      app.ID,
		"previousStatus":     previous,
		"status":             app.Status,
		"progressPercentage": app.ProgressPercentage,
	})

	return &Output{
		ApplicationID:      app.ID,
		Status:             app.Status,
		PreviousStatus:     previous,
		ProgressPercentage: app.ProgressPercentage,
		Notify:             tracker.Status.IsTerminal(),
		UpdatedAt:          app.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

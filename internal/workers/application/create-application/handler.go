// internal/workers/application/create-application/handler.go
package createapplication

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
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
	"github.com/google/uuid"
)

const (
	TaskType = "create-application"
)

var (
	ErrInvalidInput         = errors.New("INVALID_INPUT")
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
)

// AuditRecorder writes audit_log entries.
type AuditRecorder interface {
	Record(ctx context.Context, organizationID, eventType, resourceType, resourceID string, details map[string]interface{}) error
}

type Handler struct {
	config    *Config
	apps      repository.Repository[*models.Application]
	checklist repository.Repository[*models.DocumentChecklistItem]
	audit     AuditRecorder
	responder camunda.Responder
	logger    logger.Logger
	newID     func() string
	now       func() time.Time
}

func NewHandler(
	config *Config,
	apps repository.Repository[*models.Application],
	checklist repository.Repository[*models.DocumentChecklistItem],
	audit AuditRecorder,
	responder camunda.Responder,
	log logger.Logger,
) *Handler {
	return &Handler{
		config:    config,
		apps:      apps,
		checklist: checklist,
		audit:     audit,
		responder: responder,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		newID:     func() string { return uuid.New().String() },
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
	now := h.now()
	app := models.NewApplication(
		h.newID(),
		input.OrganizationID,
		strings.TrimSpace(input.ApplicantName),
		input.ApplicationType,
		now,
	)
	app.ApplicantEmail = strings.TrimSpace(input.ApplicantEmail)
	app.ApplicantPhone = strings.TrimSpace(input.ApplicantPhone)
	app.Notes = input.Notes

	if err := app.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := h.apps.Put(ctx, app); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseInsertFailed, err)
	}
	metrics.ApplicationStatusTransitions.WithLabelValues(app.Status).Inc()

	// The checklist mirrors required documents for display; the application
	// record stays authoritative, so a failed seed is only logged.
	for _, doc := range progress.RequiredDocumentsFor(app.ApplicationType) {
		item := &models.DocumentChecklistItem{
			ID:             h.newID(),
			OrganizationID: app.OrganizationID,
			ApplicationID:  app.ID,
			Name:           doc.Name,
			Description:    doc.Description,
			CreatedAt:      now,
		}
		if err := h.checklist.Put(ctx, item); err != nil {
			h.logger.Warn("checklist item insert failed", map[string]interface{}{
				"error":         err,
				"applicationId": app.ID,
				"document":      doc.Name,
			})
		}
	}

	if err := h.audit.Record(ctx, app.OrganizationID, "application_created", "application", app.ID, map[string]interface{}{
		"applicationType": app.ApplicationType,
		"status":          app.Status,
	}); err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":         err,
			"applicationId": app.ID,
		})
	}

	h.logger.Info("application created", map[string]interface{}{
		"applicationId":   app.ID,
		"organizationId":  app.OrganizationID,
		"applicationType": app.ApplicationType,
	})

	return &Output{
		ApplicationID:      app.ID,
		Status:             app.Status,
		ProgressPercentage: app.ProgressPercentage,
		RequiredDocuments:  app.RequiredDocuments,
		CreatedAt:          now.Format(time.RFC3339),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

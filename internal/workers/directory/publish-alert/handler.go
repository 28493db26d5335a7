// internal/workers/directory/publish-alert/handler.go
package publishalert

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
	"housing-workers/internal/models"
	"housing-workers/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "publish-alert"
)

var (
	ErrInvalidInput         = errors.New("INVALID_INPUT")
	ErrRecordNotFound       = errors.New("RECORD_NOT_FOUND")
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
)

var deadlineLayouts = []string{time.RFC3339, "2006-01-02"}

type Handler struct {
	config    *Config
	alerts    repository.Repository[*models.Alert]
	responder camunda.Responder
	logger    logger.Logger
	newID     func() string
	now       func() time.Time
}

func NewHandler(config *Config, alerts repository.Repository[*models.Alert], responder camunda.Responder, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		alerts:    alerts,
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
	var (
		alert *models.Alert
		err   error
	)
	if input.AlertID == "" {
		alert, err = h.newAlert(input)
	} else {
		alert, err = h.toggle(ctx, input)
	}
	if err != nil {
		return nil, err
	}

	if err := h.alerts.Put(ctx, alert); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseInsertFailed, err)
	}

	h.logger.Info("alert saved", map[string]interface{}{
		"alertId":   alert.ID,
		"alertType": alert.AlertType,
		"isActive":  alert.IsActive,
	})

	return &Output{
		AlertID:     alert.ID,
		IsActive:    alert.IsActive,
		PublishedAt: alert.CreatedAt,
	}, nil
}

func (h *Handler) newAlert(input *Input) (*models.Alert, error) {
	alert := &models.Alert{
		ID:             h.newID(),
		OrganizationID: input.OrganizationID,
		Title:          strings.TrimSpace(input.Title),
		Message:        strings.TrimSpace(input.Message),
		AlertType:      strings.ToLower(strings.TrimSpace(input.AlertType)),
		IsActive:       true,
	}
	if alert.AlertType == "" {
		alert.AlertType = models.AlertTypeInfo
	}
	if input.IsActive != nil {
		alert.IsActive = *input.IsActive
	}

	if input.Deadline != "" {
		deadline, err := parseDeadline(input.Deadline)
		if err != nil {
			return nil, err
		}
		alert.Deadline = &deadline
	}

	if err := alert.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	alert.Touch(h.now())
	return alert, nil
}

func (h *Handler) toggle(ctx context.Context, input *Input) (*models.Alert, error) {
	alert, err := h.alerts.Get(ctx, input.OrganizationID, input.AlertID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: alert %s", ErrRecordNotFound, input.AlertID)
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseInsertFailed, err)
	}

	alert.IsActive = false
	if input.IsActive != nil {
		alert.IsActive = *input.IsActive
	}
	alert.Touch(h.now())
	return alert, nil
}

func parseDeadline(value string) (time.Time, error) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: deadline %q is not a date", ErrInvalidInput, value)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

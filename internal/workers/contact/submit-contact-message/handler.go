// internal/workers/contact/submit-contact-message/handler.go
package submitcontactmessage

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
	TaskType = "submit-contact-message"
)

var (
	ErrInvalidInput         = errors.New("INVALID_INPUT")
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
)

type Handler struct {
	config    *Config
	messages  repository.Repository[*models.ContactMessage]
	responder camunda.Responder
	logger    logger.Logger
	newID     func() string
	now       func() time.Time
}

func NewHandler(config *Config, messages repository.Repository[*models.ContactMessage], responder camunda.Responder, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		messages:  messages,
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
	msg := &models.ContactMessage{
		ID:             h.newID(),
		OrganizationID: input.OrganizationID,
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:          strings.TrimSpace(input.Phone),
		Message:        strings.TrimSpace(input.Message),
		Status:         models.ContactStatusNew,
	}
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msg.Touch(h.now())

	if err := h.messages.Put(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseInsertFailed, err)
	}

	h.logger.Info("contact message stored", map[string]interface{}{
		"messageId":      msg.ID,
		"organizationId": msg.OrganizationID,
	})

	return &Output{
		MessageID:   msg.ID,
		Status:      msg.Status,
		Email:       msg.Email,
		SubmittedAt: msg.CreatedAt,
		Contact:     h.config.Card,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

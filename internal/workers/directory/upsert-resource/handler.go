// internal/workers/directory/upsert-resource/handler.go
package upsertresource

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
	TaskType = "upsert-resource"
)

var (
	ErrInvalidInput         = errors.New("INVALID_INPUT")
	ErrRecordNotFound       = errors.New("RECORD_NOT_FOUND")
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrIndexFailed          = errors.New("INDEX_FAILED")
)

// Indexer keeps the search copy of a resource current.
type Indexer interface {
	Index(ctx context.Context, resource *models.Resource) error
}

type Handler struct {
	config    *Config
	resources repository.Repository[*models.Resource]
	index     Indexer
	responder camunda.Responder
	logger    logger.Logger
	newID     func() string
	now       func() time.Time
}

func NewHandler(config *Config, resources repository.Repository[*models.Resource], index Indexer, responder camunda.Responder, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		resources: resources,
		index:     index,
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
	resource, created, err := h.load(ctx, input)
	if err != nil {
		return nil, err
	}

	apply(resource, input)
	resource.Touch(h.now())

	if err := resource.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := h.resources.Put(ctx, resource); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseInsertFailed, err)
	}

	if err := h.index.Index(ctx, resource); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexFailed, err)
	}

	h.logger.Info("resource saved", map[string]interface{}{
		"resourceId": resource.ID,
		"created":    created,
		"isActive":   resource.IsActive,
	})

	return &Output{
		ResourceID: resource.ID,
		Created:    created,
		IsActive:   resource.IsActive,
		Indexed:    true,
	}, nil
}

func (h *Handler) load(ctx context.Context, input *Input) (*models.Resource, bool, error) {
	if input.ResourceID == "" {
		return &models.Resource{
			ID:             h.newID(),
			OrganizationID: input.OrganizationID,
			IsActive:       true,
		}, true, nil
	}

	existing, err := h.resources.Get(ctx, input.OrganizationID, input.ResourceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, fmt.Errorf("%w: resource %s", ErrRecordNotFound, input.ResourceID)
		}
		return nil, false, fmt.Errorf("%w: %v", ErrDatabaseInsertFailed, err)
	}
	return existing, false, nil
}

func apply(r *models.Resource, in *Input) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&r.Name, in.Name)
	set(&r.Description, in.Description)
	set(&r.Category, in.Category)
	set(&r.Phone, in.Phone)
	set(&r.Address, in.Address)
	set(&r.Hours, in.Hours)
	set(&r.Eligibility, in.Eligibility)
	if r.Category != "" {
		r.Category = strings.ToLower(r.Category)
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

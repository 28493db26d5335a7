// internal/workers/directory/search-resources/handler.go
package searchresources

import (
	"context"
	"encoding/json"
	"strings"

	"housing-workers/internal/common/camunda"
	apperrors "housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "search-resources"
)

type Searcher interface {
	Search(ctx context.Context, q repository.ResourceQuery) (*repository.ResourceResult, error)
}

type Handler struct {
	config    *Config
	index     Searcher
	responder camunda.Responder
	logger    logger.Logger
}

func NewHandler(config *Config, index Searcher, responder camunda.Responder, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		index:     index,
		responder: responder,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
	page, size := h.page(input)

	result, err := h.index.Search(ctx, repository.ResourceQuery{
		OrganizationID:    input.OrganizationID,
		Search:            strings.TrimSpace(input.Search),
		Category:          strings.ToLower(strings.TrimSpace(input.Category)),
		IncludeCategories: input.IncludeCategories,
		From:              (page - 1) * size,
		Size:              size,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Debug("resource search finished", map[string]interface{}{
		"organizationId": input.OrganizationID,
		"total":          result.Total,
		"returned":       len(result.Resources),
	})

	return &Output{
		Resources:  result.Resources,
		Total:      result.Total,
		Page:       page,
		PageSize:   size,
		Categories: result.Categories,
	}, nil
}

func (h *Handler) page(input *Input) (int, int) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	size := input.PageSize
	if size < 1 {
		size = h.config.DefaultPageSize
	}
	if h.config.MaxPageSize > 0 && size > h.config.MaxPageSize {
		size = h.config.MaxPageSize
	}
	return page, size
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

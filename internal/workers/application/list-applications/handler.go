// internal/workers/application/list-applications/handler.go
package listapplications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"housing-workers/internal/common/camunda"
	apperrors "housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/domain/progress"
	"housing-workers/internal/models"
	"housing-workers/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "list-applications"
)

var ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")

// Handler lists an organization's applications, newest first.
type Handler struct {
	config    *Config
	apps      repository.Repository[*models.Application]
	responder camunda.Responder
	logger    logger.Logger
}

func NewHandler(config *Config, apps repository.Repository[*models.Application], responder camunda.Responder, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		apps:      apps,
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
	filter := repository.Filter{
		OrganizationID: input.OrganizationID,
		OrderBy:        "createdAt",
		Descending:     true,
		Limit:          h.limit(input.Limit),
	}
	if raw := strings.TrimSpace(input.Status); raw != "" {
		status, err := progress.ParseStatus(strings.ToLower(raw))
		if err != nil {
			return nil, err
		}
		filter.Equals = map[string]interface{}{"status": string(status)}
	}

	apps, err := h.apps.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}

	out := &Output{Applications: make([]models.Application, 0, len(apps))}
	for _, a := range apps {
		out.Applications = append(out.Applications, *a)
	}
	out.Count = len(out.Applications)
	return out, nil
}

func (h *Handler) limit(requested int) int {
	if requested < 1 {
		return h.config.DefaultLimit
	}
	if requested > h.config.MaxLimit {
		return h.config.MaxLimit
	}
	return requested
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// internal/workers/application/list-application-documents/handler.go
package listapplicationdocuments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"housing-workers/internal/common/camunda"
	apperrors "housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/models"
	"housing-workers/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "list-application-documents"
)

var (
	ErrInvalidInput         = errors.New("INVALID_INPUT")
	ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")
)

// Handler returns the document checklist seeded for an application, in the
// order the items were created. An application without a checklist yields an
// empty list.
type Handler struct {
	config    *Config
	checklist repository.Repository[*models.DocumentChecklistItem]
	responder camunda.Responder
	logger    logger.Logger
}

func NewHandler(config *Config, checklist repository.Repository[*models.DocumentChecklistItem], responder camunda.Responder, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		checklist: checklist,
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
	applicationID := strings.TrimSpace(input.ApplicationID)
	if applicationID == "" {
		return nil, fmt.Errorf("%w: applicationId is required", ErrInvalidInput)
	}

	items, err := h.checklist.Query(ctx, repository.Filter{
		OrganizationID: input.OrganizationID,
		Equals:         map[string]interface{}{"applicationId": applicationID},
		OrderBy:        "createdAt",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}

	out := &Output{
		ApplicationID: applicationID,
		Documents:     make([]models.DocumentChecklistItem, 0, len(items)),
	}
	for _, item := range items {
		if item.IsUploaded {
			out.UploadedCount++
		}
		out.Documents = append(out.Documents, *item)
	}
	out.Count = len(out.Documents)
	return out, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

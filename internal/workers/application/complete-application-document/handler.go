// internal/workers/application/complete-application-document/handler.go
package completeapplicationdocument

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
)

const (
	TaskType = "complete-application-document"
)

var (
	ErrApplicationNotFound  = errors.New("APPLICATION_NOT_FOUND")
	ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")
)

type Handler struct {
	config    *Config
	apps      repository.Repository[*models.Application]
	checklist repository.Repository[*models.DocumentChecklistItem]
	responder camunda.Responder
	logger    logger.Logger
	now       func() time.Time
}

func NewHandler(
	config *Config,
	apps repository.Repository[*models.Application],
	checklist repository.Repository[*models.DocumentChecklistItem],
	responder camunda.Responder,
	log logger.Logger,
) *Handler {
	return &Handler{
		config:    config,
		apps:      apps,
		checklist: checklist,
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

	now := h.now()
	name := strings.TrimSpace(input.DocumentName)
	tracker, changed, err := progress.CompleteDocument(app.Tracker(), name, now)
	if err != nil {
		return nil, err
	}

	if changed {
		app.Apply(tracker)
		if err := h.apps.Put(ctx, app); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
		}
		metrics.DocumentsCompleted.Inc()
		h.markUploaded(ctx, app, name, input.FilePath, now)

		h.logger.Info("document completed", map[string]interface{}{
			"applicationId":      app.ID,
			"document":           name,
			"progressPercentage": app.ProgressPercentage,
		})
	}

	return &Output{
		ApplicationID:      app.ID,
		ProgressPercentage: app.ProgressPercentage,
		CompletedDocuments: app.CompletedDocuments,
		RemainingDocuments: remaining(app.RequiredDocuments, app.CompletedDocuments),
		Changed:            changed,
	}, nil
}

// markUploaded flags the checklist row for the document. Missing rows are
// tolerated for applications created before checklists were seeded.
func (h *Handler) markUploaded(ctx context.Context, app *models.Application, name, filePath string, at time.Time) {
	items, err := h.checklist.Query(ctx, repository.Filter{
		OrganizationID: app.OrganizationID,
		Equals: map[string]interface{}{
			"applicationId": app.ID,
			"name":          name,
		},
		Limit: 1,
	})
	if err != nil || len(items) == 0 {
		if err != nil {
			h.logger.Warn("checklist lookup failed", map[string]interface{}{
				"error":         err,
				"applicationId": app.ID,
			})
		}
		return
	}

	item := items[0]
	if !item.MarkUploaded(filePath, at) {
		return
	}
	if err := h.checklist.Put(ctx, item); err != nil {
		h.logger.Warn("checklist update failed", map[string]interface{}{
			"error":         err,
			"applicationId": app.ID,
			"document":      name,
		})
	}
}

func remaining(required, completed []string) []string {
	done := make(map[string]struct{}, len(completed))
	for _, c := range completed {
		done[c] = struct{}{}
	}
	out := []string{}
	for _, r := range required {
		if _, ok := done[r]; !ok {
			out = append(out, r)
		}
	}
	return out
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

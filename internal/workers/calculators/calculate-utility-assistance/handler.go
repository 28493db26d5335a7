// internal/workers/calculators/calculate-utility-assistance/handler.go
package calculateutilityassistance

import (
	"context"
	"encoding/json"

	"housing-workers/internal/common/camunda"
	apperrors "housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/domain/calculators"
	"housing-workers/internal/models"
	"housing-workers/internal/workers/calculators/history"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-utility-assistance"
)

type Handler struct {
	config    *Config
	history   *history.Recorder
	responder camunda.Responder
	logger    logger.Logger
}

func NewHandler(config *Config, rec *history.Recorder, responder camunda.Responder, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		history:   rec,
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
	result, err := calculators.CalculateUtilityAssistance(input.HouseholdSize, input.MonthlyIncome, input.MonthlyUtilityCost)
	if err != nil {
		h.history.Failed(models.CalculationUtility)
		return nil, err
	}

	output := &Output{
		AssistanceAmount:     result.AssistanceAmount,
		AssistancePercentage: result.AssistancePercentage,
		UtilityType:          input.UtilityType,
	}
	h.history.Save(ctx, input.OrganizationID, models.CalculationUtility, input, output)
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

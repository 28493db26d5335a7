// internal/workers/calculators/calculate-loan/handler.go
package calculateloan

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
	TaskType = "calculate-loan"
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
	result, err := calculators.CalculateLoan(input.Principal, input.AnnualRate, input.TermYears)
	if err != nil {
		h.history.Failed(models.CalculationLoan)
		return nil, err
	}

	output := &Output{
		MonthlyPayment: result.MonthlyPayment,
		TotalInterest:  result.TotalInterest,
		TotalCost:      result.TotalCost,
	}
	h.history.Save(ctx, input.OrganizationID, models.CalculationLoan, input, output)

	h.logger.Debug("loan calculated", map[string]interface{}{
		"termYears":      input.TermYears,
		"monthlyPayment": output.MonthlyPayment,
	})
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

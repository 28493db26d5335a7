// Package history persists calculator runs as FinancialCalculation records.
package history

import (
	"context"
	"encoding/json"
	"time"

	"housing-workers/internal/common/logger"
	"housing-workers/internal/common/metrics"
	"housing-workers/internal/models"
	"housing-workers/internal/repository"

	"github.com/google/uuid"
)

const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
)

type Recorder struct {
	repo   repository.Repository[*models.FinancialCalculation]
	logger logger.Logger
	newID  func() string
	now    func() time.Time
}

// NewRecorder returns a Recorder. A nil repo only counts calculations.
func NewRecorder(repo repository.Repository[*models.FinancialCalculation], log logger.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: log,
		newID:  func() string { return uuid.New().String() },
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Failed counts a rejected calculation.
func (r *Recorder) Failed(calculationType string) {
	metrics.CalculationsTotal.WithLabelValues(calculationType, OutcomeInvalid).Inc()
}

// Save counts a successful calculation and stores it for the organization.
// Storage failures are logged; the result is still returned to the caller.
func (r *Recorder) Save(ctx context.Context, organizationID, calculationType string, input, result interface{}) {
	metrics.CalculationsTotal.WithLabelValues(calculationType, OutcomeOK).Inc()

	if r.repo == nil || organizationID == "" {
		return
	}

	rec := &models.FinancialCalculation{
		ID:              r.newID(),
		OrganizationID:  organizationID,
		CalculationType: calculationType,
		InputData:       toMap(input),
		ResultData:      toMap(result),
		CreatedAt:       r.now(),
	}
	if err := r.repo.Put(ctx, rec); err != nil {
		r.logger.Warn("calculation history insert failed", map[string]interface{}{
			"error":           err,
			"calculationType": calculationType,
		})
	}
}

func toMap(v interface{}) map[string]interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

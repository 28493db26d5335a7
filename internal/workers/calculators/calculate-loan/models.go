// internal/workers/calculators/calculate-loan/models.go
package calculateloan

type Input struct {
	OrganizationID string  `json:"organizationId,omitempty"`
	Principal      float64 `json:"principal"`
	AnnualRate     float64 `json:"annualRate"` // percent, e.g. 6.5
	TermYears      int     `json:"termYears"`
}

type Output struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalCost      float64 `json:"totalCost"`
}

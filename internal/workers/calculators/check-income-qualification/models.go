// internal/workers/calculators/check-income-qualification/models.go
package checkincomequalification

type Input struct {
	OrganizationID string  `json:"organizationId,omitempty"`
	HouseholdSize  int     `json:"householdSize"`
	AnnualIncome   float64 `json:"annualIncome"`
}

type Output struct {
	AreaMedianIncome        float64 `json:"areaMedianIncome"`
	MaxIncomeLimit          float64 `json:"maxIncomeLimit"`
	QualificationPercentage float64 `json:"qualificationPercentage"`
	Qualifies               bool    `json:"qualifies"`
}

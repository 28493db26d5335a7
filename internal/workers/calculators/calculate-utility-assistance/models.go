// internal/workers/calculators/calculate-utility-assistance/models.go
package calculateutilityassistance

type Input struct {
	OrganizationID     string  `json:"organizationId,omitempty"`
	HouseholdSize      int     `json:"householdSize"`
	MonthlyIncome      float64 `json:"monthlyIncome"`
	MonthlyUtilityCost float64 `json:"monthlyUtilityCost"`
	UtilityType        string  `json:"utilityType,omitempty"` // electric, gas, water
}

type Output struct {
	AssistanceAmount     float64 `json:"assistanceAmount"`
	AssistancePercentage float64 `json:"assistancePercentage"`
	UtilityType          string  `json:"utilityType,omitempty"`
}

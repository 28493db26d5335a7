// internal/models/calculation.go
package models

import "time"

const (
	CalculationLoan    = "loan"
	CalculationIncome  = "income"
	CalculationUtility = "utility"
)

// FinancialCalculation records one calculator invocation for reporting.
type FinancialCalculation struct {
	ID              string                 `json:"id"`
	OrganizationID  string                 `json:"organizationId"`
	CalculationType string                 `json:"calculationType"`
	InputData       map[string]interface{} `json:"inputData"`
	ResultData      map[string]interface{} `json:"resultData"`
	CreatedAt       time.Time              `json:"createdAt"`
}

func (c *FinancialCalculation) GetID() string             { return c.ID }
func (c *FinancialCalculation) GetOrganizationID() string { return c.OrganizationID }

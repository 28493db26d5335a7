// Package calculators holds the financial eligibility calculators: loan
// amortization, area-median-income qualification and utility assistance.
// Every function is pure and safe for concurrent use.
package calculators

import "math"

// LoanResult is the outcome of a fixed-rate amortization.
type LoanResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalCost      float64 `json:"totalCost"`
}

// CalculateLoan computes the monthly payment, total cost and total interest of
// a fixed-rate loan repaid monthly over termYears.
func CalculateLoan(principal, annualRatePercent float64, termYears int) (LoanResult, error) {
	if principal <= 0 {
		return LoanResult{}, invalidInput("principal must be positive, got %.2f", principal)
	}
	if termYears <= 0 {
		return LoanResult{}, invalidInput("term must be positive, got %d years", termYears)
	}
	if annualRatePercent < 0 || math.IsNaN(annualRatePercent) {
		return LoanResult{}, invalidInput("interest rate must not be negative, got %.4f", annualRatePercent)
	}

	n := float64(termYears * MonthsPerYear)
	r := annualRatePercent / PercentageMultiplier / MonthsPerYear

	var payment float64
	if r == 0 {
		payment = principal / n
	} else {
		growth := math.Pow(1+r, n)
		payment = principal * r * growth / (growth - 1)
	}

	totalCost := payment * n

	return LoanResult{
		MonthlyPayment: RoundCurrency(payment),
		TotalInterest:  RoundCurrency(totalCost - principal),
		TotalCost:      RoundCurrency(totalCost),
	}, nil
}

// internal/domain/calculators/utility.go
package calculators

// Assistance tiers keyed on utility burden (cost as a share of income).
const (
	highBurdenThreshold     = 10.0
	moderateBurdenThreshold = 6.0

	highBurdenAssistance     = 75.0
	moderateBurdenAssistance = 50.0
	baseAssistance           = 25.0
)

// UtilityAssistance is the monthly assistance a household is eligible for.
type UtilityAssistance struct {
	AssistanceAmount     float64 `json:"assistanceAmount"`
	AssistancePercentage float64 `json:"assistancePercentage"`
}

// CalculateUtilityAssistance sizes monthly utility assistance. Households above
// 150% of the poverty line receive nothing.
func CalculateUtilityAssistance(householdSize int, monthlyIncome, monthlyUtilityCost float64) (UtilityAssistance, error) {
	threshold, err := PovertyThreshold(householdSize)
	if err != nil {
		return UtilityAssistance{}, err
	}
	if monthlyIncome <= 0 {
		return UtilityAssistance{}, invalidInput("monthly income must be positive, got %.2f", monthlyIncome)
	}
	if monthlyUtilityCost < 0 {
		return UtilityAssistance{}, invalidInput("utility cost must not be negative, got %.2f", monthlyUtilityCost)
	}

	if monthlyIncome > threshold {
		return UtilityAssistance{}, nil
	}

	burden := monthlyUtilityCost / monthlyIncome * PercentageMultiplier

	pct := baseAssistance
	switch {
	case burden > highBurdenThreshold:
		pct = highBurdenAssistance
	case burden > moderateBurdenThreshold:
		pct = moderateBurdenAssistance
	}

	return UtilityAssistance{
		AssistanceAmount:     RoundCurrency(monthlyUtilityCost * pct / PercentageMultiplier),
		AssistancePercentage: pct,
	}, nil
}

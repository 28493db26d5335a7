// internal/domain/calculators/income.go
package calculators

// IncomeQualification reports how a household income compares to 80% AMI.
type IncomeQualification struct {
	AreaMedianIncome        float64 `json:"areaMedianIncome"`
	MaxIncomeLimit          float64 `json:"maxIncomeLimit"`
	QualificationPercentage float64 `json:"qualificationPercentage"`
	Qualifies               bool    `json:"qualifies"`
}

// CheckIncomeQualification compares an annual income to the 80% AMI limit for
// the household size.
func CheckIncomeQualification(householdSize int, annualIncome float64) (IncomeQualification, error) {
	ami, err := AreaMedianIncome(householdSize)
	if err != nil {
		return IncomeQualification{}, err
	}
	if annualIncome < 0 {
		return IncomeQualification{}, invalidInput("annual income must not be negative, got %.2f", annualIncome)
	}

	maxIncome := RoundCurrency(ami * incomeLimitRatio)

	return IncomeQualification{
		AreaMedianIncome:        ami,
		MaxIncomeLimit:          maxIncome,
		QualificationPercentage: RoundTo(annualIncome/maxIncome*PercentageMultiplier, 1),
		Qualifies:               annualIncome <= maxIncome,
	}, nil
}

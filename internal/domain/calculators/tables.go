// internal/domain/calculators/tables.go
package calculators

const (
	MonthsPerYear        = 12
	PercentageMultiplier = 100.0
	decimalPrecision     = 100.0

	// Income limit is 80% of area median income.
	incomeLimitRatio = 0.8

	maxTableHouseholdSize = 8
)

// Area median income by household size (1-8).
var areaMedianIncome = [maxTableHouseholdSize]float64{
	52800, 60300, 67850, 75350, 81400, 87400, 93450, 99450,
}

// Monthly 150% federal poverty line by household size (1-8).
var povertyThreshold150 = [maxTableHouseholdSize]float64{
	1395, 1875, 2355, 2835, 3315, 3795, 4275, 4755,
}

// tableIndex maps a household size onto the lookup tables. Sizes above the
// table use the largest household entry.
func tableIndex(householdSize int) int {
	if householdSize > maxTableHouseholdSize {
		householdSize = maxTableHouseholdSize
	}
	return householdSize - 1
}

// AreaMedianIncome returns the AMI for a household size.
func AreaMedianIncome(householdSize int) (float64, error) {
	if householdSize < 1 {
		return 0, invalidInput("household size must be at least 1, got %d", householdSize)
	}
	return areaMedianIncome[tableIndex(householdSize)], nil
}

// PovertyThreshold returns the monthly 150% FPL threshold for a household size.
func PovertyThreshold(householdSize int) (float64, error) {
	if householdSize < 1 {
		return 0, invalidInput("household size must be at least 1, got %d", householdSize)
	}
	return povertyThreshold150[tableIndex(householdSize)], nil
}

package calculators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Loan Calculator
// ==========================

func TestCalculateLoan(t *testing.T) {
	tests := []struct {
		name             string
		principal        float64
		rate             float64
		years            int
		expectedPayment  float64
		expectedInterest float64
		expectedTotal    float64
	}{
		{
			name:             "30-year mortgage at 4.5%",
			principal:        150000,
			rate:             4.5,
			years:            30,
			expectedPayment:  760.03,
			expectedInterest: 123610.07,
			expectedTotal:    273610.07,
		},
		{
			name:             "15-year mortgage at 6%",
			principal:        200000,
			rate:             6,
			years:            15,
			expectedPayment:  1687.71,
			expectedInterest: 103788.46,
			expectedTotal:    303788.46,
		},
		{
			name:             "short high-interest loan",
			principal:        25000,
			rate:             18,
			years:            3,
			expectedPayment:  903.81,
			expectedInterest: 7537.16,
			expectedTotal:    32537.16,
		},
		{
			name:             "zero interest",
			principal:        12000,
			rate:             0,
			years:            5,
			expectedPayment:  200,
			expectedInterest: 0,
			expectedTotal:    12000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateLoan(tt.principal, tt.rate, tt.years)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedPayment, result.MonthlyPayment)
			assert.InDelta(t, tt.expectedInterest, result.TotalInterest, 0.011)
			assert.InDelta(t, tt.expectedTotal, result.TotalCost, 0.011)
		})
	}
}

func TestCalculateLoan_ReferenceMortgageWithinTolerance(t *testing.T) {
	result, err := CalculateLoan(150000, 4.5, 30)
	require.NoError(t, err)

	assert.Equal(t, 760.03, result.MonthlyPayment)
	assert.InDelta(t, 273609.73, result.TotalCost, 1.0)
	assert.InDelta(t, 123609.73, result.TotalInterest, 1.0)
}

func TestCalculateLoan_ZeroRateDividesEvenly(t *testing.T) {
	for _, years := range []int{1, 2, 10, 30} {
		result, err := CalculateLoan(36000, 0, years)
		require.NoError(t, err)
		assert.Equal(t, RoundCurrency(36000/float64(years*12)), result.MonthlyPayment)
		assert.Equal(t, 0.0, result.TotalInterest)
	}
}

func TestCalculateLoan_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     int
	}{
		{"zero term", 100000, 5, 0},
		{"negative term", 100000, 5, -1},
		{"zero principal", 0, 5, 30},
		{"negative principal", -5000, 5, 30},
		{"negative rate", 100000, -1, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateLoan(tt.principal, tt.rate, tt.years)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

// ==========================
// Income Qualification
// ==========================

func TestCheckIncomeQualification_TableValues(t *testing.T) {
	expected := map[int]float64{
		1: 52800, 2: 60300, 3: 67850, 4: 75350,
		5: 81400, 6: 87400, 7: 93450, 8: 99450,
		9: 99450, 12: 99450,
	}

	for size, ami := range expected {
		result, err := CheckIncomeQualification(size, 30000)
		require.NoError(t, err)
		assert.Equal(t, ami, result.AreaMedianIncome, "household size %d", size)
		assert.InDelta(t, ami*0.8, result.MaxIncomeLimit, 0.001, "household size %d", size)
	}
}

func TestCheckIncomeQualification(t *testing.T) {
	tests := []struct {
		name          string
		size          int
		income        float64
		expectedLimit float64
		expectedPct   float64
		qualifies     bool
	}{
		{"single below limit", 1, 40000, 42240, 94.7, true},
		{"two persons at limit", 2, 48240, 48240, 100.0, true},
		{"four persons above limit", 4, 70000, 60280, 116.1, false},
		{"large household uses size 8", 9, 50000, 79560, 62.8, true},
		{"no income", 3, 0, 54280, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CheckIncomeQualification(tt.size, tt.income)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedLimit, result.MaxIncomeLimit)
			assert.Equal(t, tt.expectedPct, result.QualificationPercentage)
			assert.Equal(t, tt.qualifies, result.Qualifies)
		})
	}
}

func TestCheckIncomeQualification_InvalidInput(t *testing.T) {
	_, err := CheckIncomeQualification(0, 30000)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = CheckIncomeQualification(2, -1)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

// ==========================
// Utility Assistance
// ==========================

func TestCalculateUtilityAssistance(t *testing.T) {
	tests := []struct {
		name           string
		size           int
		income         float64
		cost           float64
		expectedAmount float64
		expectedPct    float64
	}{
		{"high burden", 2, 1500, 200, 150, 75},
		{"moderate burden", 2, 1500, 100, 50, 50},
		{"low burden", 2, 1500, 60, 15, 25},
		{"burden exactly 10 percent", 1, 1000, 100, 50, 50},
		{"burden exactly 6 percent", 1, 1000, 60, 15, 25},
		{"burden rounding above 6 percent", 1, 104, 6.24, 3.12, 50},
		{"income at threshold", 2, 1875, 250, 187.5, 75},
		{"income above threshold", 2, 1876, 250, 0, 0},
		{"large household uses size 8", 10, 4755, 300, 150, 50},
		{"large household above size 8 threshold", 10, 4756, 900, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateUtilityAssistance(tt.size, tt.income, tt.cost)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAmount, result.AssistanceAmount)
			assert.Equal(t, tt.expectedPct, result.AssistancePercentage)
		})
	}
}

func TestCalculateUtilityAssistance_AboveThresholdAlwaysZero(t *testing.T) {
	for size := 1; size <= 8; size++ {
		threshold, err := PovertyThreshold(size)
		require.NoError(t, err)

		result, err := CalculateUtilityAssistance(size, threshold+0.01, 5000)
		require.NoError(t, err)
		assert.Zero(t, result.AssistanceAmount, "household size %d", size)
		assert.Zero(t, result.AssistancePercentage, "household size %d", size)
	}
}

func TestCalculateUtilityAssistance_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		income float64
		cost   float64
	}{
		{"zero household", 0, 1000, 100},
		{"zero income", 2, 0, 100},
		{"negative cost", 2, 1000, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateUtilityAssistance(tt.size, tt.income, tt.cost)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 760.03, RoundCurrency(760.0279647))
	assert.Equal(t, 0.13, RoundCurrency(0.125))
	assert.Equal(t, -1.5, RoundCurrency(-1.499))
	assert.Equal(t, 94.7, RoundTo(94.696969, 1))
}

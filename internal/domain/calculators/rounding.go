// internal/domain/calculators/rounding.go
package calculators

import "math"

// RoundCurrency rounds half away from zero to two decimals.
func RoundCurrency(val float64) float64 {
	return math.Round(val*decimalPrecision) / decimalPrecision
}

// RoundTo rounds half away from zero to the given number of decimals.
func RoundTo(val float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(val*p) / p
}

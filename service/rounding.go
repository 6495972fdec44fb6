package service

import "github.com/shopspring/decimal"

// roundTo2Decimals rounds half away from zero using the shortest decimal
// representation of value, so 1.005 becomes 1.01 rather than 1.00.
func roundTo2Decimals(value float64) float64 {
	return decimal.NewFromFloat(value).Round(DecimalPlaces).InexactFloat64()
}

package geometry

import "math"

// Round rounds a value to the given number of decimals.
// Rounding an already-rounded value is a no-op.
func Round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

package lossrate

import "math"

// Lerp returns value1 + (value2-value1)*amount. amount is not clamped.
// The result is exact at amount 0 and amount 1, and NaN when either
// endpoint is NaN.
func Lerp(value1, value2, amount float64) float64 {
	v := value1 + (value2-value1)*amount
	if amount == 1 && !math.IsNaN(v) {
		return value2
	}
	return v
}

// InRange reports whether v lies between a and b, in either order.
func InRange(v, a, b float64) bool {
	if math.IsNaN(v) {
		return false
	}
	return v >= math.Min(a, b) && v <= math.Max(a, b)
}

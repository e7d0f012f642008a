package common

import (
	"cmp"

	"github.com/chewxy/math32"
)

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// SnapToStep rounds v to the nearest multiple of step measured from origin.
// A non-positive step returns v unchanged.
//
// Parameters:
//   - v: the value to snap
//   - origin: the grid origin (usually the lower bound of a range)
//   - step: the grid spacing
//
// Returns:
//   - float64: the snapped value
func SnapToStep(v, origin, step float64) float64 {
	if step <= 0 {
		return v
	}
	n := float64(int64((v-origin)/step + 0.5))
	if v-origin < 0 {
		n = -float64(int64((origin-v)/step + 0.5))
	}
	return origin + n*step
}

// NearlyEqual reports whether a and b differ by no more than eps.
func NearlyEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

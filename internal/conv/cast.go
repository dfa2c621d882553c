package conv

import "math"

// SumFitsInt32 reports whether the sum of the non-negative counts fits in int32.
func SumFitsInt32(counts ...int) bool {
	var total int64
	for _, c := range counts {
		if c < 0 {
			return false
		}
		total += int64(c)
		if total > math.MaxInt32 {
			return false
		}
	}
	return true
}

// FloatToAxisIndex floors v and clamps it into [0, n-1].
// NaN maps to 0.
func FloatToAxisIndex(v float64, n int) int {
	if n <= 1 || !(v > 0) {
		return 0
	}
	f := math.Floor(v)
	if f >= float64(n-1) {
		return n - 1
	}
	return int(f)
}

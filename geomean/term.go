package geomean

import "math"

// Term returns the contribution of a byte value v to the log-domain sum of a
// sequence of length n: ln(v)/n if v > 0, and 0 otherwise. Zero bytes are
// excluded from the sum, but they still count towards n.
func Term(v byte, n int) float64 {
	if v == 0 {
		return 0
	}
	return math.Log(float64(v)) / float64(n)
}

// sumRange accumulates the terms of s[low:high] in a local variable.
func sumRange(s []byte, low, high, n int) (sum float64) {
	for _, v := range s[low:high] {
		if v > 0 {
			sum += math.Log(float64(v)) / float64(n)
		}
	}
	return
}

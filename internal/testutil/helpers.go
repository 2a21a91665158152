// Package testutil provides synthetic traces and assertion helpers for NMO tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	FloatTolerance   = 1e-6 // float32 round trip
)

// halfDivisor is used for finding center indices in symmetric arrays.
const halfDivisor = 2

// Ricker returns a trace of n samples (interval dt seconds, first sample at
// t1 seconds) holding a unit Ricker wavelet of peak frequency freq centred on
// each of the given event times.
func Ricker(n int, dt, t1, freq float64, events ...float64) []float64 {
	trace := make([]float64, n)
	for _, t0 := range events {
		for i := range trace {
			tau := t1 + float64(i)*dt - t0
			a := math.Pi * freq * tau
			a *= a
			trace[i] += (1 - 2*a) * math.Exp(-a)
		}
	}
	return trace
}

// Sine returns n samples of sin(2πft) with t = t1 + i·dt.
func Sine(n int, dt, t1, freq float64) []float64 {
	trace := make([]float64, n)
	for i := range trace {
		trace[i] = math.Sin(2 * math.Pi * freq * (t1 + float64(i)*dt))
	}
	return trace
}

// Ramp returns n samples of the line a + b·i.
func Ramp(n int, a, b float64) []float64 {
	trace := make([]float64, n)
	for i := range trace {
		trace[i] = a + b*float64(i)
	}
	return trace
}

// RMSDiff returns the root-mean-square difference of a[lo:hi] and b[lo:hi].
func RMSDiff(a, b []float64, lo, hi int) float64 {
	if hi <= lo {
		return 0
	}
	return floats.Distance(a[lo:hi], b[lo:hi], 2) / math.Sqrt(float64(hi-lo))
}

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%f != s[%d]=%f", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllZero verifies that s[lo:hi] is all zeros.
func AssertAllZero(t *testing.T, s []float64, lo, hi int) bool {
	t.Helper()
	for i := lo; i < hi; i++ {
		if s[i] != 0 {
			return assert.Fail(t, "non-zero sample", "s[%d]=%g, want 0", i, s[i])
		}
	}
	return true
}

// AssertMonotonic verifies that a slice is monotonically increasing.
func AssertMonotonic(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, "not monotonic",
				"s[%d]=%f < s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertCenterIsMax verifies that the center element is the maximum value.
func AssertCenterIsMax(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	if len(s) == 0 {
		return assert.Fail(t, "empty slice")
	}
	centerIdx := len(s) / halfDivisor
	centerValue := s[centerIdx]
	for i, v := range s {
		if v > centerValue {
			return assert.Fail(t, "center is not max",
				"s[%d]=%f > center s[%d]=%f", i, v, centerIdx, centerValue)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// PeakIndex returns the index of the largest absolute sample in s[lo:hi].
func PeakIndex(s []float64, lo, hi int) int {
	best := lo
	for i := lo; i < hi; i++ {
		if math.Abs(s[i]) > math.Abs(s[best]) {
			best = i
		}
	}
	return best
}

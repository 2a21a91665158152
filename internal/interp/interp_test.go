package interp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-seismic-nmo/internal/testutil"
)

func TestLinear_FlatExtrapolation(t *testing.T) {
	knotTimes := []float64{0.1, 0.3, 0.6}
	knotValues := []float64{1500, 2000, 2600}

	dst := make([]float64, 100)
	require.NoError(t, Linear(dst, knotTimes, knotValues, 0, 0.01))

	for i := 0; i < 10; i++ {
		assert.Equal(t, 1500.0, dst[i], "before first knot, sample %d", i)
	}
	for i := 61; i < 100; i++ {
		assert.Equal(t, 2600.0, dst[i], "after last knot, sample %d", i)
	}
}

func TestLinear_ExactAtKnots(t *testing.T) {
	dt := 0.004
	// Knot times placed on the output axis, computed the same way.
	knotTimes := []float64{5 * dt, 17 * dt, 40 * dt, 41 * dt}
	knotValues := []float64{1480, 1990.5, 2750.25, 2700}

	dst := make([]float64, 60)
	require.NoError(t, Linear(dst, knotTimes, knotValues, 0, dt))

	assert.Equal(t, 1480.0, dst[5])
	assert.Equal(t, 1990.5, dst[17])
	assert.Equal(t, 2750.25, dst[40])
	assert.Equal(t, 2700.0, dst[41])
}

func TestLinear_Midpoint(t *testing.T) {
	dst := make([]float64, 11)
	require.NoError(t, Linear(dst, []float64{0, 1}, []float64{1000, 2000}, 0, 0.1))

	want := testutil.Ramp(11, 1000, 100)
	assert.InDeltaSlice(t, want, dst, 1e-9)
}

func TestLinear_NegativeFirstTime(t *testing.T) {
	dst := make([]float64, 5)
	require.NoError(t, Linear(dst, []float64{0, 0.2}, []float64{10, 30}, -0.2, 0.1))
	assert.InDeltaSlice(t, []float64{10, 10, 10, 20, 30}, dst, 1e-12)
}

func TestLinear_SingleKnot(t *testing.T) {
	dst := make([]float64, 5)
	require.NoError(t, Linear(dst, []float64{0.5}, []float64{2000}, 0, 0.004))
	assert.Equal(t, []float64{2000, 2000, 2000, 2000, 2000}, dst)
}

func TestLinear_DuplicateKnotTimes(t *testing.T) {
	dst := make([]float64, 5)
	require.NoError(t, Linear(dst, []float64{0, 0.2, 0.2, 0.4}, []float64{1, 2, 5, 6}, 0, 0.1))
	assert.InDeltaSlice(t, []float64{1, 1.5, 5, 5.5, 6}, dst, 1e-12)
}

func TestLinear_Errors(t *testing.T) {
	dst := make([]float64, 4)
	require.ErrorIs(t, Linear(dst, nil, nil, 0, 0.004), ErrNoKnots)
	require.ErrorIs(t, Linear(dst, []float64{0, 1}, []float64{1}, 0, 0.004), ErrLengthMismatch)
}

func TestQuadAmplitudeAtSample(t *testing.T) {
	trace := []float64{1, 4, 9, 16, 25} // (i+1)²

	t.Run("integer positions are exact", func(t *testing.T) {
		for i, v := range trace {
			assert.InDelta(t, v, QuadAmplitudeAtSample(trace, float64(i)), 1e-12)
		}
	})

	t.Run("parabola reproduced", func(t *testing.T) {
		for _, s := range []float64{0.25, 1.5, 2.3, 3.75} {
			want := (s + 1) * (s + 1)
			assert.InDelta(t, want, QuadAmplitudeAtSample(trace, s), 1e-12, "sample %v", s)
		}
	})

	t.Run("outside range", func(t *testing.T) {
		assert.Zero(t, QuadAmplitudeAtSample(trace, -0.5))
		assert.Zero(t, QuadAmplitudeAtSample(trace, 4.5))
		assert.Zero(t, QuadAmplitudeAtSample(trace, math.NaN()))
		assert.Zero(t, QuadAmplitudeAtSample(nil, 0))
	})

	t.Run("short traces", func(t *testing.T) {
		assert.Equal(t, 7.0, QuadAmplitudeAtSample([]float64{7}, 0))
		assert.InDelta(t, 2.5, QuadAmplitudeAtSample([]float64{2, 3}, 0.5), 1e-15)
		assert.Equal(t, 3.0, QuadAmplitudeAtSample([]float64{2, 3}, 1))
	})
}

func TestProcess_IdentityMap(t *testing.T) {
	const (
		n  = 64
		dt = 0.004
		t1 = -0.02
	)
	src := testutil.Sine(n, dt, t1, 12)
	timeMap := make([]float64, n)
	for i := range timeMap {
		timeMap[i] = t1 + float64(i)*dt
	}

	dst := make([]float64, n)
	Process(dst, src, timeMap, t1, dt)
	assert.InDeltaSlice(t, src, dst, 1e-9)
}

func TestProcess_ShiftAndZeroFill(t *testing.T) {
	const dt = 0.004
	src := testutil.Ramp(10, 0, 1)
	timeMap := make([]float64, 10)
	for i := range timeMap {
		timeMap[i] = float64(i)*dt + 2.5*dt
	}
	timeMap[0] = math.NaN()

	dst := make([]float64, 10)
	Process(dst, src, timeMap, 0, dt)

	assert.Zero(t, dst[0], "NaN map entry")
	for i := 1; i <= 6; i++ {
		assert.InDelta(t, float64(i)+2.5, dst[i], 1e-12)
	}
	testutil.AssertAllZero(t, dst, 7, 10)
}

func TestXY2YX_Identity(t *testing.T) {
	const dt = 0.004
	forward := make([]float64, 20)
	for i := range forward {
		forward[i] = float64(i) * dt
	}

	inv := make([]float64, 20)
	XY2YX(inv, forward, 0, dt)
	assert.InDeltaSlice(t, forward, inv, 1e-15)
}

func TestXY2YX_Hyperbola(t *testing.T) {
	const (
		n  = 500
		dt = 0.004
		a  = 0.25 // offset/velocity
	)
	forward := make([]float64, n)
	for i := range forward {
		ti := float64(i) * dt
		forward[i] = math.Sqrt(ti*ti + a*a)
	}

	inv := make([]float64, n)
	XY2YX(inv, forward, 0, dt)

	for j := range inv {
		y := float64(j) * dt
		switch {
		case y < forward[0]:
			assert.True(t, math.IsNaN(inv[j]), "ordinate %v below map", y)
		case y > forward[n-1]:
			assert.True(t, math.IsNaN(inv[j]), "ordinate %v above map", y)
		case y > a+0.05:
			assert.InDelta(t, math.Sqrt(y*y-a*a), inv[j], 2e-5, "ordinate %v", y)
		}
	}
}

func TestXY2YX_BoundaryConsistentWithProcess(t *testing.T) {
	const dt = 0.01
	forward := []float64{0.05, 0.06, 0.07, 0.08, 0.09, 0.10}
	inv := make([]float64, len(forward))
	XY2YX(inv, forward, 0, dt)

	src := []float64{1, 1, 1, 1, 1, 1}
	dst := make([]float64, len(src))
	Process(dst, src, inv, 0, dt)

	testutil.AssertAllZero(t, dst, 0, 5)
	assert.InDelta(t, 1.0, dst[5], 1e-12)
}

func BenchmarkProcess(b *testing.B) {
	const (
		n  = 2000
		dt = 0.002
	)
	src := testutil.Sine(n, dt, 0, 25)
	timeMap := make([]float64, n)
	for i := range timeMap {
		ti := float64(i) * dt
		timeMap[i] = math.Sqrt(ti*ti + 0.09)
	}
	dst := make([]float64, n)

	b.ReportAllocs()
	for b.Loop() {
		Process(dst, src, timeMap, 0, dt)
	}
}

package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTravelTimePP(t *testing.T) {
	vel2 := 2000.0 * 2000.0

	// sqrt(t0² + (1000/2000)²)
	for _, t0 := range []float64{0, 0.004, 0.008, 0.012, 0.016} {
		want := math.Sqrt(t0*t0 + 0.25)
		assert.InDelta(t, want, TravelTimePP(t0, 1000, vel2, 1), 1e-15)
	}

	assert.InDelta(t, 0.3, TravelTimePP(0.3, 0, vel2, 1), 1e-15, "zero offset is the identity")

	// Removing the same moveout returns t0.
	fwd := TravelTimePP(1.2, 1500, vel2, 1)
	assert.InDelta(t, 1.2, TravelTimePP(fwd, 1500, vel2, -1), 1e-12)

	assert.True(t, math.IsNaN(TravelTimePP(0.1, 1500, vel2, -1)), "negative radicand")
}

func TestTravelTimePS(t *testing.T) {
	vel2 := 1500.0 * 1500.0

	assert.InDelta(t, 0.8, TravelTimePS(0.8, 0, vel2, 1), 1e-15)

	t0, x := 0.8, 1200.0
	want := 0.5*t0 + 0.5*math.Sqrt(t0*t0+2*x*x/vel2)
	assert.InDelta(t, want, TravelTimePS(t0, x, vel2, 1), 1e-15)
	assert.Greater(t, TravelTimePS(t0, x, vel2, 1), t0)
}

func TestTravelTimeVTI(t *testing.T) {
	vel2 := 2500.0 * 2500.0

	t.Run("zero eta matches PP", func(t *testing.T) {
		for _, x := range []float64{0, 500, 1500, 3000} {
			assert.InDelta(t, TravelTimePP(1.0, x, vel2, 1), TravelTimeVTI(1.0, x, vel2, 0, 1), 1e-14)
		}
	})

	t.Run("zero offset", func(t *testing.T) {
		assert.InDelta(t, 0.0, TravelTimeVTI(0, 0, vel2, 0.1, 1), 1e-15)
		assert.InDelta(t, 0.5, TravelTimeVTI(0.5, 0, vel2, 0.1, 1), 1e-15)
	})

	t.Run("positive eta reduces far-offset moveout", func(t *testing.T) {
		iso := TravelTimePP(1.0, 3000, vel2, 1)
		aniso := TravelTimeVTI(1.0, 3000, vel2, 0.1, 1)
		assert.Less(t, aniso, iso)
		assert.Greater(t, aniso, 1.0)
	})

	t.Run("zero time", func(t *testing.T) {
		// At t0 = 0 the radicand reduces to x²/(v²(1+2η)).
		x, eta := 1000.0, 0.2
		want := math.Sqrt(x * x / (vel2 * (1 + 2*eta)))
		assert.InDelta(t, want, TravelTimeVTI(0, x, vel2, eta, 1), 1e-12)
	})
}

func TestEmpiricalTime(t *testing.T) {
	t.Run("no damping", func(t *testing.T) {
		// coeff=2, apex=0: shift = 2·(x/1000)² ms
		got := EmpiricalTime(1.0, 2000, 2, 0, 0, 1)
		assert.InDelta(t, 1.0+8.0/1000, got, 1e-12)
	})

	t.Run("apex", func(t *testing.T) {
		// At the apex the quadratic term vanishes, leaving -(apex/1000)² ms.
		got := EmpiricalTime(0.5, 1000, 3, 1000, 0, 1)
		assert.InDelta(t, 0.5-1.0/1000, got, 1e-12)
	})

	t.Run("damping at zero offset", func(t *testing.T) {
		coeff, damping := 4.0, 2.0
		want := 0.5 - (coeff/(coeff+0.1))*damping/1000
		assert.InDelta(t, want, EmpiricalTime(0.5, 0, coeff, 0, damping, 1), 1e-12)
	})

	t.Run("sign", func(t *testing.T) {
		fwd := EmpiricalTime(1.0, 1500, 2, 200, 1, 1)
		back := EmpiricalTime(1.0, 1500, 2, 200, 1, -1)
		assert.InDelta(t, 2.0, fwd+back, 1e-12)
	})
}

package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-seismic-nmo/internal/testutil"
	"gonum.org/v1/gonum/stat"
)

func newHorizonEngine(t testing.TB, n int, model Model, method HorizonMethod) *Engine[float64] {
	t.Helper()
	e, err := New[float64](testDtMs, n, model)
	require.NoError(t, err)
	require.NoError(t, e.SetHorizonBasedNMO(true, method))
	return e
}

func TestHorizonNMO_ConstantVelocityMatchesDense(t *testing.T) {
	in := testutil.Ricker(testSamples, testDt, 0, rickerFreq, 0.5, 1.0, 1.5)
	fn := mustFunction(t, []float64{0}, []float64{2000})

	dense, err := New[float64](testDtMs, testSamples, ModelPP)
	require.NoError(t, err)
	want := make([]float64, testSamples)
	require.NoError(t, dense.PerformNMO(fn, 1100, in, want))

	e := newHorizonEngine(t, testSamples, ModelPP, HorizonLinear)
	got := make([]float64, testSamples)
	require.NoError(t, e.PerformNMO(fn, 1100, in, got))

	assert.InDeltaSlice(t, want, got, 1e-12)
}

func TestHorizonNMO_PSAndEmpiricalMatchDense(t *testing.T) {
	in := testutil.Ricker(testSamples, testDt, 0, rickerFreq, 0.6, 1.2, 1.7)

	tests := []struct {
		name  string
		model Model
		mode  Mode
		value float64
	}{
		{"ps apply", ModelPS, ModeApply, 2000},
		{"empirical apply", ModelEmpirical, ModeApply, 40},
		// A static shift inverts exactly, so the closed-form removal agrees
		// with the inverted dense map.
		{"empirical remove", ModelEmpirical, ModeRemove, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := mustFunction(t, []float64{0}, []float64{tt.value})

			dense, err := New[float64](testDtMs, testSamples, tt.model)
			require.NoError(t, err)
			require.NoError(t, dense.SetModeOfApplication(tt.mode))
			want := make([]float64, testSamples)
			require.NoError(t, dense.PerformNMO(fn, 2000, in, want))

			e := newHorizonEngine(t, testSamples, tt.model, HorizonLinear)
			require.NoError(t, e.SetModeOfApplication(tt.mode))
			got := make([]float64, testSamples)
			require.NoError(t, e.PerformNMO(fn, 2000, in, got))

			assert.InDeltaSlice(t, want, got, 1e-9)
		})
	}
}

func TestHorizonNMO_RemoveUsesNegativeSign(t *testing.T) {
	const offset = 1000.0
	fn := mustFunction(t, []float64{0}, []float64{2000})

	for _, model := range []Model{ModelPP, ModelPS} {
		t.Run(model.String(), func(t *testing.T) {
			e := newHorizonEngine(t, testSamples, model, HorizonQuadratic)
			require.NoError(t, e.SetModeOfApplication(ModeRemove))
			require.NoError(t, e.PerformNMO(fn, offset, make([]float64, testSamples), make([]float64, testSamples)))

			// x/v = 0.5 s. PP: T² = t0² - 0.25; PS: T = t0/2 + sqrt(t0² - 0.5)/2.
			for _, i := range []int{200, 300, 450} {
				t0 := float64(i) * testDt
				want := math.Sqrt(t0*t0 - 0.25)
				if model == ModelPS {
					want = 0.5*t0 + 0.5*math.Sqrt(t0*t0-0.5)
				}
				assert.InDelta(t, want, e.TimeMap()[i], 1e-12, "sample %d", i)
			}
		})
	}
}

func TestHorizonNMO_VelocityInterpolation(t *testing.T) {
	fn := mustFunction(t, []float64{100, 500}, []float64{1000, 3000})
	in := make([]float64, 201)

	tests := []struct {
		name   string
		method HorizonMethod
		at     int // sample
		want   float64
	}{
		{"above first horizon", HorizonLinear, 10, 1000},
		{"at first horizon", HorizonLinear, 25, 1000},
		{"linear midpoint", HorizonLinear, 75, math.Sqrt(5e6)},
		{"quadratic midpoint", HorizonQuadratic, 75, math.Sqrt(1e6 + 8e6*(0.09-0.01)/(0.25-0.01))},
		{"at last horizon", HorizonQuadratic, 125, 3000},
		{"below last horizon", HorizonLinear, 200, 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newHorizonEngine(t, 201, ModelOutputVelocity, tt.method)
			out := make([]float64, 201)
			require.NoError(t, e.PerformNMO(fn, 1000, in, out))

			assert.InDelta(t, tt.want, out[tt.at], 1e-6)
			assert.InDelta(t, tt.want*tt.want, e.VelocityTrace()[tt.at], 1e-3, "velocity trace holds v²")
		})
	}
}

// Removal evaluates velocity at the recorded time rather than at t0, so it
// only inverts application exactly where velocity is constant.
func TestHorizonNMO_ApplyRemoveRoundTrip(t *testing.T) {
	const offset = 900.0
	in := testutil.Ricker(testSamples, testDt, 0, rickerFreq, 0.7, 1.1, 1.5)
	fn := mustFunction(t, []float64{200, 1800}, []float64{2100, 2100})

	for _, method := range []HorizonMethod{HorizonLinear, HorizonQuadratic} {
		t.Run(method.String(), func(t *testing.T) {
			e := newHorizonEngine(t, testSamples, ModelPP, method)

			corrected := make([]float64, testSamples)
			require.NoError(t, e.PerformNMO(fn, offset, in, corrected))

			require.NoError(t, e.SetModeOfApplication(ModeRemove))
			restored := make([]float64, testSamples)
			require.NoError(t, e.PerformNMO(fn, offset, corrected, restored))

			lo, hi := 150, 450
			assert.Greater(t, stat.Correlation(in[lo:hi], restored[lo:hi], nil), 0.99)
		})
	}
}

func TestHorizonNMO_RemoveZeroFillsAboveFirstArrival(t *testing.T) {
	e := newHorizonEngine(t, testSamples, ModelPP, HorizonLinear)
	require.NoError(t, e.SetModeOfApplication(ModeRemove))

	in := make([]float64, testSamples)
	for i := range in {
		in[i] = 1
	}
	out := make([]float64, testSamples)
	require.NoError(t, e.PerformNMO(mustFunction(t, []float64{0}, []float64{2000}), 1000, in, out))

	// t² - x²/v² is negative above 0.5 s.
	testutil.AssertAllZero(t, out, 0, 125)
	assert.InDelta(t, 1.0, out[200], 1e-12)
}

func TestHorizonNMO_VTI(t *testing.T) {
	in := testutil.Ricker(testSamples, testDt, 0, rickerFreq, 0.9)

	t.Run("zero eta matches PP", func(t *testing.T) {
		pp := newHorizonEngine(t, testSamples, ModelPP, HorizonLinear)
		want := make([]float64, testSamples)
		require.NoError(t, pp.PerformNMO(mustFunction(t, []float64{0, 1500}, []float64{1800, 2400}), 1500, in, want))

		vti := newHorizonEngine(t, testSamples, ModelVTI, HorizonLinear)
		got := make([]float64, testSamples)
		fn := mustFunction(t, []float64{0, 1500}, []float64{1800, 2400}, []float64{0, 0})
		require.NoError(t, vti.PerformNMO(fn, 1500, in, got))

		assert.InDeltaSlice(t, want, got, 1e-9)
	})

	t.Run("missing eta", func(t *testing.T) {
		e := newHorizonEngine(t, testSamples, ModelVTI, HorizonLinear)
		out := make([]float64, testSamples)
		err := e.PerformNMO(mustFunction(t, []float64{0}, []float64{2000}), 1500, in, out)
		require.ErrorIs(t, err, ErrMissingAnisotropyData)
		testutil.AssertAllZero(t, out, 0, testSamples)
	})
}

func TestHorizonNMO_InvalidVelocity(t *testing.T) {
	e := newHorizonEngine(t, 20, ModelPP, HorizonQuadratic)
	out := []float64{3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3}
	err := e.PerformNMO(mustFunction(t, []float64{0, 40}, []float64{2000, 0}), 500, make([]float64, 20), out)
	require.ErrorIs(t, err, ErrInvalidVelocity)
	for _, v := range out {
		assert.Equal(t, 3.0, v)
	}
}

func BenchmarkPerformNMOHorizon(b *testing.B) {
	const n = 2000
	fn := mustFunction(b, []float64{0, 1000, 4000}, []float64{1500, 2200, 3500})
	e, err := New[float32](2, n, ModelPP)
	require.NoError(b, err)
	require.NoError(b, e.SetHorizonBasedNMO(true, HorizonQuadratic))

	in := make([]float32, n)
	for i, v := range testutil.Ricker(n, 0.002, 0, 30, 0.5, 1.5, 2.5, 3.5) {
		in[i] = float32(v)
	}
	out := make([]float32, n)

	b.ReportAllocs()
	for b.Loop() {
		_ = e.PerformNMO(fn, 1500, in, out)
	}
}

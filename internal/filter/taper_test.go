package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-seismic-nmo/internal/testutil"
)

func TestKaiserWindow_Symmetry(t *testing.T) {
	for _, length := range []int{5, 16, 31} {
		window := KaiserWindow(length, 6.0)
		require.Len(t, window, length)
		testutil.AssertSymmetric(t, window, 1e-12)
	}
}

func TestKaiserWindow_EdgeCases(t *testing.T) {
	assert.Empty(t, KaiserWindow(0, 5.0))
	assert.Equal(t, []float64{1}, KaiserWindow(1, 5.0))

	w := KaiserWindow(11, 8.0)
	assert.InDelta(t, 1.0, w[5], 1e-12, "centre tap")
	testutil.AssertCenterIsMax(t, w)
}

func TestDesignRamp(t *testing.T) {
	for _, typ := range []TaperType{TaperLinear, TaperCosine, TaperKaiser} {
		t.Run(typ.String(), func(t *testing.T) {
			ramp, err := DesignRamp(TaperParams{Type: typ, Length: 12})
			require.NoError(t, err)
			require.Len(t, ramp, 12)

			testutil.AssertMonotonic(t, ramp)
			for i, w := range ramp {
				assert.Greater(t, w, 0.0, "ramp[%d]", i)
				assert.Less(t, w, 1.0, "ramp[%d]", i)
			}
		})
	}
}

func TestDesignRamp_Linear(t *testing.T) {
	ramp, err := DesignRamp(TaperParams{Type: TaperLinear, Length: 3})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.25, 0.5, 0.75}, ramp, 1e-15)
}

func TestDesignRamp_HardMute(t *testing.T) {
	ramp, err := DesignRamp(TaperParams{Type: TaperCosine})
	require.NoError(t, err)
	assert.Empty(t, ramp)
}

func TestTaperParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  TaperParams
		wantErr bool
	}{
		{"valid", TaperParams{Type: TaperKaiser, Length: 20, Attenuation: 80}, false},
		{"negative length", TaperParams{Length: -1}, true},
		{"too long", TaperParams{Length: maxTaperSamples + 1}, true},
		{"unknown type", TaperParams{Type: TaperType(42), Length: 4}, true},
		{"negative attenuation", TaperParams{Type: TaperKaiser, Length: 4, Attenuation: -3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTaper)
				return
			}
			require.NoError(t, err)
		})
	}
}

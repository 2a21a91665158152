package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-seismic-nmo/internal/testutil"
)

func TestAnalyzer_PureTone(t *testing.T) {
	const (
		n  = 400
		dt = 0.004 // 0.625 Hz bins
	)
	a, err := NewAnalyzer(n, dt)
	require.NoError(t, err)

	s, err := a.Amplitude(testutil.Sine(n, dt, 0, 25))
	require.NoError(t, err)

	require.Len(t, s.Freqs, n/2+1)
	assert.InDelta(t, 125.0, s.Freqs[n/2], 1e-9, "last bin is Nyquist")
	assert.InDelta(t, 25.0, s.Dominant(), 1e-9)
	assert.InDelta(t, 0.5, s.Amps[40], 1e-9)
	assert.InDelta(t, 25.0, s.Centroid(), 1e-6)
}

func TestAnalyzer_Reuse(t *testing.T) {
	a, err := NewAnalyzer(200, 0.004)
	require.NoError(t, err)

	for _, freq := range []float64{10, 40, 80} {
		s, err := a.Amplitude(testutil.Sine(200, 0.004, 0, freq))
		require.NoError(t, err)
		assert.InDelta(t, freq, s.Dominant(), 1e-9)
	}
}

func TestDominantFrequency_Ricker(t *testing.T) {
	const dt = 0.002
	trace := testutil.Ricker(1000, dt, 0, 30, 1.0)

	f, err := DominantFrequency(trace, dt, 250, 750)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, f, 2)
}

func TestErrors(t *testing.T) {
	_, err := NewAnalyzer(0, 0.004)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewAnalyzer(10, 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	a, err := NewAnalyzer(10, 0.004)
	require.NoError(t, err)
	_, err = a.Amplitude(make([]float64, 9))
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = DominantFrequency(make([]float64, 10), 0.004, 5, 5)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = DominantFrequency(make([]float64, 10), 0.004, 0, 11)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSpectrum_Degenerate(t *testing.T) {
	assert.Zero(t, Spectrum{}.Dominant())
	assert.Zero(t, Spectrum{Freqs: []float64{0, 1}, Amps: []float64{0, 0}}.Centroid())
}

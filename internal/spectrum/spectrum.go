// Package spectrum measures the frequency content of traces. NMO stretch
// lowers the dominant frequency of shallow far-offset events, and comparing
// spectra before and after correction quantifies it.
package spectrum

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidInput is returned for empty traces or a non-positive sample interval.
var ErrInvalidInput = errors.New("invalid spectrum input")

// Spectrum is the one-sided amplitude spectrum of a real trace.
type Spectrum struct {
	Freqs []float64 // Hz
	Amps  []float64
}

// Analyzer computes amplitude spectra of traces of a fixed length. The FFT
// plan and buffers are reused between calls; an Analyzer is not safe for
// concurrent use.
type Analyzer struct {
	fft   *fourier.FFT
	n     int
	dt    float64 // seconds
	coeff []complex128
}

// NewAnalyzer creates an analyzer for traces of n samples spaced dt seconds apart.
func NewAnalyzer(n int, dt float64) (*Analyzer, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one sample, got %d", ErrInvalidInput, n)
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("%w: sample interval must be positive, got %v", ErrInvalidInput, dt)
	}
	return &Analyzer{
		fft:   fourier.NewFFT(n),
		n:     n,
		dt:    dt,
		coeff: make([]complex128, n/2+1),
	}, nil
}

// Amplitude returns the amplitude spectrum of trace, which must have the
// analyzer's length. Amplitudes are scaled by 1/n.
func (a *Analyzer) Amplitude(trace []float64) (Spectrum, error) {
	if len(trace) != a.n {
		return Spectrum{}, fmt.Errorf("%w: trace has %d samples, want %d", ErrInvalidInput, len(trace), a.n)
	}

	a.coeff = a.fft.Coefficients(a.coeff, trace)

	s := Spectrum{
		Freqs: make([]float64, len(a.coeff)),
		Amps:  make([]float64, len(a.coeff)),
	}
	scale := 1 / float64(a.n)
	for i, c := range a.coeff {
		s.Freqs[i] = a.fft.Freq(i) / a.dt
		s.Amps[i] = cmplx.Abs(c) * scale
	}
	return s, nil
}

// Dominant returns the frequency of the largest non-DC amplitude, or 0 for a
// spectrum with no bins above DC.
func (s Spectrum) Dominant() float64 {
	if len(s.Amps) < 2 {
		return 0
	}
	return s.Freqs[1+floats.MaxIdx(s.Amps[1:])]
}

// Centroid returns the amplitude-weighted mean frequency.
func (s Spectrum) Centroid() float64 {
	total := floats.Sum(s.Amps)
	if total == 0 {
		return 0
	}
	return floats.Dot(s.Freqs, s.Amps) / total
}

// DominantFrequency is a one-shot helper returning the dominant frequency of
// trace[lo:hi], sampled dt seconds apart.
func DominantFrequency(trace []float64, dt float64, lo, hi int) (float64, error) {
	if lo < 0 || hi > len(trace) || hi <= lo {
		return 0, fmt.Errorf("%w: window [%d, %d) of %d samples", ErrInvalidInput, lo, hi, len(trace))
	}
	a, err := NewAnalyzer(hi-lo, dt)
	if err != nil {
		return 0, err
	}
	s, err := a.Amplitude(trace[lo:hi])
	if err != nil {
		return 0, err
	}
	return s.Dominant(), nil
}

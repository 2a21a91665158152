// Package filter designs the amplitude tapers used to soften the
// stretch-mute boundary of NMO-corrected traces.
package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-seismic-nmo/internal/mathutil"
)

const (
	// Taper length bounds (samples)
	maxTaperSamples = 4096

	// Window normalization
	windowNormalizationFactor = 2.0

	// Default sidelobe attenuation for the Kaiser taper (dB)
	defaultKaiserAttenuation = 60.0
)

// ErrInvalidTaper is returned for taper parameters that cannot be designed.
var ErrInvalidTaper = errors.New("invalid taper parameters")

// TaperType selects the shape of a mute taper.
type TaperType int

const (
	// TaperLinear ramps linearly from 0 to 1.
	TaperLinear TaperType = iota

	// TaperCosine is a raised-cosine (Hann) ramp.
	TaperCosine

	// TaperKaiser is the rising half of a Kaiser window.
	TaperKaiser
)

// String implements fmt.Stringer.
func (t TaperType) String() string {
	switch t {
	case TaperLinear:
		return "linear"
	case TaperCosine:
		return "cosine"
	case TaperKaiser:
		return "kaiser"
	default:
		return fmt.Sprintf("TaperType(%d)", int(t))
	}
}

// TaperParams holds parameters for taper design.
type TaperParams struct {
	// Type is the taper shape.
	Type TaperType

	// Length is the number of ramp samples. Zero means a hard mute.
	Length int

	// Attenuation is the Kaiser sidelobe attenuation in dB.
	// Ignored for other shapes; zero selects 60 dB.
	Attenuation float64
}

// Validate checks if taper parameters are valid.
func (tp *TaperParams) Validate() error {
	if tp.Length < 0 || tp.Length > maxTaperSamples {
		return fmt.Errorf("%w: length %d outside [0, %d]", ErrInvalidTaper, tp.Length, maxTaperSamples)
	}

	switch tp.Type {
	case TaperLinear, TaperCosine, TaperKaiser:
	default:
		return fmt.Errorf("%w: unknown type %d", ErrInvalidTaper, int(tp.Type))
	}

	if tp.Attenuation < 0 {
		return fmt.Errorf("%w: attenuation %f dB must not be negative", ErrInvalidTaper, tp.Attenuation)
	}

	return nil
}

// DesignRamp returns Length weights rising strictly between 0 and 1.
// ramp[0] is the weight next to the muted zone, ramp[Length-1] the weight
// next to the unmuted zone.
func DesignRamp(params TaperParams) ([]float64, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	n := params.Length
	ramp := make([]float64, n)
	if n == 0 {
		return ramp, nil
	}

	switch params.Type {
	case TaperLinear:
		for k := range n {
			ramp[k] = float64(k+1) / float64(n+1)
		}

	case TaperCosine:
		for k := range n {
			ramp[k] = 0.5 * (1 - math.Cos(math.Pi*float64(k+1)/float64(n+1)))
		}

	case TaperKaiser:
		att := params.Attenuation
		if att == 0 {
			att = defaultKaiserAttenuation
		}
		// Window of 2n+3 points peaks at index n+1; skip its edge sample.
		window := KaiserWindow(2*n+3, mathutil.KaiserBeta(att))
		copy(ramp, window[1:n+1])
	}

	return ramp, nil
}

// KaiserWindow generates a Kaiser window of the specified length and β parameter.
//
// The window peaks at 1 in its centre and is symmetric: w[i] = w[length-1-i].
//
//	w[n] = I₀(β * sqrt(1 - ((n - α)/α)²)) / I₀(β),  α = (N-1)/2
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	if length == 1 {
		window[0] = 1
		return window
	}

	alpha := float64(length-1) / windowNormalizationFactor
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		arg := beta * math.Sqrt(math.Max(0, 1.0-x*x))
		window[n] = mathutil.BesselI0(arg) / i0Beta
	}

	return window
}

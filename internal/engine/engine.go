// Package engine implements the normal-moveout correction engine.
//
// An Engine is configured once and then called once per trace. It owns the
// scratch buffers every call writes to, so a single Engine must not be used
// from several goroutines at once; parallel pipelines create one Engine per
// worker.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-seismic-nmo/internal/filter"
	"github.com/tphakala/go-seismic-nmo/internal/mathutil"
	"github.com/tphakala/go-seismic-nmo/internal/simdops"
)

// Model selects the moveout equation.
type Model int

const (
	// ModelPP is hyperbolic P-P moveout.
	ModelPP Model = iota

	// ModelPS is converted-wave P-S moveout.
	ModelPS

	// ModelVTI is non-hyperbolic moveout with the anisotropy parameter η.
	// The time function must carry an η component.
	ModelVTI

	// ModelEmpirical is an empirical residual moveout, not a travel-time model.
	ModelEmpirical

	// ModelOutputVelocity writes the interpolated velocity instead of a
	// corrected trace.
	ModelOutputVelocity
)

// String implements fmt.Stringer.
func (m Model) String() string {
	switch m {
	case ModelPP:
		return "pp"
	case ModelPS:
		return "ps"
	case ModelVTI:
		return "vti"
	case ModelEmpirical:
		return "empirical"
	case ModelOutputVelocity:
		return "output-velocity"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

func (m Model) valid() bool {
	return m >= ModelPP && m <= ModelOutputVelocity
}

// Mode selects whether moveout is applied or removed.
type Mode int

const (
	// ModeApply flattens events: output time t0 reads input time T(t0).
	ModeApply Mode = iota

	// ModeRemove re-introduces moveout on flattened data.
	ModeRemove
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeApply:
		return "apply"
	case ModeRemove:
		return "remove"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// HorizonMethod selects how squared velocity is interpolated between horizons.
type HorizonMethod int

const (
	// HorizonLinear interpolates v² linearly in time.
	HorizonLinear HorizonMethod = iota

	// HorizonQuadratic interpolates v² linearly in time².
	HorizonQuadratic
)

// String implements fmt.Stringer.
func (h HorizonMethod) String() string {
	switch h {
	case HorizonLinear:
		return "linear"
	case HorizonQuadratic:
		return "quadratic"
	default:
		return fmt.Sprintf("HorizonMethod(%d)", int(h))
	}
}

// Errors returned by the engine. All of them are fatal for the trace being
// processed; the output buffer is left untouched.
var (
	// ErrInvalidConfig indicates invalid engine parameters.
	ErrInvalidConfig = errors.New("invalid NMO configuration")

	// ErrInvalidVelocity indicates a sampled velocity ≤ 0.
	ErrInvalidVelocity = errors.New("invalid velocity")

	// ErrMissingAnisotropyData indicates a VTI correction without η values.
	ErrMissingAnisotropyData = errors.New("missing anisotropy data")

	// ErrInconsistentTimeOfFirstSample indicates a first-sample time after time zero.
	ErrInconsistentTimeOfFirstSample = errors.New("inconsistent time of first sample")

	// ErrUnsupportedConfiguration indicates an operation the current configuration cannot perform.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")

	// ErrTraceLength indicates input or output traces of the wrong length.
	ErrTraceLength = errors.New("trace length mismatch")
)

const (
	msToSec = 0.001

	bytesPerFloat64 = 8
)

// StretchMute zeroes the shallow part of an NMO-corrected trace where the
// correction stretches the wavelet by more than MaxStretch.
type StretchMute struct {
	// MaxStretch is the largest tolerated relative stretch, e.g. 0.5 for 50%.
	// Zero disables the mute.
	MaxStretch float64

	// Taper softens the mute edge below the deepest muted sample.
	Taper filter.TaperParams
}

// travelTimeFunc maps a zero-offset time to a source time for one model.
type travelTimeFunc func(t0, offset, vel, eta, sign float64) float64

// Engine applies and removes normal moveout on traces of a fixed geometry.
//
// Type parameter F is the trace sample type. Internal buffers are float64.
type Engine[F simdops.Float] struct {
	// Geometry (seconds)
	sampleInt  float64
	numSamples int
	timeFirst  float64

	// Configuration
	model         Model
	mode          Mode
	horizon       bool
	horizonMethod HorizonMethod
	offsetApex    float64
	damping       float64
	travelTime    travelTimeFunc

	mute     StretchMute
	muteRamp []float64

	buf      scratch
	knotTime []float64 // knot times converted to seconds
}

// New creates an engine for traces of numSamples samples spaced sampleIntMs
// milliseconds apart, starting at time zero.
func New[F simdops.Float](sampleIntMs float64, numSamples int, model Model) (*Engine[F], error) {
	if !(sampleIntMs > 0) || math.IsInf(sampleIntMs, 0) {
		return nil, fmt.Errorf("%w: sample interval must be positive, got %v ms", ErrInvalidConfig, sampleIntMs)
	}
	if numSamples < 1 {
		return nil, fmt.Errorf("%w: need at least one sample, got %d", ErrInvalidConfig, numSamples)
	}
	if !model.valid() {
		return nil, fmt.Errorf("%w: unknown model %d", ErrInvalidConfig, int(model))
	}

	e := &Engine[F]{
		sampleInt:  sampleIntMs * msToSec,
		numSamples: numSamples,
		model:      model,
		mode:       ModeApply,
	}
	e.bindModel()
	e.buf.allocate(numSamples, false)

	return e, nil
}

// bindModel selects the travel-time function once per configuration so the
// per-sample loops do not switch on the model.
func (e *Engine[F]) bindModel() {
	switch e.model {
	case ModelPP:
		e.travelTime = func(t0, offset, vel, _, sign float64) float64 {
			return mathutil.TravelTimePP(t0, offset, vel*vel, sign)
		}
	case ModelPS:
		e.travelTime = func(t0, offset, vel, _, sign float64) float64 {
			return mathutil.TravelTimePS(t0, offset, vel*vel, sign)
		}
	case ModelVTI:
		e.travelTime = func(t0, offset, vel, eta, sign float64) float64 {
			return mathutil.TravelTimeVTI(t0, offset, vel*vel, eta, sign)
		}
	case ModelEmpirical:
		apex, damping := e.offsetApex, e.damping
		e.travelTime = func(t0, offset, coeff, _, sign float64) float64 {
			return mathutil.EmpiricalTime(t0, offset, coeff, apex, damping, sign)
		}
	case ModelOutputVelocity:
		e.travelTime = nil
	}
}

// SetHorizonBasedNMO switches between dense-velocity and horizon-based
// correction. Scratch buffers are reallocated only when the flag changes.
func (e *Engine[F]) SetHorizonBasedNMO(enable bool, method HorizonMethod) error {
	if method != HorizonLinear && method != HorizonQuadratic {
		return fmt.Errorf("%w: unknown horizon method %d", ErrInvalidConfig, int(method))
	}
	e.horizonMethod = method
	if enable == e.horizon {
		return nil
	}
	e.horizon = enable
	e.buf.allocate(e.numSamples, enable)
	return nil
}

// SetModeOfApplication selects apply or remove.
func (e *Engine[F]) SetModeOfApplication(mode Mode) error {
	if mode != ModeApply && mode != ModeRemove {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, int(mode))
	}
	e.mode = mode
	return nil
}

// SetEmpiricalNMO sets the parameters of the empirical model: the offset of
// the curve apex and the zero-offset damping, both used by ModelEmpirical.
func (e *Engine[F]) SetEmpiricalNMO(offsetApex, zeroOffsetDamping float64) {
	e.offsetApex = offsetApex
	e.damping = zeroOffsetDamping
	e.bindModel()
}

// SetTimeOfFirstSample sets the time of sample 0 in milliseconds. It must not
// be after time zero.
func (e *Engine[F]) SetTimeOfFirstSample(ms float64) error {
	if ms > 0 {
		return fmt.Errorf("%w: %v ms is after time zero", ErrInconsistentTimeOfFirstSample, ms)
	}
	e.timeFirst = ms * msToSec
	return nil
}

// SetStretchMute configures the stretch mute. A zero MaxStretch disables it.
func (e *Engine[F]) SetStretchMute(m StretchMute) error {
	if m.MaxStretch < 0 || math.IsNaN(m.MaxStretch) {
		return fmt.Errorf("%w: max stretch must not be negative, got %v", ErrInvalidConfig, m.MaxStretch)
	}
	ramp, err := filter.DesignRamp(m.Taper)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	e.mute = m
	e.muteRamp = ramp
	return nil
}

// Model returns the moveout model.
func (e *Engine[F]) Model() Model { return e.model }

// Mode returns the mode of application.
func (e *Engine[F]) Mode() Mode { return e.mode }

// HorizonBased reports whether horizon-based correction is enabled, and the
// interpolation method it uses.
func (e *Engine[F]) HorizonBased() (bool, HorizonMethod) { return e.horizon, e.horizonMethod }

// NumSamples returns the trace length.
func (e *Engine[F]) NumSamples() int { return e.numSamples }

// SampleInterval returns the sample interval in milliseconds.
func (e *Engine[F]) SampleInterval() float64 { return e.sampleInt / msToSec }

// TimeOfFirstSample returns the time of sample 0 in milliseconds.
func (e *Engine[F]) TimeOfFirstSample() float64 { return e.timeFirst / msToSec }

// TimeMap returns the source time (seconds) read by each output sample in
// the last correction. The slice is owned by the engine and overwritten by
// the next call.
func (e *Engine[F]) TimeMap() []float64 { return e.buf.timeMap }

// VelocityTrace returns the per-sample velocity of the last correction.
// Horizon-based correction stores squared velocities here.
func (e *Engine[F]) VelocityTrace() []float64 { return e.buf.vel }

// TimeShift returns, per output sample, the difference between the input-
// and output-offset source times of the last differential correction. It
// is nil in horizon mode.
func (e *Engine[F]) TimeShift() []float64 { return e.buf.timeDiff }

// MemoryUsage returns the approximate size of the engine's buffers in bytes.
func (e *Engine[F]) MemoryUsage() int64 {
	n := e.buf.size() + int64(cap(e.knotTime)) + int64(len(e.muteRamp))
	return n * bytesPerFloat64
}

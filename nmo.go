package nmo

import (
	"fmt"
	"math"

	"github.com/tphakala/go-seismic-nmo/internal/engine"
	"github.com/tphakala/go-seismic-nmo/internal/filter"
	"github.com/tphakala/go-seismic-nmo/internal/interp"
)

// Model selects the moveout equation.
type Model = engine.Model

const (
	// ModelPP is hyperbolic P-P moveout: T² = t0² + x²/v².
	ModelPP = engine.ModelPP

	// ModelPS is converted-wave moveout: T = t0/2 + sqrt(t0² + 2x²/v²)/2.
	ModelPS = engine.ModelPS

	// ModelVTI is non-hyperbolic moveout in a VTI medium. The velocity
	// function must carry η values (see [NewVTIFunction]).
	ModelVTI = engine.ModelVTI

	// ModelEmpirical is an empirical residual moveout. The "velocity" values
	// are curvature coefficients in ms/km².
	ModelEmpirical = engine.ModelEmpirical

	// ModelOutputVelocity writes the interpolated velocity trace instead of
	// correcting the input.
	ModelOutputVelocity = engine.ModelOutputVelocity
)

// Mode selects whether moveout is applied or removed.
type Mode = engine.Mode

const (
	// ModeApply flattens reflections (forward NMO).
	ModeApply = engine.ModeApply

	// ModeRemove re-introduces moveout on corrected data (inverse NMO).
	ModeRemove = engine.ModeRemove
)

// HorizonMethod selects how v² is interpolated between horizons.
type HorizonMethod = engine.HorizonMethod

const (
	// HorizonLinear interpolates v² linearly in time.
	HorizonLinear = engine.HorizonLinear

	// HorizonQuadratic interpolates v² linearly in time².
	HorizonQuadratic = engine.HorizonQuadratic
)

// TaperType selects the shape of the stretch-mute taper.
type TaperType = filter.TaperType

const (
	// TaperLinear ramps linearly.
	TaperLinear = filter.TaperLinear

	// TaperCosine is a raised-cosine ramp.
	TaperCosine = filter.TaperCosine

	// TaperKaiser is the rising half of a Kaiser window.
	TaperKaiser = filter.TaperKaiser
)

// Common errors returned by the package. They are shared with the internal
// engine, so errors.Is matches them however deeply they are wrapped.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = engine.ErrInvalidConfig

	// ErrInvalidVelocity indicates a sampled velocity ≤ 0.
	ErrInvalidVelocity = engine.ErrInvalidVelocity

	// ErrMissingAnisotropyData indicates VTI correction without η values.
	ErrMissingAnisotropyData = engine.ErrMissingAnisotropyData

	// ErrInconsistentTimeOfFirstSample indicates a first sample after time zero.
	ErrInconsistentTimeOfFirstSample = engine.ErrInconsistentTimeOfFirstSample

	// ErrUnsupportedConfiguration indicates an operation the configuration cannot perform.
	ErrUnsupportedConfiguration = engine.ErrUnsupportedConfiguration

	// ErrTraceLength indicates a trace whose length differs from Config.NumSamples.
	ErrTraceLength = engine.ErrTraceLength

	// ErrNoKnots indicates a velocity function without knots.
	ErrNoKnots = interp.ErrNoKnots
)

// StretchMute configures the mute of over-stretched shallow samples after
// forward NMO.
type StretchMute struct {
	// MaxStretch is the largest tolerated relative stretch (0.5 = 50%).
	// Zero disables the mute.
	MaxStretch float64

	// TaperSamples is the length of the taper below the muted zone.
	// Zero gives a hard mute.
	TaperSamples int

	// Taper is the taper shape.
	Taper TaperType
}

func (m StretchMute) engineMute() engine.StretchMute {
	return engine.StretchMute{
		MaxStretch: m.MaxStretch,
		Taper:      filter.TaperParams{Type: m.Taper, Length: m.TaperSamples},
	}
}

// Config holds NMO correction configuration.
type Config struct {
	// SampleInterval is the trace sample interval in milliseconds.
	SampleInterval float64

	// NumSamples is the trace length in samples.
	NumSamples int

	// FirstSampleTime is the time of the first sample in milliseconds.
	// It must be zero or negative.
	FirstSampleTime float64

	// Model is the moveout equation.
	Model Model

	// Mode selects apply or remove.
	Mode Mode

	// Horizon enables horizon-based correction: velocity knots are treated
	// as horizons and v² is interpolated between them with HorizonMethod.
	Horizon bool

	// HorizonMethod is the v² interpolation between horizons.
	HorizonMethod HorizonMethod

	// EmpiricalApex is the offset of the curve apex in metres (ModelEmpirical).
	EmpiricalApex float64

	// EmpiricalDamping scales the near-offset damping term (ModelEmpirical).
	EmpiricalDamping float64

	// StretchMute mutes over-stretched samples after forward NMO.
	StretchMute StretchMute

	// Workers is the number of goroutines used by CorrectGather.
	// Zero selects GOMAXPROCS. Ignored unless EnableParallel is set.
	Workers int

	// EnableParallel enables parallel gather processing.
	// Each worker owns its own engine, so memory grows with Workers.
	EnableParallel bool
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !(c.SampleInterval > 0) || math.IsInf(c.SampleInterval, 0) {
		return fmt.Errorf("%w: sample interval must be positive, got %v ms", ErrInvalidConfig, c.SampleInterval)
	}

	if c.NumSamples < 1 || c.NumSamples > maxSamples {
		return fmt.Errorf("%w: number of samples must be 1-%d, got %d", ErrInvalidConfig, maxSamples, c.NumSamples)
	}

	if math.IsNaN(c.FirstSampleTime) || math.IsInf(c.FirstSampleTime, 0) {
		return fmt.Errorf("%w: first sample time must be finite", ErrInvalidConfig)
	}
	if c.FirstSampleTime > 0 {
		return fmt.Errorf("%w: %v ms is after time zero", ErrInconsistentTimeOfFirstSample, c.FirstSampleTime)
	}

	if c.Model < ModelPP || c.Model > ModelOutputVelocity {
		return fmt.Errorf("%w: unknown model %d", ErrInvalidConfig, int(c.Model))
	}

	if c.Mode != ModeApply && c.Mode != ModeRemove {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, int(c.Mode))
	}

	if c.HorizonMethod != HorizonLinear && c.HorizonMethod != HorizonQuadratic {
		return fmt.Errorf("%w: unknown horizon method %d", ErrInvalidConfig, int(c.HorizonMethod))
	}

	if err := c.StretchMute.validate(); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > maxWorkers {
		return fmt.Errorf("%w: workers must be 0-%d, got %d", ErrInvalidConfig, maxWorkers, c.Workers)
	}

	return nil
}

func (m *StretchMute) validate() error {
	if m.MaxStretch < 0 || math.IsNaN(m.MaxStretch) {
		return fmt.Errorf("%w: max stretch must not be negative, got %v", ErrInvalidConfig, m.MaxStretch)
	}
	if m.TaperSamples < 0 || m.TaperSamples > maxTaperSamples {
		return fmt.Errorf("%w: taper samples must be 0-%d, got %d", ErrInvalidConfig, maxTaperSamples, m.TaperSamples)
	}
	if m.Taper < TaperLinear || m.Taper > TaperKaiser {
		return fmt.Errorf("%w: unknown taper %d", ErrInvalidConfig, int(m.Taper))
	}
	return nil
}

// Info describes a corrector.
type Info struct {
	// Model, Mode and HorizonMethod are the configured names.
	Model         string
	Mode          string
	HorizonMethod string

	// HorizonBased reports whether horizon-based correction is enabled.
	HorizonBased bool

	// NumSamples and SampleInterval (ms) describe the trace geometry.
	NumSamples     int
	SampleInterval float64

	// MemoryUsage is the approximate size of the scratch buffers in bytes.
	MemoryUsage int64

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}

// GetInfo returns information about a corrector.
func GetInfo(c *Corrector) Info {
	horizon, method := c.e64.HorizonBased()
	return Info{
		Model:          c.e64.Model().String(),
		Mode:           c.e64.Mode().String(),
		HorizonMethod:  method.String(),
		HorizonBased:   horizon,
		NumSamples:     c.e64.NumSamples(),
		SampleInterval: c.e64.SampleInterval(),
		MemoryUsage:    c.MemoryUsage(),
		SIMDType:       simdInfo(),
	}
}

package nmo

import (
	"fmt"
	"slices"

	"github.com/tphakala/go-seismic-nmo/internal/engine"
	"github.com/tphakala/go-seismic-nmo/internal/simdops"
)

// Corrector applies or removes NMO on traces of one geometry.
//
// It is not safe for concurrent use: every call reuses the same scratch
// buffers. Use one Corrector per goroutine, or CorrectGather.
type Corrector struct {
	config Config
	e64    *engine.Engine[float64]
	e32    *engine.Engine[float32] // created on first float32 call
}

// New creates a corrector with the specified configuration.
func New(config *Config) (*Corrector, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e, err := newEngine[float64](config)
	if err != nil {
		return nil, err
	}
	return &Corrector{config: *config, e64: e}, nil
}

// newEngine creates an engine configured from a validated Config.
func newEngine[F simdops.Float](cfg *Config) (*engine.Engine[F], error) {
	e, err := engine.New[F](cfg.SampleInterval, cfg.NumSamples, cfg.Model)
	if err != nil {
		return nil, err
	}
	if err := e.SetTimeOfFirstSample(cfg.FirstSampleTime); err != nil {
		return nil, err
	}
	if err := e.SetModeOfApplication(cfg.Mode); err != nil {
		return nil, err
	}
	if err := e.SetHorizonBasedNMO(cfg.Horizon, cfg.HorizonMethod); err != nil {
		return nil, err
	}
	e.SetEmpiricalNMO(cfg.EmpiricalApex, cfg.EmpiricalDamping)
	if err := e.SetStretchMute(cfg.StretchMute.engineMute()); err != nil {
		return nil, err
	}
	return e, nil
}

func (c *Corrector) engine32() (*engine.Engine[float32], error) {
	if c.e32 == nil {
		e, err := newEngine[float32](&c.config)
		if err != nil {
			return nil, err
		}
		c.e32 = e
	}
	return c.e32, nil
}

// Config returns a copy of the current configuration.
func (c *Corrector) Config() Config { return c.config }

// Apply corrects a trace for the moveout of offset (metres) and returns the
// result in a new slice.
func (c *Corrector) Apply(fn *Function, offset float64, input []float64) ([]float64, error) {
	out := make([]float64, len(input))
	if err := c.ApplyInto(fn, offset, input, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyInto corrects input into output. Both must hold NumSamples samples;
// they may be the same slice. On error output is not modified.
func (c *Corrector) ApplyInto(fn *Function, offset float64, input, output []float64) error {
	return c.e64.PerformNMO(fn.inner(), offset, input, output)
}

// ApplyFloat32 is like Apply but for float32 samples.
func (c *Corrector) ApplyFloat32(fn *Function, offset float64, input []float32) ([]float32, error) {
	e, err := c.engine32()
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(input))
	if err := e.PerformNMO(fn.inner(), offset, input, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Differential moves a trace recorded at offsetIn to the moveout of
// offsetOut without going through zero offset. In ModeRemove the two
// offsets swap roles. Not available in horizon mode.
func (c *Corrector) Differential(fn *Function, offsetIn, offsetOut float64, input []float64) ([]float64, error) {
	out := make([]float64, len(input))
	if err := c.e64.PerformDifferentialNMO(fn.inner(), offsetIn, offsetOut, input, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DifferentialFloat32 is like Differential but for float32 samples.
func (c *Corrector) DifferentialFloat32(fn *Function, offsetIn, offsetOut float64, input []float32) ([]float32, error) {
	e, err := c.engine32()
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(input))
	if err := e.PerformDifferentialNMO(fn.inner(), offsetIn, offsetOut, input, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetHorizonBased enables or disables horizon-based correction. Buffers are
// reallocated only when the setting changes.
func (c *Corrector) SetHorizonBased(enable bool, method HorizonMethod) error {
	if err := c.e64.SetHorizonBasedNMO(enable, method); err != nil {
		return err
	}
	if c.e32 != nil {
		if err := c.e32.SetHorizonBasedNMO(enable, method); err != nil {
			return err
		}
	}
	c.config.Horizon = enable
	c.config.HorizonMethod = method
	return nil
}

// SetMode selects apply or remove.
func (c *Corrector) SetMode(mode Mode) error {
	if err := c.e64.SetModeOfApplication(mode); err != nil {
		return err
	}
	if c.e32 != nil {
		if err := c.e32.SetModeOfApplication(mode); err != nil {
			return err
		}
	}
	c.config.Mode = mode
	return nil
}

// TimeMap returns a copy of the source times (ms) read by each output sample
// in the last float64 correction.
func (c *Corrector) TimeMap() []float64 {
	m := slices.Clone(c.e64.TimeMap())
	simdops.ScaleInPlace(m, msPerSecond)
	return m
}

// MemoryUsage returns the approximate size of the corrector's buffers in bytes.
func (c *Corrector) MemoryUsage() int64 {
	n := c.e64.MemoryUsage()
	if c.e32 != nil {
		n += c.e32.MemoryUsage()
	}
	return n
}

func simdInfo() string {
	return simdops.Info()
}

package nmo

import (
	"fmt"

	"github.com/tphakala/go-seismic-nmo/internal/timefunc"
)

// Function is a sparse velocity function: RMS velocities (m/s) at knot
// times (ms), with optional η values for VTI moveout. Between knots values
// are interpolated linearly; beyond the first and last knot they are held.
//
// Knot times must be non-decreasing. This is not checked: unordered knots
// give unspecified velocities.
type Function struct {
	fn *timefunc.Function
}

// NewFunction creates a velocity function.
func NewFunction(timesMs, velocities []float64) (*Function, error) {
	return newFunction(timesMs, velocities)
}

// NewVTIFunction creates a velocity function carrying η values.
func NewVTIFunction(timesMs, velocities, eta []float64) (*Function, error) {
	return newFunction(timesMs, velocities, eta)
}

func newFunction(timesMs []float64, values ...[]float64) (*Function, error) {
	if len(timesMs) == 0 {
		return nil, ErrNoKnots
	}
	fn, err := timefunc.New(timesMs, values...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &Function{fn: fn}, nil
}

// NumKnots returns the number of knots. The zero Function has none.
func (f *Function) NumKnots() int {
	if f.inner() == nil {
		return 0
	}
	return f.fn.NumValues()
}

// HasEta reports whether the function carries η values.
func (f *Function) HasEta() bool {
	return f.inner() != nil && f.fn.NumSpatialValues() > timefunc.Eta
}

// VelocityAt returns the interpolated velocity at a time in milliseconds,
// or 0 for a function without knots.
func (f *Function) VelocityAt(ms float64) float64 {
	if f.inner() == nil {
		return 0
	}
	v, _ := f.fn.ValueAt(ms, timefunc.Velocity)
	return v
}

// EtaAt returns the interpolated η at a time in milliseconds.
func (f *Function) EtaAt(ms float64) (float64, error) {
	if !f.HasEta() {
		return 0, ErrMissingAnisotropyData
	}
	return f.fn.ValueAt(ms, timefunc.Eta)
}

// inner returns the engine representation; nil for a nil or zero Function.
func (f *Function) inner() *timefunc.Function {
	if f == nil {
		return nil
	}
	return f.fn
}

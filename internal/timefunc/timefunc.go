// Package timefunc holds sparse functions of time, such as velocity and
// anisotropy profiles, as knots with one or more spatial components.
package timefunc

import (
	"errors"
	"fmt"
	"slices"
)

// MaxSpatialValues is the largest number of components a function carries.
// Component 0 is the primary value (RMS velocity), component 1 the
// anisotropy parameter η.
const MaxSpatialValues = 2

// Component indices.
const (
	Velocity = 0
	Eta      = 1
)

// Common errors returned by time functions.
var (
	ErrLengthMismatch      = errors.New("time function: values and times differ in length")
	ErrNoComponents        = errors.New("time function: at least one component required")
	ErrTooManyComponents   = errors.New("time function: too many spatial components")
	ErrInvalidSpatialIndex = errors.New("time function: invalid spatial index")
	ErrEmpty               = errors.New("time function: no knots")
)

// Function is a piecewise-linear function of time defined at knots.
// Times are expected in non-decreasing order; this is not verified.
type Function struct {
	times  []float64
	values [][]float64 // values[spatial][knot]
}

// New creates a function from knot times and one slice of values per
// spatial component. The inputs are copied.
func New(times []float64, values ...[]float64) (*Function, error) {
	f := &Function{}
	if err := f.Set(times, values...); err != nil {
		return nil, err
	}
	return f, nil
}

// Set replaces the whole knot set. On error the function is left unchanged.
func (f *Function) Set(times []float64, values ...[]float64) error {
	if len(values) == 0 {
		return ErrNoComponents
	}
	if len(values) > MaxSpatialValues {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyComponents, len(values), MaxSpatialValues)
	}
	for i, v := range values {
		if len(v) != len(times) {
			return fmt.Errorf("%w: component %d has %d values for %d times", ErrLengthMismatch, i, len(v), len(times))
		}
	}

	f.times = slices.Clone(times)
	f.values = make([][]float64, len(values))
	for i, v := range values {
		f.values[i] = slices.Clone(v)
	}
	return nil
}

// NumValues returns the number of knots.
func (f *Function) NumValues() int {
	return len(f.times)
}

// NumSpatialValues returns the number of components per knot.
func (f *Function) NumSpatialValues() int {
	return len(f.values)
}

// Time returns the time of knot i.
func (f *Function) Time(i int) float64 {
	return f.times[i]
}

// Value returns component spatial of knot i.
func (f *Function) Value(i, spatial int) float64 {
	return f.values[spatial][i]
}

// Times returns the knot times. The slice must not be modified.
func (f *Function) Times() []float64 {
	return f.times
}

// Values returns all knots of one component. The slice must not be modified.
func (f *Function) Values(spatial int) ([]float64, error) {
	if spatial < 0 || spatial >= len(f.values) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrInvalidSpatialIndex, spatial, len(f.values))
	}
	return f.values[spatial], nil
}

// ValueAt interpolates component spatial at time t. Values are held flat
// before the first and after the last knot.
func (f *Function) ValueAt(t float64, spatial int) (float64, error) {
	values, err := f.Values(spatial)
	if err != nil {
		return 0, err
	}
	n := len(f.times)
	if n == 0 {
		return 0, ErrEmpty
	}
	if t < f.times[0] {
		return values[0], nil
	}
	if t >= f.times[n-1] {
		return values[n-1], nil
	}

	// First knot strictly after t; the bracket is [k-1, k].
	k, _ := slices.BinarySearchFunc(f.times, t, func(knot, target float64) int {
		if knot <= target {
			return -1
		}
		return 1
	})

	t0, t1 := f.times[k-1], f.times[k]
	if t1 <= t0 {
		return values[k], nil
	}
	w := (t - t0) / (t1 - t0)
	return values[k-1] + w*(values[k]-values[k-1]), nil
}

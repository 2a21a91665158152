package engine

import (
	"fmt"
	"slices"

	"github.com/tphakala/go-seismic-nmo/internal/interp"
	"github.com/tphakala/go-seismic-nmo/internal/simdops"
	"github.com/tphakala/go-seismic-nmo/internal/timefunc"
)

// PerformNMO corrects one trace for the moveout of the given offset (metres).
// fn carries knot times in milliseconds, RMS velocities in m/s as component
// 0 and, for ModelVTI, η as component 1.
//
// in and out must both hold NumSamples samples and may be the same slice.
// On error out is not modified.
func (e *Engine[F]) PerformNMO(fn *timefunc.Function, offset float64, in, out []F) error {
	if err := e.checkTraces(in, out); err != nil {
		return err
	}
	if e.horizon {
		return e.performHorizonNMO(fn, offset, in, out)
	}

	if err := e.sampleFunctions(fn); err != nil {
		return err
	}

	if e.model == ModelOutputVelocity {
		copy(e.buf.result, e.buf.vel)
		writeTrace(out, e.buf.result)
		return nil
	}

	loadTrace(e.buf.work, in)
	e.computeTimeMap(e.buf.timeMap, offset)

	switch e.mode {
	case ModeApply:
		interp.Process(e.buf.result, e.buf.work, e.buf.timeMap, e.timeFirst, e.sampleInt)
		e.applyStretchMute(e.buf.result, e.buf.timeMap)
	case ModeRemove:
		interp.XY2YX(e.buf.timeMapInv, e.buf.timeMap, e.timeFirst, e.sampleInt)
		interp.Process(e.buf.result, e.buf.work, e.buf.timeMapInv, e.timeFirst, e.sampleInt)
	}

	writeTrace(out, e.buf.result)
	return nil
}

func (e *Engine[F]) checkTraces(in, out []F) error {
	if len(in) != e.numSamples || len(out) != e.numSamples {
		return fmt.Errorf("%w: got %d in, %d out, want %d",
			ErrTraceLength, len(in), len(out), e.numSamples)
	}
	return nil
}

// loadKnotTimes converts the knot times of fn to seconds.
func (e *Engine[F]) loadKnotTimes(fn *timefunc.Function) ([]float64, error) {
	if fn == nil || fn.NumValues() == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, interp.ErrNoKnots)
	}
	e.knotTime = slices.Grow(e.knotTime[:0], fn.NumValues())[:fn.NumValues()]
	simdops.For[float64]().Scale(e.knotTime, fn.Times(), msToSec)
	return e.knotTime, nil
}

// sampleFunctions fills the velocity (and η) trace from fn and validates it.
func (e *Engine[F]) sampleFunctions(fn *timefunc.Function) error {
	times, err := e.loadKnotTimes(fn)
	if err != nil {
		return err
	}
	if e.model == ModelVTI && fn.NumSpatialValues() < 2 {
		return fmt.Errorf("%w: VTI moveout needs an eta component, function has %d",
			ErrMissingAnisotropyData, fn.NumSpatialValues())
	}

	vel, _ := fn.Values(timefunc.Velocity)
	if err := interp.Linear(e.buf.vel, times, vel, e.timeFirst, e.sampleInt); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := checkVelocities(e.buf.vel); err != nil {
		return err
	}

	if e.model == ModelVTI {
		eta, _ := fn.Values(timefunc.Eta)
		if err := interp.Linear(e.buf.eta, times, eta, e.timeFirst, e.sampleInt); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// checkVelocities rejects any velocity that is not strictly positive, NaN included.
func checkVelocities(vel []float64) error {
	for i, v := range vel {
		if !(v > 0) {
			return fmt.Errorf("%w: %v at index %d", ErrInvalidVelocity, v, i)
		}
	}
	return nil
}

// computeTimeMap fills dst with the source time of every output sample for
// the given offset, using the sampled velocity and η traces.
func (e *Engine[F]) computeTimeMap(dst []float64, offset float64) {
	vel, eta := e.buf.vel, e.buf.eta
	for i := range dst {
		t0 := e.timeFirst + float64(i)*e.sampleInt
		dst[i] = e.travelTime(t0, offset, vel[i], eta[i], 1)
	}
	mirrorPreZero(dst, e.timeFirst, e.sampleInt, func(i int, t0 float64) float64 {
		return e.travelTime(t0, offset, vel[i], eta[i], 1)
	})
}

// mirrorPreZero replaces the map at every sample before time zero by its
// point reflection about time zero, m[i] = 2·T(0) - T(-t_i), where travel
// evaluates the moveout of sample i at a zero-offset time. The moveout
// equations are even in time and would otherwise fold negative times back
// onto positive ones.
func mirrorPreZero(m []float64, timeFirst, dt float64, travel func(i int, t0 float64) float64) {
	for i := range m {
		t := timeFirst + float64(i)*dt
		if t >= 0 {
			return
		}
		m[i] = 2*travel(i, 0) - travel(i, -t)
	}
}

// applyStretchMute zeroes the samples at and above the deepest sample whose
// relative stretch exceeds the configured limit, then tapers the samples
// below it. Stretch at sample i is dt/(T[i+1]-T[i]) - 1.
func (e *Engine[F]) applyStretchMute(trace, timeMap []float64) {
	limit := e.mute.MaxStretch
	if limit <= 0 || e.model == ModelOutputVelocity {
		return
	}

	last := -1
	for i := range len(timeMap) - 1 {
		step := timeMap[i+1] - timeMap[i]
		if !(step > 0) || e.sampleInt/step-1 > limit {
			last = i
		}
	}
	if last < 0 {
		return
	}

	clear(trace[:last+1])
	for k, w := range e.muteRamp {
		i := last + 1 + k
		if i >= len(trace) {
			break
		}
		trace[i] *= w
	}
}

// loadTrace converts an input trace into a float64 buffer.
func loadTrace[F simdops.Float](dst []float64, src []F) {
	for i, v := range src {
		dst[i] = float64(v)
	}
}

// writeTrace converts a float64 buffer into an output trace.
func writeTrace[F simdops.Float](dst []F, src []float64) {
	for i, v := range src {
		dst[i] = F(v)
	}
}


package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-seismic-nmo/internal/interp"
	"github.com/tphakala/go-seismic-nmo/internal/timefunc"
)

// performHorizonNMO treats the knots of fn as horizons: (t0, v) pairs
// bounding intervals in which v² is interpolated. Each output sample reads
// the input directly at its fractional source sample; there is no dense
// resampling pass. Removal uses the same equations with a negative moveout
// sign.
func (e *Engine[F]) performHorizonNMO(fn *timefunc.Function, offset float64, in, out []F) error {
	times, err := e.loadKnotTimes(fn)
	if err != nil {
		return err
	}
	if e.model == ModelVTI && fn.NumSpatialValues() < 2 {
		return fmt.Errorf("%w: VTI moveout needs an eta component, function has %d",
			ErrMissingAnisotropyData, fn.NumSpatialValues())
	}

	vel, _ := fn.Values(timefunc.Velocity)
	if err := checkVelocities(vel); err != nil {
		return err
	}
	var eta []float64
	if e.model == ModelVTI {
		eta, _ = fn.Values(timefunc.Eta)
	}

	e.interpolateHorizons(times, vel, eta)

	if e.model == ModelOutputVelocity {
		for i, v2 := range e.buf.vel {
			e.buf.result[i] = math.Sqrt(v2)
		}
		writeTrace(out, e.buf.result)
		return nil
	}

	sign := 1.0
	if e.mode == ModeRemove {
		sign = -1
	}
	for i := range e.buf.timeMap {
		t0 := e.timeFirst + float64(i)*e.sampleInt
		e.buf.timeMap[i] = e.travelTime(t0, offset, math.Sqrt(e.buf.vel[i]), e.buf.eta[i], sign)
	}
	mirrorPreZero(e.buf.timeMap, e.timeFirst, e.sampleInt, func(i int, t0 float64) float64 {
		return e.travelTime(t0, offset, math.Sqrt(e.buf.vel[i]), e.buf.eta[i], sign)
	})

	loadTrace(e.buf.work, in)
	for i, ts := range e.buf.timeMap {
		e.buf.result[i] = interp.QuadAmplitudeAtSample(e.buf.work, (ts-e.timeFirst)/e.sampleInt)
	}
	if e.mode == ModeApply {
		e.applyStretchMute(e.buf.result, e.buf.timeMap)
	}

	writeTrace(out, e.buf.result)
	return nil
}

// interpolateHorizons fills the velocity trace with v² and the η trace with
// η between horizons. A segment cursor follows the output samples down the
// trace, so horizons are visited once. Outside the horizon range values are
// held flat.
func (e *Engine[F]) interpolateHorizons(times, vel, eta []float64) {
	n := len(times)
	h := 0
	for i := range e.buf.vel {
		t := e.timeFirst + float64(i)*e.sampleInt
		for h < n-1 && times[h+1] <= t {
			h++
		}

		a, b, w := h, h, 0.0
		if t > times[0] && h < n-1 {
			b = h + 1
			w = e.horizonWeight(t, times[a], times[b])
		}

		va2, vb2 := vel[a]*vel[a], vel[b]*vel[b]
		e.buf.vel[i] = va2 + w*(vb2-va2)
		if eta != nil {
			e.buf.eta[i] = eta[a] + w*(eta[b]-eta[a])
		} else {
			e.buf.eta[i] = 0
		}
	}
}

// horizonWeight returns the position of t between horizons at ta and tb,
// linear in time or in time². Degenerate segments give 1.
func (e *Engine[F]) horizonWeight(t, ta, tb float64) float64 {
	if e.horizonMethod == HorizonQuadratic {
		if den := tb*tb - ta*ta; den > 0 {
			return (t*t - ta*ta) / den
		}
	}
	if den := tb - ta; den > 0 {
		return (t - ta) / den
	}
	return 1
}

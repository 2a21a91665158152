// Package interp implements the interpolation kernel behind moveout
// correction: dense resampling of sparse knots, fractional-sample amplitude
// lookup, time-map driven trace warping and time-map inversion.
//
// Times and sample intervals share one unit (the engine uses seconds).
// Output sample i of a uniform axis sits at firstTime + i·dt.
package interp

import (
	"errors"
	"fmt"
	"math"
)

// Common errors returned by the interpolation kernel.
var (
	// ErrNoKnots indicates an interpolation request without control points.
	ErrNoKnots = errors.New("no interpolation knots")

	// ErrLengthMismatch indicates parallel slices of different lengths.
	ErrLengthMismatch = errors.New("slice length mismatch")
)

// Fractional sample positions this close to the trace ends count as inside.
// Time maps are built as firstTime + i·dt and divided back by dt, which can
// land a few ulps past the last sample.
const sampleEpsilon = 1e-6

// Linear fills dst with the piecewise-linear interpolation of the knots
// (knotTimes[k], knotValues[k]) at dst's uniform time axis.
//
// Before the first knot and after the last the value is held flat. At a knot
// time the knot value is returned exactly. A single knot yields a constant.
//
// knotTimes must be non-decreasing. This is not verified; out-of-order knots
// produce unspecified values. When several knots share a time, the last of
// them wins at and after that time.
func Linear(dst, knotTimes, knotValues []float64, firstTime, dt float64) error {
	n := len(knotTimes)
	if n != len(knotValues) {
		return fmt.Errorf("%w: %d knot times, %d knot values", ErrLengthMismatch, n, len(knotValues))
	}
	if n == 0 {
		return ErrNoKnots
	}

	if n == 1 {
		for i := range dst {
			dst[i] = knotValues[0]
		}
		return nil
	}

	first, last := knotTimes[0], knotTimes[n-1]
	k := 0
	for i := range dst {
		t := firstTime + float64(i)*dt
		if t < first {
			dst[i] = knotValues[0]
			continue
		}
		if t >= last {
			dst[i] = knotValues[n-1]
			continue
		}

		// Output times increase, so the bracketing segment only moves forward.
		for k < n-2 && knotTimes[k+1] <= t {
			k++
		}

		span := knotTimes[k+1] - knotTimes[k]
		if span <= 0 {
			dst[i] = knotValues[k+1]
			continue
		}
		w := (t - knotTimes[k]) / span
		dst[i] = knotValues[k] + w*(knotValues[k+1]-knotValues[k])
	}

	return nil
}

// QuadAmplitudeAtSample returns the amplitude of trace at a fractional
// sample index. A parabola is fitted through the three samples around the
// nearest integer index; traces shorter than three samples use linear
// interpolation. Positions outside [0, len(trace)-1] and NaN return 0.
func QuadAmplitudeAtSample(trace []float64, sample float64) float64 {
	n := len(trace)
	if n == 0 || math.IsNaN(sample) {
		return 0
	}

	last := float64(n - 1)
	if sample < -sampleEpsilon || sample > last+sampleEpsilon {
		return 0
	}
	sample = math.Max(0, math.Min(sample, last))

	if n < 3 {
		i0 := int(sample)
		if i0 >= n-1 {
			return trace[n-1]
		}
		f := sample - float64(i0)
		return trace[i0] + f*(trace[i0+1]-trace[i0])
	}

	c := int(math.Round(sample))
	c = max(1, min(c, n-2))
	x := sample - float64(c)

	a0, a1, a2 := trace[c-1], trace[c], trace[c+1]
	return a1 + 0.5*x*(a2-a0) + 0.5*x*x*(a2+a0-2*a1)
}

// Process warps src by a time map: dst[i] is src sampled at time timeMap[i],
// where src's sample j sits at firstTime + j·dt. Map entries that fall
// outside src, and NaN entries, give 0.
//
// dst and timeMap must have equal length; dst must not alias src.
func Process(dst, src, timeMap []float64, firstTime, dt float64) {
	for i, t := range timeMap[:len(dst)] {
		dst[i] = QuadAmplitudeAtSample(src, (t-firstTime)/dt)
	}
}

// XY2YX inverts a monotonically increasing time map. forward[i] is the value
// y = f(x) at x = firstTime + i·dt. dst[j] receives the x at which
// f(x) = firstTime + j·dt, by linear interpolation between map samples.
//
// Ordinates outside [forward[0], forward[n-1]] have no inverse and receive
// NaN, which Process turns into a zero sample. dst and forward must have
// equal length.
func XY2YX(dst, forward []float64, firstTime, dt float64) {
	n := len(forward)
	if n == 0 {
		return
	}

	tol := sampleEpsilon * dt
	lo, hi := forward[0], forward[n-1]
	k := 0
	for j := range dst {
		y := firstTime + float64(j)*dt
		if y < lo-tol || y > hi+tol {
			dst[j] = math.NaN()
			continue
		}
		if n == 1 {
			dst[j] = firstTime
			continue
		}

		for k < n-2 && forward[k+1] < y {
			k++
		}

		x := firstTime + float64(k)*dt
		if span := forward[k+1] - forward[k]; span > 0 {
			x += dt * (y - forward[k]) / span
		}
		dst[j] = x
	}
}

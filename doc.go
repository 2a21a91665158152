// Package nmo provides normal-moveout (NMO) correction of seismic traces in
// pure Go.
//
// A reflection recorded at source-receiver offset x arrives later than at
// zero offset. NMO correction maps every output sample at zero-offset time
// t0 to the time T(t0, x) at which the same reflection is recorded, and
// resamples the trace there, flattening reflection hyperbolas across a
// common-midpoint gather.
//
// # Features
//
//   - Hyperbolic P-P, converted-wave P-S, non-hyperbolic VTI (η) and an
//     empirical residual moveout model
//   - Apply and remove (inverse NMO) through the inverted time map
//   - Horizon-based correction with linear or quadratic v² interpolation
//   - Differential NMO from one offset directly to another
//   - Stretch mute with linear, cosine or Kaiser taper
//   - Parallel gather processing with one engine per worker
//   - float64 and float32 traces; SIMD helpers via github.com/tphakala/simd
//
// # Quick Start
//
// For a single trace and a constant velocity:
//
//	out, err := nmo.ApplyPP(trace, 4, 2000, 1000) // 4 ms, 2000 m/s, 1000 m
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For repeated corrections with a velocity function:
//
//	fn, err := nmo.NewFunction([]float64{0, 1000, 3000}, []float64{1500, 2100, 3200})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c, err := nmo.New(&nmo.Config{
//	    SampleInterval: 4,
//	    NumSamples:     1000,
//	    Model:          nmo.ModelPP,
//	    StretchMute:    nmo.StretchMute{MaxStretch: 0.5, TaperSamples: 20},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, trace := range gather {
//	    corrected, err := c.Apply(fn, offsets[i], trace)
//	    ...
//	}
//
// Whole gathers can be corrected in one call with [CorrectGather], which
// uses several goroutines when [Config.EnableParallel] is set.
//
// # Units
//
// Times and sample intervals are in milliseconds, offsets in metres and
// velocities in metres per second. The first sample may lie before time
// zero (FirstSampleTime < 0) but never after it.
//
// # Errors
//
// Invalid input is reported before the output is touched. Sampled
// velocities must be strictly positive ([ErrInvalidVelocity]); the VTI
// model needs η values ([ErrMissingAnisotropyData]); differential NMO is
// not available in horizon mode ([ErrUnsupportedConfiguration]).
//
// # Thread Safety
//
// A [Corrector] owns scratch buffers that every call overwrites and must not
// be shared between goroutines. [CorrectGather] creates one engine per
// worker. [Function] values are read-only after construction and may be
// shared freely.
package nmo

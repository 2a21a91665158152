// Package simdops provides generic SIMD operations for float32 and float64 traces.
// A single engine implementation can then serve both precisions.
package simdops

import (
	"math"

	"github.com/tphakala/simd/cpu"
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported trace sample types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
type Ops[F Float] struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []F) F

	// Sum returns the sum of all elements.
	Sum func(a []F) F

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)
}

var (
	ops32 = Ops[float32]{
		DotProductUnsafe: f32.DotProductUnsafe,
		Sum:              f32.Sum,
		Scale:            f32.Scale,
	}
	ops64 = Ops[float64]{
		DotProductUnsafe: f64.DotProductUnsafe,
		Sum:              f64.Sum,
		Scale:            f64.Scale,
	}
)

// For returns the Ops instance for type F.
// The type switch happens at instantiation time, not in hot paths.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// RMS returns the root-mean-square amplitude of a trace, or 0 for an empty one.
func RMS[F Float](trace []F) float64 {
	if len(trace) == 0 {
		return 0
	}
	energy := float64(For[F]().DotProductUnsafe(trace, trace))
	return math.Sqrt(energy / float64(len(trace)))
}

// Mean returns the average amplitude of a trace, or 0 for an empty one.
func Mean[F Float](trace []F) float64 {
	if len(trace) == 0 {
		return 0
	}
	return float64(For[F]().Sum(trace)) / float64(len(trace))
}

// ScaleInPlace multiplies every sample of trace by s.
func ScaleInPlace[F Float](trace []F, s F) {
	For[F]().Scale(trace, trace, s)
}

// Info describes the instruction set the SIMD kernels dispatch to.
func Info() string {
	return cpu.Info()
}

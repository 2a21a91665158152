package mathutil

import (
	"math"
)

// Moveout formulas map a zero-offset time t0 (seconds) to the source time at
// which the same reflection is recorded at the given offset (metres).
//
// All of them take the squared velocity and a sign. sign = +1 evaluates the
// forward moveout; sign = -1 subtracts the moveout term, which is how
// horizon-based NMO removes a correction in closed form.
//
// A negative radicand yields NaN. Callers treat NaN source times as
// out-of-range samples.

// TravelTimePP returns the hyperbolic P-P source time:
//
//	T = sqrt(t0² + sign·x²/v²)
func TravelTimePP(t0, offset, vel2, sign float64) float64 {
	return math.Sqrt(t0*t0 + sign*offset*offset/vel2)
}

// TravelTimePS returns the converted-wave (P-S) source time:
//
//	T = ½·sqrt(t0²) + ½·sqrt(t0² + sign·2x²/v²)
func TravelTimePS(t0, offset, vel2, sign float64) float64 {
	t02 := t0 * t0
	return psWeight*math.Sqrt(t02) + psWeight*math.Sqrt(t02+sign*2*offset*offset/vel2)
}

// TravelTimeVTI returns the non-hyperbolic moveout for a VTI medium with
// anellipticity eta (Alkhalifah-Tsvankin):
//
//	T² = t0² + sign·(x²/v² − 2ηx⁴ / (v²·(t0²v² + (1+2η)x²)))
func TravelTimeVTI(t0, offset, vel2, eta, sign float64) float64 {
	t02 := t0 * t0
	x2 := offset * offset
	if x2 == 0 {
		return math.Sqrt(t02)
	}
	moveout := x2 / vel2
	den := vel2 * (t02*vel2 + (1+vtiEtaFactor*eta)*x2)
	if den != 0 {
		moveout -= vtiEtaFactor * eta * x2 * x2 / den
	}
	return math.Sqrt(t02 + sign*moveout)
}

// EmpiricalTime returns t0 shifted by the empirical residual moveout. coeff
// takes the place of the velocity, apex is the offset of the curve apex and
// damping scales a Gaussian term that suppresses the shift at near offsets.
// Offsets and apex are in metres; the bracketed term is in milliseconds.
func EmpiricalTime(t0, offset, coeff, apex, damping, sign float64) float64 {
	xKm := offset / metresPerKm
	apexKm := apex / metresPerKm
	dx := xKm - apexKm

	shiftMs := coeff*dx*dx - apexKm*apexKm -
		(coeff/(coeff+empiricalCoeffEpsilon))*damping*math.Exp(-empiricalDampingWidth*xKm*xKm)

	return t0 + sign*shiftMs/msPerSecond
}

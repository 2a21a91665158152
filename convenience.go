package nmo

// Common sample intervals in milliseconds.
const (
	// Interval1ms is typical of high-resolution and shallow surveys.
	Interval1ms = 1.0

	// Interval2ms is the most common land and marine interval.
	Interval2ms = 2.0

	// Interval4ms is common for deep and legacy marine data.
	Interval4ms = 4.0
)

// NewPP creates a P-P corrector for traces of numSamples samples.
func NewPP(sampleIntervalMs float64, numSamples int) (*Corrector, error) {
	return New(&Config{
		SampleInterval: sampleIntervalMs,
		NumSamples:     numSamples,
		Model:          ModelPP,
	})
}

// NewPS creates a converted-wave corrector for traces of numSamples samples.
func NewPS(sampleIntervalMs float64, numSamples int) (*Corrector, error) {
	return New(&Config{
		SampleInterval: sampleIntervalMs,
		NumSamples:     numSamples,
		Model:          ModelPS,
	})
}

// NewVTI creates a VTI corrector. Velocity functions passed to it must
// carry η values.
func NewVTI(sampleIntervalMs float64, numSamples int) (*Corrector, error) {
	return New(&Config{
		SampleInterval: sampleIntervalMs,
		NumSamples:     numSamples,
		Model:          ModelVTI,
	})
}

// ApplyPP is a convenience function for one-shot P-P NMO of a trace with a
// constant velocity.
func ApplyPP(input []float64, sampleIntervalMs, velocity, offset float64) ([]float64, error) {
	return constantVelocityPP(input, sampleIntervalMs, velocity, offset, ModeApply)
}

// RemovePP is the inverse of ApplyPP: it re-introduces P-P moveout.
func RemovePP(input []float64, sampleIntervalMs, velocity, offset float64) ([]float64, error) {
	return constantVelocityPP(input, sampleIntervalMs, velocity, offset, ModeRemove)
}

func constantVelocityPP(input []float64, sampleIntervalMs, velocity, offset float64, mode Mode) ([]float64, error) {
	c, err := New(&Config{
		SampleInterval: sampleIntervalMs,
		NumSamples:     len(input),
		Model:          ModelPP,
		Mode:           mode,
	})
	if err != nil {
		return nil, err
	}
	fn, err := NewFunction([]float64{0}, []float64{velocity})
	if err != nil {
		return nil, err
	}
	return c.Apply(fn, offset, input)
}

// VelocityTrace returns fn sampled on a trace of numSamples samples, the
// velocity every output sample of a correction uses.
func VelocityTrace(fn *Function, sampleIntervalMs float64, numSamples int) ([]float64, error) {
	c, err := New(&Config{
		SampleInterval: sampleIntervalMs,
		NumSamples:     numSamples,
		Model:          ModelOutputVelocity,
	})
	if err != nil {
		return nil, err
	}
	return c.Apply(fn, 0, make([]float64, numSamples))
}

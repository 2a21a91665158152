package engine

// scratch holds the per-trace working buffers of an engine. Every buffer
// that exists has exactly numSamples elements.
type scratch struct {
	vel        []float64 // velocity per output sample (v² in horizon mode)
	eta        []float64 // η per output sample
	timeMap    []float64 // output sample -> source time
	timeMapInv []float64 // inverse map, for remove and differential correction
	timeDiff   []float64 // in/out source-time difference of differential correction
	work       []float64 // input trace
	result     []float64 // corrected trace before conversion to F
}

// allocate drops any existing buffers and creates the set needed for the
// given mode. Horizon-based correction samples the input directly and has
// no use for the inverse map or the differential buffers.
func (s *scratch) allocate(numSamples int, horizon bool) {
	*s = scratch{
		vel:     make([]float64, numSamples),
		eta:     make([]float64, numSamples),
		timeMap: make([]float64, numSamples),
		work:    make([]float64, numSamples),
		result:  make([]float64, numSamples),
	}
	if !horizon {
		s.timeMapInv = make([]float64, numSamples)
		s.timeDiff = make([]float64, numSamples)
	}
}

// size returns the total number of float64 elements held.
func (s *scratch) size() int64 {
	return int64(len(s.vel) + len(s.eta) + len(s.timeMap) + len(s.timeMapInv) +
		len(s.timeDiff) + len(s.work) + len(s.result))
}

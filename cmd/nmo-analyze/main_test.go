package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultParams() gatherParams {
	return gatherParams{
		velocity:   defaultVelocity,
		t0:         defaultT0,
		frequency:  defaultFrequency,
		dtMs:       defaultDtMs,
		numSamples: defaultNumSamples,
		maxOffset:  1000,
		numTraces:  5,
		window:     defaultWindow,
	}
}

func TestAnalyzeGather_StretchLowersFrequency(t *testing.T) {
	p := defaultParams()
	rows, err := analyzeGather(&p)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	// Zero offset is an identity.
	assert.InDelta(t, 1.0, rows[0].predicted, 1e-12)
	assert.InDelta(t, rows[0].centBefore, rows[0].centAfter, 1e-6)

	for i, r := range rows {
		assert.InDelta(t, r.predicted, r.measuredCut, 0.05, "offset %.0f", r.offset)
		if i > 0 {
			assert.Less(t, r.centAfter, rows[i-1].centAfter, "centroid falls with offset")
		}
	}

	mean, std := stretchAgreement(rows)
	assert.InDelta(t, 1.0, mean, 0.05)
	assert.Less(t, std, 0.05)
}

func TestAnalyzeGather_Mute(t *testing.T) {
	p := defaultParams()
	p.maxOffset = 4000
	p.stretch = 0.2
	rows, err := analyzeGather(&p)
	require.NoError(t, err)

	// T/t0 - 1 at 4 km is sqrt(5) - 1, well past the limit.
	last := rows[len(rows)-1]
	assert.InDelta(t, 0.0, last.centAfter, 1e-12)
	assert.InDelta(t, 0.0, last.measuredCut, 1e-12)
}

func TestAnalyzeGather_Errors(t *testing.T) {
	p := defaultParams()
	p.window = p.numSamples + 1
	_, err := analyzeGather(&p)
	require.Error(t, err)

	p = defaultParams()
	p.velocity = -1
	_, err = analyzeGather(&p)
	require.Error(t, err)
}

func TestStretchAgreement_Empty(t *testing.T) {
	mean, std := stretchAgreement([]traceStats{{measuredCut: 0}})
	assert.InDelta(t, 0.0, mean, 0)
	assert.InDelta(t, 0.0, std, 0)
}

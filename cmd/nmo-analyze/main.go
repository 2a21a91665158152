// Command nmo-analyze measures NMO stretch on a synthetic CMP gather. It
// builds a gather with one Ricker reflection, applies NMO and compares the
// spectral centroid of the event before and after correction with the
// stretch factor t0/T predicted by the moveout equation.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	nmo "github.com/tphakala/go-seismic-nmo"
	"github.com/tphakala/go-seismic-nmo/internal/spectrum"
	"gonum.org/v1/gonum/stat"
)

const (
	// Default gather geometry
	defaultVelocity   = 2000.0 // m/s
	defaultT0         = 1.0    // s
	defaultFrequency  = 25.0   // Ricker peak frequency, Hz
	defaultDtMs       = 4.0
	defaultNumSamples = 500
	defaultMaxOffset  = 2000.0 // m
	defaultNumTraces  = 11

	// Analysis window around the event, in samples
	defaultWindow = 128

	msPerSecond = 1000.0
)

// gatherParams describes the synthetic gather.
type gatherParams struct {
	velocity   float64
	t0         float64
	frequency  float64
	dtMs       float64
	numSamples int
	maxOffset  float64
	numTraces  int
	window     int
	stretch    float64
}

// traceStats holds the measurements for one offset.
type traceStats struct {
	offset      float64
	recorded    float64 // event time before correction, s
	predicted   float64 // t0/T
	domBefore   float64
	domAfter    float64
	centBefore  float64
	centAfter   float64
	measuredCut float64 // centAfter/centBefore
}

func main() {
	p := gatherParams{}
	flag.Float64Var(&p.velocity, "vel", defaultVelocity, "Constant stacking velocity in m/s")
	flag.Float64Var(&p.t0, "t0", defaultT0, "Zero-offset time of the reflection in s")
	flag.Float64Var(&p.frequency, "freq", defaultFrequency, "Ricker peak frequency in Hz")
	flag.Float64Var(&p.dtMs, "dt", defaultDtMs, "Sample interval in ms")
	flag.IntVar(&p.numSamples, "n", defaultNumSamples, "Samples per trace")
	flag.Float64Var(&p.maxOffset, "max-offset", defaultMaxOffset, "Largest offset in m")
	flag.IntVar(&p.numTraces, "traces", defaultNumTraces, "Number of traces")
	flag.IntVar(&p.window, "window", defaultWindow, "Analysis window in samples")
	flag.Float64Var(&p.stretch, "stretch", 0, "Stretch mute limit (0 disables)")
	flag.Parse()

	rows, err := analyzeGather(&p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== NMO Stretch Analysis ===")
	fmt.Printf("v = %.0f m/s, t0 = %.3f s, Ricker %.1f Hz, dt = %g ms\n\n", p.velocity, p.t0, p.frequency, p.dtMs)
	fmt.Printf("%9s %9s %9s %11s %11s %11s %11s %9s\n",
		"offset", "T (s)", "t0/T", "dom in", "dom out", "cent in", "cent out", "ratio")
	for _, r := range rows {
		fmt.Printf("%9.1f %9.4f %9.4f %11.2f %11.2f %11.2f %11.2f %9.4f\n",
			r.offset, r.recorded, r.predicted, r.domBefore, r.domAfter, r.centBefore, r.centAfter, r.measuredCut)
	}

	mean, std := stretchAgreement(rows)
	fmt.Printf("\nMeasured/predicted frequency ratio: mean %.4f, std %.4f\n", mean, std)
}

// analyzeGather synthesizes the gather, corrects it and measures each trace.
func analyzeGather(p *gatherParams) ([]traceStats, error) {
	if p.numTraces < 1 || p.window < 2 || p.window > p.numSamples {
		return nil, fmt.Errorf("need at least one trace and a window of 2..%d samples", p.numSamples)
	}
	dt := p.dtMs / msPerSecond

	offsets := make([]float64, p.numTraces)
	recorded := make([]float64, p.numTraces)
	gather := make([][]float64, p.numTraces)
	for i := range offsets {
		if p.numTraces > 1 {
			offsets[i] = p.maxOffset * float64(i) / float64(p.numTraces-1)
		}
		x := offsets[i]
		recorded[i] = math.Sqrt(p.t0*p.t0 + x*x/(p.velocity*p.velocity))
		gather[i] = ricker(p.numSamples, dt, p.frequency, recorded[i])
	}

	fn, err := nmo.NewFunction([]float64{0}, []float64{p.velocity})
	if err != nil {
		return nil, err
	}
	corrected, err := nmo.CorrectGather(&nmo.Config{
		SampleInterval: p.dtMs,
		NumSamples:     p.numSamples,
		Model:          nmo.ModelPP,
		StretchMute:    nmo.StretchMute{MaxStretch: p.stretch},
		EnableParallel: true,
	}, fn, offsets, gather)
	if err != nil {
		return nil, err
	}

	analyzer, err := spectrum.NewAnalyzer(p.window, dt)
	if err != nil {
		return nil, err
	}

	rows := make([]traceStats, p.numTraces)
	for i := range rows {
		before, err := windowSpectrum(analyzer, gather[i], recorded[i]/dt, p.window)
		if err != nil {
			return nil, fmt.Errorf("trace %d: %w", i, err)
		}
		after, err := windowSpectrum(analyzer, corrected[i], p.t0/dt, p.window)
		if err != nil {
			return nil, fmt.Errorf("trace %d: %w", i, err)
		}

		rows[i] = traceStats{
			offset:     offsets[i],
			recorded:   recorded[i],
			predicted:  p.t0 / recorded[i],
			domBefore:  before.Dominant(),
			domAfter:   after.Dominant(),
			centBefore: before.Centroid(),
			centAfter:  after.Centroid(),
		}
		if rows[i].centBefore > 0 {
			rows[i].measuredCut = rows[i].centAfter / rows[i].centBefore
		}
	}
	return rows, nil
}

// windowSpectrum returns the spectrum of the window of trace centred on
// sample center, shifted to fit inside the trace.
func windowSpectrum(a *spectrum.Analyzer, trace []float64, center float64, window int) (spectrum.Spectrum, error) {
	lo := int(math.Round(center)) - window/2
	lo = max(0, min(lo, len(trace)-window))
	return a.Amplitude(trace[lo : lo+window])
}

// stretchAgreement returns the mean and standard deviation of the measured
// centroid ratio divided by t0/T over traces that survived the mute.
func stretchAgreement(rows []traceStats) (mean, std float64) {
	ratios := make([]float64, 0, len(rows))
	for _, r := range rows {
		if r.measuredCut > 0 && r.centAfter > 0 {
			ratios = append(ratios, r.measuredCut/r.predicted)
		}
	}
	if len(ratios) == 0 {
		log.Printf("no traces survived the stretch mute")
		return 0, 0
	}
	return stat.MeanStdDev(ratios, nil)
}

// ricker returns a unit Ricker wavelet of peak frequency freq centred on t.
func ricker(n int, dt, freq, t float64) []float64 {
	trace := make([]float64, n)
	for i := range trace {
		a := math.Pi * freq * (float64(i)*dt - t)
		a *= a
		trace[i] = (1 - 2*a) * math.Exp(-a)
	}
	return trace
}

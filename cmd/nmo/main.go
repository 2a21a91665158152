// Command nmo corrects a synthetic trace and prints what the corrector did.
// With -demo it compares the moveout models on the same reflection.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"strings"

	nmo "github.com/tphakala/go-seismic-nmo"
)

func main() {
	// Command-line flags
	var (
		velocity   = flag.Float64("vel", defaultVelocity, "Constant velocity in m/s")
		offset     = flag.Float64("offset", defaultOffset, "Source-receiver offset in m")
		dtMs       = flag.Float64("dt", defaultDtMs, "Sample interval in ms")
		numSamples = flag.Int("n", defaultNumSamples, "Samples per trace")
		model      = flag.String("model", "pp", "Moveout model: pp, ps, vti, empirical")
		remove     = flag.Bool("remove", false, "Remove moveout instead of applying it")
		showMap    = flag.Bool("timemap", false, "Print the time map")
		demo       = flag.Bool("demo", false, "Run a demonstration")
	)
	flag.Parse()

	if *demo {
		runDemo()
		return
	}

	config := nmo.Config{
		SampleInterval: *dtMs,
		NumSamples:     *numSamples,
		Model:          parseModel(*model),
	}
	if *remove {
		config.Mode = nmo.ModeRemove
	}

	corrector, err := nmo.New(&config)
	if err != nil {
		log.Fatalf("Failed to create corrector: %v", err)
	}

	info := nmo.GetInfo(corrector)
	fmt.Printf("Corrector created:\n")
	fmt.Printf("  Model: %s\n", info.Model)
	fmt.Printf("  Mode: %s\n", info.Mode)
	fmt.Printf("  Trace: %d samples at %g ms\n", info.NumSamples, info.SampleInterval)
	fmt.Printf("  Memory usage: %.2f KB\n", float64(info.MemoryUsage)/bytesPerKilobyte)
	fmt.Printf("  SIMD: %s\n", info.SIMDType)

	fn, err := velocityFunction(config.Model, *velocity)
	if err != nil {
		log.Fatalf("Invalid velocity: %v", err)
	}

	eventTime := testEventTime
	if config.Mode == nmo.ModeApply {
		eventTime = math.Sqrt(testEventTime*testEventTime + (*offset)*(*offset)/((*velocity)*(*velocity)))
	}
	trace := ricker(*numSamples, *dtMs/msPerSecond, testSignalFrequency, eventTime)

	fmt.Println("\nCorrecting test trace...")
	out, err := corrector.Apply(fn, *offset, trace)
	if err != nil {
		log.Fatalf("Correction failed: %v", err)
	}

	fmt.Printf("Input peak:  %8.1f ms\n", peakTime(trace, *dtMs))
	fmt.Printf("Output peak: %8.1f ms\n", peakTime(out, *dtMs))

	if *showMap {
		fmt.Println("\nTime map (output ms -> input ms):")
		for i, t := range corrector.TimeMap() {
			fmt.Printf("  %8.1f -> %10.3f\n", float64(i)*(*dtMs), t)
		}
	}
}

func parseModel(s string) nmo.Model {
	switch strings.ToLower(s) {
	case "pp":
		return nmo.ModelPP
	case "ps":
		return nmo.ModelPS
	case "vti":
		return nmo.ModelVTI
	case "empirical":
		return nmo.ModelEmpirical
	default:
		return nmo.ModelPP
	}
}

// velocityFunction returns a constant function for model; the empirical
// model takes a curvature and VTI gets a fixed η.
func velocityFunction(model nmo.Model, velocity float64) (*nmo.Function, error) {
	switch model {
	case nmo.ModelVTI:
		return nmo.NewVTIFunction([]float64{0}, []float64{velocity}, []float64{demoEta})
	case nmo.ModelEmpirical:
		return nmo.NewFunction([]float64{0}, []float64{demoCurvature})
	default:
		return nmo.NewFunction([]float64{0}, []float64{velocity})
	}
}

func ricker(n int, dt, freq, t float64) []float64 {
	trace := make([]float64, n)
	for i := range trace {
		a := math.Pi * freq * (float64(i)*dt - t)
		a *= a
		trace[i] = (1 - 2*a) * math.Exp(-a)
	}
	return trace
}

func peakTime(trace []float64, dtMs float64) float64 {
	best := 0
	for i, v := range trace {
		if math.Abs(v) > math.Abs(trace[best]) {
			best = i
		}
	}
	return float64(best) * dtMs
}

func runDemo() {
	fmt.Println("=== Seismic NMO Library Demo ===")

	// Demo 1: moveout models
	fmt.Println("1. Moveout Models")
	fmt.Println("-----------------")
	fmt.Printf("Reflection at t0 = %.0f ms, v = %.0f m/s, dt = %g ms\n",
		testEventTime*msPerSecond, defaultVelocity, demoLongDtMs)

	numSamples := int(2 * testEventTime * msPerSecond / demoLongDtMs)
	models := []nmo.Model{nmo.ModelPP, nmo.ModelPS, nmo.ModelVTI, nmo.ModelEmpirical}
	offsets := []float64{500, 1000, 2000}

	for _, m := range models {
		c, err := nmo.New(&nmo.Config{SampleInterval: demoLongDtMs, NumSamples: numSamples, Model: m})
		if err != nil {
			fmt.Printf("  %s: Error - %v\n", m, err)
			continue
		}
		fn, err := velocityFunction(m, defaultVelocity)
		if err != nil {
			fmt.Printf("  %s: Error - %v\n", m, err)
			continue
		}

		fmt.Printf("  %-10s", m.String()+":")
		for _, x := range offsets {
			if _, err := c.Apply(fn, x, make([]float64, numSamples)); err != nil {
				fmt.Printf(" error %v", err)
				continue
			}
			t := c.TimeMap()[numSamples/2]
			fmt.Printf("  x=%4.0f m: T=%7.1f ms", x, t)
		}
		fmt.Println()
	}

	// Demo 2: stretch mute
	fmt.Println("\n2. Stretch Mute")
	fmt.Println("---------------")
	fn, _ := nmo.NewFunction([]float64{0}, []float64{defaultVelocity})
	for _, limit := range []float64{0, 0.3, 1.0} {
		c, err := nmo.New(&nmo.Config{
			SampleInterval: defaultDtMs,
			NumSamples:     defaultNumSamples,
			StretchMute:    nmo.StretchMute{MaxStretch: limit, TaperSamples: 10, Taper: nmo.TaperCosine},
		})
		if err != nil {
			continue
		}
		ones := make([]float64, defaultNumSamples)
		for i := range ones {
			ones[i] = 1
		}
		out, err := c.Apply(fn, 2*defaultOffset, ones)
		if err != nil {
			continue
		}
		muted := 0
		for _, v := range out {
			if v == 0 {
				muted++
			}
		}
		fmt.Printf("  limit %.1f: %d of %d samples muted at %.0f m\n", limit, muted, defaultNumSamples, 2*defaultOffset)
	}

	// Demo 3: differential NMO
	fmt.Println("\n3. Differential NMO")
	fmt.Println("-------------------")
	c, err := nmo.NewPP(defaultDtMs, defaultNumSamples)
	if err != nil {
		return
	}
	arrival := func(x float64) float64 {
		return math.Sqrt(testEventTime*testEventTime + x*x/(defaultVelocity*defaultVelocity))
	}
	trace := ricker(defaultNumSamples, defaultDtMs/msPerSecond, testSignalFrequency, arrival(2*defaultOffset))
	out, err := c.Differential(fn, 2*defaultOffset, defaultOffset/2, trace)
	if err != nil {
		fmt.Printf("  Error - %v\n", err)
		return
	}
	fmt.Printf("  %.0f m -> %.0f m: peak %.1f ms -> %.1f ms (expected %.1f ms)\n",
		2*defaultOffset, defaultOffset/2,
		peakTime(trace, defaultDtMs), peakTime(out, defaultDtMs), arrival(defaultOffset/2)*msPerSecond)
}

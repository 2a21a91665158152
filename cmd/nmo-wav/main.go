// Command nmo-wav applies or removes normal moveout on a gather stored as a
// multichannel WAV file. Every channel is one trace; the sample interval is
// taken from the sample rate unless -dt overrides it.
//
// Usage:
//
//	nmo-wav -vel 0:1500,2000:2800 -offsets 100:50 gather.wav corrected.wav
//	nmo-wav -vel 0:1500,2000:2800 -offsets 100:50 -remove corrected.wav gather.wav
//	nmo-wav -model vti -vel 0:1500:0.05,2000:2800:0.1 -offsets 100,150,200 in.wav out.wav
//	nmo-wav -dt 2 -stretch 0.5 -taper 20 -fast in.wav out.wav   # float32, stretch mute
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	nmo "github.com/tphakala/go-seismic-nmo"
	"github.com/tphakala/go-seismic-nmo/internal/simdops"
)

const (
	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16    = 32767.0
	maxInt24    = 8388607.0
	maxInt32    = 2147483647.0
	msPerSecond = 1000.0

	// CLI defaults
	defaultVelocity = "0:2000"
	defaultOffsets  = "0:25"
	minRequiredArgs = 2

	// WAV audio format tag for integer PCM
	wavFormatPCM = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// options holds everything parsed from the command line.
type options struct {
	velocity   string
	offsets    string
	model      string
	apex       float64
	damping    float64
	dtMs       float64
	t1Ms       float64
	remove     bool
	horizon    string
	stretch    float64
	taper      int
	taperType  string
	fast       bool
	parallel   bool
	workers    int
	verbose    bool
	inputPath  string
	outputPath string
}

func run() error {
	var opts options
	flag.StringVar(&opts.velocity, "vel", defaultVelocity, "Velocity function as time_ms:velocity[:eta] pairs, comma separated")
	flag.StringVar(&opts.offsets, "offsets", defaultOffsets, "Trace offsets in m: a comma-separated list, or first:spacing")
	flag.StringVar(&opts.model, "model", "pp", "Moveout model: pp, ps, vti, empirical, output-velocity")
	flag.Float64Var(&opts.apex, "apex", 0, "Empirical model: offset of the curve apex in m")
	flag.Float64Var(&opts.damping, "damping", 0, "Empirical model: zero-offset damping in ms")
	flag.Float64Var(&opts.dtMs, "dt", 0, "Sample interval in ms (default: derived from the sample rate)")
	flag.Float64Var(&opts.t1Ms, "t1", 0, "Time of the first sample in ms (must be <= 0)")
	flag.BoolVar(&opts.remove, "remove", false, "Remove moveout instead of applying it")
	flag.StringVar(&opts.horizon, "horizon", "", "Horizon-based velocity interpolation: linear, quadratic (default: dense)")
	flag.Float64Var(&opts.stretch, "stretch", 0, "Maximum NMO stretch before muting (0 disables)")
	flag.IntVar(&opts.taper, "taper", 0, "Stretch mute taper length in samples")
	flag.StringVar(&opts.taperType, "taper-type", "cosine", "Stretch mute taper: linear, cosine, kaiser")
	flag.BoolVar(&opts.fast, "fast", false, "Use float32 precision")
	flag.BoolVar(&opts.parallel, "parallel", true, "Correct traces concurrently")
	flag.IntVar(&opts.workers, "workers", 0, "Number of workers (default: GOMAXPROCS)")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -vel 0:1500,2000:2800 -offsets 100:50 in.wav out.wav   # Apply NMO\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -remove -vel 0:1500,2000:2800 -offsets 100:50 in.wav out.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -stretch 0.5 -taper 20 in.wav out.wav                  # With stretch mute\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}
	opts.inputPath = args[0]
	opts.outputPath = args[1]

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	if opts.verbose {
		log.Printf("Input: %s", opts.inputPath)
		log.Printf("Output: %s", opts.outputPath)
		log.Printf("Model: %s", opts.model)
		if opts.fast {
			log.Printf("Precision: float32 (fast mode)")
		} else {
			log.Printf("Precision: float64 (high precision)")
		}
		if opts.parallel {
			log.Printf("Parallel: enabled")
		} else {
			log.Printf("Parallel: disabled (sequential processing)")
		}
	}

	start := time.Now()
	var stats *correctStats
	var err error
	if opts.fast {
		stats, err = correctWAVGeneric[float32](&opts)
	} else {
		stats, err = correctWAVGeneric[float64](&opts)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	verb := "Applied"
	if opts.remove {
		verb = "Removed"
	}
	fmt.Printf("%s %s moveout: %s -> %s\n", verb, opts.model, filepath.Base(opts.inputPath), filepath.Base(opts.outputPath))
	fmt.Printf("  %d traces x %d samples (%.3g ms, %d-bit)\n",
		stats.traces, stats.samples, stats.dtMs, stats.bitDepth)
	fmt.Printf("  Offsets: %.1f m .. %.1f m\n", stats.minOffset, stats.maxOffset)
	fmt.Printf("  Duration: %.2fs, %.0f traces/s\n",
		elapsed.Seconds(), float64(stats.traces)/elapsed.Seconds())

	return nil
}

type correctStats struct {
	traces    int
	samples   int
	bitDepth  int
	dtMs      float64
	minOffset float64
	maxOffset float64
}

func correctWAVGeneric[F simdops.Float](opts *options) (*correctStats, error) {
	input, err := readWAVGather(opts.inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}

	dtMs := opts.dtMs
	if dtMs == 0 {
		dtMs = msPerSecond / float64(input.rate)
	}

	config, err := buildConfig(opts, dtMs, input.samples)
	if err != nil {
		return nil, err
	}
	fn, err := parseVelocity(opts.velocity)
	if err != nil {
		return nil, err
	}
	offsets, err := parseOffsets(opts.offsets, input.channels)
	if err != nil {
		return nil, err
	}

	if opts.verbose {
		log.Printf("Sample interval: %g ms, %d knots", dtMs, fn.NumKnots())
		info, err := describe(config)
		if err == nil {
			log.Printf("Engine: %s", info)
		}
	}

	traces := deinterleaveGeneric[F](input.data, input.channels, input.bitDepth)

	var corrected [][]F
	switch t := any(traces).(type) {
	case [][]float64:
		out, err := nmo.CorrectGather(config, fn, offsets, t)
		if err != nil {
			return nil, err
		}
		corrected = any(out).([][]F)
	case [][]float32:
		out, err := nmo.CorrectGatherFloat32(config, fn, offsets, t)
		if err != nil {
			return nil, err
		}
		corrected = any(out).([][]F)
	}

	if opts.verbose {
		for i := range corrected {
			log.Printf("Trace %d (%.1f m): rms %.4f -> %.4f, mean %.4f",
				i, offsets[i], simdops.RMS(traces[i]), simdops.RMS(corrected[i]), simdops.Mean(corrected[i]))
		}
	}

	data := interleaveGeneric(corrected, input.bitDepth)
	if err := writeWAVGather(opts.outputPath, data, input.rate, input.bitDepth, input.channels); err != nil {
		return nil, err
	}

	minOff, maxOff := offsetRange(offsets)
	return &correctStats{
		traces:    input.channels,
		samples:   input.samples,
		bitDepth:  input.bitDepth,
		dtMs:      dtMs,
		minOffset: minOff,
		maxOffset: maxOff,
	}, nil
}

// buildConfig maps command-line options onto a corrector configuration.
func buildConfig(opts *options, dtMs float64, numSamples int) (*nmo.Config, error) {
	model, err := parseModel(opts.model)
	if err != nil {
		return nil, err
	}
	taperType, err := parseTaper(opts.taperType)
	if err != nil {
		return nil, err
	}

	config := &nmo.Config{
		SampleInterval:   dtMs,
		NumSamples:       numSamples,
		FirstSampleTime:  opts.t1Ms,
		Model:            model,
		EmpiricalApex:    opts.apex,
		EmpiricalDamping: opts.damping,
		StretchMute: nmo.StretchMute{
			MaxStretch:   opts.stretch,
			TaperSamples: opts.taper,
			Taper:        taperType,
		},
		Workers:        opts.workers,
		EnableParallel: opts.parallel,
	}
	if opts.remove {
		config.Mode = nmo.ModeRemove
	}
	if opts.horizon != "" {
		method, err := parseHorizon(opts.horizon)
		if err != nil {
			return nil, err
		}
		config.Horizon = true
		config.HorizonMethod = method
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// describe builds a corrector for config and summarizes it.
func describe(config *nmo.Config) (string, error) {
	c, err := nmo.New(config)
	if err != nil {
		return "", err
	}
	info := nmo.GetInfo(c)
	return fmt.Sprintf("%s/%s, horizon=%v, %.1f KB scratch, SIMD %s",
		info.Model, info.Mode, info.HorizonBased, float64(info.MemoryUsage)/1024, info.SIMDType), nil
}

package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	nmo "github.com/tphakala/go-seismic-nmo"
	"github.com/tphakala/go-seismic-nmo/internal/simdops"
)

// wavGather holds a decoded WAV file viewed as a gather.
type wavGather struct {
	rate     int
	channels int
	bitDepth int
	samples  int
	data     []int
}

// readWAVGather opens and validates a WAV file and reads all of its samples.
func readWAVGather(path string, verbose bool) (*wavGather, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = inputFile.Close() }()

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	format := decoder.Format()
	channels := format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("invalid channel count %d in %s", channels, path)
	}
	samples := len(buf.Data) / channels
	if samples == 0 {
		return nil, fmt.Errorf("no samples in %s", path)
	}

	g := &wavGather{
		rate:     format.SampleRate,
		channels: channels,
		bitDepth: int(decoder.BitDepth),
		samples:  samples,
		data:     buf.Data[:samples*channels],
	}
	if verbose {
		log.Printf("Input format: %d Hz, %d traces, %d-bit, %d samples per trace",
			g.rate, g.channels, g.bitDepth, g.samples)
	}
	return g, nil
}

// writeWAVGather writes interleaved samples as a PCM WAV file.
func writeWAVGather(path string, data []int, rate, bitDepth, channels int) (err error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := outputFile.Close(); err == nil {
			err = closeErr
		}
	}()

	encoder := wav.NewEncoder(outputFile, rate, bitDepth, channels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	// Close patches the RIFF sizes into the header.
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}

// parseVelocity parses "t:v[:eta],..." into a velocity function. Either all
// knots carry η or none does.
func parseVelocity(s string) (*nmo.Function, error) {
	fields := strings.Split(s, ",")
	times := make([]float64, 0, len(fields))
	vels := make([]float64, 0, len(fields))
	var etas []float64

	for i, field := range fields {
		parts := strings.Split(strings.TrimSpace(field), ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("velocity knot %d %q: want time:velocity[:eta]", i, field)
		}
		values := make([]float64, len(parts))
		for j, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, fmt.Errorf("velocity knot %d: %w", i, err)
			}
			values[j] = v
		}
		if i > 0 && (len(parts) == 3) != (etas != nil) {
			return nil, fmt.Errorf("velocity knot %d: η must be given for every knot or none", i)
		}
		times = append(times, values[0])
		vels = append(vels, values[1])
		if len(parts) == 3 {
			etas = append(etas, values[2])
		}
	}

	if etas != nil {
		return nmo.NewVTIFunction(times, vels, etas)
	}
	return nmo.NewFunction(times, vels)
}

// parseOffsets parses either an explicit comma-separated list of n offsets or
// "first:spacing".
func parseOffsets(s string, n int) ([]float64, error) {
	if first, spacing, ok := strings.Cut(s, ":"); ok {
		x0, err := strconv.ParseFloat(strings.TrimSpace(first), 64)
		if err != nil {
			return nil, fmt.Errorf("first offset: %w", err)
		}
		dx, err := strconv.ParseFloat(strings.TrimSpace(spacing), 64)
		if err != nil {
			return nil, fmt.Errorf("offset spacing: %w", err)
		}
		offsets := make([]float64, n)
		for i := range offsets {
			offsets[i] = x0 + float64(i)*dx
		}
		return offsets, nil
	}

	fields := strings.Split(s, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("got %d offsets for %d traces", len(fields), n)
	}
	offsets := make([]float64, n)
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", i, err)
		}
		offsets[i] = x
	}
	return offsets, nil
}

func offsetRange(offsets []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range offsets {
		lo = math.Min(lo, math.Abs(x))
		hi = math.Max(hi, math.Abs(x))
	}
	return lo, hi
}

func parseModel(s string) (nmo.Model, error) {
	for _, m := range []nmo.Model{nmo.ModelPP, nmo.ModelPS, nmo.ModelVTI, nmo.ModelEmpirical, nmo.ModelOutputVelocity} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown model %q", s)
}

func parseHorizon(s string) (nmo.HorizonMethod, error) {
	switch strings.ToLower(s) {
	case "linear":
		return nmo.HorizonLinear, nil
	case "quadratic":
		return nmo.HorizonQuadratic, nil
	default:
		return 0, fmt.Errorf("unknown horizon method %q", s)
	}
}

func parseTaper(s string) (nmo.TaperType, error) {
	switch strings.ToLower(s) {
	case "linear":
		return nmo.TaperLinear, nil
	case "cosine":
		return nmo.TaperCosine, nil
	case "kaiser":
		return nmo.TaperKaiser, nil
	default:
		return 0, fmt.Errorf("unknown taper %q", s)
	}
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleaveGeneric converts interleaved int samples to per-trace float
// slices normalized to [-1, 1].
func deinterleaveGeneric[F simdops.Float](data []int, channels, bitDepth int) [][]F {
	samplesPerChannel := len(data) / channels
	result := make([][]F, channels)
	for ch := range channels {
		result[ch] = make([]F, samplesPerChannel)
	}

	invMaxVal := 1.0 / getMaxValue(bitDepth)
	for i := range samplesPerChannel {
		base := i * channels
		for ch := range channels {
			result[ch][i] = F(float64(data[base+ch]) * invMaxVal)
		}
	}
	return result
}

// interleaveGeneric converts per-trace float slices to interleaved int
// samples, clamping to [-1, 1].
func interleaveGeneric[F simdops.Float](channels [][]F, bitDepth int) []int {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return nil
	}

	numChannels := len(channels)
	samplesPerChannel := len(channels[0])
	result := make([]int, samplesPerChannel*numChannels)
	maxVal := getMaxValue(bitDepth)

	for i := range samplesPerChannel {
		for ch := range numChannels {
			sample := max(-1.0, min(1.0, float64(channels[ch][i])))
			result[i*numChannels+ch] = int(math.Round(sample * maxVal))
		}
	}
	return result
}

package nmo

import (
	"fmt"

	"github.com/tphakala/go-seismic-nmo/internal/engine"
	"github.com/tphakala/go-seismic-nmo/internal/pipeline"
	"github.com/tphakala/go-seismic-nmo/internal/simdops"
)

// CorrectGather corrects every trace of a gather; traces[i] was recorded at
// offsets[i]. The input traces are not modified.
//
// When config.EnableParallel is set the traces are spread over
// config.Workers goroutines, each with its own engine. The first error stops
// processing and no gather is returned.
func CorrectGather(config *Config, fn *Function, offsets []float64, traces [][]float64) ([][]float64, error) {
	return correctGather(config, fn, offsets, traces)
}

// CorrectGatherFloat32 is like CorrectGather but for float32 traces.
func CorrectGatherFloat32(config *Config, fn *Function, offsets []float64, traces [][]float32) ([][]float32, error) {
	return correctGather(config, fn, offsets, traces)
}

func correctGather[F simdops.Float](config *Config, fn *Function, offsets []float64, traces [][]F) ([][]F, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(offsets) != len(traces) {
		return nil, fmt.Errorf("%w: %d offsets for %d traces", ErrInvalidConfig, len(offsets), len(traces))
	}

	output := make([][]F, len(traces))
	for i := range output {
		output[i] = make([]F, config.NumSamples)
	}

	workers := 1
	if config.EnableParallel {
		workers = config.Workers
	}

	newWorker := func() (*engine.Engine[F], error) {
		return newEngine[F](config)
	}
	process := func(e *engine.Engine[F], i int) error {
		return e.PerformNMO(fn.inner(), offsets[i], traces[i], output[i])
	}

	if err := pipeline.Run(len(traces), workers, newWorker, process); err != nil {
		return nil, err
	}
	return output, nil
}

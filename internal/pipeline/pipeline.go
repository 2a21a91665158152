// Package pipeline distributes the traces of a gather over a pool of
// workers. Each worker owns its own state, typically an NMO engine with its
// scratch buffers, created once and reused for every trace it processes.
package pipeline

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrNoWorkerFactory is returned when Run is called without a worker constructor.
var ErrNoWorkerFactory = errors.New("no worker factory")

// Workers returns the number of goroutines Run uses for numTraces traces.
// A requested count of zero or less selects GOMAXPROCS.
func Workers(requested, numTraces int) int {
	if requested <= 0 {
		requested = runtime.GOMAXPROCS(0)
	}
	return max(1, min(requested, numTraces))
}

// Run calls process(w, i) for every trace index i in [0, numTraces), where w
// is the state of the worker handling that trace. newWorker is called once
// per worker before any trace is processed.
//
// With a single worker the traces are processed in order on the calling
// goroutine. Otherwise the first error stops the distribution of further
// traces; traces already in flight finish. The returned error names the
// failing trace.
func Run[W any](numTraces, workers int, newWorker func() (W, error), process func(w W, i int) error) error {
	if newWorker == nil {
		return ErrNoWorkerFactory
	}
	if numTraces <= 0 {
		return nil
	}

	workers = Workers(workers, numTraces)
	states := make([]W, workers)
	for k := range states {
		w, err := newWorker()
		if err != nil {
			return fmt.Errorf("worker %d: %w", k, err)
		}
		states[k] = w
	}

	if workers == 1 {
		for i := range numTraces {
			if err := process(states[0], i); err != nil {
				return fmt.Errorf("trace %d: %w", i, err)
			}
		}
		return nil
	}

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
		failed   atomic.Bool
	)
	indices := make(chan int, workers)

	for _, state := range states {
		wg.Add(1)
		go func(w W) {
			defer wg.Done()
			for i := range indices {
				if failed.Load() {
					continue
				}
				if err := process(w, i); err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("trace %d: %w", i, err)
					}
					errMu.Unlock()
					failed.Store(true)
				}
			}
		}(state)
	}

	for i := range numTraces {
		if failed.Load() {
			break
		}
		indices <- i
	}
	close(indices)
	wg.Wait()

	return firstErr
}

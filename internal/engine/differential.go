package engine

import (
	"fmt"

	"github.com/tphakala/go-seismic-nmo/internal/interp"
	"github.com/tphakala/go-seismic-nmo/internal/timefunc"
)

// PerformDifferentialNMO moves a trace recorded at offsetIn to the moveout
// of offsetOut. In apply mode this is NMO at offsetIn followed by inverse
// NMO at offsetOut; remove mode swaps the two offsets.
//
// The correction is done in two resampling passes, so it carries the
// interpolation error of both. Horizon-based engines return
// ErrUnsupportedConfiguration. ModelOutputVelocity writes the velocity
// trace as PerformNMO does.
func (e *Engine[F]) PerformDifferentialNMO(fn *timefunc.Function, offsetIn, offsetOut float64, in, out []F) error {
	if e.horizon {
		return fmt.Errorf("%w: differential NMO is not available with horizon-based correction",
			ErrUnsupportedConfiguration)
	}
	if err := e.checkTraces(in, out); err != nil {
		return err
	}
	if err := e.sampleFunctions(fn); err != nil {
		return err
	}

	if e.model == ModelOutputVelocity {
		copy(e.buf.result, e.buf.vel)
		writeTrace(out, e.buf.result)
		return nil
	}

	if e.mode == ModeRemove {
		offsetIn, offsetOut = offsetOut, offsetIn
	}

	e.computeTimeMap(e.buf.timeMap, offsetIn)
	e.computeTimeMap(e.buf.timeDiff, offsetOut)
	interp.XY2YX(e.buf.timeMapInv, e.buf.timeDiff, e.timeFirst, e.sampleInt)
	for i, t := range e.buf.timeMap {
		e.buf.timeDiff[i] = t - e.buf.timeDiff[i]
	}

	loadTrace(e.buf.work, in)
	interp.Process(e.buf.result, e.buf.work, e.buf.timeMap, e.timeFirst, e.sampleInt)
	interp.Process(e.buf.work, e.buf.result, e.buf.timeMapInv, e.timeFirst, e.sampleInt)

	writeTrace(out, e.buf.work)
	return nil
}

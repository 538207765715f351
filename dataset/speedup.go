package dataset

import (
	"fmt"

	"github.com/bvhlab/complexity/errs"
)

// Speedup compares two series at a single sample count.
type Speedup struct {
	// N is the sample count the ratio was taken at.
	N float64
	// Baseline is the baseline time at N.
	Baseline float64
	// Accelerated is the accelerated time at N.
	Accelerated float64
	// Ratio is Baseline / Accelerated.
	Ratio float64
}

// SpeedupAtMax returns baseline time divided by accelerated time at the
// largest sample count in baseline. Both series must come from the same
// table so their points line up index by index.
func SpeedupAtMax(baseline, accelerated Series) (Speedup, error) {
	if baseline.Len() == 0 {
		return Speedup{}, fmt.Errorf("%w: series %q is empty", errs.ErrInsufficientData, baseline.Name)
	}
	if baseline.Len() != accelerated.Len() {
		return Speedup{}, fmt.Errorf("%w: %q has %d points, %q has %d",
			errs.ErrLengthMismatch, baseline.Name, baseline.Len(), accelerated.Name, accelerated.Len())
	}

	idx := baseline.MaxN()
	b, a := baseline.Points[idx], accelerated.Points[idx]
	if b.N != a.N {
		return Speedup{}, fmt.Errorf("%w: point %d has n=%g in %q but n=%g in %q",
			errs.ErrSchemaMismatch, idx, b.N, baseline.Name, a.N, accelerated.Name)
	}
	if !(a.T > 0) {
		return Speedup{}, fmt.Errorf("%w: %q time at n=%g is %g", errs.ErrInvalidDomain, accelerated.Name, a.N, a.T)
	}

	return Speedup{N: b.N, Baseline: b.T, Accelerated: a.T, Ratio: b.T / a.T}, nil
}

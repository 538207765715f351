package regression

import (
	"fmt"
	"math"

	"github.com/bvhlab/complexity/errs"
)

// lineFit is the closed-form least-squares solution for y = intercept + slope*x.
type lineFit struct {
	slope     float64
	intercept float64
	r         float64
	rSquared  float64
	rmse      float64
}

// leastSquares fits y = intercept + slope*x.
//
// slope = cov(x,y)/var(x), intercept = mean(y) - slope*mean(x) and
// R² = r² where r is the Pearson correlation. When every y is identical the
// fit is exact with slope 0 and R² is reported as 0 since r is undefined.
func leastSquares(x, y []float64) (lineFit, error) {
	if len(x) != len(y) {
		return lineFit{}, fmt.Errorf("%w: %d x values vs %d y values", errs.ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return lineFit{}, fmt.Errorf("%w: need at least 2 points, got %d", errs.ErrInsufficientData, len(x))
	}
	if allEqual(x) {
		return lineFit{}, fmt.Errorf("%w: all %d points share x=%g", errs.ErrZeroVariance, len(x), x[0])
	}

	meanX, meanY := calculateMean(x), calculateMean(y)

	// Centered sums keep precision when n spans several decades.
	var sxx, syy, sxy float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}

	fit := lineFit{}
	if allEqual(y) {
		fit.intercept = y[0]
	} else {
		fit.slope = sxy / sxx
		fit.intercept = meanY - fit.slope*meanX
		fit.r = clamp(sxy/math.Sqrt(sxx*syy), -1, 1)
		fit.rSquared = fit.r * fit.r
	}

	var sumSq float64
	for i := range x {
		diff := y[i] - (fit.intercept + fit.slope*x[i])
		sumSq += diff * diff
	}
	fit.rmse = math.Sqrt(sumSq / float64(len(x)))

	return fit, nil
}

// calculateMean calculates the arithmetic mean of a slice of values.
func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func allEqual(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}

	return true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

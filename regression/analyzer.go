package regression

import (
	"fmt"
	"math"
	"slices"

	"github.com/bvhlab/complexity/dataset"
	"github.com/bvhlab/complexity/errs"
	"github.com/bvhlab/complexity/internal/options"
	"github.com/bvhlab/complexity/internal/pool"
)

// rSquaredTieTolerance treats R² values this close as equal when ranking.
const rSquaredTieTolerance = 1e-12

// Analyze fits the trend candidates and the log-log order model to a series
// and classifies its growth.
//
// The series is validated first: every sample count must be strictly
// positive. Candidates default to linear and logarithmic and are ranked by R²;
// R² values within rSquaredTieTolerance keep the configured order, so linear wins ties by default.
//
// Parameters:
//   - series: Ordered (n, t) observations
//   - opts: Optional AnalyzeOption values
//
// Returns:
//   - *Result: Ranked candidates, the order model and its classification
//   - error: errs.ErrInsufficientData, errs.ErrInvalidDomain or errs.ErrZeroVariance
//     when the series cannot be fitted
//
// Example:
//
//	res, err := regression.Analyze(series)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Trend.Formula, res.Label())
func Analyze(series dataset.Series, opts ...AnalyzeOption) (*Result, error) {
	cfg, err := options.Build(defaultAnalyzeConfig(), opts...)
	if err != nil {
		return nil, err
	}

	if series.Len() < 2 {
		return nil, fmt.Errorf("%w: series %q has %d points", errs.ErrInsufficientData, series.Name, series.Len())
	}
	if err = series.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]*Model, 0, len(cfg.models))
	for _, modelType := range cfg.models {
		m, fitErr := Fit(modelType, series.Points)
		if fitErr != nil {
			return nil, fmt.Errorf("series %q %s fit: %w", series.Name, modelType, fitErr)
		}
		candidates = append(candidates, m)
	}

	slices.SortStableFunc(candidates, func(a, b *Model) int {
		switch {
		case math.Abs(a.RSquared-b.RSquared) <= rSquaredTieTolerance:
			return 0
		case a.RSquared > b.RSquared:
			return -1
		default:
			return 1
		}
	})

	order, err := FitLogLog(series.Points)
	if err != nil {
		return nil, fmt.Errorf("series %q order fit: %w", series.Name, err)
	}

	return &Result{
		Series:     series.Name,
		Trend:      candidates[0],
		Candidates: candidates,
		Order:      order,
		Complexity: Classify(order.Slope),
	}, nil
}

// Fit dispatches to the fitter for modelType.
func Fit(modelType ModelType, points []dataset.Point) (*Model, error) {
	switch modelType {
	case ModelTypeLinear:
		return FitLinear(points)
	case ModelTypeLogarithmic:
		return FitLogX(points)
	case ModelTypePower:
		return FitLogLog(points)
	default:
		return nil, fmt.Errorf("unknown model type: %d", modelType)
	}
}

// FitLinear fits t = a + b*n by ordinary least squares.
//
// Returns errs.ErrInsufficientData for fewer than two points, errs.ErrZeroVariance
// when every n is equal and errs.ErrInvalidDomain for non-finite values.
func FitLinear(points []dataset.Point) (*Model, error) {
	fit, err := fitTransformed(points, identity, identity)
	if err != nil {
		return nil, err
	}

	return newModel(ModelTypeLinear, fit, len(points),
		fmt.Sprintf("t = %.6g + %.6g * n", fit.intercept, fit.slope),
		NewLinearEstimator(fit.intercept, fit.slope)), nil
}

// FitLogX fits t = a + b*ln(n) by ordinary least squares on (ln n, t).
//
// Every n must be strictly positive; otherwise errs.ErrInvalidDomain is
// returned before any logarithm is taken.
func FitLogX(points []dataset.Point) (*Model, error) {
	fit, err := fitTransformed(points, logOf("n"), identity)
	if err != nil {
		return nil, err
	}

	return newModel(ModelTypeLogarithmic, fit, len(points),
		fmt.Sprintf("t = %.6g + %.6g * ln(n)", fit.intercept, fit.slope),
		NewLogarithmicEstimator(fit.intercept, fit.slope)), nil
}

// FitLogLog fits ln(t) = c + s*ln(n) by ordinary least squares.
//
// The slope s is the empirical growth order: about 1 for linear time and
// near 0 for logarithmic time. Both n and t must be strictly positive.
func FitLogLog(points []dataset.Point) (*Model, error) {
	fit, err := fitTransformed(points, logOf("n"), logOf("t"))
	if err != nil {
		return nil, err
	}

	a := math.Exp(fit.intercept)

	return newModel(ModelTypePower, fit, len(points),
		fmt.Sprintf("t = %.6g * n^%.3f", a, fit.slope),
		NewPowerEstimator(a, fit.slope)), nil
}

func newModel(modelType ModelType, fit lineFit, points int, formula string, est Estimator) *Model {
	return &Model{
		Type:      modelType,
		Slope:     fit.slope,
		Intercept: fit.intercept,
		R:         fit.r,
		RSquared:  fit.rSquared,
		RMSE:      fit.rmse,
		Points:    points,
		Formula:   formula,
		Estimator: est,
	}
}

// transform maps a raw coordinate into fitting space or rejects it.
type transform func(v float64) (float64, error)

func identity(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: non-finite value %g", errs.ErrInvalidDomain, v)
	}

	return v, nil
}

func logOf(name string) transform {
	return func(v float64) (float64, error) {
		if !(v > 0) || math.IsInf(v, 1) {
			return 0, fmt.Errorf("%w: ln(%s) undefined for %s=%g", errs.ErrInvalidDomain, name, name, v)
		}

		return math.Log(v), nil
	}
}

// fitTransformed applies tx to every n and ty to every t, then solves the
// least-squares line. Scratch slices come from the shared float64 pool.
func fitTransformed(points []dataset.Point, tx, ty transform) (lineFit, error) {
	if len(points) < 2 {
		return lineFit{}, fmt.Errorf("%w: need at least 2 points, got %d", errs.ErrInsufficientData, len(points))
	}

	xs, cleanupX := pool.GetFloat64Slice(len(points))
	defer cleanupX()
	ys, cleanupY := pool.GetFloat64Slice(len(points))
	defer cleanupY()

	for i, p := range points {
		x, err := tx(p.N)
		if err != nil {
			return lineFit{}, fmt.Errorf("point %d: %w", i, err)
		}
		y, err := ty(p.T)
		if err != nil {
			return lineFit{}, fmt.Errorf("point %d: %w", i, err)
		}
		xs[i], ys[i] = x, y
	}

	return leastSquares(xs, ys)
}

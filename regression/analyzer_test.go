package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bvhlab/complexity/dataset"
	"github.com/bvhlab/complexity/errs"
)

func pointsFrom(ns []float64, f func(n float64) float64) []dataset.Point {
	points := make([]dataset.Point, len(ns))
	for i, n := range ns {
		points[i] = dataset.Point{N: n, T: f(n)}
	}

	return points
}

var (
	baselineSeries = dataset.Series{
		Name:   "No BVH",
		Points: []dataset.Point{{N: 10, T: 0.1}, {N: 100, T: 1.0}, {N: 1000, T: 10.0}},
	}
	acceleratedSeries = dataset.Series{
		Name:   "With BVH",
		Points: []dataset.Point{{N: 10, T: 0.01}, {N: 100, T: 0.02}, {N: 1000, T: 0.03}},
	}
)

func TestFitLinear_RecoversExactLine(t *testing.T) {
	tests := []struct {
		name      string
		ns        []float64
		slope     float64
		intercept float64
	}{
		{"two points", []float64{1, 2}, 3, 4},
		{"unit slope", []float64{10, 20, 30, 40}, 1, 0},
		{"negative slope", []float64{5, 50, 500}, -0.25, 200},
		{"tiny slope", []float64{100, 1000, 10000, 100000}, 1e-6, 0.003},
		{"unsorted", []float64{700, 3, 90, 12}, 0.5, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := pointsFrom(tt.ns, func(n float64) float64 { return tt.slope*n + tt.intercept })

			m, err := FitLinear(points)
			require.NoError(t, err)
			require.Equal(t, ModelTypeLinear, m.Type)
			require.InDelta(t, tt.slope, m.Slope, 1e-9*math.Max(1, math.Abs(tt.slope)))
			require.InDelta(t, tt.intercept, m.Intercept, 1e-9*math.Max(1, math.Abs(tt.intercept)))
			require.InDelta(t, 1.0, m.RSquared, 1e-9)
			require.InDelta(t, 0, m.RMSE, 1e-9)
			require.Equal(t, len(tt.ns), m.Points)
		})
	}
}

func TestFitLogX_RecoversExactCurve(t *testing.T) {
	tests := []struct {
		name string
		ns   []float64
		a, b float64
	}{
		{"decades", []float64{10, 100, 1000, 10000}, 0.004, 0.01},
		{"irregular", []float64{2, 5, 17, 250, 4096}, 0.5, 1.2},
		{"decreasing", []float64{1, 3, 9}, -2, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := pointsFrom(tt.ns, func(n float64) float64 { return tt.a*math.Log(n) + tt.b })

			m, err := FitLogX(points)
			require.NoError(t, err)
			require.Equal(t, ModelTypeLogarithmic, m.Type)
			require.InDelta(t, tt.a, m.Slope, 1e-9)
			require.InDelta(t, tt.b, m.Intercept, 1e-9)
			require.InDelta(t, 1.0, m.RSquared, 1e-9)

			for _, p := range points {
				require.InDelta(t, p.T, m.Estimator.Estimate(p.N), 1e-9)
			}
		})
	}
}

func TestFitLogLog_RecoversOrder(t *testing.T) {
	tests := []struct {
		name  string
		ns    []float64
		order float64
		coef  float64
	}{
		{"linear", []float64{10, 100, 1000}, 1.0, 1e-3},
		{"quadratic", []float64{8, 16, 32, 64, 128}, 2.0, 3e-7},
		{"square root", []float64{4, 9, 16, 25}, 0.5, 0.02},
		{"n log-ish", []float64{1000, 2000, 5000, 20000}, 1.12, 5e-5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := pointsFrom(tt.ns, func(n float64) float64 { return tt.coef * math.Pow(n, tt.order) })

			m, err := FitLogLog(points)
			require.NoError(t, err)
			require.Equal(t, ModelTypePower, m.Type)
			require.InDelta(t, tt.order, m.Slope, 1e-9)
			require.InDelta(t, math.Log(tt.coef), m.Intercept, 1e-9)
			require.InDelta(t, 1.0, m.RSquared, 1e-9)

			coeffs := m.Estimator.Coefficients()
			require.InEpsilon(t, tt.coef, coeffs[0], 1e-9)
			require.InDelta(t, tt.order, coeffs[1], 1e-9)
		})
	}
}

func TestFit_InsufficientData(t *testing.T) {
	single := []dataset.Point{{N: 10, T: 0.1}}

	for _, modelType := range []ModelType{ModelTypeLinear, ModelTypeLogarithmic, ModelTypePower} {
		t.Run(modelType.String(), func(t *testing.T) {
			_, err := Fit(modelType, single)
			require.ErrorIs(t, err, errs.ErrInsufficientData)

			_, err = Fit(modelType, nil)
			require.ErrorIs(t, err, errs.ErrInsufficientData)
		})
	}
}

func TestFit_InvalidDomain(t *testing.T) {
	tests := []struct {
		name   string
		fit    func([]dataset.Point) (*Model, error)
		points []dataset.Point
	}{
		{"log-x zero n", FitLogX, []dataset.Point{{N: 0, T: 1}, {N: 10, T: 2}}},
		{"log-x negative n", FitLogX, []dataset.Point{{N: 10, T: 1}, {N: -10, T: 2}}},
		{"log-log zero n", FitLogLog, []dataset.Point{{N: 0, T: 1}, {N: 10, T: 2}}},
		{"log-log zero t", FitLogLog, []dataset.Point{{N: 1, T: 0}, {N: 10, T: 2}}},
		{"log-log negative t", FitLogLog, []dataset.Point{{N: 1, T: 1}, {N: 10, T: -2}}},
		{"log-log nan n", FitLogLog, []dataset.Point{{N: math.NaN(), T: 1}, {N: 10, T: 2}}},
		{"linear nan t", FitLinear, []dataset.Point{{N: 1, T: math.NaN()}, {N: 10, T: 2}}},
		{"linear inf n", FitLinear, []dataset.Point{{N: math.Inf(1), T: 1}, {N: 10, T: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.fit(tt.points)
			require.Nil(t, m)
			require.ErrorIs(t, err, errs.ErrInvalidDomain)
			require.True(t, errs.IsDegenerate(err))
		})
	}
}

func TestFit_ZeroVariance(t *testing.T) {
	points := []dataset.Point{{N: 5, T: 0.1}, {N: 5, T: 0.2}, {N: 5, T: 0.3}}

	_, err := FitLinear(points)
	require.ErrorIs(t, err, errs.ErrZeroVariance)
	_, err = FitLogLog(points)
	require.ErrorIs(t, err, errs.ErrZeroVariance)
}

func TestFit_ConstantTime(t *testing.T) {
	points := pointsFrom([]float64{10, 100, 1000}, func(float64) float64 { return 0.1 })

	m, err := FitLinear(points)
	require.NoError(t, err)
	require.Equal(t, 0.0, m.Slope)
	require.Equal(t, 0.1, m.Intercept)
	require.Equal(t, 0.0, m.RSquared)
	require.Equal(t, 0.0, m.RMSE)
}

func TestAnalyze_EndToEnd(t *testing.T) {
	t.Run("baseline is linear", func(t *testing.T) {
		res, err := Analyze(baselineSeries)
		require.NoError(t, err)
		require.Equal(t, "No BVH", res.Series)

		require.Equal(t, ModelTypeLinear, res.Trend.Type)
		require.InDelta(t, 0.01, res.Trend.Slope, 1e-4)
		require.InDelta(t, 1.0, res.Trend.RSquared, 1e-9)

		require.InDelta(t, 1.0, res.Order.Slope, 1e-9)
		require.Equal(t, ComplexityLinear, res.Complexity)
		require.Equal(t, "O(n)", res.Label())
	})

	t.Run("accelerated is logarithmic", func(t *testing.T) {
		res, err := Analyze(acceleratedSeries)
		require.NoError(t, err)

		require.Equal(t, ModelTypeLogarithmic, res.Trend.Type)
		require.InDelta(t, 0.01/math.Ln10, res.Trend.Slope, 1e-9)
		require.InDelta(t, 1.0, res.Trend.RSquared, 1e-9)

		require.Less(t, res.Order.Slope, 1.0)
		require.InDelta(t, math.Log(3)/(2*math.Ln10), res.Order.Slope, 1e-9)
		require.Equal(t, ComplexityLogarithmic, res.Complexity)
		require.Equal(t, "O(log n)", res.Label())
	})
}

func TestAnalyze_RanksCandidates(t *testing.T) {
	res, err := Analyze(acceleratedSeries)
	require.NoError(t, err)
	require.Len(t, res.Candidates, 2)
	require.Same(t, res.Trend, res.Candidates[0])
	require.GreaterOrEqual(t, res.Candidates[0].RSquared, res.Candidates[1].RSquared)

	require.NotNil(t, res.Candidate(ModelTypeLinear))
	require.NotNil(t, res.Candidate(ModelTypeLogarithmic))
	require.Nil(t, res.Candidate(ModelTypePower))
}

func TestAnalyze_TiesKeepConfiguredOrder(t *testing.T) {
	// Any two points are fitted exactly by both candidates.
	two := dataset.Series{Name: "pair", Points: []dataset.Point{{N: 10, T: 1}, {N: 20, T: 3}}}

	res, err := Analyze(two)
	require.NoError(t, err)
	require.Equal(t, ModelTypeLinear, res.Trend.Type)

	res, err = Analyze(two, WithModels(ModelTypeLogarithmic, ModelTypeLinear))
	require.NoError(t, err)
	require.Equal(t, ModelTypeLogarithmic, res.Trend.Type)
}

func TestAnalyze_Errors(t *testing.T) {
	t.Run("single point", func(t *testing.T) {
		_, err := Analyze(dataset.Series{Points: []dataset.Point{{N: 10, T: 1}}})
		require.ErrorIs(t, err, errs.ErrInsufficientData)
	})

	t.Run("non-positive n", func(t *testing.T) {
		_, err := Analyze(dataset.Series{Points: []dataset.Point{{N: 0, T: 1}, {N: 10, T: 2}}})
		require.ErrorIs(t, err, errs.ErrInvalidDomain)
	})

	t.Run("non-positive t", func(t *testing.T) {
		_, err := Analyze(dataset.Series{Points: []dataset.Point{{N: 1, T: 0}, {N: 10, T: 2}}})
		require.ErrorIs(t, err, errs.ErrInvalidDomain)
	})

	t.Run("bad option", func(t *testing.T) {
		_, err := Analyze(baselineSeries, WithModels())
		require.Error(t, err)
	})
}

func TestAnalyze_Deterministic(t *testing.T) {
	first, err := Analyze(acceleratedSeries)
	require.NoError(t, err)
	second, err := Analyze(acceleratedSeries)
	require.NoError(t, err)

	require.Equal(t, first.Trend.Slope, second.Trend.Slope)
	require.Equal(t, first.Trend.Intercept, second.Trend.Intercept)
	require.Equal(t, first.Trend.RSquared, second.Trend.RSquared)
	require.Equal(t, first.Order.Slope, second.Order.Slope)
}

func TestModel_Predict(t *testing.T) {
	m, err := FitLinear(baselineSeries.Points)
	require.NoError(t, err)

	got := m.Predict([]float64{10, 500})
	require.Len(t, got, 2)
	require.InDelta(t, 0.1, got[0], 1e-9)
	require.InDelta(t, 5.0, got[1], 1e-9)
}

func TestWithModels(t *testing.T) {
	t.Run("deduplicates", func(t *testing.T) {
		res, err := Analyze(baselineSeries, WithModels(ModelTypePower, ModelTypePower, ModelTypeLinear))
		require.NoError(t, err)
		require.Len(t, res.Candidates, 2)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := Analyze(baselineSeries, WithModels(ModelType(42)))
		require.Error(t, err)
	})

	t.Run("by name", func(t *testing.T) {
		res, err := Analyze(acceleratedSeries, WithModelNames("Linear"))
		require.NoError(t, err)
		require.Len(t, res.Candidates, 1)
		require.Equal(t, ModelTypeLinear, res.Trend.Type)

		_, err = Analyze(acceleratedSeries, WithModelNames("cubic"))
		require.Error(t, err)
	})
}

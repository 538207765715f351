package regression

import "fmt"

// Model is a fitted least-squares line in a transformed space, plus the
// estimator that maps it back to (n, t).
//
// Slope, Intercept, R, RSquared and RMSE all refer to the transformed
// coordinates of the model type:
//   - linear:      x = n,     y = t
//   - logarithmic: x = ln(n), y = t
//   - power:       x = ln(n), y = ln(t)
type Model struct {
	// Type is the model type (linear, logarithmic, power).
	Type ModelType
	// Slope is the fitted slope; for power models it is the empirical growth order.
	Slope float64
	// Intercept is the fitted intercept.
	Intercept float64
	// R is the Pearson correlation of the transformed data.
	R float64
	// RSquared is R², the coefficient of determination (0-1, higher is better).
	RSquared float64
	// RMSE is the root mean square residual in the transformed space.
	RMSE float64
	// Points is the number of observations the model was fitted on.
	Points int
	// Formula is a human-readable representation of the model.
	Formula string
	// Estimator evaluates the model at a sample count.
	Estimator Estimator
}

// Predict evaluates the model at each sample count in ns.
func (m *Model) Predict(ns []float64) []float64 {
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = m.Estimator.Estimate(n)
	}

	return out
}

// String returns a string representation of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{Type: %s, R²: %.4f, RMSE: %.4g, Formula: %s}",
		m.Type, m.RSquared, m.RMSE, m.Formula)
}

// Result is the outcome of analyzing one series.
type Result struct {
	// Series is the name of the analyzed series.
	Series string
	// Trend is the candidate with the highest R², used for the linear-scale trend curve.
	Trend *Model
	// Candidates holds every fitted trend candidate ranked by R² (best first).
	Candidates []*Model
	// Order is the log-log fit whose slope estimates the growth order.
	Order *Model
	// Complexity classifies Order.Slope.
	Complexity Complexity
}

// Label returns the Big-O label for the result, e.g. "O(n)".
func (r *Result) Label() string {
	if r.Order == nil {
		return ComplexityUnknown.Label(0)
	}

	return r.Complexity.Label(r.Order.Slope)
}

// Candidate returns the fitted candidate of the given type, or nil.
func (r *Result) Candidate(modelType ModelType) *Model {
	for _, m := range r.Candidates {
		if m.Type == modelType {
			return m
		}
	}

	return nil
}

// String returns a string representation of the result.
func (r *Result) String() string {
	if r.Trend == nil {
		return "Result{Trend: nil}"
	}

	return fmt.Sprintf("Result{Series: %q, Trend: %s, Order: %.2f, Complexity: %s}",
		r.Series, r.Trend, r.Order.Slope, r.Label())
}

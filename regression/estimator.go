package regression

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// ModelType represents the type of regression model.
type ModelType int

const (
	// ModelTypeLinear represents the linear model: t = a + b * n
	ModelTypeLinear ModelType = iota
	// ModelTypeLogarithmic represents the logarithmic model: t = a + b * ln(n)
	ModelTypeLogarithmic
	// ModelTypePower represents the power model: t = a * n^b, fitted in log-log space
	ModelTypePower
)

// modelTypeNames maps ModelType to their string representations.
var modelTypeNames = map[ModelType]string{
	ModelTypeLinear:      "linear",
	ModelTypeLogarithmic: "logarithmic",
	ModelTypePower:       "power",
}

// String returns the string representation of the model type.
func (mt ModelType) String() string {
	if name, exists := modelTypeNames[mt]; exists {
		return name
	}

	return "unknown"
}

// modelTypeFromString maps string names, including short aliases, to ModelType.
var modelTypeFromString = map[string]ModelType{
	"linear":      ModelTypeLinear,
	"logarithmic": ModelTypeLogarithmic,
	"log":         ModelTypeLogarithmic,
	"power":       ModelTypePower,
	"loglog":      ModelTypePower,
}

// ModelTypeFromString returns the ModelType for a given string name.
// Returns ModelType(-1) for unknown names.
func ModelTypeFromString(name string) ModelType {
	if modelType, exists := modelTypeFromString[strings.ToLower(strings.TrimSpace(name))]; exists {
		return modelType
	}

	return ModelType(-1)
}

// Estimator evaluates a fitted model at a sample count.
type Estimator interface {
	// Estimate returns the predicted time for sample count n.
	Estimate(n float64) float64
	// Type returns the model type.
	Type() ModelType
	// Coefficients returns the model coefficients [a, b].
	Coefficients() []float64
	// SetCoefficients replaces the coefficients; exactly two are expected.
	SetCoefficients(coeffs []float64) error
}

// newEmptyEstimator creates a zero-valued estimator for the given ModelType.
func newEmptyEstimator(modelType ModelType) Estimator {
	switch modelType {
	case ModelTypeLinear:
		return NewLinearEstimator(0, 0)
	case ModelTypeLogarithmic:
		return NewLogarithmicEstimator(0, 0)
	case ModelTypePower:
		return NewPowerEstimator(0, 0)
	default:
		return nil
	}
}

// coefficientPair is shared by the two-parameter estimators.
type coefficientPair struct {
	a, b   float64
	coeffs []float64 // reused by Coefficients
}

func newCoefficientPair(a, b float64) coefficientPair {
	return coefficientPair{a: a, b: b, coeffs: make([]float64, 2)}
}

func (c *coefficientPair) Coefficients() []float64 {
	c.coeffs[0] = c.a
	c.coeffs[1] = c.b

	return c.coeffs
}

func (c *coefficientPair) set(model ModelType, coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("%s model expects exactly 2 coefficients, got %d", model, len(coeffs))
	}
	c.a = coeffs[0]
	c.b = coeffs[1]

	return nil
}

// LinearEstimator implements the linear model: t = a + b * n
type LinearEstimator struct {
	coefficientPair
}

// NewLinearEstimator creates a new linear estimator with intercept a and slope b.
func NewLinearEstimator(a, b float64) *LinearEstimator {
	return &LinearEstimator{coefficientPair: newCoefficientPair(a, b)}
}

// Estimate returns a + b * n.
func (l *LinearEstimator) Estimate(n float64) float64 {
	return l.a + l.b*n
}

// Type returns the model type.
func (l *LinearEstimator) Type() ModelType {
	return ModelTypeLinear
}

// SetCoefficients updates [a, b].
func (l *LinearEstimator) SetCoefficients(coeffs []float64) error {
	return l.set(ModelTypeLinear, coeffs)
}

// LogarithmicEstimator implements the logarithmic model: t = a + b * ln(n)
type LogarithmicEstimator struct {
	coefficientPair
}

// NewLogarithmicEstimator creates a new logarithmic estimator with the given coefficients.
func NewLogarithmicEstimator(a, b float64) *LogarithmicEstimator {
	return &LogarithmicEstimator{coefficientPair: newCoefficientPair(a, b)}
}

// Estimate returns a + b * ln(n), or NaN for n <= 0.
func (l *LogarithmicEstimator) Estimate(n float64) float64 {
	if n <= 0 {
		return math.NaN()
	}

	return l.a + l.b*math.Log(n)
}

// Type returns the model type.
func (l *LogarithmicEstimator) Type() ModelType {
	return ModelTypeLogarithmic
}

// SetCoefficients updates [a, b].
func (l *LogarithmicEstimator) SetCoefficients(coeffs []float64) error {
	return l.set(ModelTypeLogarithmic, coeffs)
}

// PowerEstimator implements the power model: t = a * n^b
//
// The log-log fit ln(t) = ln(a) + b*ln(n) produces it, so b is the
// empirical growth order.
type PowerEstimator struct {
	coefficientPair
}

// NewPowerEstimator creates a new power estimator with the given coefficients.
func NewPowerEstimator(a, b float64) *PowerEstimator {
	return &PowerEstimator{coefficientPair: newCoefficientPair(a, b)}
}

// Estimate returns a * n^b, or NaN for n <= 0.
func (p *PowerEstimator) Estimate(n float64) float64 {
	if n <= 0 {
		return math.NaN()
	}

	return p.a * math.Pow(n, p.b)
}

// Type returns the model type.
func (p *PowerEstimator) Type() ModelType {
	return ModelTypePower
}

// SetCoefficients updates [a, b].
func (p *PowerEstimator) SetCoefficients(coeffs []float64) error {
	return p.set(ModelTypePower, coeffs)
}

// NewEstimator creates an estimator from a model name and coefficients.
//
// This is useful to re-create a trend curve from coefficients stored in a
// YAML summary without refitting the data.
//
// Parameters:
//   - name: Model type name ("linear", "logarithmic", "power"; case-insensitive)
//   - coeffs: Model coefficients [a, b]
//
// Returns:
//   - Estimator: Estimator with the coefficients applied
//   - error: Unknown model name or wrong coefficient count
//
// Example:
//
//	est, err := regression.NewEstimator("power", []float64{1e-3, 1.0})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	t := est.Estimate(1000)
func NewEstimator(name string, coeffs []float64) (Estimator, error) {
	modelType := ModelTypeFromString(name)
	if modelType == ModelType(-1) {
		supportedTypes := make([]string, 0, len(modelTypeNames))
		for _, modelTypeName := range modelTypeNames {
			supportedTypes = append(supportedTypes, modelTypeName)
		}
		slices.Sort(supportedTypes)

		return nil, fmt.Errorf("unknown model type: %s. Supported types: %s", name, strings.Join(supportedTypes, ", "))
	}

	estimator := newEmptyEstimator(modelType)
	if err := estimator.SetCoefficients(coeffs); err != nil {
		return nil, err
	}

	return estimator, nil
}

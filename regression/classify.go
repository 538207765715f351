package regression

import (
	"fmt"
	"math"
)

// Complexity is a growth class derived from the log-log slope.
type Complexity int

const (
	// ComplexityUnknown is returned for a non-finite order.
	ComplexityUnknown Complexity = iota
	// ComplexityLogarithmic covers orders below 0.3.
	ComplexityLogarithmic
	// ComplexitySublinear covers orders in [0.3, 0.8).
	ComplexitySublinear
	// ComplexityLinear covers orders in [0.8, 1.2).
	ComplexityLinear
	// ComplexitySuperlinear covers orders in [1.2, 1.8).
	ComplexitySuperlinear
	// ComplexityQuadratic covers orders in [1.8, 2.2).
	ComplexityQuadratic
	// ComplexityPolynomial covers orders of 2.2 and above.
	ComplexityPolynomial
)

// Band edges on the log-log slope.
const (
	LogarithmicMaxOrder = 0.3
	SublinearMaxOrder   = 0.8
	LinearMaxOrder      = 1.2
	SuperlinearMaxOrder = 1.8
	QuadraticMaxOrder   = 2.2
)

var complexityNames = map[Complexity]string{
	ComplexityUnknown:     "unknown",
	ComplexityLogarithmic: "logarithmic",
	ComplexitySublinear:   "sub-linear",
	ComplexityLinear:      "linear",
	ComplexitySuperlinear: "super-linear",
	ComplexityQuadratic:   "quadratic",
	ComplexityPolynomial:  "polynomial",
}

// String returns the class name, e.g. "sub-linear".
func (c Complexity) String() string {
	if name, ok := complexityNames[c]; ok {
		return name
	}

	return "unknown"
}

// Classify maps an empirical growth order to its complexity class.
func Classify(order float64) Complexity {
	switch {
	case math.IsNaN(order) || math.IsInf(order, 0):
		return ComplexityUnknown
	case order < LogarithmicMaxOrder:
		return ComplexityLogarithmic
	case order < SublinearMaxOrder:
		return ComplexitySublinear
	case order < LinearMaxOrder:
		return ComplexityLinear
	case order < SuperlinearMaxOrder:
		return ComplexitySuperlinear
	case order < QuadraticMaxOrder:
		return ComplexityQuadratic
	default:
		return ComplexityPolynomial
	}
}

// Label renders the Big-O label for the class. Classes without a canonical
// form print the measured order, e.g. "O(n^0.52)".
func (c Complexity) Label(order float64) string {
	switch c {
	case ComplexityLogarithmic:
		return "O(log n)"
	case ComplexityLinear:
		return "O(n)"
	case ComplexityQuadratic:
		return "O(n^2)"
	case ComplexitySublinear, ComplexitySuperlinear, ComplexityPolynomial:
		return fmt.Sprintf("O(n^%.2f)", order)
	default:
		return "O(?)"
	}
}

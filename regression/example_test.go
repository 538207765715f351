package regression_test

import (
	"fmt"
	"log"

	"github.com/bvhlab/complexity/dataset"
	"github.com/bvhlab/complexity/regression"
)

// ExampleAnalyze fits a baseline and an accelerated series and prints their growth order.
func ExampleAnalyze() {
	baseline := dataset.Series{
		Name:   "No BVH",
		Points: []dataset.Point{{N: 10, T: 0.1}, {N: 100, T: 1.0}, {N: 1000, T: 10.0}},
	}
	accelerated := dataset.Series{
		Name:   "With BVH",
		Points: []dataset.Point{{N: 10, T: 0.01}, {N: 100, T: 0.02}, {N: 1000, T: 0.03}},
	}

	for _, s := range []dataset.Series{baseline, accelerated} {
		res, err := regression.Analyze(s)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("%s: %s fit slope %.4f (R² = %.4f), log-log slope %.2f => %s\n",
			res.Series, res.Trend.Type, res.Trend.Slope, res.Trend.RSquared, res.Order.Slope, res.Label())
	}

	// Output:
	// No BVH: linear fit slope 0.0100 (R² = 1.0000), log-log slope 1.00 => O(n)
	// With BVH: logarithmic fit slope 0.0043 (R² = 1.0000), log-log slope 0.24 => O(log n)
}

// ExampleNewEstimator rebuilds a trend curve from stored coefficients.
func ExampleNewEstimator() {
	est, err := regression.NewEstimator("power", []float64{0.001, 1.0})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("t(5000) = %.2f\n", est.Estimate(5000))

	// Output:
	// t(5000) = 5.00
}

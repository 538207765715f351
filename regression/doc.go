// Package regression estimates the growth order of benchmark timings.
//
// It fits ordinary least-squares lines to (sample count, time) observations
// under three transforms and classifies the result as a Big-O label.
//
// # Fits
//
//   - **Linear**: t = a + b * n
//   - **Logarithmic**: t = a + b * ln(n)
//   - **Power**: ln(t) = ln(a) + b * ln(n), i.e. t = a * n^b
//
// All three use the closed-form solution slope = cov(x,y)/var(x),
// intercept = mean(y) - slope*mean(x), and R² = r² where r is the Pearson
// correlation of the transformed data.
//
// The slope of the power fit is the empirical growth order. A value near 1
// means linear time; a value near 0 means logarithmic time.
//
// # Usage
//
//	res, err := regression.Analyze(series)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%s: %s (R²=%.4f), order %.2f => %s\n",
//	    res.Series, res.Trend.Formula, res.Trend.RSquared, res.Order.Slope, res.Label())
//
// Analyze ranks linear and logarithmic candidates by R² and keeps the best
// as the trend. Use WithModels to restrict or extend the candidates.
//
// # Classification
//
//	order < 0.3          O(log n)
//	0.3 <= order < 0.8   O(n^k), sub-linear
//	0.8 <= order < 1.2   O(n)
//	1.2 <= order < 1.8   O(n^k), super-linear
//	1.8 <= order < 2.2   O(n^2)
//	order >= 2.2         O(n^k), polynomial
//
// # Errors
//
// Fitting fewer than two points returns errs.ErrInsufficientData. A
// non-positive n (or t for the power fit) returns errs.ErrInvalidDomain before
// any logarithm is taken. Identical sample counts return errs.ErrZeroVariance.
package regression

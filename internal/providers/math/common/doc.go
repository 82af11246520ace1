// Package common holds the pieces shared by every function in the math
// provider: the Function capability, series configuration and argument
// validation.
//
// Evaluation never returns an error. A domain violation (undefined input,
// invalid precision, near-zero denominator) yields NaN, and NaN propagates
// through arithmetic so composite formulas only need boundary checks:
//
//	sin, _ := operations.NewSin(common.DefaultConfig())
//	y := sin.Calculate(x, 1e-6)
//	if math.IsNaN(y) {
//		// undefined at x
//	}
//
// Comparisons against NaN are always false, so guards are written as
// "if |d| < precision then NaN" and never as "if |d| >= precision then ok".
//
// Construction problems (bad epsilon, bad iteration budget, bad logarithm
// base) are reported as errors wrapping the sentinels in this package.
package common

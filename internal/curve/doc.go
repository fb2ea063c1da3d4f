// Package curve evaluates cubic Bézier curves.
//
// Every function is pure: the same control points and parameter always give
// the same result, and nothing is stored between calls.
//
//   - [Position]: B(t)
//   - [Derivative]: B'(t)
//   - [Tangent]: B'(t) normalized, zero when degenerate
//   - [Sample]: uniform polyline over t ∈ [0,1]
package curve

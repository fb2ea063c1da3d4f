package curve

import "github.com/san-kum/springcurve/internal/geom"

// Position evaluates the cubic Bézier B(t) in Bernstein form:
//
//	B(t) = (1-t)³p0 + 3(1-t)²t·p1 + 3(1-t)t²·p2 + t³p3
//
// t is not clamped; values outside [0,1] extrapolate.
func Position(t float64, p0, p1, p2, p3 geom.Point) geom.Point {
	u := 1 - t
	uu, tt := u*u, t*t
	b0 := uu * u
	b1 := 3 * uu * t
	b2 := 3 * u * tt
	b3 := tt * t

	return geom.Point{
		X: b0*p0.X + b1*p1.X + b2*p2.X + b3*p3.X,
		Y: b0*p0.Y + b1*p1.Y + b2*p2.Y + b3*p3.Y,
	}
}

// Derivative returns the raw B'(t):
//
//	B'(t) = 3(1-t)²(p1-p0) + 6(1-t)t(p2-p1) + 3t²(p3-p2)
func Derivative(t float64, p0, p1, p2, p3 geom.Point) geom.Point {
	u := 1 - t
	a := 3 * u * u
	b := 6 * u * t
	c := 3 * t * t

	d01, d12, d23 := p1.Sub(p0), p2.Sub(p1), p3.Sub(p2)
	return geom.Point{
		X: a*d01.X + b*d12.X + c*d23.X,
		Y: a*d01.Y + b*d12.Y + c*d23.Y,
	}
}

// Tangent returns the unit direction of B'(t), or the zero vector when the
// derivative vanishes.
func Tangent(t float64, p0, p1, p2, p3 geom.Point) geom.Point {
	return Derivative(t, p0, p1, p2, p3).Normalize()
}

// Cubic bundles the four control points of one curve.
type Cubic struct {
	P0, P1, P2, P3 geom.Point
}

func (c Cubic) At(t float64) geom.Point {
	return Position(t, c.P0, c.P1, c.P2, c.P3)
}

func (c Cubic) TangentAt(t float64) geom.Point {
	return Tangent(t, c.P0, c.P1, c.P2, c.P3)
}

func (c Cubic) Points() [4]geom.Point {
	return [4]geom.Point{c.P0, c.P1, c.P2, c.P3}
}

// Sample evaluates c at t = i/n for i in [0, n], returning n+1 points.
// n below 1 is treated as 1.
func Sample(c Cubic, n int) []geom.Point {
	if n < 1 {
		n = 1
	}
	pts := make([]geom.Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = c.At(float64(i) / float64(n))
	}
	return pts
}

// MaxChord is the longest of the three control-polygon legs. |B'(t)| never
// exceeds 3*MaxChord on [0,1].
func (c Cubic) MaxChord() float64 {
	m := c.P1.Distance(c.P0)
	if d := c.P2.Distance(c.P1); d > m {
		m = d
	}
	if d := c.P3.Distance(c.P2); d > m {
		m = d
	}
	return m
}

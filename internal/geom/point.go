package geom

import (
	"fmt"
	"math"
)

// Point is a 2D position or vector in surface coordinates.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Norm()
}

// Normalize returns the unit vector along p. A zero vector stays zero:
// the length is replaced by 1 before dividing.
func (p Point) Normalize() Point {
	l := p.Norm()
	if l == 0 {
		l = 1
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// IsValid reports whether both coordinates are finite.
func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Polyline length as the sum of its segment lengths.
func Length(pts []Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Distance(pts[i-1])
	}
	return total
}

// Bounds returns the min and max corners of pts. Empty input yields zero points.
func Bounds(pts []Point) (min, max Point) {
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Dashes splits the segment a-b into on/off runs of dash and gap length and
// returns the on runs. A non-positive dash yields the whole segment.
func Dashes(a, b Point, dash, gap float64) [][2]Point {
	total := a.Distance(b)
	if dash <= 0 || total == 0 {
		return [][2]Point{{a, b}}
	}
	gap = math.Max(gap, 0)
	dir := b.Sub(a).Scale(1 / total)

	out := make([][2]Point, 0, int(total/(dash+gap))+1)
	for s := 0.0; s < total; s += dash + gap {
		e := math.Min(s+dash, total)
		out = append(out, [2]Point{a.Add(dir.Scale(s)), a.Add(dir.Scale(e))})
	}
	return out
}

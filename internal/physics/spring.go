package physics

import "github.com/san-kum/springcurve/internal/geom"

const (
	DefaultStiffness = 0.1
	DefaultDamping   = 0.88
)

// SpringPoint is a unit-mass point pulled toward a target each frame.
//
// The force law is the critically-damped-drag model, integrated with one
// explicit Euler step per call (dt = 1 frame):
//
//	velocity += stiffness * (target - position)
//	velocity *= damping
//	position += velocity
//
// damping is a per-frame velocity decay fraction, not a force coefficient.
type SpringPoint struct {
	Position geom.Point
	Velocity geom.Point
}

func NewSpringPoint(p geom.Point) *SpringPoint {
	return &SpringPoint{Position: p}
}

// Update advances the point by one frame toward target.
func (s *SpringPoint) Update(target geom.Point, stiffness, damping float64) {
	d := target.Sub(s.Position)
	s.Velocity = s.Velocity.Add(d.Scale(stiffness)).Scale(damping)
	s.Position = s.Position.Add(s.Velocity)
}

func (s *SpringPoint) Distance(target geom.Point) float64 {
	return s.Position.Distance(target)
}

// Settled reports whether the point is within tol of target and moving
// slower than tol per frame.
func (s *SpringPoint) Settled(target geom.Point, tol float64) bool {
	return s.Distance(target) <= tol && s.Velocity.Norm() <= tol
}

// KineticEnergy at unit mass.
func (s *SpringPoint) KineticEnergy() float64 {
	return 0.5 * s.Velocity.Dot(s.Velocity)
}

// Stable reports whether (stiffness, damping) lies in the region where the
// drag model converges for every start state. The per-frame map has
// determinant damping and both eigenvalues inside the unit circle whenever
// both constants are in (0,1).
func Stable(stiffness, damping float64) bool {
	return stiffness > 0 && stiffness < 1 && damping > 0 && damping < 1
}

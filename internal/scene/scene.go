package scene

import (
	"github.com/san-kum/springcurve/internal/curve"
	"github.com/san-kum/springcurve/internal/geom"
	"github.com/san-kum/springcurve/internal/physics"
)

const (
	DefaultWidth           = 800.0
	DefaultHeight          = 500.0
	DefaultMargin          = 50.0
	DefaultPointOffset     = 100.0
	DefaultNumSamples      = 100
	DefaultTangentInterval = 12
	DefaultTangentLength   = 20.0
)

// Params are the per-frame constants the scene reads. They are passed into
// every Update/Sample call rather than held as shared state.
type Params struct {
	Stiffness       float64
	Damping         float64
	PointOffset     float64
	NumSamples      int
	TangentInterval int
	TangentLength   float64
}

func DefaultParams() Params {
	return Params{
		Stiffness:       physics.DefaultStiffness,
		Damping:         physics.DefaultDamping,
		PointOffset:     DefaultPointOffset,
		NumSamples:      DefaultNumSamples,
		TangentInterval: DefaultTangentInterval,
		TangentLength:   DefaultTangentLength,
	}
}

// TangentMarker is a short segment along the curve direction at one sample.
type TangentMarker struct {
	Index     int
	T         float64
	Anchor    geom.Point
	Direction geom.Point
	Length    float64
}

// End is the far point of the marker segment.
func (m TangentMarker) End() geom.Point {
	return m.Anchor.Add(m.Direction.Scale(m.Length))
}

// Frame is everything a renderer needs for one frame.
type Frame struct {
	Index      int
	Pointer    geom.Point
	Polyline   []geom.Point
	Tangents   []TangentMarker
	Controls   [4]geom.Point
	Targets    [2]geom.Point
	Velocities [2]geom.Point
}

// Scene owns the four control points of the curve. p0 and p3 are fixed at
// construction; p1 and p2 only move through their springs.
type Scene struct {
	p0, p3 geom.Point
	p1, p2 *physics.SpringPoint

	start1, start2 geom.Point
	frames         int
	targets        [2]geom.Point
}

// New lays out the curve on a width x height surface: endpoints inset by
// margin on the horizontal midline, interior points at the thirds.
func New(width, height, margin float64) *Scene {
	mid := height / 2
	return NewWithPoints(
		geom.Pt(margin, mid),
		geom.Pt(width/3, mid),
		geom.Pt(width/3*2, mid),
		geom.Pt(width-margin, mid),
	)
}

func NewWithPoints(p0, p1, p2, p3 geom.Point) *Scene {
	return &Scene{
		p0:      p0,
		p3:      p3,
		p1:      physics.NewSpringPoint(p1),
		p2:      physics.NewSpringPoint(p2),
		start1:  p1,
		start2:  p2,
		targets: [2]geom.Point{p1, p2},
	}
}

// Targets returns the spring targets for a pointer position: offset to the
// left for p1 and to the right for p2.
func Targets(pointer geom.Point, offset float64) (geom.Point, geom.Point) {
	shift := geom.Pt(offset, 0)
	return pointer.Sub(shift), pointer.Add(shift)
}

// Update steps both interior springs once toward the pointer's targets.
func (s *Scene) Update(pointer geom.Point, p Params) {
	t1, t2 := Targets(pointer, p.PointOffset)
	s.p1.Update(t1, p.Stiffness, p.Damping)
	s.p2.Update(t2, p.Stiffness, p.Damping)
	s.targets = [2]geom.Point{t1, t2}
	s.frames++
}

// Sample builds the polyline at t = i/N for i in [0, N] and a tangent marker
// at every TangentInterval-th interior sample. The endpoints never carry a
// marker.
func (s *Scene) Sample(p Params) Frame {
	n := p.NumSamples
	if n < 1 {
		n = 1
	}
	c := s.Cubic()

	f := Frame{
		Index:      s.frames,
		Polyline:   make([]geom.Point, n+1),
		Controls:   c.Points(),
		Targets:    s.targets,
		Velocities: [2]geom.Point{s.p1.Velocity, s.p2.Velocity},
	}
	if p.TangentInterval > 0 {
		f.Tangents = make([]TangentMarker, 0, (n-1)/p.TangentInterval)
	}

	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		pos := c.At(t)
		f.Polyline[i] = pos

		if p.TangentInterval > 0 && i > 0 && i < n && i%p.TangentInterval == 0 {
			f.Tangents = append(f.Tangents, TangentMarker{
				Index:     i,
				T:         t,
				Anchor:    pos,
				Direction: c.TangentAt(t),
				Length:    p.TangentLength,
			})
		}
	}
	return f
}

// Tick runs one host frame: Update followed by Sample.
func (s *Scene) Tick(pointer geom.Point, p Params) Frame {
	s.Update(pointer, p)
	f := s.Sample(p)
	f.Pointer = pointer
	return f
}

func (s *Scene) Cubic() curve.Cubic {
	return curve.Cubic{P0: s.p0, P1: s.p1.Position, P2: s.p2.Position, P3: s.p3}
}

func (s *Scene) Controls() [4]geom.Point {
	return s.Cubic().Points()
}

// Springs exposes the interior points read-only by value.
func (s *Scene) Springs() (physics.SpringPoint, physics.SpringPoint) {
	return *s.p1, *s.p2
}

func (s *Scene) Frames() int { return s.frames }

// Settled reports whether both springs rest within tol of their last targets.
func (s *Scene) Settled(tol float64) bool {
	return s.p1.Settled(s.targets[0], tol) && s.p2.Settled(s.targets[1], tol)
}

// Reset puts the interior points back at their start positions with zero
// velocity.
func (s *Scene) Reset() {
	s.p1 = physics.NewSpringPoint(s.start1)
	s.p2 = physics.NewSpringPoint(s.start2)
	s.targets = [2]geom.Point{s.start1, s.start2}
	s.frames = 0
}

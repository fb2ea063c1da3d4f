package sim

import (
	"math"
	"sort"

	"github.com/san-kum/springcurve/internal/geom"
)

// Fixed holds the pointer still.
type Fixed geom.Point

func (f Fixed) PointerAt(int) geom.Point { return geom.Point(f) }

// Keyframe pins the pointer to At on Frame.
type Keyframe struct {
	Frame int
	At    geom.Point
}

// Script moves the pointer linearly between keyframes and holds it at the
// first and last keyframe outside their range.
type Script struct {
	keys []Keyframe
}

func NewScript(keys []Keyframe) *Script {
	k := append([]Keyframe(nil), keys...)
	sort.SliceStable(k, func(i, j int) bool { return k[i].Frame < k[j].Frame })
	return &Script{keys: k}
}

func (s *Script) Len() int { return len(s.keys) }

func (s *Script) PointerAt(frame int) geom.Point {
	if len(s.keys) == 0 {
		return geom.Point{}
	}
	if frame <= s.keys[0].Frame {
		return s.keys[0].At
	}
	last := s.keys[len(s.keys)-1]
	if frame >= last.Frame {
		return last.At
	}

	i := sort.Search(len(s.keys), func(i int) bool { return s.keys[i].Frame > frame })
	a, b := s.keys[i-1], s.keys[i]
	u := float64(frame-a.Frame) / float64(b.Frame-a.Frame)
	return a.At.Add(b.At.Sub(a.At).Scale(u))
}

// Orbit circles the pointer around Center, one revolution every Period
// frames.
type Orbit struct {
	Center geom.Point
	Radius float64
	Period int
}

func (o Orbit) PointerAt(frame int) geom.Point {
	if o.Period <= 0 {
		return o.Center
	}
	a := 2 * math.Pi * float64(frame%o.Period) / float64(o.Period)
	return o.Center.Add(geom.Pt(o.Radius*math.Cos(a), o.Radius*math.Sin(a)))
}

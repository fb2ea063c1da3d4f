package metrics

import "github.com/san-kum/springcurve/internal/scene"

// Stability is the fraction of frames in which both interior points were
// within threshold pixels of their targets.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "tracking",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f scene.Frame) {
	s.samples++
	for i, t := range f.Targets {
		if f.Controls[i+1].Distance(t) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

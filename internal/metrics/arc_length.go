package metrics

import (
	"github.com/san-kum/springcurve/internal/geom"
	"github.com/san-kum/springcurve/internal/scene"
)

// ArcLength is the mean length of the sampled polyline.
type ArcLength struct {
	sum     float64
	samples int
}

func NewArcLength() *ArcLength {
	return &ArcLength{}
}

func (a *ArcLength) Name() string { return "arc_length" }

func (a *ArcLength) Observe(f scene.Frame) {
	a.sum += geom.Length(f.Polyline)
	a.samples++
}

func (a *ArcLength) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *ArcLength) Reset() {
	a.sum = 0
	a.samples = 0
}

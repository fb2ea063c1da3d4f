package metrics

import "github.com/san-kum/springcurve/internal/scene"

// Energy is the mean kinetic energy of the two interior points at unit mass.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
	peak        float64
}

func NewEnergy() *Energy {
	return &Energy{name: "kinetic_energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(f scene.Frame) {
	ke := 0.0
	for _, v := range f.Velocities {
		ke += 0.5 * v.Dot(v)
	}
	e.totalEnergy += ke
	if ke > e.peak {
		e.peak = ke
	}
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Peak() float64 { return e.peak }

func (e *Energy) Reset() {
	e.samples = 0
	e.totalEnergy = 0
	e.peak = 0
}

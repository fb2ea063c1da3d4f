package physics

import (
	"fmt"
	"math"
	"testing"

	"github.com/san-kum/springcurve/internal/geom"
)

func TestSpringPoint_RestAtTarget(t *testing.T) {
	target := geom.Pt(300, 250)
	s := NewSpringPoint(target)

	for i := 0; i < 100; i++ {
		s.Update(target, DefaultStiffness, DefaultDamping)
	}

	if s.Position != target {
		t.Errorf("position drifted from rest: %v", s.Position)
	}
	if s.Velocity != (geom.Point{}) {
		t.Errorf("velocity should stay zero, got %v", s.Velocity)
	}
}

func TestSpringPoint_SingleStep(t *testing.T) {
	s := NewSpringPoint(geom.Pt(0, 0))
	s.Update(geom.Pt(100, -50), 0.1, 0.5)

	// v = (0 + 0.1*(100,-50)) * 0.5 = (5, -2.5)
	if math.Abs(s.Velocity.X-5) > 1e-12 || math.Abs(s.Velocity.Y+2.5) > 1e-12 {
		t.Errorf("unexpected velocity %v", s.Velocity)
	}
	if math.Abs(s.Position.X-5) > 1e-12 || math.Abs(s.Position.Y+2.5) > 1e-12 {
		t.Errorf("unexpected position %v", s.Position)
	}
}

func TestSpringPoint_Converges(t *testing.T) {
	const (
		tol      = 0.5
		maxSteps = 2000
	)
	target := geom.Pt(300, 250)

	for _, k := range []float64{0.05, 0.08, 0.1, 0.12, 0.15} {
		for _, d := range []float64{0.8, 0.88, 0.92} {
			t.Run(fmt.Sprintf("k=%.2f/d=%.2f", k, d), func(t *testing.T) {
				s := NewSpringPoint(geom.Pt(800, 0))
				steps := 0
				for ; steps < maxSteps && !s.Settled(target, tol); steps++ {
					s.Update(target, k, d)
				}
				if !s.Settled(target, tol) {
					t.Fatalf("not settled after %d steps: pos=%v vel=%v", maxSteps, s.Position, s.Velocity)
				}

				for i := 0; i < 1000; i++ {
					s.Update(target, k, d)
				}
				if dist := s.Distance(target); dist > 1e-6 {
					t.Errorf("expected arbitrarily close after more steps, distance %g", dist)
				}
			})
		}
	}
}

func TestSpringPoint_KineticEnergy(t *testing.T) {
	s := &SpringPoint{Velocity: geom.Pt(3, 4)}
	if got := s.KineticEnergy(); math.Abs(got-12.5) > 1e-12 {
		t.Errorf("expected 12.5, got %f", got)
	}
}

func TestStable(t *testing.T) {
	tests := []struct {
		k, d   float64
		stable bool
	}{
		{0.1, 0.88, true},
		{0.05, 0.92, true},
		{0.99, 0.01, true},
		{0, 0.88, false},
		{0.1, 1, false},
		{1.2, 0.5, false},
		{0.1, -0.1, false},
	}

	for _, tt := range tests {
		if got := Stable(tt.k, tt.d); got != tt.stable {
			t.Errorf("Stable(%v, %v) = %v, want %v", tt.k, tt.d, got, tt.stable)
		}
	}
}

func TestStable_NoBlowUp(t *testing.T) {
	// extreme but in-range constants must still decay
	s := NewSpringPoint(geom.Pt(0, 0))
	target := geom.Pt(1000, 1000)
	for i := 0; i < 5000; i++ {
		s.Update(target, 0.99, 0.99)
		if !s.Position.IsValid() {
			t.Fatalf("diverged at step %d", i)
		}
	}
	if s.Distance(target) > 1e-3 {
		t.Errorf("expected convergence, distance %f", s.Distance(target))
	}
}

package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/springcurve/internal/geom"
	"github.com/san-kum/springcurve/internal/scene"
)

var (
	// ErrInvalidState indicates a frame with NaN or Inf coordinates.
	ErrInvalidState = errors.New("sim: invalid frame (NaN or Inf detected)")

	// ErrNoFrames indicates a run configured with no frames to produce.
	ErrNoFrames = errors.New("sim: frame count must be positive")
)

// Host is the drawing surface side of the loop: it owns the pointer and
// draws each finished frame.
type Host interface {
	Pointer() geom.Point
	Render(f scene.Frame) error
}

// PointerSource supplies the pointer for a given frame in headless runs.
type PointerSource interface {
	PointerAt(frame int) geom.Point
}

type Metric interface {
	Name() string
	Observe(f scene.Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f scene.Frame)
}

type Config struct {
	Frames          int
	SettleTolerance float64
	StopWhenSettled bool
	ValidateFrames  bool
}

func DefaultConfig() Config {
	return Config{
		Frames:          600,
		SettleTolerance: 0.5,
		ValidateFrames:  true,
	}
}

type Result struct {
	Frames    int
	SettledAt int
	Trace     []float64
	Metrics   map[string]float64
	Last      scene.Frame
	Errors    []error
}

// FrameError wraps an error with the frame it happened on.
type FrameError struct {
	Frame   int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}

// ValidFrame reports whether every point in f is finite.
func ValidFrame(f scene.Frame) bool {
	for _, p := range f.Polyline {
		if !p.IsValid() {
			return false
		}
	}
	for _, p := range f.Controls {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

// TargetDistance is the mean distance of p1 and p2 from their targets.
func TargetDistance(f scene.Frame) float64 {
	return (f.Controls[1].Distance(f.Targets[0]) + f.Controls[2].Distance(f.Targets[1])) / 2
}

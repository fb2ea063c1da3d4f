package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/springcurve/internal/geom"
	"github.com/san-kum/springcurve/internal/scene"
)

// Runner drives a scene headlessly from a scripted pointer.
type Runner struct {
	scene     *scene.Scene
	params    scene.Params
	metrics   []Metric
	observers []Observer
}

func NewRunner(s *scene.Scene, params scene.Params) *Runner {
	return &Runner{
		scene:     s,
		params:    params,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// headless adapts a PointerSource to the Host side of a Loop.
type headless struct {
	src   PointerSource
	frame int
}

func (h *headless) Pointer() geom.Point { return h.src.PointerAt(h.frame) }

func (h *headless) Render(scene.Frame) error {
	h.frame++
	return nil
}

func (r *Runner) Run(ctx context.Context, src PointerSource, cfg Config) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		SettledAt: -1,
		Trace:     make([]float64, 0, cfg.Frames),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	host := &headless{src: src}
	loop := NewLoop(r.scene, r.params, host)

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		f, err := loop.Tick()
		if err != nil {
			result.Errors = append(result.Errors, err)
		}

		if cfg.ValidateFrames && !ValidFrame(f) {
			result.Errors = append(result.Errors, &FrameError{Frame: f.Index, Wrapped: ErrInvalidState})
			break
		}

		for _, m := range r.metrics {
			m.Observe(f)
		}
		for _, o := range r.observers {
			o.OnFrame(f)
		}

		result.Frames++
		result.Last = f
		result.Trace = append(result.Trace, TargetDistance(f))

		if r.scene.Settled(cfg.SettleTolerance) {
			if result.SettledAt < 0 {
				result.SettledAt = f.Index
			}
			if cfg.StopWhenSettled {
				break
			}
		} else {
			result.SettledAt = -1
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (r *Runner) validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w, got %d", ErrNoFrames, cfg.Frames)
	}
	if cfg.SettleTolerance <= 0 {
		return fmt.Errorf("settle tolerance must be positive, got %f", cfg.SettleTolerance)
	}
	return nil
}

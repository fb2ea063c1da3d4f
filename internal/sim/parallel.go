package sim

import (
	"context"
	"sync"

	"github.com/san-kum/springcurve/internal/scene"
)

// Sweep runs the same pointer script against several parameter sets, one
// goroutine and one fresh scene per set. src is read concurrently.
type Sweep struct {
	newScene   func() *scene.Scene
	newMetrics func() []Metric
}

func NewSweep(newScene func() *scene.Scene, newMetrics func() []Metric) *Sweep {
	return &Sweep{newScene: newScene, newMetrics: newMetrics}
}

func (s *Sweep) Run(ctx context.Context, src PointerSource, params []scene.Params, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(params))
	errs := make([]error, len(params))

	var wg sync.WaitGroup
	for i := range params {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			r := NewRunner(s.newScene(), params[idx])
			if s.newMetrics != nil {
				for _, m := range s.newMetrics() {
					r.AddMetric(m)
				}
			}
			results[idx], errs[idx] = r.Run(ctx, src, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

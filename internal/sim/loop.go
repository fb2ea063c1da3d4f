package sim

import (
	"github.com/san-kum/springcurve/internal/scene"
)

// Loop is the per-frame scheduler entry point. Hosts call Tick once per
// frame from their own loop; Tick never overlaps itself.
type Loop struct {
	scene     *scene.Scene
	params    scene.Params
	host      Host
	observers []Observer
}

func NewLoop(s *scene.Scene, params scene.Params, host Host) *Loop {
	return &Loop{
		scene:     s,
		params:    params,
		host:      host,
		observers: make([]Observer, 0),
	}
}

func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Loop) Params() scene.Params { return l.params }

// SetParams takes effect from the next Tick.
func (l *Loop) SetParams(p scene.Params) { l.params = p }

func (l *Loop) Scene() *scene.Scene { return l.scene }

// Tick reads the pointer, advances the scene one frame and hands the result
// to the host.
func (l *Loop) Tick() (scene.Frame, error) {
	f := l.scene.Tick(l.host.Pointer(), l.params)
	for _, o := range l.observers {
		o.OnFrame(f)
	}
	if err := l.host.Render(f); err != nil {
		return f, &FrameError{Frame: f.Index, Wrapped: err}
	}
	return f, nil
}

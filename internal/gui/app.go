package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/springcurve/internal/config"
	"github.com/san-kum/springcurve/internal/export"
	"github.com/san-kum/springcurve/internal/geom"
	"github.com/san-kum/springcurve/internal/physics"
	"github.com/san-kum/springcurve/internal/scene"
	"github.com/san-kum/springcurve/internal/sim"
)

const (
	curveWidth   = 4
	pointRadius  = 6
	dashLength   = 5
	telemetryLen = 240
	maxParam     = 0.99
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
)

var paramKeys = []string{"stiffness", "damping", "offset"}

// Palette is the window's drawing colors.
type Palette struct {
	Background rl.Color
	Curve      rl.Color
	Point      rl.Color
	Tangent    rl.Color
	Skeleton   rl.Color
}

// NewPalette converts a hex style into raylib colors, keeping the tangent
// and skeleton translucency.
func NewPalette(s export.Style) Palette {
	return Palette{
		Background: rlColor(s.Background, 1),
		Curve:      rlColor(s.Curve, 1),
		Point:      rlColor(s.Point, 1),
		Tangent:    rlColor(s.Tangent, s.TangentAlpha),
		Skeleton:   rlColor(s.Skeleton, s.SkeletonAlpha),
	}
}

func rlColor(hex string, alpha float64) rl.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return rl.ColorAlpha(rl.White, float32(alpha))
	}
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, uint8(alpha*255+0.5))
}

// App is the native window host. It implements sim.Host: the pointer is
// the mouse, parked at the surface centre until the mouse first moves.
type App struct {
	Cfg       *config.Config
	Loop      *sim.Loop
	Colors    Palette
	Initial   scene.Params
	Running   bool
	ParamSel  int
	Telemetry []float64
	Frame     scene.Frame
	Snapshot  string
	Status    string

	center geom.Point
	moved  bool
}

func NewApp(cfg *config.Config, snapshot string) *App {
	cx, cy := cfg.Center()
	app := &App{
		Cfg:       cfg,
		Colors:    NewPalette(export.DefaultStyle()),
		Initial:   cfg.Params(),
		Running:   true,
		Telemetry: make([]float64, 0, telemetryLen),
		Snapshot:  snapshot,
		center:    geom.Pt(cx, cy),
	}
	app.Loop = sim.NewLoop(cfg.NewScene(), app.Initial, app)
	app.Frame = app.Loop.Scene().Sample(app.Initial)
	return app
}

func (a *App) Pointer() geom.Point {
	if !a.moved {
		d := rl.GetMouseDelta()
		if d.X == 0 && d.Y == 0 {
			return a.center
		}
		a.moved = true
	}
	m := rl.GetMousePosition()
	return geom.Pt(float64(m.X), float64(m.Y))
}

func (a *App) Render(f scene.Frame) error {
	a.Frame = f
	a.Telemetry = append(a.Telemetry, sim.TargetDistance(f))
	if len(a.Telemetry) > telemetryLen {
		a.Telemetry = a.Telemetry[1:]
	}
	return nil
}

func initWindow(cfg *config.Config) {
	rl.InitWindow(int32(cfg.Surface.Width), int32(cfg.Surface.Height), "springcurve")
	rl.SetTargetFPS(int32(cfg.Render.FPS))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, snapshot string) error {
	initWindow(cfg)
	defer rl.CloseWindow()
	log.Printf("gui: %.0fx%.0f at %d fps", cfg.Surface.Width, cfg.Surface.Height, cfg.Render.FPS)
	return NewApp(cfg, snapshot).RunLoop()
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() {
		if quit := a.Update(); quit {
			return nil
		}
		if a.Running {
			if _, err := a.Loop.Tick(); err != nil {
				return err
			}
		}
		a.Draw()
	}
	return nil
}

// Update handles keys. It reports true when the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Loop.Scene().Reset()
		a.Loop.SetParams(a.Initial)
		a.Telemetry = a.Telemetry[:0]
		a.Frame = a.Loop.Scene().Sample(a.Initial)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.ParamSel = (a.ParamSel + 1) % len(paramKeys)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.adjust(1.05)
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.adjust(0.95)
	}
	if rl.IsKeyPressed(rl.KeyE) {
		if err := export.ExportSVG(a.Snapshot, a.Frame, a.Cfg.Surface.Width, a.Cfg.Surface.Height, export.DefaultStyle()); err != nil {
			log.Printf("snapshot: %v", err)
			a.Status = err.Error()
		} else {
			a.Status = "saved " + a.Snapshot
		}
	}
	return false
}

func (a *App) adjust(factor float64) {
	p := a.Loop.Params()
	switch paramKeys[a.ParamSel] {
	case "stiffness":
		p.Stiffness = min(p.Stiffness*factor, maxParam)
	case "damping":
		p.Damping = min(p.Damping*factor, maxParam)
	case "offset":
		p.PointOffset = max(p.PointOffset*factor, 1)
	}
	if !physics.Stable(p.Stiffness, p.Damping) {
		a.Status = fmt.Sprintf("unstable: k=%.3f d=%.3f", p.Stiffness, p.Damping)
		return
	}
	a.Loop.SetParams(p)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.Colors.Background)

	a.drawCurve()
	a.DrawHUD()

	rl.EndDrawing()
}

func vec(p geom.Point) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

// drawCurve draws the skeleton, the curve, its tangent markers and the
// interior control points, in that order.
func (a *App) drawCurve() {
	f := a.Frame
	c := f.Controls

	for i := 0; i < 3; i++ {
		for _, seg := range geom.Dashes(c[i], c[i+1], dashLength, dashLength) {
			rl.DrawLineV(vec(seg[0]), vec(seg[1]), a.Colors.Skeleton)
		}
	}

	for i := 1; i < len(f.Polyline); i++ {
		rl.DrawLineEx(vec(f.Polyline[i-1]), vec(f.Polyline[i]), curveWidth, a.Colors.Curve)
	}

	for _, m := range f.Tangents {
		rl.DrawLineV(vec(m.Anchor), vec(m.End()), a.Colors.Tangent)
	}

	rl.DrawCircleV(vec(c[1]), pointRadius, a.Colors.Point)
	rl.DrawCircleV(vec(c[2]), pointRadius, a.Colors.Point)
}

func (a *App) DrawHUD() {
	rl.DrawText("springcurve", 20, 20, 20, ColSelect)

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	w := int32(a.Cfg.Surface.Width)
	rl.DrawText(status, w-110, 20, 16, col)

	p := a.Loop.Params()
	vals := []float64{p.Stiffness, p.Damping, p.PointOffset}
	y := int32(50)
	for i, k := range paramKeys {
		line := fmt.Sprintf("  %-10s %.3f", k, vals[i])
		c := ColText
		if i == a.ParamSel {
			line, c = fmt.Sprintf("> %-10s %.3f", k, vals[i]), ColSelect
		}
		rl.DrawText(line, 20, y, 14, c)
		y += 18
	}
	if a.Status != "" {
		rl.DrawText(a.Status, 20, y+4, 14, ColTextDim)
	}

	a.DrawTelemetry()

	h := int32(a.Cfg.Surface.Height)
	rl.DrawText("[SPACE] PAUSE  [R] RESET  [TAB] PARAM  [UP/DOWN] TUNE  [E] SVG  [Q] QUIT", 20, h-24, 12, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), w-70, h-24, 12, ColTextDim)
}

// DrawTelemetry plots the recent target distance above the key hints.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := float32(20), float32(a.Cfg.Surface.Height)-90
	width, height := float32(240), float32(50)

	maxVal := a.Telemetry[0]
	for _, v := range a.Telemetry {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := rectX + float32(i)/float32(telemetryLen)*width
		py := rectY + height - float32(val/maxVal)*height
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColText)
	rl.DrawText(fmt.Sprintf("d: %.2f px", a.Telemetry[len(a.Telemetry)-1]), int32(rectX+width+10), int32(rectY+height-10), 12, ColText)
}

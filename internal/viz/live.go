package viz

import (
	"fmt"
	"image"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/springcurve/internal/config"
	"github.com/san-kum/springcurve/internal/export"
	"github.com/san-kum/springcurve/internal/geom"
	"github.com/san-kum/springcurve/internal/physics"
	"github.com/san-kum/springcurve/internal/scene"
	"github.com/san-kum/springcurve/internal/sim"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	minCols         = 20
	minRows         = 8
	statsWidth      = 46
	historyCapacity = 600

	// canvasStyle padding, needed to map mouse cells back onto the canvas.
	padLeft = 2
	padTop  = 1

	nudge        = 20.0
	gifScale     = 0.5
	settleTol    = 0.5
	maxStiffness = 0.99
	maxDamping   = 0.99
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(padTop, padLeft)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth - 1)
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

var paramKeys = []string{"stiffness", "damping", "offset"}

type TickMsg time.Time

// Options are the file destinations of the live view.
type Options struct {
	GIFPath      string
	SnapshotPath string
}

func DefaultOptions() Options {
	return Options{GIFPath: "springcurve.gif", SnapshotPath: "springcurve.svg"}
}

// surfaceHost is the sim.Host side of the terminal: the model writes the
// pointer into it and reads the last frame back.
type surfaceHost struct {
	pointer geom.Point
	last    scene.Frame
}

func (h *surfaceHost) Pointer() geom.Point { return h.pointer }

func (h *surfaceHost) Render(f scene.Frame) error {
	h.last = f
	return nil
}

// Model drives one scene from bubbletea ticks. Mouse motion moves the
// pointer directly; wasd moves a goal the pointer glides to.
type Model struct {
	cfg       *config.Config
	opts      Options
	loop      *sim.Loop
	host      *surfaceHost
	initial   scene.Params
	surfaceW  float64
	surfaceH  float64
	interval  time.Duration
	cols      int
	rows      int
	canvas    *Canvas
	running   bool
	glide     harmonica.Spring
	goal      geom.Point
	glideVel  geom.Point
	gliding   bool
	history   []float64
	energy    []float64
	selected  int
	recording bool
	frames    []*image.Paletted
	showHelp  bool
	status    string
}

func NewModel(cfg *config.Config, opts Options) Model {
	fps := cfg.Render.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	cx, cy := cfg.Center()
	center := geom.Pt(cx, cy)
	host := &surfaceHost{pointer: center}
	params := cfg.Params()

	SetTheme(cfg.Render.Theme)

	m := Model{
		cfg:      cfg,
		opts:     opts,
		loop:     sim.NewLoop(cfg.NewScene(), params, host),
		host:     host,
		initial:  params,
		surfaceW: cfg.Surface.Width,
		surfaceH: cfg.Surface.Height,
		interval: time.Second / time.Duration(fps),
		cols:     defaultCols - statsWidth,
		rows:     defaultRows - 2,
		running:  true,
		glide:    harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		goal:     center,
		history:  make([]float64, 0, historyCapacity),
		energy:   make([]float64, 0, historyCapacity),
	}
	m.canvas = NewCanvas(m.cols, m.rows)
	host.last = m.loop.Scene().Sample(params)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the scene.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		if p, ok := m.cellToSurface(msg.X, msg.Y); ok {
			m.host.pointer = p
			m.goal = p
			m.gliding = false
			m.glideVel = geom.Point{}
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.selected = (m.selected + 1) % len(paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "w":
			m.nudge(0, -nudge)
		case "a":
			m.nudge(-nudge, 0)
		case "s":
			m.nudge(0, nudge)
		case "d":
			m.nudge(nudge, 0)
		case "c":
			cx, cy := m.cfg.Center()
			m.goal = geom.Pt(cx, cy)
			m.gliding = true
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
				m.status = "recording"
			}
		case "e":
			m.snapshot()
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	cols := max(w-statsWidth-2*padLeft, minCols)
	rows := max(h-2*padTop, minRows)
	if cols == m.cols && rows == m.rows {
		return
	}
	m.cols, m.rows = cols, rows
	m.canvas = NewCanvas(cols, rows)
}

// cellToSurface maps a terminal cell onto surface coordinates. Cells outside
// the canvas report false.
func (m Model) cellToSurface(x, y int) (geom.Point, bool) {
	col, row := x-padLeft, y-padTop
	if col < 0 || row < 0 || col >= m.cols || row >= m.rows {
		return geom.Point{}, false
	}
	return geom.Pt(
		(float64(col)+0.5)/float64(m.cols)*m.surfaceW,
		(float64(row)+0.5)/float64(m.rows)*m.surfaceH,
	), true
}

// toSub maps a surface point onto canvas dots.
func (m Model) toSub(p geom.Point) (int, int) {
	x := p.X / m.surfaceW * float64(m.canvas.SubWidth())
	y := p.Y / m.surfaceH * float64(m.canvas.SubHeight())
	return int(math.Round(x)), int(math.Round(y))
}

func (m *Model) nudge(dx, dy float64) {
	m.goal = geom.Pt(
		math.Max(0, math.Min(m.surfaceW, m.goal.X+dx)),
		math.Max(0, math.Min(m.surfaceH, m.goal.Y+dy)),
	)
	m.gliding = true
}

// step glides the keyboard pointer and runs one loop tick.
func (m *Model) step() {
	if m.gliding {
		p := m.host.pointer
		p.X, m.glideVel.X = m.glide.Update(p.X, m.glideVel.X, m.goal.X)
		p.Y, m.glideVel.Y = m.glide.Update(p.Y, m.glideVel.Y, m.goal.Y)
		m.host.pointer = p
		if p.Distance(m.goal) < 0.01 && m.glideVel.Norm() < 0.01 {
			m.host.pointer, m.glideVel, m.gliding = m.goal, geom.Point{}, false
		}
	}

	f, err := m.loop.Tick()
	if err != nil {
		log.Printf("tick: %v", err)
		m.status = err.Error()
		return
	}

	m.history = appendCapped(m.history, sim.TargetDistance(f))
	ke := 0.0
	for _, v := range f.Velocities {
		ke += 0.5 * v.Dot(v)
	}
	m.energy = appendCapped(m.energy, ke)

	if m.recording {
		w, h := int(m.surfaceW*gifScale), int(m.surfaceH*gifScale)
		m.frames = append(m.frames, export.Rasterize(f, m.surfaceW, m.surfaceH, w, h, export.DefaultStyle()))
	}
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

func (m *Model) adjustParam(factor float64) {
	p := m.loop.Params()
	switch paramKeys[m.selected] {
	case "stiffness":
		p.Stiffness = math.Min(p.Stiffness*factor, maxStiffness)
	case "damping":
		p.Damping = math.Min(p.Damping*factor, maxDamping)
	case "offset":
		p.PointOffset = math.Max(p.PointOffset*factor, 1)
	}
	if !physics.Stable(p.Stiffness, p.Damping) {
		m.status = fmt.Sprintf("unstable: k=%.3f d=%.3f", p.Stiffness, p.Damping)
		return
	}
	m.loop.SetParams(p)
}

// reset returns the springs to their start and restores the initial params.
func (m *Model) reset() {
	m.loop.Scene().Reset()
	m.loop.SetParams(m.initial)
	m.history = m.history[:0]
	m.energy = m.energy[:0]
	m.host.last = m.loop.Scene().Sample(m.initial)
	m.status = ""
}

func (m *Model) stopRecording() {
	path := m.opts.GIFPath
	if err := export.SaveGIF(path, m.frames, max(1, int(m.interval/(10*time.Millisecond)))); err != nil {
		log.Printf("gif: %v", err)
		m.status = err.Error()
	} else {
		log.Printf("saved %d frames to %s", len(m.frames), path)
		m.status = "saved " + path
	}
	m.recording = false
	m.frames = nil
}

func (m *Model) snapshot() {
	path := m.opts.SnapshotPath
	if err := export.ExportSVG(path, m.host.last, m.surfaceW, m.surfaceH, export.DefaultStyle()); err != nil {
		log.Printf("snapshot: %v", err)
		m.status = err.Error()
		return
	}
	log.Printf("snapshot written to %s", path)
	m.status = "saved " + path
}

// draw renders the last frame: skeleton, tangents, curve, control points,
// pointer, lowest layer first.
func (m *Model) draw() {
	f := m.host.last
	m.canvas.Clear()

	c := f.Controls
	for i := 0; i < 3; i++ {
		x0, y0 := m.toSub(c[i])
		x1, y1 := m.toSub(c[i+1])
		m.canvas.DrawDashed(x0, y0, x1, y1, 2, LayerSkeleton)
	}

	for _, t := range f.Tangents {
		x0, y0 := m.toSub(t.Anchor)
		x1, y1 := m.toSub(t.End())
		m.canvas.DrawLine(x0, y0, x1, y1, LayerTangent)
	}

	for i := 1; i < len(f.Polyline); i++ {
		x0, y0 := m.toSub(f.Polyline[i-1])
		x1, y1 := m.toSub(f.Polyline[i])
		m.canvas.DrawLine(x0, y0, x1, y1, LayerCurve)
	}

	for _, p := range []geom.Point{c[1], c[2]} {
		x, y := m.toSub(p)
		m.canvas.DrawDot(x, y, 1, LayerPoint)
	}

	px, py := m.toSub(m.host.pointer)
	m.canvas.Set(px-1, py, LayerPointer)
	m.canvas.Set(px+1, py, LayerPointer)
	m.canvas.Set(px, py-1, LayerPointer)
	m.canvas.Set(px, py+1, LayerPointer)
}

// View renders the TUI interface.
func (m Model) View() string {
	theme := CurrentTheme
	canvasView := canvasStyle.Render(m.canvas.Render(theme.LayerStyles()))

	var s strings.Builder
	s.WriteString(GradientText("SPRING CURVE", theme.Primary, theme.Secondary) + "\n")
	s.WriteString(Subtle.Render(theme.Name) + "\n\n")

	switch {
	case m.recording:
		s.WriteString(StatusRecording.Render(fmt.Sprintf("● REC %d", len(m.frames))))
	case !m.running:
		s.WriteString(StatusPaused.Render("PAUSED"))
	default:
		s.WriteString(StatusRunning.Render("RUNNING"))
	}
	if m.status != "" {
		s.WriteString("  " + Subtle.Render(m.status))
	}
	s.WriteString("\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("target distance"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(SparklineChart(m.energy, 30) + "\n\n")

	f := m.host.last
	dist := sim.TargetDistance(f)
	s.WriteString(MetricLabel.Render("Frame") + MetricValue.Render(fmt.Sprintf("%d", f.Index)) + "\n")
	s.WriteString(MetricLabel.Render("Pointer") + MetricValue.Render(fmt.Sprintf("%.0f, %.0f", m.host.pointer.X, m.host.pointer.Y)) + "\n")
	s.WriteString(MetricLabel.Render("p1") + MetricValue.Render(fmt.Sprintf("%.1f, %.1f", f.Controls[1].X, f.Controls[1].Y)) + "\n")
	s.WriteString(MetricLabel.Render("p2") + MetricValue.Render(fmt.Sprintf("%.1f, %.1f", f.Controls[2].X, f.Controls[2].Y)) + "\n")
	settled := "no"
	if m.loop.Scene().Settled(settleTol) {
		settled = "yes"
	}
	s.WriteString(MetricLabel.Render("Settled") + MetricValue.Render(fmt.Sprintf("%s (%.2f px)", settled, dist)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	p := m.loop.Params()
	values := map[string][2]float64{
		"stiffness": {p.Stiffness, m.initial.Stiffness},
		"damping":   {p.Damping, m.initial.Damping},
		"offset":    {p.PointOffset, m.initial.PointOffset},
	}
	for i, k := range paramKeys {
		val, initial := values[k][0], values[k][1]
		ratio := 0.5
		if initial != 0 {
			ratio = val / (2.0 * initial)
		}
		line := fmt.Sprintf("%-10s %s %.3f", k, ProgressBar(ratio, 10), val)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render(`
Mouse    move pointer
W/A/S/D  glide pointer
C        recentre pointer
Space    pause / resume
R        reset springs
Tab      cycle parameter
Up/K     increase (+5%)
Down/J   decrease (-5%)
G        toggle GIF recording
E        save SVG snapshot
T        cycle themes
?        toggle this help
Q        quit`))
	} else {
		s.WriteString(helpStyle.Render(Separator(30) + "\nSP:Pause R:Reset Q:Quit\nT:Theme  G:Record ?:Help"))
	}

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the live view on the alternate screen with mouse motion.
func Run(cfg *config.Config, opts Options) error {
	log.Printf("live view: preset physics k=%.3f d=%.3f", cfg.Physics.Stiffness, cfg.Physics.Damping)
	_, err := tea.NewProgram(NewModel(cfg, opts), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

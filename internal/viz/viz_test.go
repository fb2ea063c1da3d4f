package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/springcurve/internal/config"
	"github.com/san-kum/springcurve/internal/geom"
)

func TestCanvasSetAndLayers(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0, LayerCurve)
	c.Set(1, 3, LayerSkeleton)
	if c.Grid[0][0] != rune(brailleBase|0x1|0x80) {
		t.Errorf("unexpected cell %U", c.Grid[0][0])
	}
	if c.Layer[0][0] != LayerCurve {
		t.Errorf("higher layer should win, got %d", c.Layer[0][0])
	}

	c.Set(-1, 0, LayerPoint)
	c.Set(8, 0, LayerPoint)
	c.Set(0, 8, LayerPoint)
	for _, row := range c.Layer {
		for _, l := range row {
			if l == LayerPoint {
				t.Fatal("out of range dots should be ignored")
			}
		}
	}

	c.Clear()
	if c.Grid[0][0] != brailleBase || c.Layer[0][0] != LayerNone {
		t.Error("clear should reset grid and layers")
	}
}

func TestCanvasDrawDashed(t *testing.T) {
	solid := NewCanvas(10, 1)
	solid.DrawLine(0, 0, 19, 0, LayerCurve)
	dashed := NewCanvas(10, 1)
	dashed.DrawDashed(0, 0, 19, 0, 2, LayerSkeleton)

	count := func(c *Canvas) int {
		n := 0
		for _, r := range c.Grid[0] {
			for bits := int(r - brailleBase); bits > 0; bits >>= 1 {
				n += bits & 1
			}
		}
		return n
	}
	if count(solid) != 20 {
		t.Errorf("solid line should set 20 dots, got %d", count(solid))
	}
	if count(dashed) != 10 {
		t.Errorf("dashed line should set 10 dots, got %d", count(dashed))
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Set(0, 0, LayerCurve)
	out := c.Render(ThemeSlate.LayerStyles())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if w := lipgloss.Width(lines[0]); w != 3 {
		t.Errorf("expected width 3, got %d", w)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "cyberpunk" {
		t.Error("unknown theme should fall back to cyberpunk")
	}

	SetTheme("sunset")
	NextTheme()
	if CurrentTheme.Name != "cyberpunk" {
		t.Errorf("expected wrap to cyberpunk, got %s", CurrentTheme.Name)
	}
	SetTheme("cyberpunk")

	faded := ThemeMinimal.Faded(ThemeMinimal.Text, 0.5)
	if faded == ThemeMinimal.Text || faded == ThemeMinimal.Background {
		t.Errorf("expected a mid color, got %s", faded)
	}
}

func TestGradientText(t *testing.T) {
	if GradientText("", "#000000", "#ffffff") != "" {
		t.Error("empty text should render empty")
	}
	if w := lipgloss.Width(GradientText("spring", "#000000", "#ffffff")); w != 6 {
		t.Errorf("expected width 6, got %d", w)
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	return NewModel(config.DefaultConfig(), Options{
		GIFPath:      filepath.Join(dir, "out.gif"),
		SnapshotPath: filepath.Join(dir, "out.svg"),
	})
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelCellMapping(t *testing.T) {
	m := update(newTestModel(t), tea.WindowSizeMsg{Width: 146, Height: 42})
	if m.cols != 96 || m.rows != 40 {
		t.Fatalf("unexpected canvas %dx%d", m.cols, m.rows)
	}

	p, ok := m.cellToSurface(padLeft, padTop)
	if !ok || p.X <= 0 || p.X > 10 || p.Y <= 0 || p.Y > 10 {
		t.Errorf("top-left cell mapped to %v", p)
	}
	p, ok = m.cellToSurface(padLeft+48, padTop+20)
	if !ok || p.Distance(geom.Pt(404.1667, 256.25)) > 0.01 {
		t.Errorf("centre cell mapped to %v", p)
	}
	if _, ok := m.cellToSurface(0, 0); ok {
		t.Error("padding cell should be off the canvas")
	}
	if _, ok := m.cellToSurface(padLeft+96, padTop); ok {
		t.Error("stats panel should be off the canvas")
	}
}

func TestModelMouseAndTick(t *testing.T) {
	m := update(newTestModel(t), tea.WindowSizeMsg{Width: 146, Height: 42})
	m = update(m, tea.MouseMsg{X: padLeft + 10, Y: padTop + 5, Action: tea.MouseActionMotion})
	want := m.host.pointer

	for i := 0; i < 3; i++ {
		m = update(m, TickMsg{})
	}
	f := m.host.last
	if f.Index != 3 {
		t.Errorf("expected frame 3, got %d", f.Index)
	}
	if f.Pointer != want {
		t.Errorf("frame pointer %v, want %v", f.Pointer, want)
	}
	if len(m.history) != 3 {
		t.Errorf("expected 3 history samples, got %d", len(m.history))
	}

	m = update(m, key(" "))
	m = update(m, TickMsg{})
	if m.host.last.Index != 3 {
		t.Error("paused model should not advance")
	}

	m = update(m, key("r"))
	if len(m.history) != 0 || m.host.last.Index != 0 {
		t.Error("reset should clear history and frame")
	}
}

func TestModelKeyboardGlide(t *testing.T) {
	m := newTestModel(t)
	start := m.host.pointer
	m = update(m, key("d"))
	if m.goal != start.Add(geom.Pt(nudge, 0)) {
		t.Fatalf("unexpected goal %v", m.goal)
	}

	for i := 0; i < 120; i++ {
		m = update(m, TickMsg{})
	}
	if d := m.host.pointer.Distance(m.goal); d > 0.5 {
		t.Errorf("pointer %.3f px from goal after glide", d)
	}
}

func TestModelAdjustParam(t *testing.T) {
	m := newTestModel(t)
	k := m.loop.Params().Stiffness

	m = update(m, key("up"))
	if got := m.loop.Params().Stiffness; got <= k {
		t.Errorf("stiffness should increase, got %f", got)
	}

	m = update(m, key("tab"))
	for i := 0; i < 20; i++ {
		m = update(m, key("up"))
	}
	if d := m.loop.Params().Damping; d >= 1 {
		t.Errorf("damping should stay below 1, got %f", d)
	}

	m = update(m, key("r"))
	if m.loop.Params() != m.initial {
		t.Error("reset should restore the initial params")
	}
}

func TestModelSnapshotAndRecording(t *testing.T) {
	m := newTestModel(t)
	m = update(m, TickMsg{})
	m = update(m, key("e"))
	if _, err := os.Stat(m.opts.SnapshotPath); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}

	m = update(m, key("g"))
	m = update(m, TickMsg{})
	m = update(m, TickMsg{})
	if len(m.frames) != 2 {
		t.Fatalf("expected 2 recorded frames, got %d", len(m.frames))
	}
	m = update(m, key("g"))
	if m.recording {
		t.Error("second g should stop recording")
	}
	if _, err := os.Stat(m.opts.GIFPath); err != nil {
		t.Errorf("gif not written: %v", err)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	m = update(m, TickMsg{})
	m = update(m, TickMsg{})
	view := m.View()
	for _, want := range []string{"RUNNING", "PARAMETERS", "stiffness", "Settled"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelSettledNeedsRest(t *testing.T) {
	m := newTestModel(t)
	m = update(m, TickMsg{})
	if strings.Contains(m.View(), "yes (") {
		t.Error("springs still moving should not read as settled")
	}

	for i := 0; i < 600; i++ {
		m = update(m, TickMsg{})
	}
	if !m.loop.Scene().Settled(settleTol) {
		t.Fatal("springs should rest after 600 frames")
	}
	if !strings.Contains(m.View(), "yes (") {
		t.Error("rested springs should read as settled")
	}

	m = update(m, key("a"))
	m = update(m, TickMsg{})
	if m.loop.Scene().Settled(settleTol) == strings.Contains(m.View(), "no (") {
		t.Error("settled readout disagrees with the scene")
	}
}

func TestInteractiveStart(t *testing.T) {
	app := NewInteractiveApp(config.DefaultConfig(), DefaultOptions())

	next, _ := app.Update(key("j"))
	next, _ = next.(model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := next.(model)
	if m.state != stateConfig || m.selected != m.presets[1] {
		t.Fatalf("expected config screen for %s, got state %d", m.presets[1], m.state)
	}
	if m.cfg.Physics != config.Presets[m.selected] {
		t.Errorf("preset physics not applied: %+v", m.cfg.Physics)
	}

	m.cfg.Physics.Damping = 1.5
	next, _ = m.Update(key("s"))
	m = next.(model)
	if m.state != stateConfig || m.err == nil {
		t.Fatal("invalid damping should keep the config screen with an error")
	}

	m.cfg.Physics.Damping = 0.9
	next, cmd := m.Update(key("s"))
	m = next.(model)
	if m.state != stateLive || cmd == nil {
		t.Errorf("expected live view with a tick command, got state %d", m.state)
	}
}

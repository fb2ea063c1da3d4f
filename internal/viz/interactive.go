package viz

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/springcurve/internal/config"
)

var presetInfo = map[string]string{
	"default": "balanced follow",
	"snappy":  "quick, little overshoot",
	"floaty":  "slow drift",
	"jelly":   "wobbly, long ringing",
	"stiff":   "tight, heavily damped",
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	idleInfoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

const (
	stateMenu = iota
	stateConfig
	stateLive
)

// tunable is one editable config field of the config screen.
type tunable struct {
	name string
	step float64
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

var tunables = []tunable{
	{"stiffness", 0.01,
		func(c *config.Config) float64 { return c.Physics.Stiffness },
		func(c *config.Config, v float64) { c.Physics.Stiffness = v }},
	{"damping", 0.01,
		func(c *config.Config) float64 { return c.Physics.Damping },
		func(c *config.Config, v float64) { c.Physics.Damping = v }},
	{"offset", 10,
		func(c *config.Config) float64 { return c.Interaction.PointOffset },
		func(c *config.Config, v float64) { c.Interaction.PointOffset = v }},
	{"samples", 10,
		func(c *config.Config) float64 { return float64(c.Render.NumSamples) },
		func(c *config.Config, v float64) { c.Render.NumSamples = int(v) }},
	{"interval", 1,
		func(c *config.Config) float64 { return float64(c.Render.TangentInterval) },
		func(c *config.Config, v float64) { c.Render.TangentInterval = int(v) }},
}

type model struct {
	state, cursor int
	presets       []string
	selected      string
	base          *config.Config
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	err           error
	opts          Options
	width, height int
	liveModel     Model
}

// NewInteractiveApp starts on the preset menu. base supplies everything the
// presets leave alone.
func NewInteractiveApp(base *config.Config, opts Options) *model {
	return &model{
		state:   stateMenu,
		presets: config.ListPresets(),
		base:    base,
		cfg:     base.Clone(),
		opts:    opts,
		width:   defaultCols, height: defaultRows,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateLive {
			m.liveModel.resize(msg.Width, msg.Height)
		}
		return m, nil
	default:
		if m.state == stateLive {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateLive:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = m.base.Clone()
		if err := m.cfg.ApplyPreset(m.selected); err != nil {
			m.err = err
			return m, nil
		}
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	t := tunables[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			if val, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				t.set(m.cfg, val)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state, m.err = stateMenu, nil
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(tunables)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, strconv.FormatFloat(t.get(m.cfg), 'f', -1, 64)
	case "s":
		return m, m.start()
	case "left", "h":
		t.set(m.cfg, t.get(m.cfg)-t.step)
	case "right", "l":
		t.set(m.cfg, t.get(m.cfg)+t.step)
	}
	return m, nil
}

// start validates the edited config and switches to the live view. An
// invalid config keeps the config screen open with the error shown.
func (m *model) start() tea.Cmd {
	if err := m.cfg.Validate(); err != nil {
		m.err = err
		return nil
	}
	log.Printf("starting preset %s", m.selected)
	m.liveModel = NewModel(m.cfg, m.opts)
	m.liveModel.resize(m.width, m.height)
	m.state, m.err = stateLive, nil
	return m.liveModel.Init()
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateLive:
		return m.liveModel.View()
	}
	return ""
}

func header(title, sub string) string {
	return "\n\n    " + titleStyle.Render(title) + "\n    " + subStyle.Render(sub) + "\n    " + subStyle.Render("─────────────────────────") + "\n\n"
}

func hints(pairs ...string) string {
	var b strings.Builder
	b.WriteString("\n    ")
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyStyle.Render(pairs[i]) + idleStyle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String() + "\n"
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString(header("SPRINGCURVE", "spring-driven bezier curve"))
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-10s", name)), infoStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idleStyle.Render(fmt.Sprintf("  %-10s", name)), idleInfoStyle.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString(hints("j/k", "navigate", "enter", "select", "q", "quit"))
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	b.WriteString(header(strings.ToUpper(m.selected), presetInfo[m.selected]))
	for i, t := range tunables {
		valStr := fmt.Sprintf("%8.3f", t.get(m.cfg))
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-10s", t.name)), infoStyle.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", idleStyle.Render(fmt.Sprintf("  %-10s", t.name)), idleInfoStyle.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString(hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back"))
	return b.String()
}

// RunInteractive opens the preset menu, then the live view.
func RunInteractive(base *config.Config, opts Options) error {
	_, err := tea.NewProgram(NewInteractiveApp(base, opts), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

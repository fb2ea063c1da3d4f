package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Curve      lipgloss.Color
	Point      lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Primary:    lipgloss.Color("#ff00ff"),
		Secondary:  lipgloss.Color("#00ffff"),
		Curve:      lipgloss.Color("#00ffff"),
		Point:      lipgloss.Color("#ff00ff"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Success:    lipgloss.Color("#00ff00"),
		Warning:    lipgloss.Color("#ff8800"),
		Error:      lipgloss.Color("#ff0000"),
	}

	// ThemeSlate is the palette of the browser demo the curve comes from.
	ThemeSlate = Theme{
		Name:       "slate",
		Primary:    lipgloss.Color("#38bdf8"),
		Secondary:  lipgloss.Color("#f472b6"),
		Curve:      lipgloss.Color("#38bdf8"),
		Point:      lipgloss.Color("#f472b6"),
		Background: lipgloss.Color("#0f172a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#64748b"),
		Success:    lipgloss.Color("#4ade80"),
		Warning:    lipgloss.Color("#fbbf24"),
		Error:      lipgloss.Color("#f87171"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"),
		Secondary:  lipgloss.Color("#00cc00"),
		Curve:      lipgloss.Color("#00ff00"),
		Point:      lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Success:    lipgloss.Color("#88ff88"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Curve:      lipgloss.Color("#ffffff"),
		Point:      lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Success:    lipgloss.Color("#00ff00"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"),
		Secondary:  lipgloss.Color("#00a8cc"),
		Curve:      lipgloss.Color("#00a8cc"),
		Point:      lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Success:    lipgloss.Color("#00ff88"),
		Warning:    lipgloss.Color("#ffcc00"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"),
		Secondary:  lipgloss.Color("#feca57"),
		Curve:      lipgloss.Color("#feca57"),
		Point:      lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Success:    lipgloss.Color("#5fd068"),
		Warning:    lipgloss.Color("#ffc048"),
		Error:      lipgloss.Color("#ff4757"),
	}

	// Default theme
	CurrentTheme = ThemeCyberpunk

	// All available themes
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeSlate,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Faded mixes fg into the theme background at alpha, the terminal stand-in
// for a translucent stroke.
func (t Theme) Faded(fg lipgloss.Color, alpha float64) lipgloss.Color {
	f, err := colorful.Hex(string(fg))
	if err != nil {
		return fg
	}
	bg, err := colorful.Hex(string(t.Background))
	if err != nil {
		return fg
	}
	return lipgloss.Color(bg.BlendLab(f, alpha).Clamped().Hex())
}

// LayerStyles maps canvas layers to this theme's colors.
func (t Theme) LayerStyles() [numLayers]lipgloss.Style {
	var s [numLayers]lipgloss.Style
	s[LayerNone] = lipgloss.NewStyle()
	s[LayerSkeleton] = lipgloss.NewStyle().Foreground(t.Faded(t.Text, 0.25))
	s[LayerTangent] = lipgloss.NewStyle().Foreground(t.Faded(t.Text, 0.45))
	s[LayerCurve] = lipgloss.NewStyle().Foreground(t.Curve).Bold(true)
	s[LayerPoint] = lipgloss.NewStyle().Foreground(t.Point).Bold(true)
	s[LayerPointer] = lipgloss.NewStyle().Foreground(t.Muted)
	return s
}

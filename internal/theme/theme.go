// Package theme defines the dark and light color schemes used by the
// terminal renderers.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/maxbolgarin/errm"
)

// Theme is a color scheme name.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// Default is the theme used when none was chosen.
const Default = Dark

// Parse converts a user supplied name into a Theme.
func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	}
	return "", errm.Errorf("unknown theme %q, expected dark or light", s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Palette is the set of colors a theme renders with.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Subtle    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color

	// Series colors datasets in order.
	Series []lipgloss.Color
}

var (
	darkPalette = Palette{
		Primary:   lipgloss.Color("#58a6ff"),
		Secondary: lipgloss.Color("#bc8cff"),
		Subtle:    lipgloss.Color("240"),
		Text:      lipgloss.Color("252"),
		Muted:     lipgloss.Color("245"),
		Error:     lipgloss.Color("196"),
		Success:   lipgloss.Color("42"),
		Series: []lipgloss.Color{
			lipgloss.Color("#4bc0c0"),
			lipgloss.Color("#36a2eb"),
			lipgloss.Color("#9966ff"),
			lipgloss.Color("#ff9f40"),
			lipgloss.Color("#ff6384"),
			lipgloss.Color("#ffcd56"),
			lipgloss.Color("#c9cbcf"),
			lipgloss.Color("#63ff84"),
		},
	}

	lightPalette = Palette{
		Primary:   lipgloss.Color("#0969da"),
		Secondary: lipgloss.Color("#8250df"),
		Subtle:    lipgloss.Color("250"),
		Text:      lipgloss.Color("235"),
		Muted:     lipgloss.Color("242"),
		Error:     lipgloss.Color("160"),
		Success:   lipgloss.Color("28"),
		Series: []lipgloss.Color{
			lipgloss.Color("#1a7f7f"),
			lipgloss.Color("#1f6fb2"),
			lipgloss.Color("#6639ba"),
			lipgloss.Color("#bc4c00"),
			lipgloss.Color("#cf222e"),
			lipgloss.Color("#9a6700"),
			lipgloss.Color("#57606a"),
			lipgloss.Color("#1a7f37"),
		},
	}
)

// Palette returns the colors of t. Unknown themes use the dark palette.
func (t Theme) Palette() Palette {
	if t == Light {
		return lightPalette
	}
	return darkPalette
}

// SeriesColor returns the color of the i-th dataset.
func (p Palette) SeriesColor(i int) lipgloss.Color {
	if len(p.Series) == 0 {
		return p.Primary
	}
	return p.Series[i%len(p.Series)]
}

var languageColors = map[string]string{
	"JavaScript": "#f1e05a",
	"TypeScript": "#3178c6",
	"Python":     "#3572A5",
	"Java":       "#b07219",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"C#":         "#178600",
	"PHP":        "#4F5D95",
	"Swift":      "#ffac45",
	"Go":         "#00ADD8",
	"Ruby":       "#701516",
	"Rust":       "#dea584",
	"Dart":       "#00B4AB",
	"Kotlin":     "#A97BFF",
	"C++":        "#f34b7d",
	"C":          "#555555",
	"Shell":      "#89e051",
}

// DefaultLanguageColor is used for languages without a known color.
const DefaultLanguageColor = "#8b949e"

// LanguageColor returns the conventional GitHub color of a language.
func LanguageColor(language string) lipgloss.Color {
	if c, ok := languageColors[language]; ok {
		return lipgloss.Color(c)
	}
	return lipgloss.Color(DefaultLanguageColor)
}

// Styles are the lipgloss styles derived from a palette.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Prompt  lipgloss.Style
}

// Styles builds the styles for t.
func (t Theme) Styles() Styles {
	p := t.Palette()
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Label:   lipgloss.NewStyle().Foreground(p.Muted),
		Value:   lipgloss.NewStyle().Foreground(p.Text),
		Muted:   lipgloss.NewStyle().Foreground(p.Subtle),
		Error:   lipgloss.NewStyle().Foreground(p.Error),
		Success: lipgloss.NewStyle().Foreground(p.Success),
		Prompt:  lipgloss.NewStyle().Bold(true).Foreground(p.Secondary),
	}
}

package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/Ishanpathak1/ghanalytics/internal/theme"
	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// ASCIIConfig configures terminal rendering.
type ASCIIConfig struct {
	// Width is the total width in columns. Default is 60.
	Width int

	// Height is the height of line charts in rows. Default is 10.
	Height int

	// Theme selects the color palette.
	Theme theme.Theme
}

// DefaultASCIIConfig returns default terminal rendering configuration.
func DefaultASCIIConfig() ASCIIConfig {
	return ASCIIConfig{
		Width:  60,
		Height: 10,
		Theme:  theme.Default,
	}
}

// RenderASCII draws c for a terminal. Line charts are plotted; every other
// kind is drawn as horizontal bars.
func RenderASCII(c model.ChartData, cfg ASCIIConfig) string {
	if cfg.Width < 20 {
		cfg.Width = 20
	}
	if cfg.Height < 3 {
		cfg.Height = 3
	}
	styles := cfg.Theme.Styles()

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(c.Title))
	sb.WriteString("\n")

	if c.Empty || len(c.Datasets) == 0 {
		sb.WriteString(styles.Muted.Render("No data available"))
		return sb.String()
	}

	switch c.Kind {
	case model.ChartLine:
		sb.WriteString(renderLine(c, cfg))
	case model.ChartPie:
		sb.WriteString(renderShares(c, cfg))
	default:
		sb.WriteString(renderBars(c, cfg))
	}
	return sb.String()
}

func renderLine(c model.ChartData, cfg ASCIIConfig) string {
	ds := c.Datasets[0]
	graph := asciigraph.Plot(ds.Data,
		asciigraph.Height(cfg.Height),
		asciigraph.Width(cfg.Width),
		asciigraph.Caption(ds.Label),
	)
	return graph + "\n" + cfg.Theme.Styles().Muted.Render(strings.Join(c.Labels, " "))
}

func renderBars(c model.ChartData, cfg ASCIIConfig) string {
	palette := cfg.Theme.Palette()
	labelWidth := maxLen(c.Labels)
	barWidth := cfg.Width - labelWidth - 10
	if barWidth < 10 {
		barWidth = 10
	}

	maxVal := c.Max()
	if maxVal == 0 {
		maxVal = 1
	}

	var lines []string
	for i, label := range c.Labels {
		for d, ds := range c.Datasets {
			if i >= len(ds.Data) {
				continue
			}
			v := ds.Data[i]
			name := label
			if d > 0 {
				name = ""
			}
			bar := lipgloss.NewStyle().
				Foreground(palette.SeriesColor(d)).
				Render(strings.Repeat("█", barLength(v, maxVal, barWidth)))
			lines = append(lines, fmt.Sprintf("%*s │%s %s", labelWidth, name, bar, formatValue(v)))
		}
	}

	if len(c.Datasets) > 1 {
		lines = append(lines, legend(c.Datasets, palette))
	}
	return strings.Join(lines, "\n")
}

func renderShares(c model.ChartData, cfg ASCIIConfig) string {
	ds := c.Datasets[0]
	labelWidth := maxLen(c.Labels)
	barWidth := cfg.Width - labelWidth - 12
	if barWidth < 10 {
		barWidth = 10
	}

	var total float64
	for _, v := range ds.Data {
		total += v
	}
	if total == 0 {
		total = 1
	}

	var lines []string
	for i, label := range c.Labels {
		if i >= len(ds.Data) {
			break
		}
		share := ds.Data[i] / total
		bar := lipgloss.NewStyle().
			Foreground(theme.LanguageColor(label)).
			Render(strings.Repeat("█", barLength(share, 1, barWidth)))
		lines = append(lines, fmt.Sprintf("%*s │%s %3.0f%%", labelWidth, label, bar, share*100))
	}
	return strings.Join(lines, "\n")
}

func legend(datasets []model.Dataset, palette theme.Palette) string {
	parts := make([]string, 0, len(datasets))
	for i, ds := range datasets {
		swatch := lipgloss.NewStyle().Foreground(palette.SeriesColor(i)).Render("█")
		parts = append(parts, swatch+" "+ds.Label)
	}
	return strings.Join(parts, "  ")
}

func barLength(v, maxVal float64, width int) int {
	n := int(v / maxVal * float64(width))
	if n < 0 {
		return 0
	}
	return n
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func maxLen(labels []string) int {
	n := 0
	for _, l := range labels {
		if w := lipgloss.Width(l); w > n {
			n = w
		}
	}
	return n
}

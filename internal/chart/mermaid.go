package chart

import (
	"fmt"
	"io"
	"strings"

	"github.com/maxbolgarin/errm"

	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// ErrEmptyChart is returned when a placeholder chart is written as Mermaid.
var ErrEmptyChart = errm.New("chart has no data")

// MermaidConfig configures Mermaid diagram output.
type MermaidConfig struct {
	// Fenced wraps the diagram in a ```mermaid code block.
	Fenced bool

	// Horizontal draws xy charts with horizontal orientation.
	Horizontal bool
}

// DefaultMermaidConfig returns default Mermaid configuration.
func DefaultMermaidConfig() MermaidConfig {
	return MermaidConfig{Fenced: true}
}

// WriteMermaid writes c as a Mermaid pie or xychart-beta diagram.
func WriteMermaid(w io.Writer, c model.ChartData, cfg MermaidConfig) error {
	if c.Empty || len(c.Datasets) == 0 {
		return ErrEmptyChart
	}

	if cfg.Fenced {
		fmt.Fprintf(w, "```mermaid\n")
	}

	if c.Kind == model.ChartPie {
		writePie(w, c)
	} else {
		writeXY(w, c, cfg)
	}

	if cfg.Fenced {
		fmt.Fprintf(w, "```\n")
	}
	return nil
}

func writePie(w io.Writer, c model.ChartData) {
	fmt.Fprintf(w, "pie title %s\n", escapeMermaid(c.Title))
	ds := c.Datasets[0]
	for i, label := range c.Labels {
		if i >= len(ds.Data) {
			break
		}
		fmt.Fprintf(w, "    \"%s\" : %s\n", escapeMermaid(label), formatValue(ds.Data[i]))
	}
}

func writeXY(w io.Writer, c model.ChartData, cfg MermaidConfig) {
	if cfg.Horizontal {
		fmt.Fprintf(w, "xychart-beta horizontal\n")
	} else {
		fmt.Fprintf(w, "xychart-beta\n")
	}
	fmt.Fprintf(w, "    title \"%s\"\n", escapeMermaid(c.Title))

	labels := make([]string, len(c.Labels))
	for i, l := range c.Labels {
		labels[i] = "\"" + escapeMermaid(l) + "\""
	}
	fmt.Fprintf(w, "    x-axis [%s]\n", strings.Join(labels, ", "))

	maxVal := c.Max()
	if c.Kind == model.ChartRadar {
		maxVal = 100
	}
	if c.YAxis != "" {
		fmt.Fprintf(w, "    y-axis \"%s\" 0 --> %s\n", escapeMermaid(c.YAxis), formatValue(maxVal))
	} else {
		fmt.Fprintf(w, "    y-axis 0 --> %s\n", formatValue(maxVal))
	}

	series := "bar"
	if c.Kind == model.ChartLine {
		series = "line"
	}
	for _, ds := range c.Datasets {
		values := make([]string, len(ds.Data))
		for i, v := range ds.Data {
			values[i] = formatValue(v)
		}
		fmt.Fprintf(w, "    %s [%s]\n", series, strings.Join(values, ", "))
	}
}

// escapeMermaid strips characters that terminate Mermaid string literals.
func escapeMermaid(s string) string {
	replacer := strings.NewReplacer(
		"\"", "'",
		"\n", " ",
		"[", "(",
		"]", ")",
	)
	return replacer.Replace(s)
}

// ToMermaid returns c as a Mermaid string. Placeholder charts yield "".
func ToMermaid(c model.ChartData, cfg MermaidConfig) string {
	var sb strings.Builder
	if err := WriteMermaid(&sb, c, cfg); err != nil {
		return ""
	}
	return sb.String()
}

// Package report renders analysis results and chart series in the output
// formats supported by the CLI.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/maxbolgarin/errm"

	"github.com/Ishanpathak1/ghanalytics/internal/theme"
	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// InsufficientData replaces metrics that could not be computed.
const InsufficientData = "Insufficient data for analysis"

// Supported format names.
const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// Formats lists the supported format names.
var Formats = []string{FormatTable, FormatJSON, FormatYAML, FormatMarkdown, FormatCSV}

// Formatter defines the interface for formatting results.
type Formatter interface {
	// FormatAnalysis formats an analysis result.
	FormatAnalysis(result *model.AnalysisResult) (string, error)

	// FormatCharts formats chart series.
	FormatCharts(charts []model.ChartData) (string, error)
}

// Options configures formatters that need more than the result itself.
type Options struct {
	// Theme colors terminal charts.
	Theme theme.Theme

	// Mermaid embeds Mermaid charts in Markdown output.
	Mermaid bool

	// Width is the terminal chart width.
	Width int
}

// New returns the formatter for format.
func New(format string, opts Options) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatTable, "":
		return NewTableFormatter(opts), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatYAML, "yml":
		return NewYAMLFormatter(), nil
	case FormatMarkdown, "md":
		return NewMarkdownFormatter(opts), nil
	case FormatCSV:
		return NewCSVFormatter(), nil
	}
	return nil, errm.Errorf("unknown format %q, expected one of %s", format, strings.Join(Formats, ", "))
}

// HourDisplay formats an hour of day as 12 AM, 1 AM, ... 11 PM.
func HourDisplay(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour == 12:
		return "12 PM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func location(result *model.AnalysisResult) *time.Location {
	if result == nil || result.Location == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(result.Location)
	if err != nil {
		return time.UTC
	}
	return loc
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

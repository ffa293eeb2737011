package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/maxbolgarin/errm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ishanpathak1/ghanalytics/internal/chart"
	"github.com/Ishanpathak1/ghanalytics/internal/console"
	"github.com/Ishanpathak1/ghanalytics/internal/report"
	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

var chartsCmd = &cobra.Command{
	Use:   "charts <username>",
	Short: "Draw activity, language and repository charts",
	Long: `Analyze a profile and draw its charts.

The table format draws terminal charts, markdown emits Mermaid blocks and
json, yaml and csv emit the raw series.

Available charts: ` + strings.Join(chart.Names, ", ") + `

Examples:
  # All charts in the terminal
  ghanalytics charts octocat

  # Only the hourly and language charts
  ghanalytics charts octocat --chart hourly,languages

  # Mermaid charts for a README
  ghanalytics charts octocat --format markdown --output charts.md`,
	Args: cobra.ExactArgs(1),
	RunE: runCharts,
}

func init() {
	rootCmd.AddCommand(chartsCmd)

	chartsCmd.Flags().StringSlice("chart", nil, "Charts to draw (default: all)")
	chartsCmd.Flags().Int("width", 60, "Terminal chart width")

	_ = viper.BindPFlag("charts.chart", chartsCmd.Flags().Lookup("chart"))
	_ = viper.BindPFlag("charts.width", chartsCmd.Flags().Lookup("width"))
}

func runCharts(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	names := viper.GetStringSlice("charts.chart")
	if len(names) == 0 {
		names = chart.Names
	}

	themes, err := themeService()
	if err != nil {
		return err
	}

	formatter, err := report.New(viper.GetString("format"), report.Options{
		Theme: themes.Theme(),
		Width: viper.GetInt("charts.width"),
	})
	if err != nil {
		return err
	}

	loc, err := location()
	if err != nil {
		return err
	}

	runner, err := newRunner(nil)
	if err != nil {
		return err
	}

	result, err := runner.Run(ctx, args[0])
	if err != nil {
		return err
	}

	charts := make([]model.ChartData, 0, len(names))
	for _, name := range names {
		c, ok := chart.ByName(result, strings.ToLower(strings.TrimSpace(name)), result.Timestamp, loc)
		if !ok {
			return errm.Errorf("unknown chart %q, available: %s", name, strings.Join(chart.Names, ", "))
		}
		charts = append(charts, c)
	}

	out, err := formatter.FormatCharts(charts)
	if err != nil {
		return err
	}
	return writeOutput(out)
}

// themeService returns the file-backed theme store.
func themeService() (*console.FileThemeService, error) {
	path := viper.GetString("theme-file")
	if path == "" {
		var err error
		if path, err = console.DefaultThemePath(); err != nil {
			return nil, err
		}
	}
	return console.NewFileThemeService(path)
}

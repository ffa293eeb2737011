package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ishanpathak1/ghanalytics/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <username>",
	Short: "Analyze a GitHub profile",
	Long: `Fetch a user's profile, repositories and recent commits and print
activity, language and repository metrics.

Only the most starred non-fork repositories are probed for commits; the
sampling profile controls how many.

Examples:
  # Analyze a profile
  ghanalytics analyze octocat

  # Sample more widely with a token
  GITHUB_TOKEN=... ghanalytics analyze octocat --profile deep

  # Markdown report with Mermaid charts
  ghanalytics analyze octocat --format markdown --mermaid --output octocat.md

  # Bucket commit times in a specific time zone
  ghanalytics analyze octocat --timezone Europe/Berlin --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Bool("mermaid", false, "Embed Mermaid charts in Markdown output")
	_ = viper.BindPFlag("analyze.mermaid", analyzeCmd.Flags().Lookup("mermaid"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	formatter, err := report.New(viper.GetString("format"), report.Options{
		Mermaid: viper.GetBool("analyze.mermaid"),
	})
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

	out, err := formatter.FormatAnalysis(result)
	if err != nil {
		return err
	}
	return writeOutput(out)
}

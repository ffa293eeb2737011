package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ishanpathak1/ghanalytics/internal/analytics"
	"github.com/Ishanpathak1/ghanalytics/internal/console"
)

var consoleCmd = &cobra.Command{
	Use:   "console [username]",
	Short: "Start the interactive analytics console",
	Long: `Start an interactive console. Type "help" for the list of commands.

Commands read from a pipe run line by line without the interactive UI.

Examples:
  # Interactive console
  ghanalytics console

  # Analyze a user on start
  ghanalytics console octocat

  # Scripted
  printf 'analyze octocat\nstreak\n' | ghanalytics console`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)

	consoleCmd.Flags().Bool("plain", false, "Read commands line by line even on a terminal")
	_ = viper.BindPFlag("console.plain", consoleCmd.Flags().Lookup("plain"))
}

func runConsole(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner, err := newRunner(analytics.NewCallbackProgress(func(analytics.ProgressEvent) {}))
	if err != nil {
		return err
	}

	themes, err := themeService()
	if err != nil {
		return err
	}

	loc, err := location()
	if err != nil {
		return err
	}

	registry := console.DefaultRegistry()
	env := &console.Env{
		Analyzer: runner,
		Session:  &analytics.Session{},
		Themes:   themes,
		History:  console.NewHistory(),
		Registry: registry,
		Location: loc,
		Now:      time.Now,
		Width:    60,
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) && !viper.GetBool("console.plain")
	if !interactive {
		env.OnClear = func() {}
		var in io.Reader = os.Stdin
		if len(args) == 1 {
			in = io.MultiReader(strings.NewReader("analyze "+args[0]+"\n"), in)
		}
		return console.RunLines(ctx, registry, env, in, os.Stdout)
	}

	model := console.NewModel(ctx, registry, env)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if len(args) == 1 {
		go p.Send(console.Submit("analyze " + args[0]))
	}
	_, err = p.Run()
	return err
}

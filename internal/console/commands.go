package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/maxbolgarin/errm"

	"github.com/Ishanpathak1/ghanalytics/internal/analytics"
	"github.com/Ishanpathak1/ghanalytics/internal/chart"
	"github.com/Ishanpathak1/ghanalytics/internal/report"
	"github.com/Ishanpathak1/ghanalytics/internal/theme"
	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// NoAnalysis is printed by commands that need a completed analysis.
const NoAnalysis = `No analysis yet. Type "analyze <username>" to start.`

type builtin struct {
	kind        CommandKind
	usage       string
	description string
	run         func(ctx context.Context, args []string, env *Env) ([]string, error)
}

func (b *builtin) Kind() CommandKind   { return b.kind }
func (b *builtin) Name() string        { return b.kind.String() }
func (b *builtin) Usage() string       { return b.usage }
func (b *builtin) Description() string { return b.description }

func (b *builtin) Execute(ctx context.Context, args []string, env *Env) ([]string, error) {
	return b.run(ctx, args, env)
}

// Builtins returns a fresh set of the built-in commands.
func Builtins() []Command {
	return []Command{
		&builtin{KindHelp, "help", "List all available commands", runHelp},
		&builtin{KindAnalyze, "analyze <username>", "Analyze a GitHub profile", runAnalyze},
		&builtin{KindSummary, "summary", "Show the overview of the last analysis", withResult(summaryLines)},
		&builtin{KindLanguages, "languages", "Show the top languages", withResult(languageLines)},
		&builtin{KindActivity, "activity", "Show when commits happen", withEnvResult(activityLines)},
		&builtin{KindStreak, "streak", "Show commit streaks", withResult(streakLines)},
		&builtin{KindRepos, "repos", "Show the top repositories", withResult(repoLines)},
		&builtin{KindChart, "chart <" + strings.Join(chart.Names, "|") + ">", "Draw a chart of the last analysis", runChart},
		&builtin{KindTheme, "theme [dark|light]", "Toggle between dark and light mode or set a specific theme", runTheme},
		&builtin{KindHistory, "history", "List previously entered commands", runHistory},
		&builtin{KindClear, "clear", "Clear the terminal screen", runClear},
	}
}

func runHelp(_ context.Context, _ []string, env *Env) ([]string, error) {
	lines := []string{"Available commands:"}
	if env.Registry != nil {
		for _, c := range env.Registry.Commands() {
			lines = append(lines, fmt.Sprintf("%-15s - %s", c.Name(), c.Description()))
		}
	}
	return append(lines,
		"",
		"Type a command and press Enter to execute.",
		"Use the up and down arrow keys to navigate command history.",
	), nil
}

func runAnalyze(ctx context.Context, args []string, env *Env) ([]string, error) {
	if len(args) != 1 {
		return nil, errm.New("usage: analyze <username>")
	}
	if env.Analyzer == nil {
		return nil, errm.New("analysis is not configured")
	}
	if env.Session == nil {
		env.Session = &analytics.Session{}
	}

	res, err := env.Session.Run(ctx, env.Analyzer, args[0])
	if errors.Is(err, analytics.ErrStaleRun) {
		return []string{fmt.Sprintf("Analysis of %s was replaced by a newer run.", args[0])}, nil
	}
	if err != nil {
		return nil, err
	}

	lines := []string{fmt.Sprintf("Analysis complete for %s.", res.Username), ""}
	lines = append(lines, summaryLines(res)...)
	if len(res.CommitErrors) > 0 {
		lines = append(lines, "", fmt.Sprintf("Skipped %d repositories whose commits could not be fetched.", len(res.CommitErrors)))
	}
	return lines, nil
}

func withResult(fn func(*model.AnalysisResult) []string) func(context.Context, []string, *Env) ([]string, error) {
	return withEnvResult(func(_ *Env, res *model.AnalysisResult) []string { return fn(res) })
}

func withEnvResult(fn func(*Env, *model.AnalysisResult) []string) func(context.Context, []string, *Env) ([]string, error) {
	return func(_ context.Context, _ []string, env *Env) ([]string, error) {
		res := currentResult(env)
		if res == nil {
			return []string{NoAnalysis}, nil
		}
		return fn(env, res), nil
	}
}

func currentResult(env *Env) *model.AnalysisResult {
	if env.Session == nil {
		return nil
	}
	return env.Session.Current()
}

func summaryLines(res *model.AnalysisResult) []string {
	var lines []string
	if p := res.Profile; p != nil {
		lines = append(lines,
			fmt.Sprintf("%s (@%s)", p.DisplayName(), p.Login),
			"-----------------",
			fmt.Sprintf("Followers: %d | Following: %d | Public repos: %d", p.Followers, p.Following, p.PublicRepos),
		)
	} else {
		lines = append(lines, res.Username, "-----------------")
	}
	lines = append(lines,
		fmt.Sprintf("Total stars: %d | Total forks: %d", res.TotalStars, res.TotalForks),
		fmt.Sprintf("Commits sampled: %d across %d repositories", res.CommitData.TotalCommits, len(res.CommitData.Repositories)),
	)

	if len(res.TopLanguages) > 0 && !res.InsufficientLanguages {
		top := res.TopLanguages[0]
		lines = append(lines, fmt.Sprintf("Top language: %s (%d%%)", top.Language, top.Percentage))
	} else {
		lines = append(lines, "Top language: "+report.InsufficientData)
	}

	if p := res.Productivity; p != nil && !res.InsufficientActivity {
		lines = append(lines,
			fmt.Sprintf("Most productive: %s on %s", report.HourDisplay(p.MostProductiveHour), p.MostProductiveDay),
			fmt.Sprintf("Longest streak: %s", dayCount(p.LongestStreak)),
		)
	} else {
		lines = append(lines, "Activity: "+report.InsufficientData)
	}
	return lines
}

func languageLines(res *model.AnalysisResult) []string {
	if len(res.TopLanguages) == 0 || res.InsufficientLanguages {
		return []string{report.InsufficientData}
	}
	lines := []string{"Top Languages", "-----------------"}
	for _, l := range res.TopLanguages {
		lines = append(lines, fmt.Sprintf("%-15s %3d%% (%d repos)", l.Language, l.Percentage, l.Count))
	}
	return lines
}

func activityLines(env *Env, res *model.AnalysisResult) []string {
	p := res.Productivity
	if p == nil || res.InsufficientActivity {
		return []string{report.InsufficientData}
	}
	lines := []string{
		fmt.Sprintf("Most productive hour: %s", report.HourDisplay(p.MostProductiveHour)),
		fmt.Sprintf("Most productive day: %s", p.MostProductiveDay),
		"",
	}
	cfg := asciiConfig(env)
	lines = append(lines, splitLines(chart.RenderASCII(chart.HourlyActivity(res.Activity), cfg))...)
	lines = append(lines, "")
	lines = append(lines, splitLines(chart.RenderASCII(chart.DailyActivity(res.Activity), cfg))...)
	return lines
}

func streakLines(res *model.AnalysisResult) []string {
	p := res.Productivity
	if p == nil || res.InsufficientActivity {
		return []string{report.InsufficientData}
	}
	return []string{
		fmt.Sprintf("Longest streak: %s", dayCount(p.LongestStreak)),
		fmt.Sprintf("Current streak: %s", dayCount(p.CurrentStreak)),
		fmt.Sprintf("Active days: %d", p.ActiveDays),
	}
}

func repoLines(res *model.AnalysisResult) []string {
	if len(res.TopRepositories) == 0 {
		return []string{"No repositories found."}
	}
	lines := []string{"Top Repositories", "-----------------"}
	for i, r := range res.TopRepositories {
		line := fmt.Sprintf("%d. %-30s stars %-6d forks %-6d commits %d", i+1, r.Name, r.Stars, r.Forks, r.Commits)
		lines = append(lines, strings.TrimRight(line, " "))
		if r.Description != "" {
			lines = append(lines, "   "+r.Description)
		}
	}
	return lines
}

func runChart(_ context.Context, args []string, env *Env) ([]string, error) {
	if len(args) != 1 {
		return nil, errm.Errorf("usage: chart <%s>", strings.Join(chart.Names, "|"))
	}
	res := currentResult(env)
	if res == nil {
		return []string{NoAnalysis}, nil
	}
	c, ok := chart.ByName(res, strings.ToLower(args[0]), env.now(), env.location())
	if !ok {
		return nil, errm.Errorf("unknown chart %q, available: %s", args[0], strings.Join(chart.Names, ", "))
	}
	return splitLines(chart.RenderASCII(c, asciiConfig(env))), nil
}

func runTheme(_ context.Context, args []string, env *Env) ([]string, error) {
	if env.Themes == nil {
		return nil, errm.New("themes are not configured")
	}

	if len(args) > 0 {
		t, err := theme.Parse(args[0])
		if err != nil {
			return nil, err
		}
		if err := env.Themes.SetTheme(t); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("Theme set to %s mode.", t)}, nil
	}

	t := env.Themes.Theme().Toggle()
	if err := env.Themes.SetTheme(t); err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("Switched to %s mode.", t)}, nil
}

func runHistory(_ context.Context, _ []string, env *Env) ([]string, error) {
	if env.History == nil {
		return nil, nil
	}
	entries := env.History.Entries()
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%4d  %s", i+1, e))
	}
	return lines, nil
}

func runClear(_ context.Context, _ []string, env *Env) ([]string, error) {
	if env.OnClear != nil {
		env.OnClear()
	}
	return nil, nil
}

func asciiConfig(env *Env) chart.ASCIIConfig {
	cfg := chart.DefaultASCIIConfig()
	if env.Width > 0 {
		cfg.Width = env.Width
	}
	if env.Themes != nil {
		cfg.Theme = env.Themes.Theme()
	}
	return cfg
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func dayCount(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

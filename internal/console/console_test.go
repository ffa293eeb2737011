package console

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ishanpathak1/ghanalytics/internal/analytics"
	"github.com/Ishanpathak1/ghanalytics/internal/collector"
	"github.com/Ishanpathak1/ghanalytics/internal/theme"
	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

type fakeAnalyzer struct {
	result *model.AnalysisResult
	err    error
	calls  []string
}

func (f *fakeAnalyzer) Run(_ context.Context, username string) (*model.AnalysisResult, error) {
	f.calls = append(f.calls, username)
	if f.err != nil {
		return nil, f.err
	}
	res := *f.result
	res.Username = username
	return &res, nil
}

func sampleResult() *model.AnalysisResult {
	ts := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	events := []model.CommitEvent{
		analytics.EventFromTime(ts, time.UTC),
		analytics.EventFromTime(ts.Add(24*time.Hour), time.UTC),
	}
	return &model.AnalysisResult{
		Username:  "octocat",
		Location:  "UTC",
		Profile:   &model.Profile{Login: "octocat", Name: "The Octocat", Followers: 10},
		Languages: map[string]int{"JavaScript": 8, "Python": 2},
		TopLanguages: []model.LanguageShare{
			{Language: "JavaScript", Count: 8, Percentage: 80},
			{Language: "Python", Count: 2, Percentage: 20},
		},
		Repositories: []model.Repository{{Name: "hello-world", Stars: 40, Forks: 3}},
		CommitData:   model.CommitData{Repositories: map[string]int{"hello-world": 2}, TotalCommits: 2},
		Activity:     events,
		Productivity: &model.Productivity{
			MostProductiveHour: 9,
			MostProductiveDay:  time.Monday,
			LongestStreak:      2,
			CurrentStreak:      0,
			ActiveDays:         2,
		},
		TopRepositories: []model.RepositorySummary{
			{Repository: model.Repository{Name: "hello-world", Stars: 40, Forks: 3, Description: "My first repo"}, Commits: 2},
		},
		TotalStars: 40,
		TotalForks: 3,
	}
}

func newEnv(a analytics.Analyzer) *Env {
	return &Env{
		Analyzer: a,
		Session:  &analytics.Session{},
		Themes:   NewMemoryThemeService(theme.Dark),
		History:  NewHistory(),
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC) },
		Width:    50,
	}
}

func dispatch(t *testing.T, r *Registry, env *Env, line string) []string {
	t.Helper()
	lines, err := r.Dispatch(context.Background(), line, env)
	require.NoError(t, err, line)
	return lines
}

func TestCommandKinds(t *testing.T) {
	r := DefaultRegistry()
	cmds := r.Commands()
	require.Len(t, cmds, 11)
	for i, c := range cmds {
		assert.Equal(t, CommandKind(i), c.Kind())
		assert.Equal(t, c.Kind().String(), c.Name())
		assert.NotEmpty(t, c.Usage())
		assert.NotEmpty(t, c.Description())
	}
	assert.Equal(t, "unknown", CommandKind(99).String())
}

func TestParse(t *testing.T) {
	name, args := Parse("  Analyze   octocat  ")
	assert.Equal(t, "analyze", name)
	assert.Equal(t, []string{"octocat"}, args)

	name, args = Parse("   ")
	assert.Empty(t, name)
	assert.Nil(t, args)
}

func TestDispatchUnknownCommand(t *testing.T) {
	lines := dispatch(t, DefaultRegistry(), newEnv(nil), "sudo rm")
	assert.Equal(t, []string{
		"Command not found: sudo",
		`Type "help" to see available commands.`,
	}, lines)

	assert.Nil(t, dispatch(t, DefaultRegistry(), newEnv(nil), "  "))
}

func TestHelp(t *testing.T) {
	lines := dispatch(t, DefaultRegistry(), newEnv(nil), "help")
	require.NotEmpty(t, lines)
	assert.Equal(t, "Available commands:", lines[0])
	out := strings.Join(lines, "\n")
	assert.Contains(t, out, "analyze         - Analyze a GitHub profile")
	assert.Contains(t, out, "clear           - Clear the terminal screen")
}

func TestAnalyzeAndFollowUps(t *testing.T) {
	fake := &fakeAnalyzer{result: sampleResult()}
	env := newEnv(fake)
	r := DefaultRegistry()

	assert.Equal(t, []string{NoAnalysis}, dispatch(t, r, env, "summary"))

	lines := dispatch(t, r, env, "analyze octocat")
	out := strings.Join(lines, "\n")
	assert.Contains(t, out, "Analysis complete for octocat.")
	assert.Contains(t, out, "The Octocat (@octocat)")
	assert.Contains(t, out, "Top language: JavaScript (80%)")
	assert.Contains(t, out, "Most productive: 9 AM on Monday")
	assert.Equal(t, []string{"octocat"}, fake.calls)

	assert.Contains(t, strings.Join(dispatch(t, r, env, "languages"), "\n"), "JavaScript       80% (8 repos)")
	assert.Equal(t, []string{
		"Longest streak: 2 days",
		"Current streak: 0 days",
		"Active days: 2",
	}, dispatch(t, r, env, "streak"))

	repos := dispatch(t, r, env, "repos")
	assert.Contains(t, repos[2], "1. hello-world")
	assert.Equal(t, "   My first repo", repos[3])

	activity := strings.Join(dispatch(t, r, env, "activity"), "\n")
	assert.Contains(t, activity, "Most productive hour: 9 AM")
	assert.Contains(t, activity, "Commit Activity by Hour")
	assert.Contains(t, activity, "Commit Activity by Day")

	pie := strings.Join(dispatch(t, r, env, "chart languages"), "\n")
	assert.Contains(t, pie, "Language Distribution")
	assert.Contains(t, pie, "80%")

	_, err := r.Dispatch(context.Background(), "chart scatter", env)
	assert.Error(t, err)
	_, err = r.Dispatch(context.Background(), "chart", env)
	assert.Error(t, err)
}

func TestAnalyzeErrors(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.Dispatch(context.Background(), "analyze", newEnv(&fakeAnalyzer{}))
	assert.Error(t, err)

	_, err = r.Dispatch(context.Background(), "analyze octocat", newEnv(nil))
	assert.Error(t, err)

	notFound := &collector.Error{Kind: collector.ErrNotFoundOrRateLimited, Op: "get profile", Err: errors.New("404")}
	env := newEnv(&fakeAnalyzer{err: notFound})
	_, err = r.Dispatch(context.Background(), "analyze ghost", env)
	assert.ErrorIs(t, err, collector.ErrNotFoundOrRateLimited)
	assert.Nil(t, env.Session.Current())
}

func TestInsufficientData(t *testing.T) {
	res := &model.AnalysisResult{Username: "ghost", InsufficientActivity: true, InsufficientLanguages: true}
	env := newEnv(&fakeAnalyzer{result: res})
	r := DefaultRegistry()

	dispatch(t, r, env, "analyze ghost")
	assert.Equal(t, []string{"Insufficient data for analysis"}, dispatch(t, r, env, "streak"))
	assert.Equal(t, []string{"Insufficient data for analysis"}, dispatch(t, r, env, "languages"))
	assert.Equal(t, []string{"No repositories found."}, dispatch(t, r, env, "repos"))

	chartLines := strings.Join(dispatch(t, r, env, "chart hourly"), "\n")
	assert.Contains(t, chartLines, "Insufficient data")
}

func TestThemeCommand(t *testing.T) {
	env := newEnv(nil)
	r := DefaultRegistry()

	assert.Equal(t, []string{"Switched to light mode."}, dispatch(t, r, env, "theme"))
	assert.Equal(t, theme.Light, env.Themes.Theme())
	assert.Equal(t, []string{"Switched to dark mode."}, dispatch(t, r, env, "theme"))
	assert.Equal(t, []string{"Theme set to light mode."}, dispatch(t, r, env, "theme LIGHT"))
	assert.Equal(t, []string{"Theme set to dark mode."}, dispatch(t, r, env, "theme dark"))

	_, err := r.Dispatch(context.Background(), "theme sepia", env)
	assert.Error(t, err)
	assert.Equal(t, theme.Dark, env.Themes.Theme())
}

func TestHistoryAndClear(t *testing.T) {
	env := newEnv(nil)
	env.History.Add("help")
	env.History.Add("theme")
	r := DefaultRegistry()

	assert.Equal(t, []string{"   1  help", "   2  theme"}, dispatch(t, r, env, "history"))

	cleared := false
	env.OnClear = func() { cleared = true }
	assert.Empty(t, dispatch(t, r, env, "clear"))
	assert.True(t, cleared)
}

func TestHistoryNavigation(t *testing.T) {
	h := NewHistory()
	_, ok := h.Prev()
	assert.False(t, ok)

	h.Add("one")
	h.Add("two")

	line, ok := h.Prev()
	require.True(t, ok)
	assert.Equal(t, "two", line)
	line, _ = h.Prev()
	assert.Equal(t, "one", line)
	_, ok = h.Prev()
	assert.False(t, ok)

	line, _ = h.Next()
	assert.Equal(t, "two", line)
	line, ok = h.Next()
	assert.True(t, ok)
	assert.Empty(t, line)
	_, ok = h.Next()
	assert.False(t, ok)
}

func TestFileThemeService(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "theme.yaml")

	s, err := NewFileThemeService(path)
	require.NoError(t, err)
	assert.Equal(t, theme.Default, s.Theme())

	require.NoError(t, s.SetTheme(theme.Light))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "theme: light\n", string(data))

	reloaded, err := NewFileThemeService(path)
	require.NoError(t, err)
	assert.Equal(t, theme.Light, reloaded.Theme())

	assert.Error(t, s.SetTheme("neon"))

	require.NoError(t, os.WriteFile(path, []byte("theme: neon\n"), 0600))
	_, err = NewFileThemeService(path)
	assert.Error(t, err)
}

func TestRunLines(t *testing.T) {
	env := newEnv(&fakeAnalyzer{result: sampleResult()})
	in := strings.NewReader("help\n\nanalyze octocat\nnope\nchart\n")
	var out bytes.Buffer

	require.NoError(t, RunLines(context.Background(), DefaultRegistry(), env, in, &out))

	s := out.String()
	assert.Contains(t, s, "> help\nAvailable commands:")
	assert.Contains(t, s, "Analysis complete for octocat.")
	assert.Contains(t, s, "Command not found: nope")
	assert.Contains(t, s, "Error: usage: chart <")
	assert.Equal(t, []string{"help", "analyze octocat", "nope", "chart"}, env.History.Entries())
}

func runCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if res, ok := c().(commandResultMsg); ok {
				m.Update(res)
			}
		}
		return
	}
	if res, ok := msg.(commandResultMsg); ok {
		m.Update(res)
	}
}

func submit(t *testing.T, m *Model, line string) {
	t.Helper()
	m.input.SetValue(line)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, m, cmd)
}

func TestModel(t *testing.T) {
	env := newEnv(&fakeAnalyzer{result: sampleResult()})
	m := NewModel(context.Background(), DefaultRegistry(), env)

	assert.NotNil(t, m.Init())
	assert.Equal(t, Greeting, m.Output())

	submit(t, m, "theme light")
	assert.Contains(t, m.Output(), "> theme light")
	assert.Contains(t, m.Output(), "Theme set to light mode.")

	submit(t, m, "analyze octocat")
	assert.False(t, m.busy)
	assert.Contains(t, strings.Join(m.Output(), "\n"), "Analysis complete for octocat.")

	submit(t, m, "bogus")
	assert.Contains(t, m.Output(), "Command not found: bogus")

	submit(t, m, "chart")
	assert.Contains(t, strings.Join(m.Output(), "\n"), "Error: usage: chart")

	submit(t, m, "clear")
	assert.Empty(t, m.Output())

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "clear", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "chart", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "clear", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "", m.input.Value())

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Contains(t, m.View(), "ghanalytics ~ console")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelIgnoresBlankInput(t *testing.T) {
	m := NewModel(context.Background(), DefaultRegistry(), newEnv(nil))
	submit(t, m, "   ")
	assert.Equal(t, Greeting, m.Output())
	assert.Empty(t, m.env.History.Entries())
}

func TestModelSubmitMessage(t *testing.T) {
	env := newEnv(&fakeAnalyzer{result: sampleResult()})
	m := NewModel(context.Background(), DefaultRegistry(), env)

	_, cmd := m.Update(Submit("analyze octocat"))
	runCmd(t, m, cmd)

	assert.Contains(t, m.Output(), "> analyze octocat")
	assert.Contains(t, strings.Join(m.Output(), "\n"), "Analysis complete for octocat.")
	assert.Equal(t, []string{"analyze octocat"}, env.History.Entries())
}

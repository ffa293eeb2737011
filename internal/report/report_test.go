package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

func sampleResult() *model.AnalysisResult {
	monday9 := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	return &model.AnalysisResult{
		Timestamp: time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
		Username:  "octocat",
		Location:  "UTC",
		Policy:    model.DefaultSamplingPolicy(),
		Profile: &model.Profile{
			Login:       "octocat",
			Name:        "The Octocat",
			HTMLURL:     "https://github.com/octocat",
			Followers:   10,
			Following:   2,
			PublicRepos: 8,
		},
		Repositories: []model.Repository{
			{Name: "hello-world", Language: "JavaScript", Stars: 40, Forks: 3},
			{Name: "spoon-knife", Language: "Python", Stars: 20, Forks: 1},
		},
		Languages: map[string]int{"JavaScript": 8, "Python": 2},
		TopLanguages: []model.LanguageShare{
			{Language: "JavaScript", Count: 8, Percentage: 80},
			{Language: "Python", Count: 2, Percentage: 20},
		},
		CommitData: model.CommitData{Repositories: map[string]int{"hello-world": 3}, TotalCommits: 3},
		Activity: []model.CommitEvent{
			{Hour: 9, Weekday: time.Monday, Month: time.January, Timestamp: monday9.UnixMilli()},
		},
		Productivity: &model.Productivity{
			MostProductiveHour: 9,
			MostProductiveDay:  time.Monday,
			LongestStreak:      3,
			ActiveDays:         3,
		},
		TopRepositories: []model.RepositorySummary{
			{Repository: model.Repository{Name: "hello-world", Language: "JavaScript", Stars: 40, Forks: 3, HTMLURL: "https://github.com/octocat/hello-world"}, Commits: 3},
		},
		TotalStars:   60,
		TotalForks:   4,
		CommitErrors: []model.CommitError{{Repo: "broken", Message: "409 Conflict"}},
	}
}

func TestNew(t *testing.T) {
	for _, name := range Formats {
		f, err := New(name, Options{})
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}
	_, err := New("xml", Options{})
	assert.Error(t, err)
}

func TestHourDisplay(t *testing.T) {
	assert.Equal(t, "12 AM", HourDisplay(0))
	assert.Equal(t, "9 AM", HourDisplay(9))
	assert.Equal(t, "12 PM", HourDisplay(12))
	assert.Equal(t, "11 PM", HourDisplay(23))
}

func TestTableFormatter(t *testing.T) {
	out, err := NewTableFormatter(Options{}).FormatAnalysis(sampleResult())
	require.NoError(t, err)

	assert.Contains(t, out, "GitHub Profile Analysis: The Octocat (octocat)")
	assert.Contains(t, out, "Followers: 10 | Following: 2 | Public Repos: 8")
	assert.Contains(t, out, "9 AM")
	assert.Contains(t, out, "Monday")
	assert.Contains(t, out, "3 days")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "hello-world")
	assert.Contains(t, out, "broken: 409 Conflict")
	assert.NotContains(t, out, InsufficientData)
}

func TestTableFormatterInsufficientData(t *testing.T) {
	res := &model.AnalysisResult{
		Username:              "ghost",
		InsufficientActivity:  true,
		InsufficientLanguages: true,
	}
	out, err := NewTableFormatter(Options{}).FormatAnalysis(res)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, InsufficientData))
	assert.Contains(t, out, "No repositories found.")

	out, err = NewTableFormatter(Options{}).FormatAnalysis(nil)
	require.NoError(t, err)
	assert.Contains(t, out, InsufficientData)
}

func TestJSONFormatter(t *testing.T) {
	out, err := NewJSONFormatter().FormatAnalysis(sampleResult())
	require.NoError(t, err)

	var decoded model.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "octocat", decoded.Username)
	assert.Equal(t, 80, decoded.TopLanguages[0].Percentage)
	assert.Equal(t, "hello-world", decoded.TopRepositories[0].Name)
	assert.Contains(t, out, "\n  \"username\": \"octocat\"")

	f := &JSONFormatter{}
	out, err = f.FormatCharts([]model.ChartData{{Name: "hourly"}})
	require.NoError(t, err)
	assert.NotContains(t, out, "\n")
}

func TestYAMLFormatter(t *testing.T) {
	out, err := NewYAMLFormatter().FormatAnalysis(sampleResult())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "octocat", decoded["username"])
	assert.Contains(t, out, "topRepositories:")
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter(Options{Mermaid: true}).FormatAnalysis(sampleResult())
	require.NoError(t, err)

	assert.Contains(t, out, "# GitHub Profile Analysis: octocat")
	assert.Contains(t, out, "[The Octocat](https://github.com/octocat)")
	assert.Contains(t, out, "| Most Productive Hour | 9 AM |")
	assert.Contains(t, out, "| JavaScript | 8 | 80% |")
	assert.Contains(t, out, "[hello-world](https://github.com/octocat/hello-world)")
	assert.Contains(t, out, "## Charts")
	assert.Contains(t, out, "```mermaid\npie title Language Distribution")
	assert.Contains(t, out, "xychart-beta")
	assert.Contains(t, out, "- **broken:** 409 Conflict")

	out, err = NewMarkdownFormatter(Options{}).FormatAnalysis(sampleResult())
	require.NoError(t, err)
	assert.NotContains(t, out, "```mermaid")
}

func TestCSVFormatter(t *testing.T) {
	out, err := NewCSVFormatter().FormatAnalysis(sampleResult())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Username,Repository,Language,Stars,Forks,Commits,URL", lines[0])
	assert.Equal(t, "octocat,hello-world,JavaScript,40,3,3,https://github.com/octocat/hello-world", lines[1])

	out, err = NewCSVFormatter().FormatCharts([]model.ChartData{{
		Name:     "daily",
		Labels:   []string{"Sunday", "Monday"},
		Datasets: []model.Dataset{{Label: "Commits by Day", Data: []float64{0, 2.5}}},
	}})
	require.NoError(t, err)
	assert.Contains(t, out, "daily,Commits by Day,Monday,2.5\n")
}

func TestTableFormatCharts(t *testing.T) {
	out, err := NewTableFormatter(Options{Width: 40}).FormatCharts([]model.ChartData{{
		Kind:     model.ChartBar,
		Title:    "Commit Activity by Day",
		Labels:   []string{"Sunday", "Monday"},
		Datasets: []model.Dataset{{Label: "Commits by Day", Data: []float64{1, 2}}},
	}})
	require.NoError(t, err)
	assert.Contains(t, out, "Commit Activity by Day")
	assert.Contains(t, out, "Monday │")
}

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/maxbolgarin/lang"

	"github.com/Ishanpathak1/ghanalytics/internal/chart"
	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// TableFormatter formats results as text tables.
type TableFormatter struct {
	opts Options
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(opts Options) *TableFormatter {
	return &TableFormatter{opts: opts}
}

// FormatAnalysis formats an analysis result as a text table.
func (f *TableFormatter) FormatAnalysis(result *model.AnalysisResult) (string, error) {
	var sb strings.Builder

	if result == nil {
		sb.WriteString(InsufficientData + "\n")
		return sb.String(), nil
	}

	name := result.Username
	if result.Profile != nil && result.Profile.Name != "" {
		name = fmt.Sprintf("%s (%s)", result.Profile.Name, result.Username)
	}
	sb.WriteString(fmt.Sprintf("GitHub Profile Analysis: %s (%s)\n", name, result.Timestamp.Format(time.RFC3339)))
	if p := result.Profile; p != nil {
		sb.WriteString(fmt.Sprintf("Followers: %d | Following: %d | Public Repos: %d\n",
			p.Followers, p.Following, p.PublicRepos))
		if p.Bio != "" {
			sb.WriteString(fmt.Sprintf("Bio: %s\n", truncate(p.Bio, 96)))
		}
	}
	sb.WriteString(fmt.Sprintf("Total Stars: %d | Total Forks: %d | Commits Sampled: %d\n",
		result.TotalStars, result.TotalForks, result.CommitData.TotalCommits))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString("\nProductivity:\n")
	if p := result.Productivity; p != nil && !result.InsufficientActivity {
		sb.WriteString(fmt.Sprintf("  %-22s %s\n", "Most Productive Hour:", HourDisplay(p.MostProductiveHour)))
		sb.WriteString(fmt.Sprintf("  %-22s %s\n", "Most Productive Day:", p.MostProductiveDay))
		sb.WriteString(fmt.Sprintf("  %-22s %s\n", "Longest Streak:", days(p.LongestStreak)))
		sb.WriteString(fmt.Sprintf("  %-22s %s\n", "Current Streak:", days(p.CurrentStreak)))
		sb.WriteString(fmt.Sprintf("  %-22s %d\n", "Active Days:", p.ActiveDays))
	} else {
		sb.WriteString("  " + InsufficientData + "\n")
	}

	sb.WriteString("\nTop Languages:\n")
	if len(result.TopLanguages) > 0 && !result.InsufficientLanguages {
		sb.WriteString(fmt.Sprintf("  %-20s %6s %6s\n", "LANGUAGE", "REPOS", "SHARE"))
		for _, l := range result.TopLanguages {
			sb.WriteString(fmt.Sprintf("  %-20s %6d %5d%%\n", truncate(l.Language, 20), l.Count, l.Percentage))
		}
	} else {
		sb.WriteString("  " + InsufficientData + "\n")
	}

	sb.WriteString("\nTop Repositories:\n")
	if len(result.TopRepositories) > 0 {
		sb.WriteString(fmt.Sprintf("  %-35s %-12s %6s %6s %8s\n", "REPOSITORY", "LANGUAGE", "STARS", "FORKS", "COMMITS"))
		for _, r := range result.TopRepositories {
			sb.WriteString(fmt.Sprintf("  %-35s %-12s %6d %6d %8d\n",
				truncate(r.Name, 35),
				truncate(lang.If(r.Language == "", "-", r.Language), 12),
				r.Stars,
				r.Forks,
				r.Commits,
			))
		}
	} else {
		sb.WriteString("  No repositories found.\n")
	}

	if len(result.CommitErrors) > 0 {
		sb.WriteString("\nErrors:\n")
		for _, e := range result.CommitErrors {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", e.Repo, e.Message))
		}
	}

	return sb.String(), nil
}

// FormatCharts renders chart series as terminal graphics.
func (f *TableFormatter) FormatCharts(charts []model.ChartData) (string, error) {
	cfg := chart.DefaultASCIIConfig()
	cfg.Theme = lang.If(f.opts.Theme == "", cfg.Theme, f.opts.Theme)
	if f.opts.Width > 0 {
		cfg.Width = f.opts.Width
	}

	parts := make([]string, 0, len(charts))
	for _, c := range charts {
		parts = append(parts, chart.RenderASCII(c, cfg))
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}

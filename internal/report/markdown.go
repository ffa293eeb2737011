package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ishanpathak1/ghanalytics/internal/chart"
	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// MarkdownFormatter formats results as Markdown.
type MarkdownFormatter struct {
	opts Options
}

// NewMarkdownFormatter creates a new Markdown formatter.
func NewMarkdownFormatter(opts Options) *MarkdownFormatter {
	return &MarkdownFormatter{opts: opts}
}

// FormatAnalysis formats an analysis result as Markdown.
func (f *MarkdownFormatter) FormatAnalysis(result *model.AnalysisResult) (string, error) {
	var sb strings.Builder

	if result == nil {
		sb.WriteString("# GitHub Profile Analysis\n\n")
		sb.WriteString(InsufficientData + "\n")
		return sb.String(), nil
	}

	sb.WriteString(fmt.Sprintf("# GitHub Profile Analysis: %s\n\n", result.Username))
	sb.WriteString(fmt.Sprintf("**Analyzed:** %s\n\n", result.Timestamp.Format(time.RFC3339)))

	if p := result.Profile; p != nil {
		if p.HTMLURL != "" {
			sb.WriteString(fmt.Sprintf("**Profile:** [%s](%s)\n\n", p.DisplayName(), p.HTMLURL))
		} else {
			sb.WriteString(fmt.Sprintf("**Profile:** %s\n\n", p.DisplayName()))
		}
		if p.Bio != "" {
			sb.WriteString(fmt.Sprintf("> %s\n\n", strings.ReplaceAll(p.Bio, "\n", " ")))
		}
		sb.WriteString(fmt.Sprintf("**Followers:** %d | **Following:** %d | **Public Repos:** %d\n\n",
			p.Followers, p.Following, p.PublicRepos))
	}
	sb.WriteString(fmt.Sprintf("**Total Stars:** %d | **Total Forks:** %d | **Commits Sampled:** %d\n\n",
		result.TotalStars, result.TotalForks, result.CommitData.TotalCommits))

	sb.WriteString("## Productivity\n\n")
	if p := result.Productivity; p != nil && !result.InsufficientActivity {
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Most Productive Hour | %s |\n", HourDisplay(p.MostProductiveHour)))
		sb.WriteString(fmt.Sprintf("| Most Productive Day | %s |\n", p.MostProductiveDay))
		sb.WriteString(fmt.Sprintf("| Longest Streak | %s |\n", days(p.LongestStreak)))
		sb.WriteString(fmt.Sprintf("| Current Streak | %s |\n", days(p.CurrentStreak)))
		sb.WriteString(fmt.Sprintf("| Active Days | %d |\n\n", p.ActiveDays))
	} else {
		sb.WriteString(InsufficientData + "\n\n")
	}

	sb.WriteString("## Top Languages\n\n")
	if len(result.TopLanguages) > 0 && !result.InsufficientLanguages {
		sb.WriteString("| Language | Repositories | Share |\n")
		sb.WriteString("|----------|--------------|-------|\n")
		for _, l := range result.TopLanguages {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d%% |\n", l.Language, l.Count, l.Percentage))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString(InsufficientData + "\n\n")
	}

	if len(result.TopRepositories) > 0 {
		sb.WriteString("## Top Repositories\n\n")
		sb.WriteString("| Repository | Language | Stars | Forks | Commits |\n")
		sb.WriteString("|------------|----------|-------|-------|---------|\n")
		for _, r := range result.TopRepositories {
			name := r.Name
			if r.HTMLURL != "" {
				name = fmt.Sprintf("[%s](%s)", r.Name, r.HTMLURL)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %d |\n",
				name, r.Language, r.Stars, r.Forks, r.Commits))
		}
		sb.WriteString("\n")
	}

	if f.opts.Mermaid {
		charts := chart.All(result, result.Timestamp, location(result))
		if body := f.mermaid(charts); body != "" {
			sb.WriteString("## Charts\n\n")
			sb.WriteString(body)
		}
	}

	if len(result.CommitErrors) > 0 {
		sb.WriteString("## Errors\n\n")
		for _, e := range result.CommitErrors {
			sb.WriteString(fmt.Sprintf("- **%s:** %s\n", e.Repo, e.Message))
		}
	}

	return sb.String(), nil
}

// FormatCharts formats chart series as Mermaid blocks.
func (f *MarkdownFormatter) FormatCharts(charts []model.ChartData) (string, error) {
	return f.mermaid(charts), nil
}

func (f *MarkdownFormatter) mermaid(charts []model.ChartData) string {
	var sb strings.Builder
	cfg := chart.DefaultMermaidConfig()
	for _, c := range charts {
		if c.Empty {
			continue
		}
		sb.WriteString(fmt.Sprintf("### %s\n\n", c.Title))
		if err := chart.WriteMermaid(&sb, c, cfg); err != nil {
			continue
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Package chart maps analysis results into labeled series and renders
// them as terminal graphics or Mermaid diagrams.
package chart

import (
	"fmt"
	"math"
	"time"

	"github.com/Ishanpathak1/ghanalytics/internal/analytics"
	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// Chart names accepted by ByName.
const (
	NameHourly       = "hourly"
	NameDaily        = "daily"
	NameMonthly      = "monthly"
	NameLanguages    = "languages"
	NameSkills       = "skills"
	NameRepositories = "repos"
)

// Names lists every chart in display order.
var Names = []string{NameHourly, NameDaily, NameMonthly, NameLanguages, NameRepositories, NameSkills}

const (
	// MaxLanguages is the number of languages shown on the pie and radar charts.
	MaxLanguages = 8

	// MaxRepositories is the number of repositories shown on the repository chart.
	MaxRepositories = 6

	// InsufficientTitle replaces the title of a chart built from no data.
	InsufficientTitle = "Insufficient data"
)

// DayNames are the weekday labels, Sunday first.
var DayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// HourLabel formats an hour of day as 12am, 1am, ... 12pm, ... 11pm.
func HourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12am"
	case hour == 12:
		return "12pm"
	case hour < 12:
		return fmt.Sprintf("%dam", hour)
	default:
		return fmt.Sprintf("%dpm", hour-12)
	}
}

// HourlyActivity buckets commit events by hour of day.
func HourlyActivity(events []model.CommitEvent) model.ChartData {
	c := model.ChartData{
		Name:   NameHourly,
		Kind:   model.ChartBar,
		Title:  "Commit Activity by Hour",
		XAxis:  "Hour",
		YAxis:  "Commits",
		Labels: make([]string, 24),
	}
	for h := range 24 {
		c.Labels[h] = HourLabel(h)
	}
	if len(events) == 0 {
		return placeholder(c)
	}

	hist := analytics.HourHistogram(events)
	c.Datasets = []model.Dataset{{Label: "Commits by Hour", Data: toFloats(hist[:])}}
	return c
}

// DailyActivity buckets commit events by day of week.
func DailyActivity(events []model.CommitEvent) model.ChartData {
	c := model.ChartData{
		Name:   NameDaily,
		Kind:   model.ChartBar,
		Title:  "Commit Activity by Day",
		XAxis:  "Day",
		YAxis:  "Commits",
		Labels: append([]string(nil), DayNames...),
	}
	if len(events) == 0 {
		return placeholder(c)
	}

	hist := analytics.DayHistogram(events)
	c.Datasets = []model.Dataset{{Label: "Commits by Day", Data: toFloats(hist[:])}}
	return c
}

// MonthlyTrend counts commit events in each of the twelve calendar months
// ending with the month of now, oldest first. Events outside that window
// are ignored.
func MonthlyTrend(events []model.CommitEvent, now time.Time, loc *time.Location) model.ChartData {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	c := model.ChartData{
		Name:   NameMonthly,
		Kind:   model.ChartLine,
		Title:  "Activity Trend (Last 12 Months)",
		XAxis:  "Month",
		YAxis:  "Commits",
		Labels: make([]string, 12),
	}
	for i := range 12 {
		idx := (int(now.Month()) - 1 - (11 - i) + 12) % 12
		c.Labels[i] = monthNames[idx]
	}
	if len(events) == 0 {
		return placeholder(c)
	}

	data := make([]float64, 12)
	for _, e := range events {
		t := e.Time().In(loc)
		monthsAgo := (now.Year()-t.Year())*12 + int(now.Month()) - int(t.Month())
		if monthsAgo >= 0 && monthsAgo < 12 {
			data[11-monthsAgo]++
		}
	}
	c.Datasets = []model.Dataset{{Label: "Monthly Activity", Data: data}}
	return c
}

// LanguageDistribution shows the n most used languages by repository count.
func LanguageDistribution(hist map[string]int, n int) model.ChartData {
	c := model.ChartData{
		Name:  NameLanguages,
		Kind:  model.ChartPie,
		Title: "Language Distribution",
	}
	ranked := topRanked(hist, n)
	if len(ranked) == 0 {
		return placeholder(c)
	}

	data := make([]float64, len(ranked))
	for i, s := range ranked {
		c.Labels = append(c.Labels, s.Language)
		data[i] = float64(s.Count)
	}
	c.Datasets = []model.Dataset{{Label: "Languages", Data: data}}
	return c
}

// SkillRadar scores the n most used languages 0-100 relative to the most
// used one.
func SkillRadar(hist map[string]int, n int) model.ChartData {
	c := model.ChartData{
		Name:  NameSkills,
		Kind:  model.ChartRadar,
		Title: "Language Proficiency",
	}
	ranked := topRanked(hist, n)
	if len(ranked) == 0 || ranked[0].Count <= 0 {
		return placeholder(c)
	}

	top := float64(ranked[0].Count)
	data := make([]float64, len(ranked))
	for i, s := range ranked {
		c.Labels = append(c.Labels, s.Language)
		data[i] = math.Round(float64(s.Count) / top * 100)
	}
	c.Datasets = []model.Dataset{{Label: "Language Proficiency", Data: data}}
	return c
}

// TopRepositoryBars compares stars and forks of the n most starred
// non-fork repositories.
func TopRepositoryBars(repos []model.Repository, n int) model.ChartData {
	c := model.ChartData{
		Name:  NameRepositories,
		Kind:  model.ChartBar,
		Title: "Top Repositories",
		XAxis: "Repository",
		YAxis: "Count",
	}
	top := analytics.SampleRepositories(repos, n)
	if len(top) == 0 {
		return placeholder(c)
	}

	stars := make([]float64, len(top))
	forks := make([]float64, len(top))
	for i, r := range top {
		c.Labels = append(c.Labels, r.Name)
		stars[i] = float64(r.Stars)
		forks[i] = float64(r.Forks)
	}
	c.Datasets = []model.Dataset{
		{Label: "Stars", Data: stars},
		{Label: "Forks", Data: forks},
	}
	return c
}

// All builds every chart for res. A nil result yields placeholders.
func All(res *model.AnalysisResult, now time.Time, loc *time.Location) []model.ChartData {
	charts := make([]model.ChartData, 0, len(Names))
	for _, name := range Names {
		c, _ := ByName(res, name, now, loc)
		charts = append(charts, c)
	}
	return charts
}

// ByName builds a single chart. ok is false for an unknown name.
func ByName(res *model.AnalysisResult, name string, now time.Time, loc *time.Location) (c model.ChartData, ok bool) {
	if res == nil {
		res = &model.AnalysisResult{}
	}
	switch name {
	case NameHourly:
		return HourlyActivity(res.Activity), true
	case NameDaily:
		return DailyActivity(res.Activity), true
	case NameMonthly:
		return MonthlyTrend(res.Activity, now, loc), true
	case NameLanguages:
		return LanguageDistribution(res.Languages, MaxLanguages), true
	case NameSkills:
		return SkillRadar(res.Languages, MaxLanguages), true
	case NameRepositories:
		return TopRepositoryBars(res.Repositories, MaxRepositories), true
	}
	return model.ChartData{}, false
}

func topRanked(hist map[string]int, n int) []model.LanguageShare {
	ranked := analytics.RankLanguages(hist)
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func placeholder(c model.ChartData) model.ChartData {
	c.Title = InsufficientTitle
	c.Empty = true
	c.Datasets = nil
	return c
}

func toFloats(counts []int) []float64 {
	out := make([]float64, len(counts))
	for i, v := range counts {
		out[i] = float64(v)
	}
	return out
}

package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ishanpathak1/ghanalytics/internal/analytics"
	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

func event(t time.Time) model.CommitEvent {
	return analytics.EventFromTime(t, time.UTC)
}

func TestHourLabel(t *testing.T) {
	assert.Equal(t, "12am", HourLabel(0))
	assert.Equal(t, "9am", HourLabel(9))
	assert.Equal(t, "12pm", HourLabel(12))
	assert.Equal(t, "11pm", HourLabel(23))
}

func TestHourlyActivity(t *testing.T) {
	events := []model.CommitEvent{
		event(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)),
		event(time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)),
		event(time.Date(2024, 1, 17, 14, 0, 0, 0, time.UTC)),
	}

	c := HourlyActivity(events)
	assert.Equal(t, model.ChartBar, c.Kind)
	assert.False(t, c.Empty)
	require.Len(t, c.Labels, 24)
	assert.Equal(t, "12am", c.Labels[0])
	assert.Equal(t, "11pm", c.Labels[23])
	require.Len(t, c.Datasets, 1)
	assert.Equal(t, "Commits by Hour", c.Datasets[0].Label)
	assert.Equal(t, 2.0, c.Datasets[0].Data[9])
	assert.Equal(t, 1.0, c.Datasets[0].Data[14])

	d := DailyActivity(events)
	assert.Equal(t, DayNames, d.Labels)
	assert.Equal(t, 2.0, d.Datasets[0].Data[time.Monday])
	assert.Equal(t, 1.0, d.Datasets[0].Data[time.Wednesday])
}

func TestMonthlyTrend(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	events := []model.CommitEvent{
		event(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)),
		event(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)),
		event(time.Date(2023, time.April, 10, 0, 0, 0, 0, time.UTC)),
		event(time.Date(2023, time.March, 31, 0, 0, 0, 0, time.UTC)),
		event(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)),
	}

	c := MonthlyTrend(events, now, time.UTC)
	assert.Equal(t, model.ChartLine, c.Kind)
	assert.Equal(t, []string{"Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec", "Jan", "Feb", "Mar"}, c.Labels)
	require.Len(t, c.Datasets, 1)
	data := c.Datasets[0].Data
	assert.Equal(t, 1.0, data[0])
	assert.Equal(t, 1.0, data[9])
	assert.Equal(t, 1.0, data[11])
	var total float64
	for _, v := range data {
		total += v
	}
	assert.Equal(t, 3.0, total)
}

func TestLanguageCharts(t *testing.T) {
	hist := map[string]int{"Go": 4, "Python": 2, "Rust": 1}

	pie := LanguageDistribution(hist, MaxLanguages)
	assert.Equal(t, model.ChartPie, pie.Kind)
	assert.Equal(t, []string{"Go", "Python", "Rust"}, pie.Labels)
	assert.Equal(t, []float64{4, 2, 1}, pie.Datasets[0].Data)

	radar := SkillRadar(hist, MaxLanguages)
	assert.Equal(t, model.ChartRadar, radar.Kind)
	assert.Equal(t, []float64{100, 50, 25}, radar.Datasets[0].Data)

	assert.Len(t, LanguageDistribution(hist, 2).Labels, 2)
}

func TestTopRepositoryBars(t *testing.T) {
	repos := []model.Repository{
		{Name: "small", Stars: 1, Forks: 0},
		{Name: "fork", Stars: 999, Fork: true},
		{Name: "big", Stars: 10, Forks: 3},
	}
	c := TopRepositoryBars(repos, MaxRepositories)
	assert.Equal(t, []string{"big", "small"}, c.Labels)
	require.Len(t, c.Datasets, 2)
	assert.Equal(t, "Stars", c.Datasets[0].Label)
	assert.Equal(t, []float64{10, 1}, c.Datasets[0].Data)
	assert.Equal(t, "Forks", c.Datasets[1].Label)
	assert.Equal(t, []float64{3, 0}, c.Datasets[1].Data)
}

func TestEmptyInputs(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	charts := []model.ChartData{
		HourlyActivity(nil),
		DailyActivity(nil),
		MonthlyTrend(nil, now, time.UTC),
		LanguageDistribution(nil, MaxLanguages),
		SkillRadar(map[string]int{}, MaxLanguages),
		TopRepositoryBars(nil, MaxRepositories),
	}
	for _, c := range charts {
		assert.True(t, c.Empty, c.Name)
		assert.Equal(t, InsufficientTitle, c.Title, c.Name)
		assert.Empty(t, c.Datasets, c.Name)
	}
}

func TestAllAndByName(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	charts := All(nil, now, time.UTC)
	require.Len(t, charts, len(Names))
	for i, c := range charts {
		assert.Equal(t, Names[i], c.Name)
		assert.True(t, c.Empty)
	}

	res := &model.AnalysisResult{Languages: map[string]int{"Go": 1}}
	c, ok := ByName(res, NameLanguages, now, time.UTC)
	require.True(t, ok)
	assert.False(t, c.Empty)

	_, ok = ByName(res, "scatter", now, time.UTC)
	assert.False(t, ok)
}

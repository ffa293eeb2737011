// Package analytics reduces a profile's repositories and sampled commits
// into summary metrics, and runs the fetch-then-aggregate pipeline.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// Input is everything Aggregate needs. Aggregate never modifies it.
type Input struct {
	Username     string
	Profile      *model.Profile
	Repositories []model.Repository

	// CommitCounts maps repository name to the commits sampled from it.
	CommitCounts map[string]int
	Events       []model.CommitEvent
	CommitErrors []model.CommitError

	Policy   model.SamplingPolicy
	Location *time.Location
	Now      time.Time
}

// Aggregate derives an AnalysisResult. Missing activity or languages
// produce the insufficient-data flags rather than an error.
func Aggregate(in Input) *model.AnalysisResult {
	loc := locationOrLocal(in.Location)
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	policy := in.Policy
	if policy.Validate() != nil {
		policy = model.DefaultSamplingPolicy()
	}

	languages := LanguageHistogram(in.Repositories, policy.LanguageRepoCap)

	counts := make(map[string]int, len(in.CommitCounts))
	total := 0
	for name, n := range in.CommitCounts {
		counts[name] = n
		total += n
	}

	res := &model.AnalysisResult{
		Timestamp:       now,
		Username:        in.Username,
		Location:        loc.String(),
		Policy:          policy,
		Profile:         in.Profile,
		Repositories:    append([]model.Repository(nil), in.Repositories...),
		Languages:       languages,
		TopLanguages:    TopLanguages(languages, policy.TopLanguages),
		CommitData:      model.CommitData{Repositories: counts, TotalCommits: total},
		Activity:        append([]model.CommitEvent(nil), in.Events...),
		TopRepositories: TopRepositories(in.Repositories, counts, policy.TopRepositories),
		CommitErrors:    append([]model.CommitError(nil), in.CommitErrors...),
	}

	for _, r := range in.Repositories {
		res.TotalStars += r.Stars
		res.TotalForks += r.Forks
	}

	res.InsufficientLanguages = len(languages) == 0
	res.Productivity = Productivity(in.Events, loc, now)
	res.InsufficientActivity = res.Productivity == nil

	return res
}

// Productivity computes the activity metrics, or nil without events.
func Productivity(events []model.CommitEvent, loc *time.Location, now time.Time) *model.Productivity {
	if len(events) == 0 {
		return nil
	}
	hour, _ := MostProductiveHour(events)
	day, _ := MostProductiveDay(events)
	return &model.Productivity{
		MostProductiveHour: hour,
		MostProductiveDay:  day,
		LongestStreak:      LongestStreak(events, loc),
		CurrentStreak:      CurrentStreak(events, loc, now),
		ActiveDays:         len(activeDates(events, loc)),
	}
}

// LanguageHistogram counts repositories per primary language over the
// first limit repositories. Forks are counted.
func LanguageHistogram(repos []model.Repository, limit int) map[string]int {
	if limit > len(repos) || limit < 0 {
		limit = len(repos)
	}

	hist := make(map[string]int)
	for _, r := range repos[:limit] {
		if r.Language == "" {
			continue
		}
		hist[r.Language]++
	}
	return hist
}

// RankLanguages returns languages ordered by count descending, then name.
func RankLanguages(hist map[string]int) []model.LanguageShare {
	ranked := make([]model.LanguageShare, 0, len(hist))
	for lang, count := range hist {
		ranked = append(ranked, model.LanguageShare{Language: lang, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Language < ranked[j].Language
	})
	return ranked
}

// TopLanguages returns the n most used languages with their share of the
// displayed total, rounded to whole percent. The shares never sum above 100.
func TopLanguages(hist map[string]int, n int) []model.LanguageShare {
	top := RankLanguages(hist)
	if n >= 0 && len(top) > n {
		top = top[:n]
	}
	if len(top) == 0 {
		return top
	}

	displayed := 0
	for _, s := range top {
		displayed += s.Count
	}

	exact := make([]float64, len(top))
	sum := 0
	for i := range top {
		exact[i] = float64(top[i].Count) / float64(displayed) * 100
		top[i].Percentage = int(math.Round(exact[i]))
		sum += top[i].Percentage
	}

	// Rounding half up can overshoot; take the excess back from the
	// entries that gained the most.
	for sum > 100 {
		idx := 0
		best := math.Inf(-1)
		for i := range top {
			if gain := float64(top[i].Percentage) - exact[i]; gain > best {
				best = gain
				idx = i
			}
		}
		top[idx].Percentage--
		sum--
	}

	return top
}

// SampleRepositories returns the n most starred non-fork repositories.
// Repositories with equal stars keep their listing order.
func SampleRepositories(repos []model.Repository, n int) []model.Repository {
	own := make([]model.Repository, 0, len(repos))
	for _, r := range repos {
		if !r.Fork {
			own = append(own, r)
		}
	}
	sort.SliceStable(own, func(i, j int) bool {
		return own[i].Stars > own[j].Stars
	})
	if n >= 0 && len(own) > n {
		own = own[:n]
	}
	return own
}

// TopRepositories ranks non-fork repositories by stars and attaches the
// sampled commit count where one exists.
func TopRepositories(repos []model.Repository, commitCounts map[string]int, n int) []model.RepositorySummary {
	ranked := SampleRepositories(repos, n)
	top := make([]model.RepositorySummary, 0, len(ranked))
	for _, r := range ranked {
		top = append(top, model.RepositorySummary{
			Repository: r,
			Commits:    commitCounts[r.Name],
		})
	}
	return top
}

// EventFromTime buckets an instant in loc.
func EventFromTime(t time.Time, loc *time.Location) model.CommitEvent {
	lt := t.In(locationOrLocal(loc))
	return model.CommitEvent{
		Hour:      lt.Hour(),
		Weekday:   lt.Weekday(),
		Month:     lt.Month(),
		Timestamp: t.UnixMilli(),
	}
}

// EventsFromCommits converts commits into activity events.
func EventsFromCommits(commits []model.Commit, loc *time.Location) []model.CommitEvent {
	events := make([]model.CommitEvent, 0, len(commits))
	for _, c := range commits {
		events = append(events, EventFromTime(c.AuthorDate, loc))
	}
	return events
}

// HourHistogram counts events per hour of day.
func HourHistogram(events []model.CommitEvent) [24]int {
	var hist [24]int
	for _, e := range events {
		if e.Hour >= 0 && e.Hour < 24 {
			hist[e.Hour]++
		}
	}
	return hist
}

// DayHistogram counts events per day of week, Sunday first.
func DayHistogram(events []model.CommitEvent) [7]int {
	var hist [7]int
	for _, e := range events {
		if e.Weekday >= time.Sunday && e.Weekday <= time.Saturday {
			hist[e.Weekday]++
		}
	}
	return hist
}

// MostProductiveHour returns the hour with the most events. Ties go to
// the earliest hour. ok is false without events.
func MostProductiveHour(events []model.CommitEvent) (hour int, ok bool) {
	hist := HourHistogram(events)
	idx := argmax(hist[:])
	return idx, idx >= 0
}

// MostProductiveDay returns the weekday with the most events. Ties go to
// the earliest day, Sunday first. ok is false without events.
func MostProductiveDay(events []model.CommitEvent) (day time.Weekday, ok bool) {
	hist := DayHistogram(events)
	idx := argmax(hist[:])
	if idx < 0 {
		return time.Sunday, false
	}
	return time.Weekday(idx), true
}

// argmax returns the lowest index holding the largest positive count, or -1.
func argmax(counts []int) int {
	best, idx := 0, -1
	for i, c := range counts {
		if c > best {
			best, idx = c, i
		}
	}
	return idx
}

// LongestStreak returns the longest run of consecutive calendar days in
// loc that each contain at least one event.
func LongestStreak(events []model.CommitEvent, loc *time.Location) int {
	dates := activeDates(events, loc)
	if len(dates) == 0 {
		return 0
	}

	longest, current := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == 24*time.Hour {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}

// CurrentStreak returns the run of consecutive active days ending today
// or, if today has no events yet, yesterday.
func CurrentStreak(events []model.CommitEvent, loc *time.Location, now time.Time) int {
	dates := activeDates(events, loc)
	if len(dates) == 0 {
		return 0
	}

	active := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		active[d] = true
	}

	day := civilDate(now, locationOrLocal(loc))
	if !active[day] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for active[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// activeDates returns the distinct calendar dates in loc holding events,
// ascending. Dates are normalized to UTC midnight so consecutive days are
// exactly 24h apart regardless of daylight saving in loc.
func activeDates(events []model.CommitEvent, loc *time.Location) []time.Time {
	loc = locationOrLocal(loc)
	seen := make(map[time.Time]struct{}, len(events))
	dates := make([]time.Time, 0, len(events))
	for _, e := range events {
		d := civilDate(e.Time(), loc)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func civilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func locationOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

package model

import "time"

// AnalysisResult is everything one run derives from a profile.
type AnalysisResult struct {
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Username  string         `json:"username" yaml:"username"`
	Location  string         `json:"location" yaml:"location"`
	Policy    SamplingPolicy `json:"policy" yaml:"policy"`
	Profile   *Profile       `json:"profile" yaml:"profile"`

	Repositories []Repository `json:"repositories" yaml:"repositories"`

	// Languages maps language name to the number of sampled repositories using it.
	Languages    map[string]int  `json:"languages" yaml:"languages"`
	TopLanguages []LanguageShare `json:"topLanguages" yaml:"topLanguages"`

	CommitData CommitData    `json:"commitData" yaml:"commitData"`
	Activity   []CommitEvent `json:"activity,omitempty" yaml:"activity,omitempty"`

	// Productivity is nil when no commit events were collected.
	Productivity *Productivity `json:"productivity,omitempty" yaml:"productivity,omitempty"`

	TopRepositories []RepositorySummary `json:"topRepositories" yaml:"topRepositories"`
	TotalStars      int                 `json:"totalStars" yaml:"totalStars"`
	TotalForks      int                 `json:"totalForks" yaml:"totalForks"`

	CommitErrors []CommitError `json:"commitErrors,omitempty" yaml:"commitErrors,omitempty"`

	InsufficientActivity  bool `json:"insufficientActivity" yaml:"insufficientActivity"`
	InsufficientLanguages bool `json:"insufficientLanguages" yaml:"insufficientLanguages"`
}

// LanguageShare is one row of the language breakdown.
type LanguageShare struct {
	Language   string `json:"language" yaml:"language"`
	Count      int    `json:"count" yaml:"count"`
	Percentage int    `json:"percentage" yaml:"percentage"`
}

// CommitData holds the sampled commit counts.
type CommitData struct {
	// Repositories maps repository name to the commits sampled from it.
	// Repositories whose commit listing failed are absent.
	Repositories map[string]int `json:"repositories" yaml:"repositories"`
	TotalCommits int            `json:"totalCommits" yaml:"totalCommits"`
}

// Productivity holds the activity-derived metrics.
type Productivity struct {
	MostProductiveHour int          `json:"mostProductiveHour" yaml:"mostProductiveHour"`
	MostProductiveDay  time.Weekday `json:"mostProductiveDay" yaml:"mostProductiveDay"`
	LongestStreak      int          `json:"longestStreak" yaml:"longestStreak"`
	CurrentStreak      int          `json:"currentStreak" yaml:"currentStreak"`
	ActiveDays         int          `json:"activeDays" yaml:"activeDays"`
}

// RepositorySummary is a ranked repository enriched with its sampled commit count.
type RepositorySummary struct {
	Repository `yaml:",inline"`
	// Commits is zero when the repository was not sampled or its listing failed.
	Commits int `json:"commits" yaml:"commits"`
}

// CommitError records a repository whose commit listing failed.
type CommitError struct {
	Repo    string `json:"repo" yaml:"repo"`
	Message string `json:"message" yaml:"message"`
}

// HasActivity reports whether productivity metrics were computed.
func (r *AnalysisResult) HasActivity() bool {
	return r != nil && r.Productivity != nil
}

package model

import "github.com/maxbolgarin/errm"

// MaxPerPage is the largest page size the GitHub REST API accepts.
const MaxPerPage = 100

// SamplingPolicy bounds how much of a profile is fetched and analyzed.
// The defaults keep a run within the unauthenticated rate limit.
type SamplingPolicy struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// RepoPageSize is the per_page value for the repository listing.
	RepoPageSize int `json:"repoPageSize" yaml:"repoPageSize"`

	// LanguageRepoCap is how many of the most recently updated
	// repositories feed the language histogram.
	LanguageRepoCap int `json:"languageRepoCap" yaml:"languageRepoCap"`

	// TopLanguages is how many languages the breakdown displays.
	TopLanguages int `json:"topLanguages" yaml:"topLanguages"`

	// CommitRepos is how many non-fork repositories are probed for commits.
	CommitRepos int `json:"commitRepos" yaml:"commitRepos"`

	// CommitsPerRepo is the per_page value for each commit listing.
	CommitsPerRepo int `json:"commitsPerRepo" yaml:"commitsPerRepo"`

	// TopRepositories is how many repositories the ranking displays.
	TopRepositories int `json:"topRepositories" yaml:"topRepositories"`
}

// DefaultSamplingPolicy returns the stock sampling bounds.
func DefaultSamplingPolicy() SamplingPolicy {
	return SamplingPolicy{
		Name:            "default",
		Description:     "Top 5 non-fork repositories, 100 commits each, 20-repo language sample",
		RepoPageSize:    100,
		LanguageRepoCap: 20,
		TopLanguages:    5,
		CommitRepos:     5,
		CommitsPerRepo:  100,
		TopRepositories: 5,
	}
}

// Validate reports the first out-of-range field.
func (p SamplingPolicy) Validate() error {
	checks := []struct {
		name  string
		value int
		max   int
	}{
		{"repoPageSize", p.RepoPageSize, MaxPerPage},
		{"languageRepoCap", p.LanguageRepoCap, 0},
		{"topLanguages", p.TopLanguages, 0},
		{"commitRepos", p.CommitRepos, 0},
		{"commitsPerRepo", p.CommitsPerRepo, MaxPerPage},
		{"topRepositories", p.TopRepositories, 0},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return errm.Errorf("sampling policy %q: %s must be positive, got %d", p.Name, c.name, c.value)
		}
		if c.max > 0 && c.value > c.max {
			return errm.Errorf("sampling policy %q: %s must be at most %d, got %d", p.Name, c.name, c.max, c.value)
		}
	}
	return nil
}

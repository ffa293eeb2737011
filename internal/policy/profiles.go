// Package policy provides the named sampling profiles and loads custom
// ones from YAML.
package policy

import (
	"sort"

	"github.com/maxbolgarin/errm"

	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// Predefined sampling profiles.
var (
	// ProfileDefault probes the five most starred repositories.
	ProfileDefault = model.DefaultSamplingPolicy()

	// ProfileLight keeps a run to a handful of requests.
	ProfileLight = model.SamplingPolicy{
		Name:            "light",
		Description:     "Top 3 non-fork repositories, 30 commits each",
		RepoPageSize:    100,
		LanguageRepoCap: 20,
		TopLanguages:    5,
		CommitRepos:     3,
		CommitsPerRepo:  30,
		TopRepositories: 5,
	}

	// ProfileDeep samples more widely and needs an authenticated token to
	// stay within rate limits on large profiles.
	ProfileDeep = model.SamplingPolicy{
		Name:            "deep",
		Description:     "Top 10 non-fork repositories, 100 commits each, 50-repo language sample",
		RepoPageSize:    100,
		LanguageRepoCap: 50,
		TopLanguages:    8,
		CommitRepos:     10,
		CommitsPerRepo:  100,
		TopRepositories: 10,
	}
)

var profiles = map[string]*model.SamplingPolicy{
	ProfileDefault.Name: &ProfileDefault,
	ProfileLight.Name:   &ProfileLight,
	ProfileDeep.Name:    &ProfileDeep,
}

// GetProfile returns a sampling profile by name, or nil.
func GetProfile(name string) *model.SamplingPolicy {
	p, ok := profiles[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListProfiles returns all available profile names.
func ListProfiles() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the profile loaded from file when one is given,
// otherwise the named profile. An empty name selects the default.
func Resolve(name, file string) (model.SamplingPolicy, error) {
	if file != "" {
		p, err := LoadProfileFromFile(file)
		if err != nil {
			return model.SamplingPolicy{}, err
		}
		return *p, nil
	}
	if name == "" {
		name = ProfileDefault.Name
	}
	p := GetProfile(name)
	if p == nil {
		return model.SamplingPolicy{}, errm.Errorf("unknown profile %q, available: %v", name, ListProfiles())
	}
	return *p, nil
}

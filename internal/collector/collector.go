// Package collector fetches profile, repository and commit data from the
// GitHub REST API. Every call is a single read-only request.
package collector

import (
	"context"

	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// Collector defines the read-only calls a run makes against GitHub.
type Collector interface {
	// GetProfile returns the public profile of a user.
	GetProfile(ctx context.Context, username string) (*model.Profile, error)

	// ListRepos returns up to perPage repositories of a user, most recently updated first.
	ListRepos(ctx context.Context, username string, perPage int) ([]model.Repository, error)

	// ListCommits returns up to perPage of the most recent commits of a repository.
	ListCommits(ctx context.Context, repo model.RepoRef, perPage int) ([]model.Commit, error)
}

// NewGitHub creates a GitHub collector from the given configuration.
func NewGitHub(cfg Config) (Collector, error) {
	return NewGitHubCollector(cfg)
}

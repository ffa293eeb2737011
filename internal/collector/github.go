package collector

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-github/v84/github"
	"github.com/grokify/gogithub/auth"
	"github.com/grokify/mogo/net/http/retryhttp"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/Ishanpathak1/ghanalytics/internal/cache"
	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

const userAgent = "ghanalytics"

// Config configures the GitHub collector.
type Config struct {
	// Token is an optional personal access token. Empty means unauthenticated.
	Token string

	// BaseURL overrides the REST API root, e.g. for GitHub Enterprise or tests.
	BaseURL string

	// MaxRetries enables a retrying transport when positive. The default
	// of zero performs every call exactly once.
	MaxRetries int

	// HTTPClient overrides the HTTP client. MaxRetries is ignored when set.
	HTTPClient *http.Client

	// Cache optionally memoizes responses.
	Cache *cache.Cache
}

// GitHubCollector implements Collector for github.com.
type GitHubCollector struct {
	client *github.Client
	cache  *cache.Cache
	log    logze.Logger
}

// NewGitHubCollector creates a new GitHub collector.
func NewGitHubCollector(cfg Config) (*GitHubCollector, error) {
	var client *github.Client
	authenticated := false

	switch {
	case cfg.HTTPClient != nil:
		client = github.NewClient(cfg.HTTPClient)
	case cfg.MaxRetries > 0:
		rt := retryhttp.NewWithOptions(retryhttp.WithMaxRetries(cfg.MaxRetries))
		client = github.NewClient(&http.Client{Transport: rt})
	case cfg.Token != "":
		client = auth.NewGitHubClient(context.Background(), cfg.Token)
		authenticated = true
	default:
		client = github.NewClient(nil)
	}

	if cfg.Token != "" && !authenticated {
		client = client.WithAuthToken(cfg.Token)
	}

	if cfg.BaseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, errm.Wrap(err, "invalid API base URL")
		}
		client.BaseURL = u
	}
	client.UserAgent = userAgent

	return &GitHubCollector{
		client: client,
		cache:  cfg.Cache,
		log:    logze.With("component", "collector"),
	}, nil
}

// GetProfile returns the public profile of a user.
func (c *GitHubCollector) GetProfile(ctx context.Context, username string) (*model.Profile, error) {
	key := "users/" + username
	return cache.WithCache(ctx, c.cache, key, func() (*model.Profile, error) {
		c.log.Debug("fetching profile", "user", username)

		u, _, err := c.client.Users.Get(ctx, username)
		if err != nil {
			return nil, &Error{Kind: ErrNotFoundOrRateLimited, Op: "get user " + username, Err: err}
		}
		return convertProfile(u), nil
	})
}

// ListRepos returns up to perPage repositories of a user, most recently updated first.
func (c *GitHubCollector) ListRepos(ctx context.Context, username string, perPage int) ([]model.Repository, error) {
	key := "users/" + username + "/repos?per_page=" + strconv.Itoa(perPage)
	return cache.WithCache(ctx, c.cache, key, func() ([]model.Repository, error) {
		c.log.Debug("listing repositories", "user", username, "per_page", perPage)

		opts := &github.RepositoryListByUserOptions{
			Sort:        "updated",
			ListOptions: github.ListOptions{PerPage: perPage},
		}
		ghRepos, _, err := c.client.Repositories.ListByUser(ctx, username, opts)
		if err != nil {
			return nil, &Error{Kind: ErrFetchFailed, Op: "list repos of " + username, Err: err}
		}

		repos := make([]model.Repository, 0, len(ghRepos))
		for _, r := range ghRepos {
			repos = append(repos, convertRepo(r, username))
		}
		return repos, nil
	})
}

// ListCommits returns up to perPage of the most recent commits of a repository.
// Commits without an author date are dropped.
func (c *GitHubCollector) ListCommits(ctx context.Context, repo model.RepoRef, perPage int) ([]model.Commit, error) {
	key := "repos/" + repo.FullName() + "/commits?per_page=" + strconv.Itoa(perPage)
	return cache.WithCache(ctx, c.cache, key, func() ([]model.Commit, error) {
		c.log.Debug("listing commits", "repo", repo.FullName(), "per_page", perPage)

		opts := &github.CommitsListOptions{
			ListOptions: github.ListOptions{PerPage: perPage},
		}
		ghCommits, _, err := c.client.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, &Error{Kind: ErrCommitFetchFailed, Op: "list commits of " + repo.FullName(), Err: err}
		}

		commits := make([]model.Commit, 0, len(ghCommits))
		for _, gc := range ghCommits {
			date := gc.GetCommit().GetAuthor().GetDate()
			if date.IsZero() {
				continue
			}
			commits = append(commits, model.Commit{
				SHA:        gc.GetSHA(),
				AuthorDate: date.Time,
			})
		}
		return commits, nil
	})
}

// convertProfile converts a GitHub user to our model.
func convertProfile(u *github.User) *model.Profile {
	return &model.Profile{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		AvatarURL:   u.GetAvatarURL(),
		Bio:         u.GetBio(),
		HTMLURL:     u.GetHTMLURL(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		CreatedAt:   u.GetCreatedAt().Time,
	}
}

// convertRepo converts a GitHub repository to our model.
func convertRepo(r *github.Repository, fallbackOwner string) model.Repository {
	owner := r.GetOwner().GetLogin()
	if owner == "" {
		owner = fallbackOwner
	}

	return model.Repository{
		ID:          r.GetID(),
		Owner:       owner,
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Watchers:    r.GetWatchersCount(),
		Fork:        r.GetFork(),
		Language:    r.GetLanguage(),
		HTMLURL:     r.GetHTMLURL(),
		UpdatedAt:   r.GetUpdatedAt().Time,
	}
}

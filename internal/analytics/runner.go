package analytics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/Ishanpathak1/ghanalytics/internal/collector"
	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// ErrEmptyUsername is returned when Run is called without a username.
var ErrEmptyUsername = errm.New("username is required")

// Runner fetches a profile's data and aggregates it. Calls are issued one
// at a time in a fixed order: profile, repositories, then commits per
// sampled repository.
type Runner struct {
	collector collector.Collector
	policy    model.SamplingPolicy
	loc       *time.Location
	progress  Reporter
	now       func() time.Time
	log       logze.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithPolicy sets the sampling policy.
func WithPolicy(p model.SamplingPolicy) Option {
	return func(r *Runner) { r.policy = p }
}

// WithLocation sets the time zone used to bucket commit times.
func WithLocation(loc *time.Location) Option {
	return func(r *Runner) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithProgress sets the progress reporter.
func WithProgress(p Reporter) Option {
	return func(r *Runner) {
		if p != nil {
			r.progress = p
		}
	}
}

// WithClock overrides the clock used for timestamps and the current streak.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner creates a Runner over c.
func NewRunner(c collector.Collector, opts ...Option) (*Runner, error) {
	if c == nil {
		return nil, errm.New("collector is required")
	}
	r := &Runner{
		collector: c,
		policy:    model.DefaultSamplingPolicy(),
		loc:       time.Local,
		progress:  nopReporter{},
		now:       time.Now,
		log:       logze.With("component", "analytics"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.policy.Validate(); err != nil {
		return nil, errm.Wrap(err, "invalid sampling policy")
	}
	return r, nil
}

// Policy returns the sampling policy in use.
func (r *Runner) Policy() model.SamplingPolicy {
	return r.policy
}

// Run analyzes username. A failed profile or repository lookup aborts the
// run; a failed commit listing is recorded in CommitErrors and the run
// continues with the remaining repositories.
func (r *Runner) Run(ctx context.Context, username string) (*model.AnalysisResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	r.progress.Start(username)
	r.log.Debug("starting analysis", "username", username, "policy", r.policy.Name)

	r.progress.Phase(PhaseProfile)
	profile, err := r.collector.GetProfile(ctx, username)
	if err != nil {
		return nil, classify(err, collector.ErrNotFoundOrRateLimited, "get profile")
	}

	r.progress.Phase(PhaseRepos)
	repos, err := r.collector.ListRepos(ctx, username, r.policy.RepoPageSize)
	if err != nil {
		return nil, classify(err, collector.ErrFetchFailed, "list repositories")
	}
	r.progress.Repos(len(repos))

	sampled := SampleRepositories(repos, r.policy.CommitRepos)
	counts := make(map[string]int, len(sampled))
	var events []model.CommitEvent
	var commitErrors []model.CommitError

	r.progress.Phase(PhaseCommits)
	for i, repo := range sampled {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ref := repo.Ref()
		if ref.Owner == "" {
			ref.Owner = username
		}

		commits, err := r.collector.ListCommits(ctx, ref, r.policy.CommitsPerRepo)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			r.log.Warn("failed to fetch commits", "repo", repo.Name, "error", err)
			r.progress.Error(repo.Name, err)
			commitErrors = append(commitErrors, model.CommitError{
				Repo:    repo.Name,
				Message: err.Error(),
			})
			continue
		}

		counts[repo.Name] = len(commits)
		events = append(events, EventsFromCommits(commits, r.loc)...)
		r.progress.Commits(repo.Name, i+1, len(sampled), len(commits))
	}

	res := Aggregate(Input{
		Username:     username,
		Profile:      profile,
		Repositories: repos,
		CommitCounts: counts,
		Events:       events,
		CommitErrors: commitErrors,
		Policy:       r.policy,
		Location:     r.loc,
		Now:          r.now(),
	})

	r.log.Info("analysis complete",
		"username", username,
		"repos", len(repos),
		"commits", res.CommitData.TotalCommits,
		"commit_errors", len(commitErrors))
	r.progress.Complete(res)

	return res, nil
}

// classify makes sure err matches kind. Collector errors that already
// carry a kind are returned as is.
func classify(err, kind error, op string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, kind) {
		return err
	}
	return &collector.Error{Kind: kind, Op: op, Err: err}
}

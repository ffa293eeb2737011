package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ishanpathak1/ghanalytics/internal/collector"
	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

type fakeCollector struct {
	mu         sync.Mutex
	profile    *model.Profile
	profileErr error
	repos      []model.Repository
	reposErr   error
	commits    map[string][]model.Commit
	commitErrs map[string]error
	calls      []string
	block      chan struct{}
}

func (f *fakeCollector) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeCollector) GetProfile(ctx context.Context, username string) (*model.Profile, error) {
	f.record("profile:" + username)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.profile, f.profileErr
}

func (f *fakeCollector) ListRepos(_ context.Context, username string, _ int) ([]model.Repository, error) {
	f.record("repos:" + username)
	return f.repos, f.reposErr
}

func (f *fakeCollector) ListCommits(_ context.Context, ref model.RepoRef, _ int) ([]model.Commit, error) {
	f.record("commits:" + ref.FullName())
	if err := f.commitErrs[ref.Name]; err != nil {
		return nil, err
	}
	return f.commits[ref.Name], nil
}

func commitsAt(times ...time.Time) []model.Commit {
	out := make([]model.Commit, 0, len(times))
	for i, ts := range times {
		out = append(out, model.Commit{SHA: string(rune('a' + i)), AuthorDate: ts})
	}
	return out
}

func newFake() *fakeCollector {
	monday9 := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	return &fakeCollector{
		profile: &model.Profile{Login: "octocat", Name: "The Octocat"},
		repos: []model.Repository{
			repo("r1", "Go", 50, false),
			repo("r2", "Go", 40, false),
			repo("r3", "Python", 30, false),
			repo("r4", "Rust", 20, false),
			repo("r5", "Go", 10, false),
			repo("r6", "C", 5, false),
		},
		commits: map[string][]model.Commit{
			"r1": commitsAt(monday9, monday9.Add(24*time.Hour)),
			"r2": commitsAt(monday9),
			"r4": commitsAt(monday9.Add(48 * time.Hour)),
			"r5": commitsAt(),
		},
		commitErrs: map[string]error{
			"r3": &collector.Error{Kind: collector.ErrCommitFetchFailed, Op: "list commits", Err: errors.New("409 empty repository")},
		},
	}
}

func TestRunnerRun(t *testing.T) {
	fake := newFake()
	var events []ProgressEvent
	now := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)

	r, err := NewRunner(fake,
		WithLocation(time.UTC),
		WithClock(func() time.Time { return now }),
		WithProgress(NewCallbackProgress(func(e ProgressEvent) { events = append(events, e) })),
	)
	require.NoError(t, err)

	res, err := r.Run(context.Background(), "  octocat ")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"profile:octocat",
		"repos:octocat",
		"commits:octocat/r1",
		"commits:octocat/r2",
		"commits:octocat/r3",
		"commits:octocat/r4",
		"commits:octocat/r5",
	}, fake.calls)

	assert.Equal(t, map[string]int{"r1": 2, "r2": 1, "r4": 1, "r5": 0}, res.CommitData.Repositories)
	assert.NotContains(t, res.CommitData.Repositories, "r3")
	assert.Equal(t, 4, res.CommitData.TotalCommits)
	require.Len(t, res.CommitErrors, 1)
	assert.Equal(t, "r3", res.CommitErrors[0].Repo)

	require.NotNil(t, res.Productivity)
	assert.Equal(t, 9, res.Productivity.MostProductiveHour)
	assert.Equal(t, time.Monday, res.Productivity.MostProductiveDay)
	assert.Equal(t, 3, res.Productivity.LongestStreak)
	assert.Equal(t, now, res.Timestamp)

	require.NotEmpty(t, events)
	assert.Equal(t, ProgressEventStart, events[0].Type)
	assert.Equal(t, ProgressEventComplete, events[len(events)-1].Type)
	var errorEvents int
	for _, e := range events {
		if e.Type == ProgressEventError {
			errorEvents++
		}
	}
	assert.Equal(t, 1, errorEvents)
}

func TestRunnerProfileFailure(t *testing.T) {
	fake := newFake()
	fake.profileErr = errors.New("404 Not Found")

	r, err := NewRunner(fake)
	require.NoError(t, err)

	res, err := r.Run(context.Background(), "ghost")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, collector.ErrNotFoundOrRateLimited)
	assert.Equal(t, []string{"profile:ghost"}, fake.calls)
}

func TestRunnerRepoFailure(t *testing.T) {
	fake := newFake()
	fake.reposErr = errors.New("boom")

	r, err := NewRunner(fake)
	require.NoError(t, err)

	res, err := r.Run(context.Background(), "octocat")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, collector.ErrFetchFailed)
}

func TestRunnerNoRepositories(t *testing.T) {
	fake := newFake()
	fake.repos = nil

	r, err := NewRunner(fake, WithLocation(time.UTC))
	require.NoError(t, err)

	res, err := r.Run(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Empty(t, res.TopRepositories)
	assert.Empty(t, res.TopLanguages)
	assert.True(t, res.InsufficientActivity)
	assert.True(t, res.InsufficientLanguages)
}

func TestRunnerValidation(t *testing.T) {
	_, err := NewRunner(nil)
	assert.Error(t, err)

	_, err = NewRunner(newFake(), WithPolicy(model.SamplingPolicy{Name: "bad"}))
	assert.Error(t, err)

	r, err := NewRunner(newFake())
	require.NoError(t, err)
	_, err = r.Run(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyUsername)
}

func TestRunnerPolicy(t *testing.T) {
	fake := newFake()
	p := model.DefaultSamplingPolicy()
	p.CommitRepos = 2

	r, err := NewRunner(fake, WithPolicy(p))
	require.NoError(t, err)

	_, err = r.Run(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Len(t, fake.calls, 4)
}

func TestSessionDiscardsStaleRun(t *testing.T) {
	var s Session

	first, firstCtx := s.Begin(context.Background(), "alice")
	second, _ := s.Begin(context.Background(), "bob")

	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)
	assert.False(t, s.Commit(first, &model.AnalysisResult{Username: "alice"}))
	assert.Nil(t, s.Current())

	assert.True(t, s.Commit(second, &model.AnalysisResult{Username: "bob"}))
	require.NotNil(t, s.Current())
	assert.Equal(t, "bob", s.Current().Username)
	assert.Equal(t, "bob", s.Username())

	_, _ = s.Begin(context.Background(), "carol")
	assert.Nil(t, s.Current(), "a new run clears the previous result")
}

func TestSessionRun(t *testing.T) {
	var s Session
	r, err := NewRunner(newFake(), WithLocation(time.UTC))
	require.NoError(t, err)

	res, err := s.Run(context.Background(), r, "octocat")
	require.NoError(t, err)
	assert.Same(t, res, s.Current())

	failing := newFake()
	failing.profileErr = errors.New("nope")
	r2, err := NewRunner(failing)
	require.NoError(t, err)

	_, err = s.Run(context.Background(), r2, "ghost")
	assert.ErrorIs(t, err, collector.ErrNotFoundOrRateLimited)
	assert.Nil(t, s.Current())
}

func TestSessionRunSuperseded(t *testing.T) {
	var s Session
	slow := newFake()
	slow.block = make(chan struct{})

	r, err := NewRunner(slow)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.Run(context.Background(), r, "slow")
		done <- err
	}()

	require.Eventually(t, func() bool {
		slow.mu.Lock()
		defer slow.mu.Unlock()
		return len(slow.calls) == 1
	}, time.Second, 5*time.Millisecond)

	id, _ := s.Begin(context.Background(), "fast")
	assert.True(t, s.Commit(id, &model.AnalysisResult{Username: "fast"}))

	assert.ErrorIs(t, <-done, ErrStaleRun)
	assert.Equal(t, "fast", s.Current().Username)
}

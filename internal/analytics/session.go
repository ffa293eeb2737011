package analytics

import (
	"context"
	"sync"

	"github.com/maxbolgarin/errm"

	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// ErrStaleRun is returned when a newer run replaced the one that finished.
var ErrStaleRun = errm.New("analysis superseded by a newer run")

// Analyzer runs one analysis. *Runner implements it.
type Analyzer interface {
	Run(ctx context.Context, username string) (*model.AnalysisResult, error)
}

// Session holds the result of the latest run for an interactive caller.
// Starting a run cancels the previous one and clears the stored result;
// results of superseded runs are discarded.
type Session struct {
	mu       sync.Mutex
	runID    uint64
	cancel   context.CancelFunc
	username string
	result   *model.AnalysisResult
}

// Begin starts a new run and returns its id and context.
func (s *Session) Begin(parent context.Context, username string) (uint64, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.runID++
	s.cancel = cancel
	s.username = username
	s.result = nil
	return s.runID, ctx
}

// Commit stores result if id is still the latest run. It reports whether
// the result was kept.
func (s *Session) Commit(id uint64, result *model.AnalysisResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != s.runID {
		return false
	}
	s.result = result
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return true
}

// Cancel stops the in-flight run, if any.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Current returns the latest committed result, or nil.
func (s *Session) Current() *model.AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Username returns the username of the latest run.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// Run executes a for username inside the session. A failed run leaves the
// session empty.
func (s *Session) Run(ctx context.Context, a Analyzer, username string) (*model.AnalysisResult, error) {
	id, runCtx := s.Begin(ctx, username)
	res, err := a.Run(runCtx, username)
	if err != nil {
		if !s.Commit(id, nil) {
			return nil, ErrStaleRun
		}
		return nil, err
	}
	if !s.Commit(id, res) {
		return nil, ErrStaleRun
	}
	return res, nil
}

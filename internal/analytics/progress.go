package analytics

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// Reporter receives progress updates while a run fetches data.
type Reporter interface {
	Start(username string)
	Phase(phase Phase)
	Repos(count int)
	Commits(repo string, current, total, commits int)
	Error(repo string, err error)
	Complete(result *model.AnalysisResult)
}

// Phase names a fetch stage.
type Phase string

const (
	PhaseProfile Phase = "profile"
	PhaseRepos   Phase = "repos"
	PhaseCommits Phase = "commits"
)

// Progress writes human readable progress to a writer.
type Progress struct {
	mu          sync.Mutex
	writer      io.Writer
	enabled     bool
	startTime   time.Time
	username    string
	repos       int
	sampled     int
	errors      int
	lastUpdate  time.Time
	minInterval time.Duration
}

// ProgressConfig configures progress reporting.
type ProgressConfig struct {
	// Writer is where progress is written. Default is os.Stderr.
	Writer io.Writer

	// Enabled controls whether progress is reported.
	Enabled bool

	// MinInterval is the minimum time between per-repository updates.
	// Default is 100ms.
	MinInterval time.Duration
}

// NewProgress creates a new progress reporter.
func NewProgress(cfg ProgressConfig) *Progress {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	if cfg.MinInterval == 0 {
		cfg.MinInterval = 100 * time.Millisecond
	}
	return &Progress{
		writer:      cfg.Writer,
		enabled:     cfg.Enabled,
		minInterval: cfg.MinInterval,
	}
}

// Start begins tracking a run.
func (p *Progress) Start(username string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.username = username
	p.repos = 0
	p.sampled = 0
	p.errors = 0
	p.lastUpdate = time.Time{}

	fmt.Fprintf(p.writer, "Analyzing GitHub profile %s...\n", username)
}

// Phase reports the start of a fetch stage.
func (p *Progress) Phase(phase Phase) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	switch phase {
	case PhaseProfile:
		fmt.Fprintf(p.writer, "  Fetching profile...\n")
	case PhaseRepos:
		fmt.Fprintf(p.writer, "  Fetching repositories...\n")
	case PhaseCommits:
		fmt.Fprintf(p.writer, "  Sampling commits...\n")
	}
}

// Repos reports how many repositories were listed.
func (p *Progress) Repos(count int) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.repos = count
	fmt.Fprintf(p.writer, "  Found %d repositories\n", count)
}

// Commits reports one sampled repository.
func (p *Progress) Commits(repo string, current, total, commits int) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sampled++

	if time.Since(p.lastUpdate) < p.minInterval {
		return
	}
	p.lastUpdate = time.Now()

	fmt.Fprintf(p.writer, "  [%d/%d] %s (%d commits)\r",
		current, total, truncateString(repo, 40), commits)
}

// Error reports a repository whose commits could not be fetched.
func (p *Progress) Error(repo string, err error) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.errors++
	fmt.Fprintf(p.writer, "\r  Error: %s: %v\n", repo, err)
}

// Complete prints a summary of the run.
func (p *Progress) Complete(result *model.AnalysisResult) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.startTime).Round(time.Millisecond)

	fmt.Fprintf(p.writer, "\r%s\r", "                                                            ")
	fmt.Fprintf(p.writer, "\nAnalysis complete:\n")
	fmt.Fprintf(p.writer, "  Repositories:  %d\n", p.repos)
	fmt.Fprintf(p.writer, "  Sampled:       %d\n", p.sampled)
	if result != nil {
		fmt.Fprintf(p.writer, "  Commits:       %d\n", result.CommitData.TotalCommits)
	}
	if p.errors > 0 {
		fmt.Fprintf(p.writer, "  Errors:        %d\n", p.errors)
	}
	fmt.Fprintf(p.writer, "  Duration:      %s\n", elapsed)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// ProgressCallback is called for every progress event.
type ProgressCallback func(event ProgressEvent)

// ProgressEvent is one progress update.
type ProgressEvent struct {
	Type     ProgressEventType     `json:"type"`
	Username string                `json:"username,omitempty"`
	Phase    Phase                 `json:"phase,omitempty"`
	Repo     string                `json:"repo,omitempty"`
	Current  int                   `json:"current,omitempty"`
	Total    int                   `json:"total,omitempty"`
	Commits  int                   `json:"commits,omitempty"`
	Error    error                 `json:"-"`
	Result   *model.AnalysisResult `json:"-"`
}

// ProgressEventType indicates the type of progress event.
type ProgressEventType string

const (
	ProgressEventStart    ProgressEventType = "start"
	ProgressEventPhase    ProgressEventType = "phase"
	ProgressEventRepos    ProgressEventType = "repos"
	ProgressEventCommits  ProgressEventType = "commits"
	ProgressEventError    ProgressEventType = "error"
	ProgressEventComplete ProgressEventType = "complete"
)

// CallbackProgress adapts a callback function to the Reporter interface.
type CallbackProgress struct {
	callback ProgressCallback
}

// NewCallbackProgress creates a reporter that calls callback.
func NewCallbackProgress(callback ProgressCallback) *CallbackProgress {
	return &CallbackProgress{callback: callback}
}

func (cp *CallbackProgress) Start(username string) {
	cp.callback(ProgressEvent{Type: ProgressEventStart, Username: username})
}

func (cp *CallbackProgress) Phase(phase Phase) {
	cp.callback(ProgressEvent{Type: ProgressEventPhase, Phase: phase})
}

func (cp *CallbackProgress) Repos(count int) {
	cp.callback(ProgressEvent{Type: ProgressEventRepos, Total: count})
}

func (cp *CallbackProgress) Commits(repo string, current, total, commits int) {
	cp.callback(ProgressEvent{
		Type:    ProgressEventCommits,
		Repo:    repo,
		Current: current,
		Total:   total,
		Commits: commits,
	})
}

func (cp *CallbackProgress) Error(repo string, err error) {
	cp.callback(ProgressEvent{Type: ProgressEventError, Repo: repo, Error: err})
}

func (cp *CallbackProgress) Complete(result *model.AnalysisResult) {
	cp.callback(ProgressEvent{Type: ProgressEventComplete, Result: result})
}

type nopReporter struct{}

func (nopReporter) Start(string)                   {}
func (nopReporter) Phase(Phase)                    {}
func (nopReporter) Repos(int)                      {}
func (nopReporter) Commits(string, int, int, int)  {}
func (nopReporter) Error(string, error)            {}
func (nopReporter) Complete(*model.AnalysisResult) {}

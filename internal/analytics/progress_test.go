package analytics

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

func TestProgressWriter(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(ProgressConfig{Writer: &buf, Enabled: true})

	p.Start("octocat")
	p.Phase(PhaseRepos)
	p.Repos(12)
	p.Commits("hello-world", 1, 5, 30)
	p.Error("broken", errors.New("409 Conflict"))
	p.Complete(&model.AnalysisResult{CommitData: model.CommitData{TotalCommits: 30}})

	out := buf.String()
	assert.Contains(t, out, "Analyzing GitHub profile octocat")
	assert.Contains(t, out, "Found 12 repositories")
	assert.Contains(t, out, "Error: broken: 409 Conflict")
	assert.Contains(t, out, "Commits:       30")
	assert.Contains(t, out, "Errors:        1")
}

func TestProgressDisabled(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(ProgressConfig{Writer: &buf})

	p.Start("octocat")
	p.Repos(3)
	p.Complete(nil)

	assert.Empty(t, buf.String())
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
}

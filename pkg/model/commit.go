package model

import "time"

// Commit is the subset of a commit record the analysis needs.
type Commit struct {
	SHA        string    `json:"sha" yaml:"sha"`
	AuthorDate time.Time `json:"authorDate" yaml:"authorDate"`
}

// CommitEvent is a commit reduced to the calendar buckets used by the
// activity histograms. Hour, Weekday and Month are expressed in the
// location the event was derived in; Timestamp is epoch milliseconds.
type CommitEvent struct {
	Hour      int          `json:"hour" yaml:"hour"`
	Weekday   time.Weekday `json:"weekday" yaml:"weekday"`
	Month     time.Month   `json:"month" yaml:"month"`
	Timestamp int64        `json:"timestamp" yaml:"timestamp"`
}

// Time returns the event instant.
func (e CommitEvent) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

package batch

import (
	"time"

	"reclaim/internal/transform"
	"reclaim/internal/walker"
)

// Result is the settled outcome of one item.
type Result struct {
	Entry   walker.Entry
	Outcome transform.Outcome
	// Removed is true once the source has been deleted.
	Removed bool
	// RemoveErr records a failed delete; the item stays Succeeded because
	// its artifact is verified.
	RemoveErr error
	Elapsed   time.Duration
}

// Report collects every result of one run.
type Report struct {
	RunID    string
	Job      string
	Root     string
	DryRun   bool
	Started  time.Time
	Finished time.Time
	Results  []Result
}

// Summary aggregates a report.
type Summary struct {
	Total         int
	Skipped       int
	Succeeded     int
	Failed        int
	Removed       int
	RemoveErrors  int
	SourceBytes   int64
	ArtifactBytes int64
}

// Summary tallies the report.
func (r Report) Summary() Summary {
	var s Summary
	for _, res := range r.Results {
		s.Total++
		switch res.Outcome.Status {
		case transform.StatusSkipped:
			s.Skipped++
		case transform.StatusSucceeded:
			s.Succeeded++
			s.SourceBytes += res.Entry.Size
			s.ArtifactBytes += res.Outcome.Size
		case transform.StatusFailed:
			s.Failed++
		}
		if res.Removed {
			s.Removed++
		}
		if res.RemoveErr != nil {
			s.RemoveErrors++
		}
	}
	return s
}

// HasFailures reports whether any item failed.
func (r Report) HasFailures() bool {
	for _, res := range r.Results {
		if res.Outcome.Status == transform.StatusFailed {
			return true
		}
	}
	return false
}

// Duration is the wall time of the run.
func (r Report) Duration() time.Duration {
	if r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"reclaim/internal/batch"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type reportJSON struct {
	RunID      string      `json:"run_id"`
	Job        string      `json:"job"`
	Root       string      `json:"root"`
	DryRun     bool        `json:"dry_run"`
	Started    time.Time   `json:"started"`
	Finished   time.Time   `json:"finished"`
	DurationMS int64       `json:"duration_ms"`
	Summary    summaryJSON `json:"summary"`
	Items      []itemJSON  `json:"items"`
	Error      string      `json:"error,omitempty"`
}

type summaryJSON struct {
	Total         int   `json:"total"`
	Succeeded     int   `json:"succeeded"`
	Skipped       int   `json:"skipped"`
	Failed        int   `json:"failed"`
	Removed       int   `json:"removed"`
	RemoveErrors  int   `json:"remove_errors"`
	SourceBytes   int64 `json:"source_bytes"`
	ArtifactBytes int64 `json:"artifact_bytes"`
}

type itemJSON struct {
	Path        string `json:"path"`
	RelPath     string `json:"rel_path"`
	Kind        string `json:"kind"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	Artifact    string `json:"artifact,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Removed     bool   `json:"removed"`
	Error       string `json:"error,omitempty"`
	RemoveError string `json:"remove_error,omitempty"`
	ElapsedMS   int64  `json:"elapsed_ms"`
}

func newReportJSON(report batch.Report, runErr error) reportJSON {
	s := report.Summary()
	out := reportJSON{
		RunID:      report.RunID,
		Job:        report.Job,
		Root:       report.Root,
		DryRun:     report.DryRun,
		Started:    report.Started,
		Finished:   report.Finished,
		DurationMS: report.Duration().Milliseconds(),
		Summary: summaryJSON{
			Total:         s.Total,
			Succeeded:     s.Succeeded,
			Skipped:       s.Skipped,
			Failed:        s.Failed,
			Removed:       s.Removed,
			RemoveErrors:  s.RemoveErrors,
			SourceBytes:   s.SourceBytes,
			ArtifactBytes: s.ArtifactBytes,
		},
		Items: make([]itemJSON, 0, len(report.Results)),
	}
	if runErr != nil {
		out.Error = runErr.Error()
	}
	for _, res := range report.Results {
		item := itemJSON{
			Path:      res.Entry.Path,
			RelPath:   res.Entry.RelPath,
			Kind:      res.Entry.Kind.String(),
			Status:    res.Outcome.Status.String(),
			Reason:    string(res.Outcome.Reason),
			Artifact:  res.Outcome.Artifact,
			Size:      res.Outcome.Size,
			Removed:   res.Removed,
			ElapsedMS: res.Elapsed.Milliseconds(),
		}
		if res.Outcome.Err != nil {
			item.Error = res.Outcome.Err.Error()
		}
		if res.RemoveErr != nil {
			item.RemoveError = res.RemoveErr.Error()
		}
		out.Items = append(out.Items, item)
	}
	return out
}

package transform

import (
	"errors"

	"reclaim/internal/services"
)

// Status is the terminal state of one item.
type Status int

const (
	StatusSkipped Status = iota
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// Reason qualifies a skip or failure.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonAlreadyExists Reason = "already_exists"
	ReasonDryRun        Reason = "dry_run"
	ReasonProcess       Reason = "process"
	ReasonEmptyOutput   Reason = "empty_output"
	ReasonIO            Reason = "io"
)

// Outcome is the per-item result of a Runner. It is never retried and never
// persisted; idempotence comes from re-checking the target on the next run.
type Outcome struct {
	Status   Status
	Reason   Reason
	Artifact string
	// Size is the artifact size in bytes once verified.
	Size int64
	Err  error
}

// Skipped reports an item left untouched.
func Skipped(reason Reason, artifact string) Outcome {
	return Outcome{Status: StatusSkipped, Reason: reason, Artifact: artifact}
}

// Succeeded reports a verified artifact.
func Succeeded(artifact string, size int64) Outcome {
	return Outcome{Status: StatusSucceeded, Artifact: artifact, Size: size}
}

// Failed reports a failed item, classifying err into a Reason.
func Failed(artifact string, err error) Outcome {
	return Outcome{Status: StatusFailed, Reason: ReasonFor(err), Artifact: artifact, Err: err}
}

// ReasonFor maps a classified error to the failure reason shown to users.
func ReasonFor(err error) Reason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, services.ErrProcess):
		return ReasonProcess
	case errors.Is(err, services.ErrEmptyOutput):
		return ReasonEmptyOutput
	default:
		return ReasonIO
	}
}

package transform

import (
	"context"

	"reclaim/internal/fileutil"
	"reclaim/internal/services"
	"reclaim/internal/walker"
)

// Scope selects which walked entries a runner is offered.
type Scope int

const (
	// ScopeFiles offers every file at any depth; directories are traversed
	// but never transformed.
	ScopeFiles Scope = iota
	// ScopeTopLevel offers the root's direct children, files and
	// directories alike, each treated as one unit.
	ScopeTopLevel
)

// Runner transforms one entry into one artifact.
type Runner interface {
	Name() string
	Scope() Scope
	// Accepts filters entries the runner has nothing to do for, such as
	// files already in the output format.
	Accepts(entry walker.Entry) bool
	// Target derives the artifact path without touching the filesystem
	// beyond reading the source.
	Target(ctx context.Context, entry walker.Entry) (string, error)
	// Apply runs to completion and returns the item's outcome. It never
	// removes the source.
	Apply(ctx context.Context, entry walker.Entry) Outcome
}

// checkTarget returns a non-nil outcome when the target already exists or
// cannot be inspected.
func checkTarget(job, target string) *Outcome {
	exists, err := fileutil.Exists(target)
	if err != nil {
		out := Failed(target, services.Wrap(services.ErrIO, job, "stat target", target, err))
		return &out
	}
	if exists {
		out := Skipped(ReasonAlreadyExists, target)
		return &out
	}
	return nil
}

// verified stats the artifact and converts the result into an outcome.
func verified(target string) Outcome {
	size, err := fileutil.VerifyArtifact(target)
	if err != nil {
		return Failed(target, err)
	}
	return Succeeded(target, size)
}

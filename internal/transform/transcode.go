package transform

import (
	"context"
	"path/filepath"
	"strings"

	"reclaim/internal/services"
	"reclaim/internal/walker"
)

// Encoder writes a transcoded copy of source at target.
type Encoder interface {
	Name() string
	Encode(ctx context.Context, source, target string) error
}

// Validator inspects a written artifact before it may replace its source.
type Validator interface {
	Validate(ctx context.Context, path string) error
}

// TranscodeOptions configures the Transcode runner.
type TranscodeOptions struct {
	Encoder Encoder
	// Validator is optional; nil trusts the exit status and a non-empty file.
	Validator Validator
	// InputExtensions lists convertible extensions. Empty accepts any file
	// not already in the output extension.
	InputExtensions []string
	OutputExtension string
}

// Transcode converts video files to OutputExtension next to the source.
type Transcode struct {
	encoder   Encoder
	validator Validator
	inputs    map[string]struct{}
	output    string
}

// NewTranscode builds a Transcode runner.
func NewTranscode(opts TranscodeOptions) *Transcode {
	inputs := make(map[string]struct{}, len(opts.InputExtensions))
	for _, ext := range opts.InputExtensions {
		if ext = walker.NormalizeExtension(ext); ext != "" {
			inputs[ext] = struct{}{}
		}
	}
	return &Transcode{
		encoder:   opts.Encoder,
		validator: opts.Validator,
		inputs:    inputs,
		output:    walker.NormalizeExtension(opts.OutputExtension),
	}
}

func (t *Transcode) Name() string { return "transcode" }

func (t *Transcode) Scope() Scope { return ScopeFiles }

// Accepts reports whether entry is a convertible file. Files already in the
// output extension are never reprocessed.
func (t *Transcode) Accepts(entry walker.Entry) bool {
	if entry.IsDir() {
		return false
	}
	ext := walker.NormalizeExtension(entry.Ext())
	if ext == "" || ext == t.output {
		return false
	}
	if len(t.inputs) == 0 {
		return true
	}
	_, ok := t.inputs[ext]
	return ok
}

func (t *Transcode) Target(_ context.Context, entry walker.Entry) (string, error) {
	return strings.TrimSuffix(entry.Path, filepath.Ext(entry.Path)) + t.output, nil
}

func (t *Transcode) Apply(ctx context.Context, entry walker.Entry) Outcome {
	target, _ := t.Target(ctx, entry)
	if out := checkTarget(t.Name(), target); out != nil {
		return *out
	}

	if err := t.encoder.Encode(ctx, entry.Path, target); err != nil {
		return Failed(target, err)
	}
	out := verified(target)
	if out.Status != StatusSucceeded || t.validator == nil {
		return out
	}
	if err := t.validator.Validate(ctx, target); err != nil {
		return Failed(target, services.Wrap(services.ErrEmptyOutput, t.Name(), "validate output", filepath.Base(target), err))
	}
	return out
}

var _ Runner = (*Transcode)(nil)

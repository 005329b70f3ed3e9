package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"reclaim/internal/batch"
	"reclaim/internal/config"
	"reclaim/internal/deps"
	"reclaim/internal/hashname"
	"reclaim/internal/logging"
	"reclaim/internal/services"
	"reclaim/internal/services/drapto"
	"reclaim/internal/services/process"
	"reclaim/internal/transform"
	"reclaim/internal/walker"
)

// Kind names a batch job.
type Kind string

const (
	KindArchive   Kind = "archive"
	KindTranscode Kind = "transcode"
	KindRename    Kind = "rename"
)

// Kinds lists every job in display order.
func Kinds() []Kind {
	return []Kind{KindArchive, KindTranscode, KindRename}
}

// ParseKind validates a job name.
func ParseKind(value string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(value)))
	for _, k := range Kinds() {
		if k == kind {
			return k, nil
		}
	}
	return "", services.Wrap(services.ErrConfiguration, "", "job", fmt.Sprintf("unknown job %q", value), nil)
}

// Policy builds the exclusion policy shared by every job.
func Policy(cfg *config.Config) (walker.Policy, error) {
	policy, err := walker.NewPolicy(walker.PolicyOptions{
		SkipHidden:        cfg.Exclude.Hidden,
		ExcludeExtensions: cfg.Exclude.Extensions,
		IncludeExtensions: cfg.Exclude.IncludeExtensions,
		Patterns:          cfg.Exclude.Patterns,
	})
	if err != nil {
		return walker.Policy{}, services.Wrap(services.ErrConfiguration, "", "exclude", "", err)
	}
	return policy, nil
}

// DeleteSource reports whether kind removes verified sources.
func DeleteSource(cfg *config.Config, kind Kind) bool {
	switch kind {
	case KindArchive:
		return cfg.Archive.DeleteSource
	case KindTranscode:
		return cfg.Transcode.DeleteSource
	case KindRename:
		return cfg.Rename.Move
	default:
		return false
	}
}

// Builder constructs runners. Tools are resolved once per Build call and the
// resulting bindings are reused for every item.
type Builder struct {
	Locator *deps.Locator
	Spawner process.Spawner
	Logger  *slog.Logger
	// Drapto overrides the in-process encoder, mainly for tests.
	Drapto drapto.Client
}

// Build resolves kind's tools and returns its runner. A missing tool fails
// with services.ErrToolNotFound before anything is touched.
func (b Builder) Build(ctx context.Context, cfg *config.Config, kind Kind) (transform.Runner, error) {
	spawner := b.Spawner
	if spawner == nil {
		spawner = process.Exec{}
	}
	locator := b.Locator
	if locator == nil {
		locator = deps.NewLocator(spawner)
	}
	logger := b.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	switch kind {
	case KindArchive:
		binding, err := locator.Resolve(ctx, ArchiverTool(cfg), cfg.Archive.SearchDirs)
		if err != nil {
			return nil, err
		}
		logger.Debug("archiver resolved", logging.String("command", binding.Command), logging.String("source", binding.Source))
		return transform.NewArchive(transform.ArchiveOptions{
			Spawner: spawner,
			Binary:  binding.Command,
			Suffix:  cfg.Archive.Suffix,
			Flags:   cfg.Archive.Flags,
		}), nil

	case KindTranscode:
		return b.buildTranscode(ctx, cfg, locator, spawner, logger)

	case KindRename:
		namer, err := hashname.New(cfg.Rename.Hash)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, string(kind), "hash", "", err)
		}
		return transform.NewHashRename(transform.HashRenameOptions{
			Namer:      namer,
			TargetDir:  cfg.RenameTargetDir(),
			Extensions: cfg.Rename.Extensions,
		}), nil

	default:
		return nil, services.Wrap(services.ErrConfiguration, "", "job", fmt.Sprintf("unknown job %q", kind), nil)
	}
}

func (b Builder) buildTranscode(ctx context.Context, cfg *config.Config, locator *deps.Locator, spawner process.Spawner, logger *slog.Logger) (transform.Runner, error) {
	var (
		encoder transform.Encoder
		primary deps.Binding
	)
	switch cfg.Transcode.Engine {
	case config.EngineDrapto:
		client := b.Drapto
		if client == nil {
			client = drapto.NewLibrary(logger)
		}
		encoder = &transform.DraptoEncoder{Client: client}
	default:
		binding, err := locator.Resolve(ctx, EncoderTool(cfg), cfg.Transcode.SearchDirs)
		if err != nil {
			return nil, err
		}
		logger.Debug("encoder resolved", logging.String("command", binding.Command), logging.String("source", binding.Source))
		primary = binding
		encoder = &transform.FFmpegEncoder{Spawner: spawner, Binary: binding.Command, CodecFlags: cfg.Transcode.CodecFlags}
	}

	var validator transform.Validator
	if cfg.Transcode.Validate {
		var (
			probe deps.Binding
			err   error
		)
		if primary.Command != "" {
			probe, err = locator.Sidecar(ctx, primary, ProbeTool(cfg))
		} else {
			probe, err = locator.Resolve(ctx, ProbeTool(cfg), cfg.Transcode.SearchDirs)
		}
		if err != nil {
			return nil, err
		}
		validator = &transform.ProbeValidator{Spawner: spawner, Binary: probe.Command}
	}

	return transform.NewTranscode(transform.TranscodeOptions{
		Encoder:         encoder,
		Validator:       validator,
		InputExtensions: cfg.Transcode.InputExtensions,
		OutputExtension: cfg.Transcode.OutputExtension,
	}), nil
}

// RunOptions carries per-invocation overrides.
type RunOptions struct {
	DryRun bool
	// Keep disables source removal for this run.
	Keep     bool
	Observer batch.Observer
	Builder  Builder
	Deleter  batch.Deleter
}

// Run executes kind over cfg.Paths.Root. The returned report is partial when
// err is non-nil.
func Run(ctx context.Context, cfg *config.Config, kind Kind, opts RunOptions) (batch.Report, error) {
	root := cfg.Paths.Root
	empty := batch.Report{Job: string(kind), Root: root, DryRun: opts.DryRun}

	policy, err := Policy(cfg)
	if err != nil {
		return empty, err
	}
	runner, err := opts.Builder.Build(ctx, cfg, kind)
	if err != nil {
		return empty, err
	}

	if !opts.DryRun {
		lock, err := batch.AcquireRunLock(root)
		if err != nil {
			return empty, err
		}
		defer func() { _ = lock.Release() }()
	}

	orch, err := batch.New(batch.Options{
		Runner:       runner,
		Policy:       policy,
		DeleteSource: DeleteSource(cfg, kind) && !opts.Keep,
		DryRun:       opts.DryRun,
		Deleter:      opts.Deleter,
		Observer:     opts.Observer,
		Logger:       opts.Builder.Logger,
	})
	if err != nil {
		return empty, err
	}
	return orch.Run(ctx, root)
}

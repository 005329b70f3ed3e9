package batch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"reclaim/internal/fileutil"
	"reclaim/internal/logging"
	"reclaim/internal/services"
	"reclaim/internal/transform"
	"reclaim/internal/walker"
)

// Observer receives each settled result while the run proceeds.
type Observer func(Result)

// Options configures an Orchestrator.
type Options struct {
	Runner transform.Runner
	Policy walker.Policy
	// DeleteSource removes each source once its artifact is verified.
	DeleteSource bool
	// DryRun derives targets and reports them without transforming or
	// deleting anything.
	DryRun   bool
	Deleter  Deleter
	Observer Observer
	Logger   *slog.Logger
	// Now is overridable for tests.
	Now func() time.Time
}

// Orchestrator runs one Runner over a tree.
type Orchestrator struct {
	runner       transform.Runner
	policy       walker.Policy
	deleteSource bool
	dryRun       bool
	deleter      Deleter
	observer     Observer
	logger       *slog.Logger
	now          func() time.Time
}

// New builds an Orchestrator.
func New(opts Options) (*Orchestrator, error) {
	if opts.Runner == nil {
		return nil, services.Wrap(services.ErrConfiguration, "", "batch", "runner required", nil)
	}
	deleter := opts.Deleter
	if deleter == nil {
		deleter = OSDeleter{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		runner:       opts.Runner,
		policy:       opts.Policy,
		deleteSource: opts.DeleteSource,
		dryRun:       opts.DryRun,
		deleter:      deleter,
		observer:     opts.Observer,
		logger:       logging.NewComponentLogger(opts.Logger, opts.Runner.Name()),
		now:          now,
	}, nil
}

// Run processes every accepted entry under root. It returns the partial
// report alongside a fatal error (unreadable directory, cancellation);
// per-item failures are only recorded in the report.
func (o *Orchestrator) Run(ctx context.Context, root string) (Report, error) {
	job := o.runner.Name()
	ctx = services.WithJob(ctx, job)
	logger := logging.WithContext(ctx, o.logger)

	runID, _ := services.RunIDFromContext(ctx)
	report := Report{RunID: runID, Job: job, Root: root, DryRun: o.dryRun, Started: o.now()}

	if err := checkRoot(root); err != nil {
		report.Finished = o.now()
		return report, err
	}

	walkOpts := walker.Options{}
	if o.runner.Scope() == transform.ScopeTopLevel {
		walkOpts.MaxDepth = 1
	}

	logger.Info("run started",
		logging.String("root", root),
		logging.Bool("dry_run", o.dryRun),
		logging.Bool("delete_source", o.deleteSource),
	)

	for entry, err := range walker.Walk(root, o.policy, walkOpts) {
		if err != nil {
			logging.ErrorWithContext(logger, "directory read failed; run aborted", "directory_read_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check permissions on the directory"),
			)
			report.Finished = o.now()
			return report, err
		}
		if err := ctx.Err(); err != nil {
			logger.Warn("run interrupted; completed items are kept", logging.Int("processed", len(report.Results)))
			report.Finished = o.now()
			return report, err
		}
		if entry.IsDir() && o.runner.Scope() == transform.ScopeFiles {
			continue
		}
		if !o.runner.Accepts(entry) {
			logger.Debug("entry not applicable", logging.String(logging.FieldPath, entry.RelPath))
			continue
		}

		result := o.process(ctx, logger, entry)
		report.Results = append(report.Results, result)
		if o.observer != nil {
			o.observer(result)
		}
	}

	report.Finished = o.now()
	summary := report.Summary()
	logger.Info("run finished",
		logging.Int("total", summary.Total),
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Int("removed", summary.Removed),
		logging.Duration("elapsed", report.Duration()),
	)
	return report, nil
}

func (o *Orchestrator) process(ctx context.Context, logger *slog.Logger, entry walker.Entry) Result {
	start := o.now()
	itemLogger := logger.With(logging.String(logging.FieldPath, entry.RelPath))

	var outcome transform.Outcome
	if o.dryRun {
		outcome = o.plan(ctx, entry)
	} else {
		outcome = o.runner.Apply(ctx, entry)
	}
	result := Result{Entry: entry, Outcome: outcome}

	switch outcome.Status {
	case transform.StatusSkipped:
		itemLogger.Info("item skipped", logging.String("reason", string(outcome.Reason)), logging.String("artifact", outcome.Artifact))
	case transform.StatusFailed:
		logging.WarnWithContext(itemLogger, "item failed; source left in place", "item_failed",
			logging.String(logging.FieldErrorKind, string(outcome.Reason)),
			logging.Error(outcome.Err),
			logging.String(logging.FieldImpact, "source kept, batch continues"),
		)
	case transform.StatusSucceeded:
		result = o.settle(itemLogger, result)
	}
	result.Elapsed = o.now().Sub(start)
	return result
}

// plan reports what a real run would do for entry.
func (o *Orchestrator) plan(ctx context.Context, entry walker.Entry) transform.Outcome {
	target, err := o.runner.Target(ctx, entry)
	if err != nil {
		return transform.Failed("", err)
	}
	exists, err := fileutil.Exists(target)
	if err != nil {
		return transform.Failed(target, services.Wrap(services.ErrIO, o.runner.Name(), "stat target", target, err))
	}
	if exists {
		return transform.Skipped(transform.ReasonAlreadyExists, target)
	}
	return transform.Skipped(transform.ReasonDryRun, target)
}

// settle verifies a reported success independently of the runner and only
// then removes the source.
func (o *Orchestrator) settle(logger *slog.Logger, result Result) Result {
	entry := result.Entry
	artifact := result.Outcome.Artifact
	if artifact == "" || filepath.Clean(artifact) == filepath.Clean(entry.Path) {
		err := services.Wrap(services.ErrEmptyOutput, o.runner.Name(), "verify", "artifact path equals source", nil)
		result.Outcome = transform.Failed(artifact, err)
		logging.WarnWithContext(logger, "item failed verification; source left in place", "verify_failed", logging.Error(err))
		return result
	}
	size, err := fileutil.VerifyArtifact(artifact)
	if err != nil {
		result.Outcome = transform.Failed(artifact, err)
		logging.WarnWithContext(logger, "item failed verification; source left in place", "verify_failed",
			logging.String("artifact", artifact),
			logging.Error(err),
			logging.String(logging.FieldImpact, "source kept, artifact left for inspection"),
		)
		return result
	}
	result.Outcome.Size = size

	if !o.deleteSource {
		logger.Info("item succeeded", logging.String("artifact", artifact), logging.Bytes("size", size))
		return result
	}

	if entry.IsDir() {
		err = o.deleter.RemoveAll(entry.Path)
	} else {
		err = o.deleter.Remove(entry.Path)
	}
	if err != nil {
		result.RemoveErr = services.Wrap(services.ErrIO, o.runner.Name(), "remove source", entry.RelPath, err)
		logging.WarnWithContext(logger, "source removal failed; artifact kept", "source_remove_failed",
			logging.String("artifact", artifact),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the source manually once the artifact is checked"),
			logging.String(logging.FieldImpact, "source and artifact both remain"),
		)
		return result
	}
	result.Removed = true
	logger.Info("item succeeded; source removed", logging.String("artifact", artifact), logging.Bytes("size", size))
	return result
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return &walker.DirectoryReadError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return &walker.DirectoryReadError{Path: root, Err: errors.New("not a directory")}
	}
	return nil
}

// IsFatal reports whether a Run error should abort the command with a fatal
// status rather than an item-failure status.
func IsFatal(err error) bool {
	return err != nil && (services.IsFatal(err) || errors.Is(err, context.Canceled) || errors.Is(err, ErrRunInProgress))
}

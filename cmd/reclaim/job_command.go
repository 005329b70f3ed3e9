package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"reclaim/internal/config"
	"reclaim/internal/jobs"
	"reclaim/internal/logging"
	"reclaim/internal/services"
)

type jobFlags struct {
	dryRun  bool
	keep    bool
	json    bool
	verbose bool

	target string
	move   bool
	hash   string
}

var jobDescriptions = map[jobs.Kind]string{
	jobs.KindArchive:   "Archive each top-level entry of root into <name>.7z and remove the original",
	jobs.KindTranscode: "Transcode every video under root and remove the original",
	jobs.KindRename:    "Copy files under root into a content-addressed directory",
}

func newJobCommand(ctx *commandContext, kind jobs.Kind) *cobra.Command {
	var flags jobFlags

	cmd := &cobra.Command{
		Use:   string(kind) + " [root]",
		Short: jobDescriptions[kind],
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var root string
			if len(args) == 1 {
				root = args[0]
			}
			if err := applyJobFlags(cmd, cfg, kind, root, flags); err != nil {
				return &exitError{code: exitFatal, err: err}
			}
			return runJob(cmd, cfg, kind, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "Report planned targets without changing anything")
	cmd.Flags().BoolVar(&flags.keep, "keep", false, "Keep sources even when the artifact is verified")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Print the run report as JSON")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	if kind == jobs.KindRename {
		cmd.Flags().StringVar(&flags.target, "target", "", "Target directory for hashed copies (relative paths resolve against root)")
		cmd.Flags().BoolVar(&flags.move, "move", false, "Remove originals once their copy is verified")
		cmd.Flags().StringVar(&flags.hash, "hash", "", "Hash algorithm: sha256 or xxh3")
	}
	return cmd
}

// applyJobFlags layers command-line overrides onto cfg for this run and
// re-validates the result.
func applyJobFlags(cmd *cobra.Command, cfg *config.Config, kind jobs.Kind, root string, flags jobFlags) error {
	if err := cfg.ApplyRoot(root); err != nil {
		return err
	}
	if kind == jobs.KindRename {
		if flags.target != "" {
			target, err := config.ExpandHome(flags.target)
			if err != nil {
				return fmt.Errorf("target: %w", err)
			}
			cfg.Rename.TargetDir = target
		}
		if cmd.Flags().Changed("move") {
			cfg.Rename.Move = flags.move
		}
		if flags.hash != "" {
			cfg.Rename.Hash = strings.ToLower(strings.TrimSpace(flags.hash))
		}
	}
	return cfg.Validate()
}

func runJob(cmd *cobra.Command, cfg *config.Config, kind jobs.Kind, flags jobFlags) error {
	runID := uuid.NewString()

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx = services.WithRunID(runCtx, runID)

	logRun, err := logging.NewFromConfig(cfg, string(kind), cmd.ErrOrStderr(), flags.verbose)
	if err != nil {
		return &exitError{code: exitFatal, err: fmt.Errorf("init logging: %w", err)}
	}
	defer func() { _ = logRun.Close() }()
	logger := logRun.Logger.With(
		logging.String(logging.FieldRunID, runID),
		logging.String(logging.FieldJob, string(kind)),
	)
	if logRun.LogPath != "" {
		logger.Debug("run log opened", logging.String("log_path", logRun.LogPath))
	}

	printer := newOutcomePrinter(cmd.OutOrStdout())
	opts := jobs.RunOptions{
		DryRun:  flags.dryRun,
		Keep:    flags.keep,
		Builder: jobs.Builder{Logger: logger},
	}
	if !flags.json {
		opts.Observer = printer.Observe
	}

	report, runErr := jobs.Run(runCtx, cfg, kind, opts)
	if report.RunID == "" {
		report.RunID = runID
	}

	if flags.json {
		if err := writeJSON(cmd, newReportJSON(report, runErr)); err != nil {
			return &exitError{code: exitFatal, err: err}
		}
	} else if runErr == nil || len(report.Results) > 0 {
		printer.Summary(report)
	}

	if runErr != nil {
		return &exitError{code: exitFatal, err: runErr}
	}
	if report.HasFailures() {
		failed := report.Summary().Failed
		return &exitError{code: exitFailed, err: fmt.Errorf("%d item(s) failed", failed), quiet: flags.json}
	}
	return nil
}

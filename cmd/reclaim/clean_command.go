package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reclaim/internal/config"
	"reclaim/internal/logging"
	"reclaim/internal/staging"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration
	var dryRun bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "clean [root]",
		Short: "Remove .partial copies left behind by interrupted runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if err := cfg.ApplyRoot(args[0]); err != nil {
					return err
				}
			}

			logger, err := logging.New(logging.Options{
				Level:  levelFor(cfg, verbose),
				Format: cfg.Logging.Format,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			result := staging.CleanStale(cmd.Context(), cleanDirs(cfg), olderThan, dryRun, logger)
			out := cmd.OutOrStdout()
			verb := "Removed"
			if dryRun {
				verb = "Would remove"
			}
			for _, p := range result.Removed {
				fmt.Fprintf(out, "%s %s (%s)\n", verb, p.Path, logging.FormatBytes(p.Size))
			}
			fmt.Fprintf(out, "%s %d partial copies, %s; kept %d recent\n", verb, len(result.Removed), logging.FormatBytes(result.Bytes()), result.Kept)
			if len(result.Errors) > 0 {
				for _, e := range result.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", e.Path, e.Error)
				}
				return &exitError{code: exitFailed, err: fmt.Errorf("%d partial copies could not be removed", len(result.Errors)), quiet: true}
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 24*time.Hour, "Only remove partial copies older than this")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "List partial copies without removing them")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}

// cleanDirs returns the root plus the rename target when it lies outside it.
func cleanDirs(cfg *config.Config) []string {
	dirs := []string{cfg.Paths.Root}
	target := cfg.RenameTargetDir()
	rel, err := filepath.Rel(cfg.Paths.Root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		dirs = append(dirs, target)
	}
	return dirs
}

func levelFor(cfg *config.Config, verbose bool) string {
	if verbose {
		return "debug"
	}
	return cfg.Logging.Level
}

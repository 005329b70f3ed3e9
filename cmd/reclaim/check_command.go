package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"reclaim/internal/deps"
	"reclaim/internal/jobs"
	"reclaim/internal/preflight"
	"reclaim/internal/services/process"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jobName string
	var minFree string

	cmd := &cobra.Command{
		Use:   "check [root]",
		Short: "Run preflight checks for a root directory",
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
			var kinds []jobs.Kind
			if jobName != "" {
				kind, err := jobs.ParseKind(jobName)
				if err != nil {
					return err
				}
				kinds = append(kinds, kind)
			}

			threshold, err := humanize.ParseBytes(minFree)
			if err != nil {
				return fmt.Errorf("--min-free: %w", err)
			}

			results := preflight.RunAll(cmd.Context(), cfg, deps.NewLocator(process.Exec{}), threshold, kinds...)
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				status := "ok"
				if !r.Passed {
					status = "FAIL"
				}
				rows = append(rows, []string{r.Name, status, r.Detail})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tableSpec{
				Title:   "Preflight " + cfg.Paths.Root,
				Headers: []string{"Check", "Status", "Detail"},
				Rows:    rows,
				Color:   isTerminal(out),
			}.render())
			if !preflight.AllPassed(results) {
				return &exitError{code: exitFatal, err: errors.New("preflight checks failed"), quiet: true}
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
	cmd.Flags().StringVar(&minFree, "min-free", humanize.IBytes(preflight.DefaultMinFreeBytes), "Minimum free space on the root filesystem")
	cmd.Flags().StringVar(&jobName, "job", "", "Only check what one job needs (archive, transcode, rename)")
	return cmd
}

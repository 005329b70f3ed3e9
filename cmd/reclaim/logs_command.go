package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"reclaim/internal/jobs"
	"reclaim/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var (
		jobName  string
		lines    int
		follow   bool
		showPath bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the most recent run log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := strings.TrimSpace(cfg.Paths.LogDir)
			if dir == "" {
				return errors.New("paths.log_dir is not set; run logs are only written when it is configured")
			}
			if jobName != "" {
				if _, err := jobs.ParseKind(jobName); err != nil {
					return err
				}
			}
			path, err := logs.Latest(dir, jobName)
			if err != nil {
				return fmt.Errorf("%s: %w", dir, err)
			}
			out := cmd.OutOrStdout()
			if showPath {
				fmt.Fprintln(out, path)
				return nil
			}

			result, err := logs.Last(path, lines)
			if err != nil {
				return err
			}
			for _, line := range result.Lines {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}

			followCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return logs.Follow(followCtx, path, result.Offset, 0, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}
	cmd.Flags().StringVar(&jobName, "job", "", "Only consider logs of one job (archive, transcode, rename)")
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to print")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	cmd.Flags().BoolVar(&showPath, "path", false, "Print the log file path only")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reclaim/internal/deps"
	"reclaim/internal/jobs"
	"reclaim/internal/services/process"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Show which external tools are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			locator := deps.NewLocator(process.Exec{})

			statuses := locator.Check(cmd.Context(), []deps.Tool{jobs.ArchiverTool(cfg)}, jobs.SearchDirs(cfg, jobs.KindArchive))
			statuses = append(statuses, locator.Check(cmd.Context(),
				[]deps.Tool{jobs.EncoderTool(cfg), jobs.ProbeTool(cfg)},
				jobs.SearchDirs(cfg, jobs.KindTranscode))...)

			if asJSON {
				return writeJSON(cmd, statuses)
			}

			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				location := s.Command
				if s.Source != "" {
					location = fmt.Sprintf("%s (%s)", s.Command, s.Source)
				}
				detail := s.Detail
				if detail == "" {
					detail = s.Description
				}
				rows = append(rows, []string{s.Name, yesNo(s.Available), yesNo(!s.Optional), location, detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), tableSpec{
				Headers: []string{"Tool", "Available", "Required", "Command", "Detail"},
				Rows:    rows,
				Color:   isTerminal(cmd.OutOrStdout()),
			}.render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print tool status as JSON")
	return cmd
}

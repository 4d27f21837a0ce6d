package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marben/mandel_threads/report"
	"github.com/marben/mandel_threads/timing"
)

func newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Show per-thread runtimes of one run from a timing log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("csv")
			runID, _ := cmd.Flags().GetInt("run-id")
			order, _ := cmd.Flags().GetString("sort")

			samples, err := timing.ReadLogFile(path)
			if err != nil {
				return fmt.Errorf("read timing log: %w", err)
			}
			run, err := report.PickRun(samples, runID)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			l, err := report.Analyze(run, report.SortOrder(order))
			if err != nil {
				return err
			}
			report.WriteLoad(cmd.OutOrStdout(), l)
			return nil
		},
	}
	cmd.Flags().String("csv", timing.DefaultPath, "timing log written by a threadtiming build")
	cmd.Flags().Int("run-id", 0, "run to show (default: the latest)")
	cmd.Flags().String("sort", string(report.ByDuration), "bar order: duration or thread")
	return cmd
}

package main

import (
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/spf13/cobra"

	mandel "github.com/marben/mandel_threads"
	"github.com/marben/mandel_threads/report"
	"github.com/marben/mandel_threads/timing"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Measure the speedup for a list of thread counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			threads, err := cmd.Flags().GetIntSlice("threads-list")
			if err != nil {
				return err
			}
			csvPath, _ := cmd.Flags().GetString("csv")
			return sweep(cmd, cfg, threads, csvPath)
		},
	}
	addRenderFlags(cmd)
	cmd.Flags().IntSlice("threads-list", []int{1, 2, 4, 6, 8, 12, 14, 16}, "thread counts to evaluate")
	cmd.Flags().String("csv", "speedup.csv", "where to store the measurements")
	return cmd
}

func sweep(cmd *cobra.Command, cfg Config, threads []int, csvPath string) error {
	threads = slices.Clone(threads)
	slices.Sort(threads)
	threads = slices.Compact(threads)
	if len(threads) == 0 {
		return fmt.Errorf("%w: empty --threads-list", mandel.ErrInvalidThreads)
	}

	var rows []report.SpeedupRow
	for _, t := range threads {
		cfg.Threads = t
		view, policy, err := cfg.resolve()
		if err != nil {
			return err
		}
		rec := timing.Default()
		if cfg.TimingOut != "" {
			rec.SetOutputPath(cfg.TimingOut)
		}
		rec.SetRunLabel(cfg.Label)

		c, err := mandel.Compare(view, cfg.Iterations, mandel.Parallel{Threads: t, Policy: policy, Recorder: rec}, cfg.Repeat)
		if err != nil {
			return err
		}
		if c.Err != nil {
			return fmt.Errorf("%d threads: %w", t, c.Err)
		}
		row := report.SpeedupRow{
			Threads:  t,
			SerialMs: report.Millis(c.Serial.Elapsed),
			ThreadMs: report.Millis(c.Parallel.Elapsed),
			Speedup:  c.Speedup(),
		}
		fmt.Fprintln(cmd.OutOrStdout(), row)
		rows = append(rows, row)
	}

	f, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("create %q: %w", csvPath, err)
	}
	if err := report.WriteSpeedupCSV(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("write %q: %w", csvPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("Wrote %s", csvPath)
	return nil
}

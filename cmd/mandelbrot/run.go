package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/google/gops/agent"
	"github.com/spf13/cobra"

	mandel "github.com/marben/mandel_threads"
	"github.com/marben/mandel_threads/imgout"
	"github.com/marben/mandel_threads/report"
	"github.com/marben/mandel_threads/timing"
	"github.com/marben/mandel_threads/views"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mandelbrot",
		Short:         "Render the Mandelbrot set serially and in parallel and compare",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if on, _ := cmd.Flags().GetBool("gops"); on {
				if err := agent.Listen(agent.Options{}); err != nil {
					return fmt.Errorf("gops agent: %w", err)
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if on, _ := cmd.Flags().GetBool("gops"); on {
				agent.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (yaml, json or toml)")
	pf.Bool("gops", false, "start the gops diagnostics agent")

	addRenderFlags(cmd)
	f := cmd.Flags()
	f.String("out-dir", ".", "directory for the output images")
	f.String("format", string(imgout.PPM), "image format: ppm, png or ppm.zst")
	f.Bool("json", false, "print a JSON summary instead of the text report")

	cmd.AddCommand(newSweepCmd(), newLoadCmd())
	return cmd
}

// run renders the configured view with both engines, writes both images and
// reports timings. A verification failure is returned after the images are
// written so they can be inspected.
func run(cmd *cobra.Command, cfg Config) error {
	view, policy, err := cfg.resolve()
	if err != nil {
		return err
	}
	format, err := imgout.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	rec := timing.Default()
	if cfg.TimingOut != "" {
		rec.SetOutputPath(cfg.TimingOut)
	}
	rec.SetRunLabel(cfg.Label)

	if !cfg.JSON {
		log.Printf("view %d (%s) %s, %d iterations, %d threads, %s partitioning",
			cfg.View, views.Name(cfg.View), view, cfg.Iterations, cfg.Threads, policy)
	}

	p := mandel.Parallel{Threads: cfg.Threads, Policy: policy, Recorder: rec}
	c, err := mandel.Compare(view, cfg.Iterations, p, cfg.Repeat)
	if err != nil {
		return err
	}

	serialPath := filepath.Join(cfg.OutDir, "mandelbrot-serial"+format.Ext())
	threadPath := filepath.Join(cfg.OutDir, "mandelbrot-thread"+format.Ext())
	if err := imgout.WriteFile(serialPath, format, c.Serial.Buffer, cfg.Iterations); err != nil {
		return err
	}
	if err := imgout.WriteFile(threadPath, format, c.Parallel.Buffer, cfg.Iterations); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.JSON {
		s := report.NewSummary(c, cfg.Iterations, policy)
		s.View = views.Name(cfg.View)
		if err := report.WriteJSON(out, s); err != nil {
			return err
		}
	} else {
		report.SerialLine(out, c.Serial.Elapsed)
		report.WroteLine(out, serialPath)
		report.ThreadLine(out, c.Parallel.Elapsed)
		report.WroteLine(out, threadPath)
		report.SpeedupLine(out, c.Speedup(), c.Threads)
	}

	if c.Err != nil {
		return fmt.Errorf("serial and thread images differ: %w", c.Err)
	}
	return nil
}

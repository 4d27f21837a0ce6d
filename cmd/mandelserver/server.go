// mandelserver renders Mandelbrot comparisons on request. Clients connect to /ws,
// send a JSON render request and get back the serial and thread timings,
// the verification result and one timing sample per worker.

package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/gops/agent"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mandelserver",
		Short:        "Serve Mandelbrot serial/parallel comparisons over websocket",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			v.SetEnvPrefix("MANDEL")
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.AutomaticEnv()
			return run(v)
		},
	}
	cmd.Flags().Int("port", 8080, "http port")
	cmd.Flags().Int("max-threads", defaultLimits.maxThreads, "largest thread count a client may request")
	cmd.Flags().Int("max-pixels", defaultLimits.maxPixels, "largest image a client may request")
	cmd.Flags().Bool("gops", false, "start the gops diagnostics agent")
	return cmd
}

func run(v *viper.Viper) error {
	if v.GetBool("gops") {
		if err := agent.Listen(agent.Options{}); err != nil {
			return fmt.Errorf("gops agent: %w", err)
		}
		defer agent.Close()
	}

	rs := newRenderService(limits{
		maxThreads: v.GetInt("max-threads"),
		maxPixels:  v.GetInt("max-pixels"),
	})

	httpServer := webServer(v.GetInt("port"), rs)
	if err := httpServer.ListenAndServe(); err != nil {
		return fmt.Errorf("httpServer: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	mandel "github.com/marben/mandel_threads"
	"github.com/marben/mandel_threads/views"
)

// Config is the resolved configuration of a render. Flags set on the command
// line win over MANDEL_* environment variables, which win over the config file.
type Config struct {
	Threads    int    `mapstructure:"threads"`
	View       int    `mapstructure:"view"`
	Iterations int    `mapstructure:"iterations"`
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Policy     string `mapstructure:"policy"`
	Repeat     int    `mapstructure:"repeat"`
	OutDir     string `mapstructure:"out-dir"`
	Format     string `mapstructure:"format"`
	Label      string `mapstructure:"label"`
	TimingOut  string `mapstructure:"timing-out"`
	JSON       bool   `mapstructure:"json"`
	Gops       bool   `mapstructure:"gops"`
}

func addRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntP("threads", "t", 2, "number of worker goroutines")
	f.IntP("view", "v", 1, fmt.Sprintf("view preset, 1..%d", len(views.Presets)))
	f.IntP("iterations", "i", 256, "maximum iterations per pixel")
	f.Int("width", views.DefaultWidth, "image width in pixels")
	f.Int("height", views.DefaultHeight, "image height in pixels")
	f.String("policy", mandel.Block.String(), "row partitioning: block or interleaved")
	f.Int("repeat", 1, "render each engine this many times and report the fastest")
	f.String("label", "", "label attached to the timing samples of this invocation")
	f.String("timing-out", "", "timing log path (only with -tags threadtiming)")
}

func loadConfig(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix("MANDEL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// resolve validates cfg and turns it into what the engines need.
func (cfg Config) resolve() (mandel.View, mandel.Policy, error) {
	if cfg.Threads <= 0 {
		return mandel.View{}, 0, fmt.Errorf("%w: --threads %d", mandel.ErrInvalidThreads, cfg.Threads)
	}
	if cfg.Iterations <= 0 {
		return mandel.View{}, 0, fmt.Errorf("%w: --iterations %d", mandel.ErrInvalidIterations, cfg.Iterations)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return mandel.View{}, 0, fmt.Errorf("%w: %dx%d", mandel.ErrInvalidView, cfg.Width, cfg.Height)
	}
	view, err := views.Get(cfg.View, cfg.Width, cfg.Height)
	if err != nil {
		return mandel.View{}, 0, err
	}
	policy, err := mandel.ParsePolicy(cfg.Policy)
	if err != nil {
		return mandel.View{}, 0, err
	}
	return view, policy, nil
}

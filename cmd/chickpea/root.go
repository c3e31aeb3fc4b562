//go:build !android

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fedor-rusak/chickpea-android/internal/assets"
	"github.com/fedor-rusak/chickpea-android/internal/config"
	"github.com/fedor-rusak/chickpea-android/internal/engine"
	"github.com/fedor-rusak/chickpea-android/internal/glue"
	"github.com/fedor-rusak/chickpea-android/internal/host"
	"github.com/fedor-rusak/chickpea-android/internal/logging"
)

type rootFlags struct {
	configPath string
	assetDir   string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:   "chickpea",
		Short: "Run the chickpea activity in a desktop window",
		Long: `chickpea runs the scripted activity outside Android. A glfw window stands
in for the activity surface; focus, minimise, resize and close are fed
through the same lifecycle adapter the device build uses.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(flags)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "config file (default is $HOME/.config/chickpea/config.toml)")
	cmd.Flags().StringVar(&flags.assetDir, "assets", "", "asset directory (default is the embedded assets)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level: "+strings.Join(logging.ValidLevels, ", "))
	return cmd
}

// resolveConfig loads the config file and applies flag overrides.
func resolveConfig(flags rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if flags.assetDir != "" {
		cfg.AssetDir = flags.assetDir
	}
	if flags.logLevel != "" {
		if !logging.IsValidLevel(flags.logLevel) {
			return config.Config{}, fmt.Errorf("invalid --log-level %q (want one of %s)", flags.logLevel, strings.Join(logging.ValidLevels, ", "))
		}
		cfg.LogLevel = strings.ToUpper(flags.logLevel)
	}
	return cfg, nil
}

func assetSource(dir string) glue.AssetSource {
	if dir == "" {
		return glue.NewFSAssets(assets.FS())
	}
	return glue.NewFSAssets(os.DirFS(dir))
}

func run(ctx context.Context, cfg config.Config) error {
	logger := logging.New(os.Stderr, cfg.LogLevel)
	src := assetSource(cfg.AssetDir)

	eng, err := newEngine(cfg, src, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "config", cfg.Path, "assets", cfg.AssetDir, "script", cfg.StartScript)
	return host.RunDesktop(ctx, host.Options{
		Config:  cfg,
		Handler: eng,
		Main:    engine.Main(eng),
		Assets:  src,
		Logger:  logger,
	})
}

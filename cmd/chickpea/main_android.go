//go:build android

package main

import (
	"os"

	"github.com/fedor-rusak/chickpea-android/internal/assets"
	"github.com/fedor-rusak/chickpea-android/internal/config"
	"github.com/fedor-rusak/chickpea-android/internal/engine"
	"github.com/fedor-rusak/chickpea-android/internal/glue"
	"github.com/fedor-rusak/chickpea-android/internal/host"
	"github.com/fedor-rusak/chickpea-android/internal/logging"
)

func main() {
	cfg := config.Default()
	logger := logging.New(os.Stderr, cfg.LogLevel)
	src := host.NewAPKAssets(glue.NewFSAssets(assets.FS()))

	eng, err := newEngine(cfg, src, logger)
	if err != nil {
		logger.Error("engine", "error", err)
		os.Exit(1)
	}

	host.RunAndroid(host.Options{
		Config:  cfg,
		Handler: eng,
		Main:    engine.Main(eng),
		Assets:  src,
		Logger:  logger,
	})
}

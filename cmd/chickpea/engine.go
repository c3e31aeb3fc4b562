package main

import (
	"log/slog"

	"github.com/fedor-rusak/chickpea-android/internal/audio"
	"github.com/fedor-rusak/chickpea-android/internal/config"
	"github.com/fedor-rusak/chickpea-android/internal/engine"
	"github.com/fedor-rusak/chickpea-android/internal/gfx"
	"github.com/fedor-rusak/chickpea-android/internal/glue"
)

// newEngine wires the display, the audio device and the script runtime.
// Missing audio hardware leaves the engine silent.
func newEngine(cfg config.Config, src glue.AssetSource, logger *slog.Logger) (*engine.Engine, error) {
	var sound engine.Audio
	if player, err := audio.New(src, logger); err != nil {
		logger.Warn("audio init failed (continuing without sound)", "error", err)
	} else {
		sound = player
	}
	return engine.New(engine.Options{
		Display:     gfx.NewDisplay(src, logger),
		Audio:       sound,
		StartScript: cfg.StartScript,
		Logger:      logger,
	})
}

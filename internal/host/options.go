// Package host drives the lifecycle adapter from a platform's owner thread:
// a glfw window on desktop and the x/mobile activity loop on Android.
package host

import (
	"log/slog"

	"github.com/fedor-rusak/chickpea-android/internal/config"
	"github.com/fedor-rusak/chickpea-android/internal/glue"
)

// Options configure a host run.
type Options struct {
	Config     config.Config
	Handler    glue.Handler
	Main       func(app *glue.App)
	Assets     glue.AssetSource
	SavedState []byte
	Logger     *slog.Logger
}

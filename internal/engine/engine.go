// Package engine is the application handler run by the glue worker. It owns
// the display, the audio players and the script runtime for the lifetime of
// one worker and translates lifecycle commands and touch input into calls on
// them.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fedor-rusak/chickpea-android/internal/glue"
	"github.com/fedor-rusak/chickpea-android/internal/logging"
	"github.com/fedor-rusak/chickpea-android/internal/script"
)

// DefaultStartScript is the asset evaluated by Start.
const DefaultStartScript = "init.js"

// ErrNoDisplay is returned by New without a Display.
var ErrNoDisplay = errors.New("engine: no display")

// Display is the rendering collaborator. Init binds it to a window; every
// other call is a no-op until then.
type Display interface {
	Init(w glue.Window) error
	Terminate()
	Ready() bool
	SwapBuffers()
	CacheTexture(label, path string) error
	Render(label string, x, y, z float32)
	SetCamera(x, y, z float32)
	ScreenDimensions() (width, height int)
	Unproject(x, y int) (float32, float32)
	ClearScreen(r, g, b float32)
}

// Audio is the sound collaborator.
type Audio interface {
	CacheSound(tag, path string) error
	SetBackgroundPlaying(on bool)
	PlayAction()
	Close() error
}

// Script is the embedded runtime the engine drives.
type Script interface {
	Load(name, src string) error
	Evaluate(src string) error
	Call(name string, args ...any) error
	Has(name string) bool
	Close() error
}

// ScriptFactory builds the runtime with the engine as its native bridge.
type ScriptFactory func(bridge script.Bridge, logger *slog.Logger) (Script, error)

// Options configure an Engine.
type Options struct {
	Display Display
	// Audio may be nil; the engine then runs silent.
	Audio       Audio
	NewScript   ScriptFactory
	StartScript string
	Logger      *slog.Logger
}

// Engine implements glue.Handler and glue.Framer. All methods run on the
// worker thread.
type Engine struct {
	display     Display
	audio       Audio
	newScript   ScriptFactory
	startScript string
	logger      *slog.Logger

	app       *glue.App
	script    Script
	animating bool
	state     SavedState
	activeID  int
}

var (
	_ glue.Handler  = (*Engine)(nil)
	_ glue.Framer   = (*Engine)(nil)
	_ script.Bridge = (*Engine)(nil)
)

// New returns an engine ready to be started by Main.
func New(opts Options) (*Engine, error) {
	if opts.Display == nil {
		return nil, ErrNoDisplay
	}
	e := &Engine{
		display:     opts.Display,
		audio:       opts.Audio,
		newScript:   opts.NewScript,
		startScript: opts.StartScript,
		logger:      logging.Component(opts.Logger, "engine"),
		activeID:    -1,
	}
	if e.audio == nil {
		e.audio = silence{}
	}
	if e.newScript == nil {
		e.newScript = func(b script.Bridge, l *slog.Logger) (Script, error) {
			return script.New(b, l)
		}
	}
	if e.startScript == "" {
		e.startScript = DefaultStartScript
	}
	return e, nil
}

// Main returns the worker body for glue.Options.Main: start the engine, run
// the default loop, release everything.
func Main(e *Engine) func(*glue.App) {
	return func(app *glue.App) {
		if err := e.Start(app); err != nil {
			e.logger.Error("engine start failed", "error", err)
		}
		glue.DefaultMain(app)
		e.Close()
	}
}

// Start restores saved state, loads the start script and lets it cache its
// sounds. A failed script leaves the engine running without one.
func (e *Engine) Start(app *glue.App) error {
	e.app = app

	if p := app.SavedState(); p != nil {
		if err := e.state.UnmarshalBinary(p); err != nil {
			e.logger.Warn("discarding saved state", "error", err)
		} else {
			e.logger.Info("restored saved state", "value", e.state.Value, "x", e.state.X, "y", e.state.Y)
		}
	}

	assets := app.Assets()
	if assets == nil {
		return fmt.Errorf("start script %s: no assets", e.startScript)
	}
	src, err := assets.ReadString(e.startScript)
	if err != nil {
		return fmt.Errorf("start script: %w", err)
	}
	rt, err := e.newScript(e, e.logger)
	if err != nil {
		return fmt.Errorf("script runtime: %w", err)
	}
	if err := rt.Load(e.startScript, src); err != nil {
		rt.Close()
		return err
	}
	e.script = rt
	e.call("cacheSoundsInit")
	return nil
}

// Close tears down the display, the script and the audio.
func (e *Engine) Close() {
	e.terminateDisplay()
	if e.script != nil {
		e.script.Close()
		e.script = nil
	}
	if err := e.audio.Close(); err != nil {
		e.logger.Warn("audio close failed", "error", err)
	}
}

// State returns the state that SaveState would encode.
func (e *Engine) State() SavedState { return e.state }

// Animating implements glue.Framer.
func (e *Engine) Animating() bool { return e.animating }

// DrawFrame implements glue.Framer. Queued input is flushed to the script
// on every iteration; rendering only happens while animating.
func (e *Engine) DrawFrame(*glue.App) {
	e.call("processInput")
	e.render()
}

func (e *Engine) render() {
	if !e.animating {
		return
	}
	e.call("render")
	e.display.SwapBuffers()
}

// HandleCommand implements glue.Handler.
func (e *Engine) HandleCommand(app *glue.App, cmd glue.Command) {
	switch cmd {
	case glue.CmdSaveState:
		p, _ := e.state.MarshalBinary()
		app.SetSavedState(p)

	case glue.CmdInitWindow:
		if w := app.Window(); w != nil {
			e.initDisplay(w)
			e.audio.SetBackgroundPlaying(true)
		}

	case glue.CmdTermWindow:
		e.terminateDisplay()
		e.audio.SetBackgroundPlaying(false)

	case glue.CmdPause:
		e.audio.SetBackgroundPlaying(false)

	case glue.CmdResume:
		e.audio.SetBackgroundPlaying(true)

	case glue.CmdConfigChanged:
		if w := app.Window(); w != nil {
			e.terminateDisplay()
			e.initDisplay(w)
		}

	case glue.CmdGainedFocus:
		if e.display.Ready() {
			e.animating = true
		}

	case glue.CmdLostFocus:
		e.animating = false

	case glue.CmdLowMemory:
		if e.script != nil && e.script.Has("onLowMemory") {
			e.call("onLowMemory")
		}
	}
}

func (e *Engine) initDisplay(w glue.Window) {
	if err := e.display.Init(w); err != nil {
		e.logger.Error("display init failed", "error", err)
		return
	}
	e.call("cacheTexturesInit")
	e.animating = true
}

func (e *Engine) terminateDisplay() {
	e.display.Terminate()
	e.animating = false
}

// call invokes an optional script function and logs any failure.
func (e *Engine) call(name string, args ...any) {
	if e.script == nil {
		return
	}
	if err := e.script.Call(name, args...); err != nil {
		if errors.Is(err, script.ErrNoFunction) {
			e.logger.Debug("script function missing", "name", name)
			return
		}
		e.logger.Warn("script call failed", "name", name, "error", err)
	}
}

type silence struct{}

func (silence) CacheSound(string, string) error { return nil }
func (silence) SetBackgroundPlaying(bool)       {}
func (silence) PlayAction()                     {}
func (silence) Close() error                    { return nil }

//go:build !android

package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/fedor-rusak/chickpea-android/internal/config"
	"github.com/fedor-rusak/chickpea-android/internal/glue"
	"github.com/fedor-rusak/chickpea-android/internal/logging"
)

// waitTimeout bounds how long the platform thread sleeps in glfw before it
// rechecks the context and the worker.
const waitTimeout = 0.1

// surface is the glfw window handed to the worker. The framebuffer size is
// cached because glfw only answers size queries on the main thread.
type surface struct {
	win    *glfw.Window
	width  atomic.Int32
	height atomic.Int32
}

func (s *surface) setSize(w, h int) {
	s.width.Store(int32(w))
	s.height.Store(int32(h))
}

func (s *surface) Size() (int, int) { return int(s.width.Load()), int(s.height.Load()) }

func (s *surface) MakeContextCurrent() {
	s.win.MakeContextCurrent()
	glfw.SwapInterval(1)
}

func (s *surface) DetachContext() { glfw.DetachCurrentContext() }
func (s *surface) SwapBuffers()   { s.win.SwapBuffers() }

// desktop holds the platform-thread state of a run.
type desktop struct {
	logger  *slog.Logger
	app     *glue.App
	surface *surface
	queue   *glue.EventQueue
	touches *touchTracker

	mu     sync.Mutex
	device config.Device

	iconified atomic.Bool
	pressed   bool
}

// configuration is the glue.ConfigSource. It runs on the worker thread.
func (d *desktop) configuration() glue.Configuration {
	d.mu.Lock()
	device := d.device
	d.mu.Unlock()
	w, h := d.surface.Size()
	return device.Configuration(w, h)
}

func (d *desktop) setDevice(device config.Device) {
	d.mu.Lock()
	d.device = device
	d.mu.Unlock()
}

// RunDesktop opens the window and drives the adapter from the calling
// goroutine until the window closes, ctx is cancelled or the worker exits.
// It must be called on the main OS thread.
func RunDesktop(ctx context.Context, opts Options) error {
	logger := logging.Component(opts.Logger, "host")

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)

	win, err := glfw.CreateWindow(opts.Config.Window.Width, opts.Config.Window.Height, opts.Config.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()
	// The worker owns the context from here on.
	glfw.DetachCurrentContext()

	s := &surface{win: win}
	s.setSize(win.GetFramebufferSize())

	queue, err := glue.NewEventQueue()
	if err != nil {
		return err
	}
	defer queue.Close()

	d := &desktop{
		logger:  logger,
		surface: s,
		queue:   queue,
		touches: newTouchTracker(glue.SourceTouchscreen),
		device:  opts.Config.Device,
	}
	queue.SetIntercept(func(*glue.InputEvent) bool { return d.iconified.Load() })

	app, err := glue.New(glue.Options{
		Handler:    opts.Handler,
		Main:       opts.Main,
		Assets:     opts.Assets,
		Config:     d.configuration,
		SavedState: opts.SavedState,
		Logger:     opts.Logger,
	})
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}
	d.app = app

	if opts.Config.Path != "" {
		watcher, err := NewConfigWatcher(opts.Config.Path, opts.Logger, func(cfg config.Config) {
			d.setDevice(cfg.Device)
			d.post(glue.CmdConfigChanged)
		})
		if err != nil {
			logger.Warn("config watch disabled", "error", err)
		} else {
			watcher.Start()
			defer watcher.Stop()
		}
	}

	d.step("attach input", func() error { return app.SetInputSource(queue) })
	d.step("start", func() error { return app.SetActivityState(glue.CmdStart) })
	d.step("attach window", func() error { return app.SetWindow(s) })
	d.step("resume", func() error { return app.SetActivityState(glue.CmdResume) })
	if win.GetAttrib(glfw.Focused) == glfw.True {
		d.post(glue.CmdGainedFocus)
	}

	d.installCallbacks(win)

	for !win.ShouldClose() {
		if ctx.Err() != nil {
			logger.Info("context cancelled, closing window")
			break
		}
		select {
		case <-app.Done():
			logger.Info("worker exited, closing window")
			return d.shutdown()
		default:
		}
		glfw.WaitEventsTimeout(waitTimeout)
	}
	return d.shutdown()
}

func (d *desktop) installCallbacks(win *glfw.Window) {
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if focused {
			d.post(glue.CmdGainedFocus)
		} else {
			d.releasePointer()
			d.post(glue.CmdLostFocus)
		}
	})

	win.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		if iconified {
			d.releasePointer()
		}
		d.iconified.Store(iconified)
		if iconified {
			d.step("pause", func() error { return d.app.SetActivityState(glue.CmdPause) })
			d.saveState()
			d.step("stop", func() error { return d.app.SetActivityState(glue.CmdStop) })
			return
		}
		d.step("start", func() error { return d.app.SetActivityState(glue.CmdStart) })
		d.step("resume", func() error { return d.app.SetActivityState(glue.CmdResume) })
	})

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		d.surface.setSize(width, height)
		d.post(glue.CmdWindowResized)
		d.post(glue.CmdConfigChanged)
	})

	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := d.cursor(w)
		switch action {
		case glfw.Press:
			d.pressed = true
			d.push(d.touches.begin(0, x, y))
		case glfw.Release:
			d.pressed = false
			d.push(d.touches.end(0, x, y))
		}
	})

	win.SetCursorPosCallback(func(w *glfw.Window, _, _ float64) {
		if !d.pressed {
			return
		}
		x, y := d.cursor(w)
		d.push(d.touches.move(0, x, y))
	})

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		var a glue.Action
		switch action {
		case glfw.Press:
			a = glue.ActionDown
		case glfw.Release:
			a = glue.ActionUp
		default:
			return
		}
		d.push(&glue.InputEvent{
			Type:    glue.EventKey,
			Source:  glue.SourceKeyboard,
			Action:  a,
			KeyCode: int(key),
		})
	})
}

// cursor returns the cursor position in framebuffer pixels.
func (d *desktop) cursor(w *glfw.Window) (float32, float32) {
	cx, cy := w.GetCursorPos()
	winW, winH := w.GetSize()
	fbW, fbH := d.surface.Size()
	if winW <= 0 || winH <= 0 {
		return float32(cx), float32(cy)
	}
	return float32(cx * float64(fbW) / float64(winW)), float32(cy * float64(fbH) / float64(winH))
}

// releasePointer cancels a drag the window will never see released.
// Callers push before the queue starts dropping input.
func (d *desktop) releasePointer() {
	d.pressed = false
	d.push(d.touches.cancel())
}

func (d *desktop) push(ev *glue.InputEvent) {
	if ev != nil {
		d.queue.Push(ev)
	}
}

func (d *desktop) post(cmd glue.Command) {
	if err := d.app.Post(cmd); err != nil && !errors.Is(err, glue.ErrDestroyed) {
		d.logger.Warn("post failed", "cmd", cmd, "error", err)
	}
}

// step runs one blocking setter and logs failures other than a worker that
// is already gone.
func (d *desktop) step(name string, fn func() error) {
	if err := fn(); err != nil && !errors.Is(err, glue.ErrDestroyed) {
		d.logger.Warn("lifecycle step failed", "step", name, "error", err)
	}
}

func (d *desktop) saveState() {
	state, err := d.app.SaveState()
	if err != nil {
		if !errors.Is(err, glue.ErrDestroyed) {
			d.logger.Warn("save state failed", "error", err)
		}
		return
	}
	d.logger.Debug("state saved", "bytes", len(state))
}

// shutdown walks the activity down the way the platform does on finish.
func (d *desktop) shutdown() error {
	d.step("detach window", func() error { return d.app.SetWindow(nil) })
	d.step("pause", func() error { return d.app.SetActivityState(glue.CmdPause) })
	d.step("stop", func() error { return d.app.SetActivityState(glue.CmdStop) })
	d.step("detach input", func() error { return d.app.SetInputSource(nil) })
	if err := d.app.Destroy(); err != nil && !errors.Is(err, glue.ErrDestroyed) {
		return fmt.Errorf("destroy app: %w", err)
	}
	return nil
}

//go:build android

package host

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
	"golang.org/x/mobile/gl"

	"github.com/fedor-rusak/chickpea-android/internal/config"
	"github.com/fedor-rusak/chickpea-android/internal/glue"
	"github.com/fedor-rusak/chickpea-android/internal/logging"
)

// surface is the activity window handed to the worker: the GL ES context
// delivered with the visible lifecycle crossing plus the app's publisher.
type surface struct {
	a      app.App
	glctx  gl.Context
	width  atomic.Int32
	height atomic.Int32
}

func (s *surface) Size() (int, int) { return int(s.width.Load()), int(s.height.Load()) }
func (s *surface) GL() gl.Context   { return s.glctx }
func (s *surface) Publish()         { s.a.Publish() }

type mobile struct {
	logger  *slog.Logger
	app     *glue.App
	queue   *glue.EventQueue
	touches *touchTracker
	surface *surface

	mu     sync.Mutex
	device config.Device
	last   size.Event
	saved  []byte
}

func (m *mobile) configuration() glue.Configuration {
	m.mu.Lock()
	device, sz := m.device, m.last
	m.mu.Unlock()

	cfg := device.Configuration(sz.WidthPx, sz.HeightPx)
	switch sz.Orientation {
	case size.OrientationPortrait:
		cfg.Orientation = glue.OrientationPortrait
	case size.OrientationLandscape:
		cfg.Orientation = glue.OrientationLandscape
	}
	if sz.PixelsPerPt > 0 {
		cfg.Density = int(sz.PixelsPerPt * 72)
	}
	cfg.Touchscreen = true
	cfg.Keyboard = false
	return cfg
}

// RunAndroid drives the adapter from the x/mobile event loop. It never
// returns before the activity dies.
func RunAndroid(opts Options) {
	logger := logging.Component(opts.Logger, "host")

	m := &mobile{
		logger:  logger,
		touches: newTouchTracker(glue.SourceTouchscreen),
		device:  opts.Config.Device,
		saved:   opts.SavedState,
	}

	app.Main(func(a app.App) {
		queue, err := glue.NewEventQueue()
		if err != nil {
			logger.Error("input queue", "error", err)
			return
		}
		defer queue.Close()
		m.queue = queue

		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				if !m.cross(a, e, opts) {
					return
				}

			case size.Event:
				m.mu.Lock()
				m.last = e
				m.mu.Unlock()
				if m.surface != nil {
					m.surface.width.Store(int32(e.WidthPx))
					m.surface.height.Store(int32(e.HeightPx))
				}
				if m.app != nil {
					m.post(glue.CmdWindowResized)
					m.post(glue.CmdConfigChanged)
				}

			case touch.Event:
				var ev *glue.InputEvent
				id := int(e.Sequence)
				switch e.Type {
				case touch.TypeBegin:
					ev = m.touches.begin(id, e.X, e.Y)
				case touch.TypeMove:
					ev = m.touches.move(id, e.X, e.Y)
				case touch.TypeEnd:
					ev = m.touches.end(id, e.X, e.Y)
				}
				if ev != nil {
					queue.Push(ev)
				}
			}
		}
	})
}

// cross maps one stage transition onto the adapter. Crossings going up
// are applied alive, visible, focused; going down in reverse. It reports
// false once the activity is dead.
func (m *mobile) cross(a app.App, e lifecycle.Event, opts Options) bool {
	if e.Crosses(lifecycle.StageAlive) == lifecycle.CrossOn {
		if !m.create(opts) {
			return false
		}
		m.step("attach input", func() error { return m.app.SetInputSource(m.queue) })
		m.step("start", func() error { return m.app.SetActivityState(glue.CmdStart) })
	}
	if m.app == nil {
		return true
	}

	if e.Crosses(lifecycle.StageVisible) == lifecycle.CrossOn {
		if glctx, ok := e.DrawContext.(gl.Context); ok {
			s := &surface{a: a, glctx: glctx}
			m.mu.Lock()
			s.width.Store(int32(m.last.WidthPx))
			s.height.Store(int32(m.last.HeightPx))
			m.mu.Unlock()
			m.surface = s
			m.step("resume", func() error { return m.app.SetActivityState(glue.CmdResume) })
			m.step("attach window", func() error { return m.app.SetWindow(s) })
		} else {
			m.logger.Warn("visible without a GL context")
		}
	}
	if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOn {
		m.post(glue.CmdGainedFocus)
	}

	if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
		if ev := m.touches.cancel(); ev != nil {
			m.queue.Push(ev)
		}
		m.post(glue.CmdLostFocus)
	}
	if e.Crosses(lifecycle.StageVisible) == lifecycle.CrossOff {
		m.step("detach window", func() error { return m.app.SetWindow(nil) })
		m.surface = nil
		m.saveState()
		m.step("pause", func() error { return m.app.SetActivityState(glue.CmdPause) })
	}
	if e.Crosses(lifecycle.StageAlive) == lifecycle.CrossOff {
		m.step("stop", func() error { return m.app.SetActivityState(glue.CmdStop) })
	}

	if e.To == lifecycle.StageDead {
		m.destroy()
		return false
	}
	return true
}

// create starts the worker on the first alive crossing, reusing any state
// saved by a previous incarnation.
func (m *mobile) create(opts Options) bool {
	if m.app != nil {
		return true
	}
	a, err := glue.New(glue.Options{
		Handler:    opts.Handler,
		Main:       opts.Main,
		Assets:     opts.Assets,
		Config:     m.configuration,
		SavedState: m.saved,
		Logger:     opts.Logger,
	})
	if err != nil {
		m.logger.Error("create app", "error", err)
		return false
	}
	m.app = a
	return true
}

func (m *mobile) destroy() {
	m.step("detach input", func() error { return m.app.SetInputSource(nil) })
	if err := m.app.Destroy(); err != nil && !errors.Is(err, glue.ErrDestroyed) {
		m.logger.Warn("destroy failed", "error", err)
	}
	m.app = nil
}

func (m *mobile) saveState() {
	state, err := m.app.SaveState()
	if err != nil {
		if !errors.Is(err, glue.ErrDestroyed) {
			m.logger.Warn("save state failed", "error", err)
		}
		return
	}
	if state != nil {
		m.saved = state
	}
	m.logger.Debug("state saved", "bytes", len(state))
}

func (m *mobile) post(cmd glue.Command) {
	if err := m.app.Post(cmd); err != nil && !errors.Is(err, glue.ErrDestroyed) {
		m.logger.Warn("post failed", "cmd", cmd, "error", err)
	}
}

func (m *mobile) step(name string, fn func() error) {
	if err := fn(); err != nil && !errors.Is(err, glue.ErrDestroyed) {
		m.logger.Warn("lifecycle step failed", "step", name, "error", err)
	}
}

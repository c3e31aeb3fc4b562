// Package script embeds the JavaScript runtime that drives the scene. The
// runtime is not safe for concurrent use; it lives on the worker thread.
package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dop251/goja"

	"github.com/fedor-rusak/chickpea-android/internal/logging"
)

var (
	// ErrNoFunction is returned by Call when the global is missing or not a
	// function.
	ErrNoFunction = errors.New("no such function")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("script runtime closed")
)

// Bridge is the native side reachable from scripts as process.natives.
type Bridge interface {
	ReadAsset(name string) ([]byte, error)
	CacheTexture(label, path string) error
	Render(label string, x, y, z float32)
	SetCamera(x, y, z float32)
	ScreenDimensions() (width, height int)
	ClearScreen(r, g, b float32)
	Unproject(x, y int) (float32, float32)
	CacheSound(tag, path string) error
	PlaySound()
}

// Runtime is one JavaScript VM with the native bridge installed.
type Runtime struct {
	vm     *goja.Runtime
	bridge Bridge
	logger *slog.Logger
	closed bool
}

// New creates a VM exposing global, console and process.natives.
func New(bridge Bridge, logger *slog.Logger) (*Runtime, error) {
	r := &Runtime{
		vm:     goja.New(),
		bridge: bridge,
		logger: logging.Component(logger, "script"),
	}
	if err := r.install(); err != nil {
		return nil, fmt.Errorf("install natives: %w", err)
	}
	return r, nil
}

func (r *Runtime) install() error {
	if err := r.vm.Set("global", r.vm.GlobalObject()); err != nil {
		return err
	}

	console := r.vm.NewObject()
	for name, level := range map[string]slog.Level{
		"log":   slog.LevelInfo,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		if err := console.Set(name, r.consoleFunc(level)); err != nil {
			return err
		}
	}
	if err := r.vm.Set("console", console); err != nil {
		return err
	}

	natives := r.vm.NewObject()
	for name, fn := range map[string]func(goja.FunctionCall) goja.Value{
		"assetReadSync":       r.assetReadSync,
		"cacheTexture":        r.cacheTexture,
		"render":              r.render,
		"setCamera":           r.setCamera,
		"getScreenDimensions": r.getScreenDimensions,
		"clearScreen":         r.clearScreen,
		"unproject":           r.unproject,
		"cacheSound":          r.cacheSound,
		"playSound":           r.playSound,
	} {
		if err := natives.Set(name, fn); err != nil {
			return err
		}
	}
	process := r.vm.NewObject()
	if err := process.Set("natives", natives); err != nil {
		return err
	}
	return r.vm.Set("process", process)
}

// Load runs src as the start script. A function left in module.exports is
// invoked with the global object, so a script can be written either as a
// plain program or as `module.exports = function(global) {...}`.
func (r *Runtime) Load(name, src string) error {
	if r.closed {
		return ErrClosed
	}
	module := r.vm.NewObject()
	exports := r.vm.NewObject()
	if err := module.Set("exports", exports); err != nil {
		return err
	}
	if err := r.vm.Set("module", module); err != nil {
		return err
	}
	if err := r.vm.Set("exports", exports); err != nil {
		return err
	}

	if _, err := r.vm.RunScript(name, src); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	if init, ok := goja.AssertFunction(module.Get("exports")); ok {
		if _, err := init(goja.Undefined(), r.vm.GlobalObject()); err != nil {
			return fmt.Errorf("init %s: %w", name, err)
		}
	}
	return nil
}

// Evaluate runs src in the global scope. Uncaught exceptions come back as
// errors.
func (r *Runtime) Evaluate(src string) error {
	if r.closed {
		return ErrClosed
	}
	if _, err := r.vm.RunString(src); err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	return nil
}

// Has reports whether global[name] is a function.
func (r *Runtime) Has(name string) bool {
	if r.closed {
		return false
	}
	_, ok := goja.AssertFunction(r.vm.GlobalObject().Get(name))
	return ok
}

// Call invokes global[name] with args converted to script values.
func (r *Runtime) Call(name string, args ...any) error {
	if r.closed {
		return ErrClosed
	}
	fn, ok := goja.AssertFunction(r.vm.GlobalObject().Get(name))
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoFunction, name)
	}
	values := make([]goja.Value, len(args))
	for i, a := range args {
		values[i] = r.vm.ToValue(a)
	}
	if _, err := fn(goja.Undefined(), values...); err != nil {
		return fmt.Errorf("call %s: %w", name, err)
	}
	return nil
}

// Close interrupts any running script and disables the runtime.
func (r *Runtime) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.vm.Interrupt(ErrClosed)
	return nil
}

func (r *Runtime) consoleFunc(level slog.Level) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		r.logger.Log(context.Background(), level, strings.Join(parts, " "))
		return goja.Undefined()
	}
}

func (r *Runtime) throw(err error) {
	panic(r.vm.NewGoError(err))
}

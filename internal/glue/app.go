package glue

import (
	"bytes"
	"log/slog"
	"runtime"
	"sync"

	"github.com/fedor-rusak/chickpea-android/internal/logging"
)

// Window is an opaque drawable surface handed over by the platform. Handles
// are compared with ==, so implementations must be comparable (pointers).
type Window interface {
	// Size reports the drawable size in pixels.
	Size() (width, height int)
}

// Handler is the application logic the worker invokes for every command and
// input event. Both methods run on the worker thread and must not call the
// blocking setters of the same App.
type Handler interface {
	HandleCommand(app *App, cmd Command)
	HandleInput(app *App, ev *InputEvent) bool
}

// Framer is implemented by handlers that render continuously. DefaultMain
// polls without blocking while Animating reports true.
type Framer interface {
	Animating() bool
	DrawFrame(app *App)
}

// HandlerFuncs adapts plain functions to Handler. Nil fields are no-ops.
type HandlerFuncs struct {
	Command func(app *App, cmd Command)
	Input   func(app *App, ev *InputEvent) bool
}

// HandleCommand implements Handler.
func (h HandlerFuncs) HandleCommand(app *App, cmd Command) {
	if h.Command != nil {
		h.Command(app, cmd)
	}
}

// HandleInput implements Handler.
func (h HandlerFuncs) HandleInput(app *App, ev *InputEvent) bool {
	if h.Input == nil {
		return false
	}
	return h.Input(app, ev)
}

// Options configure a new App.
type Options struct {
	// Handler receives commands and input events. May be nil.
	Handler Handler
	// Main is the worker thread body. Defaults to DefaultMain.
	Main func(app *App)
	// Assets is handed to the application for file reads.
	Assets AssetSource
	// Config supplies the device configuration on start and on every
	// CmdConfigChanged.
	Config ConfigSource
	// SavedState is the state restored by the platform, if any.
	SavedState []byte
	Logger     *slog.Logger
}

// App is the threaded lifecycle adapter. The platform thread drives it
// through the blocking setters; a single worker goroutine, locked to its OS
// thread, owns every native resource and processes commands serially.
type App struct {
	handler Handler
	assets  AssetSource
	source  ConfigSource
	logger  *slog.Logger

	pipe   *commandPipe
	looper *Looper // worker only
	done   chan struct{}

	mu   sync.Mutex
	cond *sync.Cond

	window        Window
	pendingWindow Window
	// Window commands written and fully applied; SetWindow waits until
	// every command it wrote has been applied.
	windowWritten uint64
	windowApplied uint64

	inputSource        InputSource
	pendingInputSource InputSource

	activityState    Command
	destroyRequested bool
	destroyed        bool
	closed           bool

	stateSaved bool
	savedState []byte

	config Configuration
}

// New creates the command pipe and shared state and spawns the worker. On
// failure no worker is started and the caller must not proceed.
func New(opts Options) (*App, error) {
	logger := logging.Component(opts.Logger, "glue")

	pipe, err := newCommandPipe()
	if err != nil {
		logger.Error("could not create pipe", "error", err)
		return nil, err
	}

	a := &App{
		handler: opts.Handler,
		assets:  opts.Assets,
		source:  opts.Config,
		logger:  logger,
		pipe:    pipe,
		done:    make(chan struct{}),

		activityState: CmdInvalid,
	}
	a.cond = sync.NewCond(&a.mu)
	if len(opts.SavedState) > 0 {
		a.savedState = bytes.Clone(opts.SavedState)
	}
	a.config = a.loadConfig()
	logger.Info("config", "config", a.config)

	main := opts.Main
	if main == nil {
		main = DefaultMain
	}
	go a.entry(main)
	return a, nil
}

func (a *App) entry(main func(*App)) {
	// Never unlocked: the thread exits with the goroutine and takes any
	// context-bound GL state with it.
	runtime.LockOSThread()

	a.looper = NewLooper()
	a.looper.Add(a.pipe.fd(), LooperIDMain)

	main(a)

	a.teardown()
	close(a.done)
}

// teardown is the final worker-side step. Nothing may touch the shared
// state after destroyed is broadcast.
func (a *App) teardown() {
	a.logger.Info("worker teardown")
	a.freeSavedState()

	a.mu.Lock()
	if a.inputSource != nil {
		a.looper.Remove(a.inputSource.Fd())
	}
	a.config = Configuration{}
	a.destroyed = true
	a.cond.Broadcast()
	a.mu.Unlock()
}

func (a *App) loadConfig() Configuration {
	if a.source == nil {
		return Configuration{}
	}
	return a.source()
}

func (a *App) freeSavedState() {
	a.mu.Lock()
	a.savedState = nil
	a.mu.Unlock()
}

// Done is closed once the worker has torn down and exited.
func (a *App) Done() <-chan struct{} { return a.done }

// Logger returns the adapter's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Assets returns the asset source given at construction.
func (a *App) Assets() AssetSource { return a.assets }

// Window returns the surface the worker may draw to, or nil.
func (a *App) Window() Window {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.window
}

// InputSource returns the attached input source, or nil.
func (a *App) InputSource() InputSource {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inputSource
}

// ActivityState returns the last acknowledged lifecycle phase, or
// CmdInvalid before the first one.
func (a *App) ActivityState() Command {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.activityState
}

// DestroyRequested reports whether CmdDestroy has been processed.
func (a *App) DestroyRequested() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.destroyRequested
}

// Destroyed reports whether the worker has torn down.
func (a *App) Destroyed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.destroyed
}

// Config returns the current configuration snapshot.
func (a *App) Config() Configuration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.config
}

// SavedState returns a copy of the retained save-state payload, or nil.
// Restored state stays available until the first CmdResume is processed.
func (a *App) SavedState() []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	return bytes.Clone(a.savedState)
}

// SetSavedState hands p to the adapter while CmdSaveState is processed.
// Ownership moves with the call; the handler must not touch p afterwards.
func (a *App) SetSavedState(p []byte) {
	a.mu.Lock()
	a.savedState = p
	a.mu.Unlock()
}

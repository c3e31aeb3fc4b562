package glue

import (
	"bytes"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

type fakeWindow struct {
	name string
	w, h int
}

func (f *fakeWindow) Size() (int, int) { return f.w, f.h }

// recorder is a Handler that records what the worker showed it.
type recorder struct {
	mu      sync.Mutex
	cmds    []Command
	windows []Window
	saved   map[Command][]byte
	payload []byte
	events  []*InputEvent
}

func newRecorder() *recorder {
	return &recorder{saved: make(map[Command][]byte)}
}

func (r *recorder) HandleCommand(app *App, cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
	r.windows = append(r.windows, app.Window())
	r.saved[cmd] = app.SavedState()
	if cmd == CmdSaveState && r.payload != nil {
		app.SetSavedState(bytes.Clone(r.payload))
	}
}

func (r *recorder) HandleInput(_ *App, ev *InputEvent) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return ev.Action == ActionDown
}

func (r *recorder) setPayload(p []byte) {
	r.mu.Lock()
	r.payload = p
	r.mu.Unlock()
}

func (r *recorder) commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.cmds...)
}

func (r *recorder) observed() []Window {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Window(nil), r.windows...)
}

func newTestApp(t *testing.T, opts Options) *App {
	t.Helper()
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() {
		_ = app.Destroy()
	})
	return app
}

// within fails the test if fn does not return in time.
func within(t *testing.T, name string, fn func() error) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatalf("%s did not return", name)
		return nil
	}
}

func equalCommands(a, b []Command) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSetWindowConverges(t *testing.T) {
	rec := newRecorder()
	app := newTestApp(t, Options{Handler: rec})
	w1 := &fakeWindow{name: "w1", w: 640, h: 480}
	w2 := &fakeWindow{name: "w2", w: 800, h: 600}

	if err := within(t, "SetWindow(w1)", func() error { return app.SetWindow(w1) }); err != nil {
		t.Fatalf("SetWindow(w1) failed: %v", err)
	}
	if got := app.Window(); got != w1 {
		t.Fatalf("Window() = %v, want w1", got)
	}

	if err := within(t, "SetWindow(w2)", func() error { return app.SetWindow(w2) }); err != nil {
		t.Fatalf("SetWindow(w2) failed: %v", err)
	}
	if got := app.Window(); got != w2 {
		t.Fatalf("Window() = %v, want w2", got)
	}

	wantCmds := []Command{CmdInitWindow, CmdTermWindow, CmdInitWindow}
	if got := rec.commands(); !equalCommands(got, wantCmds) {
		t.Fatalf("commands = %v, want %v", got, wantCmds)
	}
	wantSeen := []Window{w1, w1, w2}
	seen := rec.observed()
	for i := range wantSeen {
		if seen[i] != wantSeen[i] {
			t.Errorf("handler saw window %v during %s, want %v", seen[i], wantCmds[i], wantSeen[i])
		}
	}
}

func TestSetWindowSameWindowWaitsForHandler(t *testing.T) {
	rec := newRecorder()
	entered := make(chan struct{}, 1)
	gate := make(chan struct{})
	var once sync.Once
	release := func() { once.Do(func() { close(gate) }) }

	app := newTestApp(t, Options{Handler: HandlerFuncs{
		Command: func(app *App, cmd Command) {
			rec.HandleCommand(app, cmd)
			if cmd == CmdTermWindow {
				entered <- struct{}{}
				<-gate
			}
		},
	}})
	t.Cleanup(release)

	w1 := &fakeWindow{name: "w1", w: 640, h: 480}
	if err := within(t, "SetWindow(w1)", func() error { return app.SetWindow(w1) }); err != nil {
		t.Fatalf("SetWindow(w1) failed: %v", err)
	}

	errc := make(chan error, 1)
	go func() { errc <- app.SetWindow(w1) }()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("handler never saw the terminate for the repeated window")
	}
	select {
	case err := <-errc:
		t.Fatalf("SetWindow(w1) returned %v while the handler was still tearing down", err)
	case <-time.After(100 * time.Millisecond):
	}

	release()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("repeated SetWindow(w1) = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("repeated SetWindow(w1) did not return")
	}

	wantCmds := []Command{CmdInitWindow, CmdTermWindow, CmdInitWindow}
	if got := rec.commands(); !equalCommands(got, wantCmds) {
		t.Fatalf("commands = %v, want %v", got, wantCmds)
	}
	if got := app.Window(); got != w1 {
		t.Fatalf("Window() = %v, want w1", got)
	}
}

func TestTermWindowSeesWindowBeforeClear(t *testing.T) {
	rec := newRecorder()
	app := newTestApp(t, Options{Handler: rec})
	w := &fakeWindow{name: "w"}

	if err := within(t, "SetWindow(w)", func() error { return app.SetWindow(w) }); err != nil {
		t.Fatalf("SetWindow failed: %v", err)
	}
	if err := within(t, "SetWindow(nil)", func() error { return app.SetWindow(nil) }); err != nil {
		t.Fatalf("SetWindow(nil) failed: %v", err)
	}
	if got := app.Window(); got != nil {
		t.Fatalf("Window() = %v, want nil", got)
	}

	cmds := rec.commands()
	seen := rec.observed()
	last := len(cmds) - 1
	if cmds[last] != CmdTermWindow {
		t.Fatalf("last command = %s, want term_window", cmds[last])
	}
	if seen[last] != w {
		t.Fatalf("handler saw %v during term_window, want the terminating window", seen[last])
	}
}

func TestSetWindowNilWithoutWindow(t *testing.T) {
	rec := newRecorder()
	app := newTestApp(t, Options{Handler: rec})

	if err := within(t, "SetWindow(nil)", func() error { return app.SetWindow(nil) }); err != nil {
		t.Fatalf("SetWindow(nil) failed: %v", err)
	}
	// Synchronise with the worker before inspecting the recorder.
	if err := within(t, "SetActivityState", func() error { return app.SetActivityState(CmdStart) }); err != nil {
		t.Fatalf("SetActivityState failed: %v", err)
	}
	if got := rec.commands(); !equalCommands(got, []Command{CmdStart}) {
		t.Fatalf("commands = %v, want only start", got)
	}
}

func TestSaveStateRoundTrip(t *testing.T) {
	rec := newRecorder()
	app := newTestApp(t, Options{Handler: rec})

	rec.setPayload([]byte("first"))
	var got []byte
	err := within(t, "SaveState", func() error {
		var err error
		got, err = app.SaveState()
		return err
	})
	if err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	if string(got) != "first" {
		t.Fatalf("SaveState() = %q, want %q", got, "first")
	}
	if retained := app.SavedState(); retained != nil {
		t.Fatalf("SavedState() after claim = %q, want nil", retained)
	}

	// The handler produces nothing this time; the earlier payload must not
	// come back.
	rec.setPayload(nil)
	err = within(t, "SaveState", func() error {
		var err error
		got, err = app.SaveState()
		return err
	})
	if err != nil {
		t.Fatalf("second SaveState failed: %v", err)
	}
	if got != nil {
		t.Fatalf("second SaveState() = %q, want nil", got)
	}
}

func TestSaveStateDropsUnclaimedPayload(t *testing.T) {
	rec := newRecorder()
	app := newTestApp(t, Options{Handler: rec, SavedState: []byte("restored")})

	err := within(t, "SaveState", func() error {
		_, err := app.SaveState()
		return err
	})
	if err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	rec.mu.Lock()
	during := rec.saved[CmdSaveState]
	rec.mu.Unlock()
	if during != nil {
		t.Fatalf("handler saw %q during save_state, want the old payload discarded", during)
	}
}

func TestResumeDiscardsSavedState(t *testing.T) {
	rec := newRecorder()
	app := newTestApp(t, Options{Handler: rec, SavedState: []byte("restored")})

	if got := string(app.SavedState()); got != "restored" {
		t.Fatalf("SavedState() = %q, want %q", got, "restored")
	}
	if err := within(t, "start", func() error { return app.SetActivityState(CmdStart) }); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if got := string(app.SavedState()); got != "restored" {
		t.Fatalf("SavedState() after start = %q, want %q", got, "restored")
	}
	if err := within(t, "resume", func() error { return app.SetActivityState(CmdResume) }); err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if got := app.SavedState(); got != nil {
		t.Fatalf("SavedState() after resume = %q, want nil", got)
	}

	rec.mu.Lock()
	during := string(rec.saved[CmdResume])
	rec.mu.Unlock()
	if during != "restored" {
		t.Fatalf("handler saw %q during resume, want %q", during, "restored")
	}
}

func TestSetActivityState(t *testing.T) {
	app := newTestApp(t, Options{Handler: newRecorder()})

	if got := app.ActivityState(); got != CmdInvalid {
		t.Fatalf("initial ActivityState() = %s, want invalid", got)
	}
	for _, cmd := range []Command{CmdStart, CmdResume, CmdPause, CmdStop} {
		if err := within(t, cmd.String(), func() error { return app.SetActivityState(cmd) }); err != nil {
			t.Fatalf("SetActivityState(%s) failed: %v", cmd, err)
		}
		if got := app.ActivityState(); got != cmd {
			t.Fatalf("ActivityState() = %s, want %s", got, cmd)
		}
	}

	if err := app.SetActivityState(CmdLowMemory); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("SetActivityState(low_memory) = %v, want ErrInvalidState", err)
	}
}

func TestCommandOrdering(t *testing.T) {
	rec := newRecorder()
	app := newTestApp(t, Options{Handler: rec})

	for _, cmd := range []Command{CmdGainedFocus, CmdLowMemory, CmdLostFocus} {
		if err := app.Post(cmd); err != nil {
			t.Fatalf("Post(%s) failed: %v", cmd, err)
		}
	}
	if err := within(t, "start", func() error { return app.SetActivityState(CmdStart) }); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	want := []Command{CmdGainedFocus, CmdLowMemory, CmdLostFocus, CmdStart}
	if got := rec.commands(); !equalCommands(got, want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
}

func TestPostRejectsBlockingCommands(t *testing.T) {
	app := newTestApp(t, Options{})
	for _, cmd := range []Command{CmdInitWindow, CmdResume, CmdSaveState, CmdDestroy} {
		if err := app.Post(cmd); !errors.Is(err, ErrInvalidState) {
			t.Errorf("Post(%s) = %v, want ErrInvalidState", cmd, err)
		}
	}
}

func TestConfigChangedReloads(t *testing.T) {
	var mu sync.Mutex
	cfg := Configuration{Language: "en", Density: 160}
	source := func() Configuration {
		mu.Lock()
		defer mu.Unlock()
		return cfg
	}
	app := newTestApp(t, Options{Config: source})

	if got := app.Config().Language; got != "en" {
		t.Fatalf("Config().Language = %q, want %q", got, "en")
	}

	mu.Lock()
	cfg = Configuration{Language: "sv", Density: 320, Orientation: OrientationLandscape}
	mu.Unlock()

	if err := app.Post(CmdConfigChanged); err != nil {
		t.Fatalf("Post(config_changed) failed: %v", err)
	}
	if err := within(t, "start", func() error { return app.SetActivityState(CmdStart) }); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	got := app.Config()
	if got.Language != "sv" || got.Density != 320 || got.Orientation != OrientationLandscape {
		t.Fatalf("Config() = %+v, want reloaded configuration", got)
	}
}

func TestInputDispatch(t *testing.T) {
	rec := newRecorder()
	app := newTestApp(t, Options{Handler: rec})

	q, err := NewEventQueue()
	if err != nil {
		t.Fatalf("NewEventQueue failed: %v", err)
	}
	defer q.Close()
	q.SetIntercept(func(ev *InputEvent) bool { return ev.Type == EventKey })

	if err := within(t, "SetInputSource", func() error { return app.SetInputSource(q) }); err != nil {
		t.Fatalf("SetInputSource failed: %v", err)
	}
	if app.InputSource() != q {
		t.Fatal("InputSource() did not converge to the queue")
	}

	q.Push(&InputEvent{Type: EventMotion, Source: SourceTouchscreen, Action: ActionDown})
	q.Push(&InputEvent{Type: EventKey, Source: SourceKeyboard, KeyCode: 4})
	q.Push(&InputEvent{Type: EventMotion, Source: SourceTouchscreen, Action: ActionMove})

	deadline := time.Now().Add(5 * time.Second)
	for {
		handled, unhandled := q.Stats()
		if handled+unhandled == 2 {
			if handled != 1 || unhandled != 1 {
				t.Fatalf("Stats() = (%d, %d), want (1, 1)", handled, unhandled)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("events not drained: Stats() = (%d, %d)", handled, unhandled)
		}
		time.Sleep(5 * time.Millisecond)
	}

	rec.mu.Lock()
	events := append([]*InputEvent(nil), rec.events...)
	rec.mu.Unlock()
	if len(events) != 2 {
		t.Fatalf("handler saw %d events, want 2 (key event intercepted)", len(events))
	}
	if events[0].Action != ActionDown || events[1].Action != ActionMove {
		t.Fatalf("events out of order: %s, %s", events[0].Action, events[1].Action)
	}

	if err := within(t, "SetInputSource(nil)", func() error { return app.SetInputSource(nil) }); err != nil {
		t.Fatalf("SetInputSource(nil) failed: %v", err)
	}
	if app.InputSource() != nil {
		t.Fatal("InputSource() not detached")
	}
}

func TestDestroyIsTerminal(t *testing.T) {
	rec := newRecorder()
	app, err := New(Options{Handler: rec})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := within(t, "Destroy", app.Destroy); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	if !app.Destroyed() {
		t.Fatal("Destroyed() = false after Destroy")
	}
	if !app.DestroyRequested() {
		t.Fatal("DestroyRequested() = false after Destroy")
	}
	cmds := rec.commands()
	if len(cmds) == 0 || cmds[len(cmds)-1] != CmdDestroy {
		t.Fatalf("commands = %v, want destroy last", cmds)
	}

	if err := app.SetWindow(&fakeWindow{}); !errors.Is(err, ErrDestroyed) {
		t.Errorf("SetWindow after Destroy = %v, want ErrDestroyed", err)
	}
	if err := app.SetActivityState(CmdResume); !errors.Is(err, ErrDestroyed) {
		t.Errorf("SetActivityState after Destroy = %v, want ErrDestroyed", err)
	}
	if _, err := app.SaveState(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("SaveState after Destroy = %v, want ErrDestroyed", err)
	}
	if err := app.Post(CmdLowMemory); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Post after Destroy = %v, want ErrDestroyed", err)
	}
	if err := app.Destroy(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("second Destroy = %v, want ErrDestroyed", err)
	}
}

func TestConcurrentDestroyClosesOnce(t *testing.T) {
	app, err := New(Options{Handler: newRecorder()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	const callers = 8
	errs := make(chan error, callers)
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < callers; i++ {
		go func() {
			start.Wait()
			errs <- app.Destroy()
		}()
	}
	start.Done()

	var ok, destroyed int
	for i := 0; i < callers; i++ {
		select {
		case err := <-errs:
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrDestroyed):
				destroyed++
			default:
				t.Fatalf("Destroy = %v, want nil or ErrDestroyed", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Destroy did not return")
		}
	}
	if ok != 1 || destroyed != callers-1 {
		t.Fatalf("Destroy results: %d nil, %d ErrDestroyed; want 1 and %d", ok, destroyed, callers-1)
	}
}

func TestWriteFailureReturnsPromptly(t *testing.T) {
	rec := newRecorder()
	app := newTestApp(t, Options{Handler: rec})

	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC); err != nil {
		t.Fatalf("Pipe2 failed: %v", err)
	}
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	// The read end of another pipe rejects writes.
	app.mu.Lock()
	writeFd := app.pipe.writeFd
	app.pipe.writeFd = fds[0]
	app.mu.Unlock()

	err := within(t, "SetActivityState", func() error { return app.SetActivityState(CmdStart) })
	if err == nil || errors.Is(err, ErrDestroyed) {
		t.Fatalf("SetActivityState on a broken pipe = %v, want a write error", err)
	}

	app.mu.Lock()
	app.pipe.writeFd = writeFd
	app.mu.Unlock()

	if err := within(t, "SetActivityState", func() error { return app.SetActivityState(CmdStart) }); err != nil {
		t.Fatalf("SetActivityState after restore failed: %v", err)
	}
	if err := within(t, "SaveState", func() error { _, err := app.SaveState(); return err }); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	want := []Command{CmdStart, CmdSaveState}
	if got := rec.commands(); !equalCommands(got, want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
}

func TestReadFailureSkipsHandler(t *testing.T) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC); err != nil {
		t.Fatalf("Pipe2 failed: %v", err)
	}
	unix.Close(fds[1])
	defer unix.Close(fds[0])

	rec := newRecorder()
	failed := make(chan struct{})
	app := newTestApp(t, Options{
		Handler: rec,
		Main: func(a *App) {
			// A closed writer makes the next read hit end of file.
			readFd := a.pipe.readFd
			a.pipe.readFd = fds[0]
			a.ProcessCommand()
			a.pipe.readFd = readFd
			close(failed)
			DefaultMain(a)
		},
	})

	select {
	case <-failed:
	case <-time.After(5 * time.Second):
		t.Fatal("worker never attempted the failing read")
	}
	if got := rec.commands(); len(got) != 0 {
		t.Fatalf("handler saw %v after a failed read, want nothing", got)
	}

	if err := within(t, "SetActivityState", func() error { return app.SetActivityState(CmdStart) }); err != nil {
		t.Fatalf("SetActivityState failed: %v", err)
	}
	if err := within(t, "SaveState", func() error { _, err := app.SaveState(); return err }); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	want := []Command{CmdStart, CmdSaveState}
	if got := rec.commands(); !equalCommands(got, want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	if got := app.ActivityState(); got != CmdStart {
		t.Fatalf("ActivityState() = %v, want %v", got, CmdStart)
	}
}

func TestMainReturningReleasesWaiters(t *testing.T) {
	release := make(chan struct{})
	app := newTestApp(t, Options{Main: func(*App) { <-release }})

	errc := make(chan error, 1)
	go func() { errc <- app.SetWindow(&fakeWindow{}) }()
	close(release)

	select {
	case err := <-errc:
		if !errors.Is(err, ErrDestroyed) {
			t.Fatalf("SetWindow = %v, want ErrDestroyed", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("SetWindow blocked after the worker exited")
	}
	<-app.Done()
	if !app.Destroyed() {
		t.Fatal("Destroyed() = false after worker exit")
	}
}

func TestNilHandler(t *testing.T) {
	app := newTestApp(t, Options{})
	w := &fakeWindow{}
	if err := within(t, "SetWindow", func() error { return app.SetWindow(w) }); err != nil {
		t.Fatalf("SetWindow failed: %v", err)
	}
	var got []byte
	err := within(t, "SaveState", func() error {
		var err error
		got, err = app.SaveState()
		return err
	})
	if err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	if got != nil {
		t.Fatalf("SaveState() = %q, want nil without a handler", got)
	}
}

type framer struct {
	HandlerFuncs
	animating atomic.Bool
	frames    atomic.Int64
}

func (f *framer) Animating() bool    { return f.animating.Load() }
func (f *framer) DrawFrame(app *App) { f.frames.Add(1) }

func TestDefaultMainDrawsWhileAnimating(t *testing.T) {
	f := &framer{}
	f.HandlerFuncs.Command = func(app *App, cmd Command) {
		switch cmd {
		case CmdInitWindow:
			f.animating.Store(true)
		case CmdTermWindow:
			f.animating.Store(false)
		}
	}
	app := newTestApp(t, Options{Handler: f})

	if err := within(t, "SetWindow", func() error { return app.SetWindow(&fakeWindow{}) }); err != nil {
		t.Fatalf("SetWindow failed: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for f.frames.Load() < 10 {
		if time.Now().After(deadline) {
			t.Fatalf("frames = %d, want continuous drawing while animating", f.frames.Load())
		}
		time.Sleep(time.Millisecond)
	}
	if err := within(t, "SetWindow(nil)", func() error { return app.SetWindow(nil) }); err != nil {
		t.Fatalf("SetWindow(nil) failed: %v", err)
	}
}

// TestLifecycleScenario walks the sequence a host goes through for one
// activity instance.
func TestLifecycleScenario(t *testing.T) {
	rec := newRecorder()
	app, err := New(Options{Handler: rec})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w1 := &fakeWindow{name: "w1"}
	w2 := &fakeWindow{name: "w2"}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"start", func() error { return app.SetActivityState(CmdStart) }},
		{"resume", func() error { return app.SetActivityState(CmdResume) }},
		{"window w1", func() error { return app.SetWindow(w1) }},
		{"window w2", func() error { return app.SetWindow(w2) }},
	}
	for _, step := range steps {
		if err := within(t, step.name, step.fn); err != nil {
			t.Fatalf("%s failed: %v", step.name, err)
		}
	}
	if app.Window() != w2 {
		t.Fatalf("Window() = %v, want w2", app.Window())
	}

	rec.setPayload([]byte{1, 2, 3})
	var payload []byte
	err = within(t, "SaveState", func() error {
		var err error
		payload, err = app.SaveState()
		return err
	})
	if err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	if !bytes.Equal(payload, []byte{1, 2, 3}) {
		t.Fatalf("SaveState() = %v, want [1 2 3]", payload)
	}

	if err := within(t, "Destroy", app.Destroy); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	if !app.Destroyed() {
		t.Fatal("Destroyed() = false")
	}

	want := []Command{
		CmdStart, CmdResume,
		CmdInitWindow, CmdTermWindow, CmdInitWindow,
		CmdSaveState, CmdDestroy,
	}
	if got := rec.commands(); !equalCommands(got, want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
}

package glue

import "time"

// PollEvents waits up to timeout for the first ready source, then keeps
// dispatching without blocking until nothing is ready. It returns early once
// destruction has been requested.
func (a *App) PollEvents(timeout time.Duration) error {
	for {
		ident, err := a.looper.PollOnce(timeout)
		if err != nil {
			return err
		}
		switch ident {
		case LooperIDMain:
			a.ProcessCommand()
		case LooperIDInput:
			a.ProcessInput()
		case PollTimeout:
			return nil
		}
		if a.DestroyRequested() {
			return nil
		}
		timeout = 0
	}
}

// DefaultMain is the worker body used when Options.Main is nil. It blocks
// in the looper unless the handler is animating, exits when destruction is
// requested and draws one frame per iteration otherwise.
func DefaultMain(a *App) {
	framer, _ := a.handler.(Framer)
	for {
		timeout := time.Duration(-1)
		if framer != nil && framer.Animating() {
			timeout = 0
		}
		if err := a.PollEvents(timeout); err != nil {
			a.logger.Error("looper poll failed", "error", err)
			return
		}
		if a.DestroyRequested() {
			return
		}
		if framer != nil {
			framer.DrawFrame(a)
		}
	}
}

package glue

// readCommand pulls one command off the pipe. A save request first drops
// any payload nobody claimed, so at most one is ever outstanding.
func (a *App) readCommand() Command {
	cmd, err := a.pipe.read()
	if err != nil {
		a.logger.Error("no data on command pipe", "error", err)
		return CmdInvalid
	}
	if cmd == CmdSaveState {
		a.freeSavedState()
	}
	return cmd
}

// preExec applies the transitions the handler must already see.
func (a *App) preExec(cmd Command) {
	switch cmd {
	case CmdInputChanged:
		a.mu.Lock()
		if a.inputSource != nil {
			a.looper.Remove(a.inputSource.Fd())
		}
		a.inputSource = a.pendingInputSource
		if a.inputSource != nil {
			a.logger.Debug("attaching input source to looper")
			a.looper.Add(a.inputSource.Fd(), LooperIDInput)
		}
		a.cond.Broadcast()
		a.mu.Unlock()

	case CmdInitWindow:
		a.mu.Lock()
		a.window = a.pendingWindow
		a.cond.Broadcast()
		a.mu.Unlock()

	case CmdTermWindow:
		// The window stays current until postExec so the handler can tear
		// down against it.
		a.mu.Lock()
		a.cond.Broadcast()
		a.mu.Unlock()

	case CmdStart, CmdResume, CmdPause, CmdStop:
		a.mu.Lock()
		a.activityState = cmd
		a.cond.Broadcast()
		a.mu.Unlock()

	case CmdConfigChanged:
		cfg := a.loadConfig()
		a.mu.Lock()
		a.config = cfg
		a.mu.Unlock()
		a.logger.Info("config", "config", cfg)

	case CmdDestroy:
		a.mu.Lock()
		a.destroyRequested = true
		a.mu.Unlock()
	}
}

// postExec applies the transitions that must wait for the handler.
func (a *App) postExec(cmd Command) {
	switch cmd {
	case CmdInitWindow:
		a.mu.Lock()
		a.windowApplied++
		a.cond.Broadcast()
		a.mu.Unlock()

	case CmdTermWindow:
		a.mu.Lock()
		a.window = nil
		a.windowApplied++
		a.cond.Broadcast()
		a.mu.Unlock()

	case CmdSaveState:
		a.mu.Lock()
		a.stateSaved = true
		a.cond.Broadcast()
		a.mu.Unlock()

	case CmdResume:
		a.freeSavedState()
	}
}

// ProcessCommand reads and executes one command. It must only be called on
// the worker thread when the main looper ident is ready.
func (a *App) ProcessCommand() {
	cmd := a.readCommand()
	if cmd == CmdInvalid {
		return
	}
	a.logger.Debug("command", "cmd", cmd)
	a.preExec(cmd)
	if a.handler != nil {
		a.handler.HandleCommand(a, cmd)
	}
	a.postExec(cmd)
}

// ProcessInput drains the attached input source. It must only be called on
// the worker thread.
func (a *App) ProcessInput() {
	src := a.InputSource()
	if src == nil {
		return
	}
	for {
		ev, ok := src.Next()
		if !ok {
			return
		}
		a.logger.Debug("input event", "type", ev.Type, "action", ev.Action)
		if src.PreDispatch(ev) {
			continue
		}
		handled := false
		if a.handler != nil {
			handled = a.handler.HandleInput(a, ev)
		}
		src.Finish(ev, handled)
	}
}

package glue

// The setters below run on the platform thread. Each one takes the lock,
// records what it wants, writes a command and waits for the worker to
// acknowledge it. They must never be called from the worker thread.

func (a *App) writeLocked(cmd Command) error {
	if err := a.pipe.write(cmd); err != nil {
		a.logger.Error("failure writing command", "cmd", cmd, "error", err)
		return err
	}
	return nil
}

// waitLocked blocks until pred holds. It gives up with ErrDestroyed when
// the worker tears down first.
func (a *App) waitLocked(pred func() bool) error {
	for !pred() {
		if a.destroyed {
			return ErrDestroyed
		}
		a.cond.Wait()
	}
	return nil
}

func (a *App) usableLocked() error {
	if a.destroyed || a.closed {
		return ErrDestroyed
	}
	return nil
}

// SetInputSource hands src to the worker and returns once it is attached.
// A nil src detaches the current source.
func (a *App) SetInputSource(src InputSource) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.usableLocked(); err != nil {
		return err
	}

	a.pendingInputSource = src
	if err := a.writeLocked(CmdInputChanged); err != nil {
		return err
	}
	return a.waitLocked(func() bool { return a.inputSource == a.pendingInputSource })
}

// SetWindow hands w to the worker and returns once every window command it
// wrote has been applied, including the handler's work for it. Any existing
// window is always terminated before a new one is initialised, so GPU state
// never spans two surfaces.
func (a *App) SetWindow(w Window) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.usableLocked(); err != nil {
		return err
	}

	if a.pendingWindow != nil || a.window != nil {
		if err := a.writeWindowLocked(CmdTermWindow); err != nil {
			return err
		}
	}
	a.pendingWindow = w
	if w != nil {
		if err := a.writeWindowLocked(CmdInitWindow); err != nil {
			return err
		}
	}
	mine := a.windowWritten
	return a.waitLocked(func() bool { return a.windowApplied >= mine })
}

func (a *App) writeWindowLocked(cmd Command) error {
	if err := a.writeLocked(cmd); err != nil {
		return err
	}
	a.windowWritten++
	return nil
}

// SetActivityState moves the worker to one of CmdStart, CmdResume,
// CmdPause or CmdStop and returns once the worker has applied it.
func (a *App) SetActivityState(cmd Command) error {
	if !cmd.IsActivityState() {
		return ErrInvalidState
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.usableLocked(); err != nil {
		return err
	}

	if err := a.writeLocked(cmd); err != nil {
		return err
	}
	return a.waitLocked(func() bool { return a.activityState == cmd })
}

// SaveState asks the handler for its state and returns the payload it
// produced, or nil if it produced none. The caller owns the returned slice.
func (a *App) SaveState() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.usableLocked(); err != nil {
		return nil, err
	}

	a.stateSaved = false
	if err := a.writeLocked(CmdSaveState); err != nil {
		return nil, err
	}
	if err := a.waitLocked(func() bool { return a.stateSaved }); err != nil {
		return nil, err
	}
	p := a.savedState
	a.savedState = nil
	return p, nil
}

// Post enqueues a notification command that needs no acknowledgement.
func (a *App) Post(cmd Command) error {
	if !cmd.isNotification() {
		return ErrInvalidState
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.usableLocked(); err != nil {
		return err
	}
	return a.writeLocked(cmd)
}

// Destroy requests worker shutdown, waits until the worker has released
// everything and closes the command pipe. The App must not be used again;
// every later or concurrent call returns ErrDestroyed.
func (a *App) Destroy() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrDestroyed
	}
	a.closed = true
	if !a.destroyed {
		if err := a.writeLocked(CmdDestroy); err != nil {
			a.closed = false
			a.mu.Unlock()
			return err
		}
		for !a.destroyed {
			a.cond.Wait()
		}
	}
	a.mu.Unlock()

	<-a.done
	return a.pipe.close()
}

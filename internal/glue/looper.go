package glue

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Looper identifiers for the two registered sources.
const (
	LooperIDMain  = 1
	LooperIDInput = 2
)

// PollTimeout is returned by PollOnce when no source became ready.
const PollTimeout = -3

// Looper multiplexes the command pipe and the input source on the worker
// thread. It is not safe for concurrent use.
type Looper struct {
	fds     []unix.PollFd
	idents  []int
	pending []int
}

// NewLooper returns an empty looper.
func NewLooper() *Looper {
	return &Looper{}
}

// Add registers fd under ident. Registering an fd twice replaces its ident.
func (l *Looper) Add(fd, ident int) {
	for i := range l.fds {
		if int(l.fds[i].Fd) == fd {
			l.idents[i] = ident
			return
		}
	}
	l.fds = append(l.fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	l.idents = append(l.idents, ident)
}

// Remove unregisters fd. Unknown descriptors are ignored.
func (l *Looper) Remove(fd int) {
	for i := range l.fds {
		if int(l.fds[i].Fd) != fd {
			continue
		}
		l.fds = append(l.fds[:i], l.fds[i+1:]...)
		l.idents = append(l.idents[:i], l.idents[i+1:]...)
		l.pending = l.pending[:0]
		return
	}
}

// PollOnce waits up to timeout for a registered descriptor to become
// readable and returns its ident. A negative timeout blocks indefinitely.
// When several descriptors are ready they are reported one per call, in
// registration order, before polling again.
func (l *Looper) PollOnce(timeout time.Duration) (int, error) {
	if len(l.pending) > 0 {
		ident := l.pending[0]
		l.pending = l.pending[1:]
		return ident, nil
	}
	if len(l.fds) == 0 {
		if timeout > 0 {
			time.Sleep(timeout)
		}
		return PollTimeout, nil
	}

	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}
	for i := range l.fds {
		l.fds[i].Revents = 0
	}
	n, err := unix.Poll(l.fds, ms)
	if err == unix.EINTR {
		return PollTimeout, nil
	}
	if err != nil {
		return PollTimeout, fmt.Errorf("poll: %w", err)
	}
	if n == 0 {
		return PollTimeout, nil
	}
	for i := range l.fds {
		if l.fds[i].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
			l.pending = append(l.pending, l.idents[i])
		}
	}
	if len(l.pending) == 0 {
		return PollTimeout, nil
	}
	ident := l.pending[0]
	l.pending = l.pending[1:]
	return ident, nil
}

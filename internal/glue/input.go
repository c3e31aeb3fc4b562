package glue

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// EventType distinguishes motion from key events.
type EventType int

const (
	EventMotion EventType = iota + 1
	EventKey
)

// Source identifies the device class that produced an event.
type Source int

const (
	SourceUnknown Source = iota
	SourceTouchscreen
	SourceMouse
	SourceKeyboard
)

// Action is the motion or key action of an event.
type Action int

const (
	ActionDown Action = iota
	ActionUp
	ActionMove
	ActionCancel
	ActionPointerDown
	ActionPointerUp
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	case ActionMove:
		return "move"
	case ActionCancel:
		return "cancel"
	case ActionPointerDown:
		return "pointer_down"
	case ActionPointerUp:
		return "pointer_up"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Pointer is one contact of a motion event.
type Pointer struct {
	ID   int
	X, Y float32
}

// InputEvent is a single event pulled from an InputSource.
type InputEvent struct {
	Type         EventType
	Source       Source
	Action       Action
	PointerIndex int // pointer that changed for ActionPointerDown/Up
	Pointers     []Pointer
	KeyCode      int
	XPrecision   float32
	YPrecision   float32
	Time         time.Time
}

// InputSource is the queue of input events the worker drains whenever its
// descriptor becomes readable.
type InputSource interface {
	// Fd is polled by the looper for readability.
	Fd() int
	// Next pops the next event, or reports false when the queue is empty.
	Next() (*InputEvent, bool)
	// PreDispatch reports true when the source consumed the event itself
	// and it must not reach the application.
	PreDispatch(ev *InputEvent) bool
	// Finish acknowledges an event with the application's verdict.
	Finish(ev *InputEvent, handled bool)
}

// EventQueue is an InputSource fed by the platform thread. Each queued event
// leaves one token in a wake pipe so the worker's looper sees it.
type EventQueue struct {
	mu        sync.Mutex
	events    []*InputEvent
	readFd    int
	writeFd   int
	intercept func(*InputEvent) bool
	handled   int
	unhandled int
	closed    bool
}

// NewEventQueue creates a queue with its wake pipe.
func NewEventQueue() (*EventQueue, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC|unix.O_NONBLOCK); err != nil {
		return nil, fmt.Errorf("event queue pipe: %w", err)
	}
	return &EventQueue{readFd: fds[0], writeFd: fds[1]}, nil
}

// SetIntercept installs a predicate consulted by PreDispatch.
func (q *EventQueue) SetIntercept(fn func(*InputEvent) bool) {
	q.mu.Lock()
	q.intercept = fn
	q.mu.Unlock()
}

// Push appends ev. Events pushed after Close are dropped.
func (q *EventQueue) Push(ev *InputEvent) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.events = append(q.events, ev)
	// A full pipe already guarantees a wake-up; the drain loop empties the
	// whole queue regardless of token count.
	_, _ = unix.Write(q.writeFd, []byte{1})
}

// Fd implements InputSource.
func (q *EventQueue) Fd() int { return q.readFd }

// Next implements InputSource.
func (q *EventQueue) Next() (*InputEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		q.drainTokens()
		return nil, false
	}
	ev := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	var tok [1]byte
	_, _ = unix.Read(q.readFd, tok[:])
	return ev, true
}

// drainTokens empties stray tokens left when the queue is empty.
func (q *EventQueue) drainTokens() {
	var buf [64]byte
	for {
		n, err := unix.Read(q.readFd, buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

// PreDispatch implements InputSource.
func (q *EventQueue) PreDispatch(ev *InputEvent) bool {
	q.mu.Lock()
	fn := q.intercept
	q.mu.Unlock()
	return fn != nil && fn(ev)
}

// Finish implements InputSource.
func (q *EventQueue) Finish(_ *InputEvent, handled bool) {
	q.mu.Lock()
	if handled {
		q.handled++
	} else {
		q.unhandled++
	}
	q.mu.Unlock()
}

// Stats returns how many events were finished as handled and unhandled.
func (q *EventQueue) Stats() (handled, unhandled int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.handled, q.unhandled
}

// Close releases the wake pipe. The queue must already be detached from
// the app.
func (q *EventQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	q.events = nil
	rerr := unix.Close(q.readFd)
	werr := unix.Close(q.writeFd)
	if rerr != nil {
		return rerr
	}
	return werr
}

package engine

import (
	"math"

	"github.com/fedor-rusak/chickpea-android/internal/glue"
)

// HandleInput implements glue.Handler. Touchscreen motion is forwarded to
// the script as global.addInput([...]) records:
//
//	['pressed', id, x, y]
//	['release', id]
//	['move', id, x, y]
//
// with coordinates divided by the event's precision. Every motion event is
// reported handled; anything else is not.
func (e *Engine) HandleInput(_ *glue.App, ev *glue.InputEvent) bool {
	if ev.Type != glue.EventMotion {
		e.logger.Debug("unhandled input",
			"type", ev.Type, "source", ev.Source, "action", ev.Action, "key", ev.KeyCode)
		return false
	}
	if len(ev.Pointers) > 0 {
		e.state.Value = float32(math.Abs(float64(ev.Pointers[0].X)))
	}
	if ev.Source != glue.SourceTouchscreen {
		return true
	}

	switch ev.Action {
	case glue.ActionDown:
		if len(ev.Pointers) == 0 {
			break
		}
		e.activeID = ev.Pointers[0].ID
		e.press(ev, 0)

	case glue.ActionUp:
		e.addInput("release", e.activeID)
		e.activeID = -1

	case glue.ActionPointerDown:
		idx := ev.PointerIndex
		if idx < 0 || idx >= len(ev.Pointers) {
			break
		}
		e.activeID = ev.Pointers[idx].ID
		e.press(ev, idx)

	case glue.ActionPointerUp:
		idx := ev.PointerIndex
		if idx < 0 || idx >= len(ev.Pointers) {
			break
		}
		id := ev.Pointers[idx].ID
		e.addInput("release", id)
		if id == e.activeID {
			next := 0
			if idx == 0 {
				next = 1
			}
			if next < len(ev.Pointers) {
				e.activeID = ev.Pointers[next].ID
			} else {
				e.activeID = -1
			}
		}

	case glue.ActionMove:
		for i, p := range ev.Pointers {
			x, y := scaled(ev, i)
			e.state.X, e.state.Y = x, y
			e.addInput("move", p.ID, x, y)
		}
	}
	return true
}

func (e *Engine) press(ev *glue.InputEvent, idx int) {
	x, y := scaled(ev, idx)
	e.state.X, e.state.Y = x, y
	e.addInput("pressed", e.activeID, x, y)
}

func (e *Engine) addInput(kind string, id int, coords ...int32) {
	record := []any{kind, id}
	for _, c := range coords {
		record = append(record, c)
	}
	e.call("addInput", record)
}

// scaled returns pointer idx divided by the event precision.
func scaled(ev *glue.InputEvent, idx int) (int32, int32) {
	px, py := ev.XPrecision, ev.YPrecision
	if px == 0 {
		px = 1
	}
	if py == 0 {
		py = 1
	}
	p := ev.Pointers[idx]
	return int32(p.X / px), int32(p.Y / py)
}

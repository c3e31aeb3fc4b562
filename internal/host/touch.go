package host

import "github.com/fedor-rusak/chickpea-android/internal/glue"

// touchTracker turns per-contact begin/move/end notifications into
// Android-style motion events that carry every active pointer.
type touchTracker struct {
	source glue.Source
	order  []int
	pos    map[int]glue.Pointer
}

func newTouchTracker(source glue.Source) *touchTracker {
	return &touchTracker{source: source, pos: make(map[int]glue.Pointer)}
}

// active reports how many contacts are down.
func (t *touchTracker) active() int { return len(t.order) }

func (t *touchTracker) index(id int) int {
	for i, v := range t.order {
		if v == id {
			return i
		}
	}
	return -1
}

func (t *touchTracker) snapshot(action glue.Action, idx int) *glue.InputEvent {
	pointers := make([]glue.Pointer, len(t.order))
	for i, id := range t.order {
		pointers[i] = t.pos[id]
	}
	return &glue.InputEvent{
		Type:         glue.EventMotion,
		Source:       t.source,
		Action:       action,
		PointerIndex: idx,
		Pointers:     pointers,
		XPrecision:   1,
		YPrecision:   1,
	}
}

// begin adds contact id. The first contact produces ActionDown, later ones
// ActionPointerDown. A repeated begin for a known id is treated as a move.
func (t *touchTracker) begin(id int, x, y float32) *glue.InputEvent {
	if t.index(id) >= 0 {
		return t.move(id, x, y)
	}
	t.order = append(t.order, id)
	t.pos[id] = glue.Pointer{ID: id, X: x, Y: y}
	idx := len(t.order) - 1
	if idx == 0 {
		return t.snapshot(glue.ActionDown, 0)
	}
	return t.snapshot(glue.ActionPointerDown, idx)
}

// move updates contact id. Unknown contacts yield nil.
func (t *touchTracker) move(id int, x, y float32) *glue.InputEvent {
	idx := t.index(id)
	if idx < 0 {
		return nil
	}
	t.pos[id] = glue.Pointer{ID: id, X: x, Y: y}
	return t.snapshot(glue.ActionMove, idx)
}

// end lifts contact id. The event still lists the lifted pointer; it is
// removed afterwards. Unknown contacts yield nil.
func (t *touchTracker) end(id int, x, y float32) *glue.InputEvent {
	idx := t.index(id)
	if idx < 0 {
		return nil
	}
	t.pos[id] = glue.Pointer{ID: id, X: x, Y: y}
	action := glue.ActionPointerUp
	if len(t.order) == 1 {
		action = glue.ActionUp
	}
	ev := t.snapshot(action, idx)
	t.order = append(t.order[:idx], t.order[idx+1:]...)
	delete(t.pos, id)
	return ev
}

// cancel drops every contact and reports ActionCancel, or nil if none was
// down.
func (t *touchTracker) cancel() *glue.InputEvent {
	if len(t.order) == 0 {
		return nil
	}
	ev := t.snapshot(glue.ActionCancel, 0)
	t.order = t.order[:0]
	clear(t.pos)
	return ev
}

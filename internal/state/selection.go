package state

import (
	"TouchTracker/internal/geom"
)

// NoSelection is the index reported when no line is selected.
const NoSelection = -1

// SelectionChange describes a selection transition. The UI shows the delete
// menu at Anchor when New is a line index and hides it when New is
// NoSelection.
type SelectionChange struct {
	Old    int
	New    int
	Anchor geom.Point
}

// SelectionController owns the selected line. Changes are queued and handed
// to the caller by Drain so they can be delivered outside the engine lock.
type SelectionController struct {
	shapes  *Shapes
	handle  Handle
	valid   bool
	changes []SelectionChange
}

// NewSelectionController creates a controller over shapes.
func NewSelectionController(shapes *Shapes) *SelectionController {
	return &SelectionController{shapes: shapes}
}

// Selected returns the selected line index. A selection whose line has been
// removed or shifted reads as none.
func (s *SelectionController) Selected() (int, bool) {
	if !s.valid {
		return 0, false
	}
	return s.shapes.Resolve(s.handle)
}

func (s *SelectionController) current() int {
	if i, ok := s.Selected(); ok {
		return i
	}
	return NoSelection
}

// Select makes line i the selection. Out of range indexes clear it.
func (s *SelectionController) Select(i int, anchor geom.Point) {
	h, ok := s.shapes.Handle(i)
	if !ok {
		s.Clear()
		return
	}
	old := s.current()
	s.handle, s.valid = h, true
	if old != i {
		s.changes = append(s.changes, SelectionChange{Old: old, New: i, Anchor: anchor})
	}
}

// Clear drops the selection.
func (s *SelectionController) Clear() {
	old := s.current()
	s.handle, s.valid = Handle{}, false
	if old != NoSelection {
		s.changes = append(s.changes, SelectionChange{Old: old, New: NoSelection})
	}
}

// DeleteSelected removes the selected line and clears the selection. It
// reports false, and does nothing, when nothing is selected.
func (s *SelectionController) DeleteSelected() bool {
	i, ok := s.Selected()
	if !ok {
		s.handle, s.valid = Handle{}, false
		return false
	}
	s.Clear()
	return s.shapes.RemoveLine(i)
}

// Drain returns and forgets the queued changes.
func (s *SelectionController) Drain() []SelectionChange {
	out := s.changes
	s.changes = nil
	return out
}

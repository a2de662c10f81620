package state

import (
	"TouchTracker/internal/geom"
	"TouchTracker/internal/shape"
)

// Handle is a weak reference to a finished line: its index plus the store
// generation it was taken under.
type Handle struct {
	Index int
	Gen   uint64
}

// Shapes is the ordered set of finished shapes. Insertion order is z-order
// and the index space for selection.
type Shapes struct {
	lines   []shape.LineSegment
	circles []shape.Circle
	gen     Generation
}

// NewShapes creates an empty store.
func NewShapes() *Shapes {
	return &Shapes{}
}

// AppendLines adds finished lines on top.
func (s *Shapes) AppendLines(lines ...shape.LineSegment) {
	s.lines = append(s.lines, lines...)
}

// AppendCircles adds finished circles on top.
func (s *Shapes) AppendCircles(circles ...shape.Circle) {
	s.circles = append(s.circles, circles...)
}

// Lines returns a copy of the finished lines.
func (s *Shapes) Lines() []shape.LineSegment {
	out := make([]shape.LineSegment, len(s.lines))
	for i, l := range s.lines {
		out[i] = l.Clone()
	}
	return out
}

// Circles returns a copy of the finished circles.
func (s *Shapes) Circles() []shape.Circle {
	out := make([]shape.Circle, len(s.circles))
	copy(out, s.circles)
	return out
}

// LineCount returns the number of finished lines.
func (s *Shapes) LineCount() int {
	return len(s.lines)
}

// Line returns the line at index i.
func (s *Shapes) Line(i int) (shape.LineSegment, bool) {
	if i < 0 || i >= len(s.lines) {
		return shape.LineSegment{}, false
	}
	return s.lines[i], true
}

// TranslateLine moves the line at i by v.
func (s *Shapes) TranslateLine(i int, v geom.Vec) bool {
	if i < 0 || i >= len(s.lines) {
		return false
	}
	s.lines[i] = s.lines[i].Translate(v)
	return true
}

// RemoveLine deletes the line at i. Later lines shift down, so the
// generation advances and every outstanding handle goes stale.
func (s *Shapes) RemoveLine(i int) bool {
	if i < 0 || i >= len(s.lines) {
		return false
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.gen.Tick()
	return true
}

// ClearLines removes every finished line. Circles are kept.
func (s *Shapes) ClearLines() {
	s.lines = nil
	s.gen.Tick()
}

// Handle returns a weak reference to line i.
func (s *Shapes) Handle(i int) (Handle, bool) {
	if i < 0 || i >= len(s.lines) {
		return Handle{}, false
	}
	return Handle{Index: i, Gen: s.gen.Current()}, true
}

// Resolve returns the index h refers to, if it is still current.
func (s *Shapes) Resolve(h Handle) (int, bool) {
	if h.Gen != s.gen.Current() || h.Index < 0 || h.Index >= len(s.lines) {
		return 0, false
	}
	return h.Index, true
}

package pointer

import (
	"TouchTracker/internal/geom"
	"TouchTracker/internal/shape"
)

// Mode is the tracker's gesture state.
type Mode int

const (
	// ModeIdle: no pointer is down.
	ModeIdle Mode = iota
	// ModeSingleTouches: each active pointer drives its own line.
	ModeSingleTouches
	// ModeTwoFingerCircle: two or more pointers are down. The first two
	// drive the current circle until a release completes it.
	ModeTwoFingerCircle
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeSingleTouches:
		return "single"
	case ModeTwoFingerCircle:
		return "circle"
	}
	return "unknown"
}

// Finalizer turns an in-progress line into a finished one.
type Finalizer func(shape.LineSegment) shape.LineSegment

// Finished holds the shapes completed by a batch of releases.
type Finished struct {
	Lines   []shape.LineSegment
	Circles []shape.Circle
}

// Empty reports whether nothing was finished.
func (f Finished) Empty() bool {
	return len(f.Lines) == 0 && len(f.Circles) == 0
}

type active struct {
	seq   uint64
	point geom.Point
}

type circleGesture struct {
	a, b   ID
	circle shape.Circle
}

// Tracker maps live pointers to in-progress shapes. The circle branch is
// chosen from the number of concurrently active pointers, never by pairing
// identities. Tracker is not safe for concurrent use.
type Tracker struct {
	mode    Mode
	seq     uint64
	active  map[ID]*active
	lines   map[ID]shape.LineSegment
	current *circleGesture
}

// NewTracker creates an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{
		active: make(map[ID]*active),
		lines:  make(map[ID]shape.LineSegment),
	}
}

// Mode returns the current gesture state.
func (t *Tracker) Mode() Mode {
	return t.mode
}

// ActiveCount returns the number of pointers currently down.
func (t *Tracker) ActiveCount() int {
	return len(t.active)
}

// Lines returns a copy of the in-progress lines.
func (t *Tracker) Lines() map[ID]shape.LineSegment {
	out := make(map[ID]shape.LineSegment, len(t.lines))
	for id, l := range t.lines {
		out[id] = l
	}
	return out
}

// Line returns the in-progress line of id.
func (t *Tracker) Line(id ID) (shape.LineSegment, bool) {
	l, ok := t.lines[id]
	return l, ok
}

// Circle returns the current circle, if two pointers are drawing one.
func (t *Tracker) Circle() (shape.Circle, bool) {
	if t.current == nil {
		return shape.Circle{}, false
	}
	return t.current.circle, true
}

// Began registers new contacts. Each one starts a line; when the batch
// leaves two or more pointers down and no circle exists, the first two
// active pointers start the circle.
func (t *Tracker) Began(batch []Contact) {
	for _, c := range batch {
		if _, ok := t.active[c.ID]; ok {
			continue
		}
		t.seq++
		t.active[c.ID] = &active{seq: t.seq, point: c.Point}
		t.lines[c.ID] = shape.NewLine(c.Point)
	}
	if len(t.active) >= 2 && t.current == nil {
		a, b := t.firstTwo()
		t.current = &circleGesture{
			a:      a,
			b:      b,
			circle: shape.NewCircle(t.active[a].point, t.active[b].point),
		}
	}
	t.updateMode()
}

// Moved updates positions. In circle mode only the radius changes;
// otherwise each moved pointer's line end follows it.
func (t *Tracker) Moved(batch []Contact) {
	for _, c := range batch {
		if a, ok := t.active[c.ID]; ok {
			a.point = c.Point
		}
	}
	if t.mode == ModeTwoFingerCircle {
		t.updateRadius()
		return
	}
	for _, c := range batch {
		if _, ok := t.active[c.ID]; !ok {
			continue
		}
		if l, ok := t.lines[c.ID]; ok {
			l.End = c.Point
			t.lines[c.ID] = l
		}
	}
}

// Ended releases contacts in batch order and returns what they finished.
// A release while two or more pointers are down completes the circle and
// supersedes the lines of the released and circle pointers. A release of the
// only pointer finalizes its line.
func (t *Tracker) Ended(batch []Contact, finalize Finalizer) Finished {
	var done Finished
	for _, c := range batch {
		a, ok := t.active[c.ID]
		if !ok {
			continue
		}
		a.point = c.Point
		if len(t.active) >= 2 {
			if t.current != nil {
				t.updateRadius()
				done.Circles = append(done.Circles, t.current.circle)
				delete(t.lines, t.current.a)
				delete(t.lines, t.current.b)
				t.current = nil
			}
			delete(t.lines, c.ID)
		} else if l, ok := t.lines[c.ID]; ok {
			l.End = c.Point
			if finalize != nil {
				l = finalize(l)
			}
			done.Lines = append(done.Lines, l)
			delete(t.lines, c.ID)
		}
		delete(t.active, c.ID)
	}
	t.updateMode()
	return done
}

// Cancel discards every in-progress shape and forgets all pointers.
func (t *Tracker) Cancel() {
	clear(t.active)
	clear(t.lines)
	t.current = nil
	t.updateMode()
}

// CancelPointers forgets the given pointers and drops their lines. The
// circle is dropped only when one of its two pointers is cancelled. It
// reports whether any of the pointers was active.
func (t *Tracker) CancelPointers(ids []ID) bool {
	cancelled := false
	for _, id := range ids {
		if _, ok := t.active[id]; !ok {
			continue
		}
		cancelled = true
		delete(t.active, id)
		delete(t.lines, id)
		if t.current != nil && (t.current.a == id || t.current.b == id) {
			t.current = nil
		}
	}
	t.updateMode()
	return cancelled
}

// DiscardLines drops the in-progress lines but keeps pointers and the circle.
func (t *Tracker) DiscardLines() {
	clear(t.lines)
}

func (t *Tracker) updateRadius() {
	if t.current == nil {
		return
	}
	t.current.circle.Radius = geom.Distance(t.active[t.current.a].point, t.active[t.current.b].point)
}

// firstTwo returns the two active pointers that began earliest.
func (t *Tracker) firstTwo() (ID, ID) {
	var first, second ID
	var s1, s2 uint64
	for id, a := range t.active {
		switch {
		case s1 == 0 || a.seq < s1:
			second, s2 = first, s1
			first, s1 = id, a.seq
		case s2 == 0 || a.seq < s2:
			second, s2 = id, a.seq
		}
	}
	return first, second
}

func (t *Tracker) updateMode() {
	switch {
	case len(t.active) >= 2:
		t.mode = ModeTwoFingerCircle
	case len(t.active) == 1:
		t.mode = ModeSingleTouches
	default:
		t.mode = ModeIdle
	}
}

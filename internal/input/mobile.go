// Package input adapts platform touch events to the drawing engine.
package input

import (
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"TouchTracker/internal/geom"
	"TouchTracker/internal/pointer"
)

// Sink receives pointer batches. *state.Board satisfies it.
type Sink interface {
	PointerBegan([]pointer.Contact)
	PointerMoved([]pointer.Contact)
	PointerEnded([]pointer.Contact)
	GestureCancelled()
}

// MobileTouches translates golang.org/x/mobile touch events. Events are
// collected with Add and delivered per frame by Flush, grouped by type in
// arrival order, so concurrent fingers that moved in the same frame arrive
// as one batch. MobileTouches must be used from the app's event loop only.
type MobileTouches struct {
	sink  Sink
	scale float64
	ids   *pointer.Registry[touch.Sequence]

	began, moved, ended []pointer.Contact
}

// NewMobileTouches creates an adapter. scale converts window pixels to board
// units; zero means 1.
func NewMobileTouches(sink Sink, scale float64) *MobileTouches {
	if scale == 0 {
		scale = 1
	}
	return &MobileTouches{
		sink:  sink,
		scale: scale,
		ids:   pointer.NewRegistry[touch.Sequence](),
	}
}

// Add queues one touch event.
func (m *MobileTouches) Add(e touch.Event) {
	p := geom.Pt(float64(e.X)/m.scale, float64(e.Y)/m.scale)
	switch e.Type {
	case touch.TypeBegin:
		if _, ok := m.ids.Lookup(e.Sequence); ok {
			return
		}
		m.began = append(m.began, pointer.Contact{ID: m.ids.Begin(e.Sequence), Point: p})
	case touch.TypeMove:
		if id, ok := m.ids.Lookup(e.Sequence); ok {
			m.moved = append(m.moved, pointer.Contact{ID: id, Point: p})
		}
	case touch.TypeEnd:
		if id, ok := m.ids.End(e.Sequence); ok {
			m.ended = append(m.ended, pointer.Contact{ID: id, Point: p})
		}
	}
}

// Flush delivers the queued batches: began, then moved, then ended.
func (m *MobileTouches) Flush() {
	began, moved, ended := m.began, m.moved, m.ended
	m.began, m.moved, m.ended = nil, nil, nil
	if len(began) > 0 {
		m.sink.PointerBegan(began)
	}
	if len(moved) > 0 {
		m.sink.PointerMoved(moved)
	}
	if len(ended) > 0 {
		m.sink.PointerEnded(ended)
	}
}

// Lost cancels the gesture, e.g. when the app loses focus mid-stroke.
func (m *MobileTouches) Lost() {
	m.began, m.moved, m.ended = nil, nil, nil
	m.ids.Reset()
	m.sink.GestureCancelled()
}

// Lifecycle cancels the gesture when the app stops being focused. It
// reports whether touches were dropped.
func (m *MobileTouches) Lifecycle(e lifecycle.Event) bool {
	if e.Crosses(lifecycle.StageFocused) != lifecycle.CrossOff {
		return false
	}
	had := m.ids.Len() > 0 || len(m.began) > 0
	m.Lost()
	return had
}

// Resize maps touches in pixels onto a board measured in points.
func (m *MobileTouches) Resize(e size.Event) {
	if e.PixelsPerPt > 0 {
		m.scale = float64(e.PixelsPerPt)
	}
}

// Active returns the number of touches currently down.
func (m *MobileTouches) Active() int {
	return m.ids.Len()
}

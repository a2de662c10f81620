package net

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"TouchTracker/internal/geom"
	"TouchTracker/internal/pointer"
	"TouchTracker/internal/shape"
	"TouchTracker/internal/state"
)

// ErrUnknownMessage is returned for a message type the host does not handle.
var ErrUnknownMessage = errors.New("unknown message type")

// Message types sent by clients.
const (
	MsgBegan        = "began"
	MsgMoved        = "moved"
	MsgEnded        = "ended"
	MsgCancel       = "cancel"
	MsgTap          = "tap"
	MsgDoubleTap    = "doubletap"
	MsgLongPress    = "longpress"
	MsgLongPressEnd = "longpressend"
	MsgPanBegan     = "panbegan"
	MsgPan          = "pan"
	MsgVelocity     = "velocity"
	MsgPanEnd       = "panend"
	MsgDelete       = "delete"

	MsgSnapshot = "snapshot"
)

// WirePointer is one contact as a client reports it. IDs are the client's
// own and only need to be unique per connection.
type WirePointer struct {
	ID int64   `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Message is an input event from a client.
type Message struct {
	Type     string        `json:"type"`
	Pointers []WirePointer `json:"pointers,omitempty"`
	X        float64       `json:"x,omitempty"`
	Y        float64       `json:"y,omitempty"`
	DX       float64       `json:"dx,omitempty"`
	DY       float64       `json:"dy,omitempty"`
	VX       float64       `json:"vx,omitempty"`
	VY       float64       `json:"vy,omitempty"`
}

// WireLine is a line in a snapshot. Color is "#rrggbb"; in-progress lines
// have no style.
type WireLine struct {
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	X2        float64 `json:"x2"`
	Y2        float64 `json:"y2"`
	Thickness float64 `json:"thickness,omitempty"`
	Color     string  `json:"color,omitempty"`
}

type WireCircle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// SnapshotMessage is the renderer view broadcast after every change.
type SnapshotMessage struct {
	Type          string       `json:"type"`
	Lines         []WireLine   `json:"lines"`
	Circles       []WireCircle `json:"circles"`
	InProgress    []WireLine   `json:"in_progress"`
	CurrentCircle *WireCircle  `json:"current_circle,omitempty"`
	Selected      int          `json:"selected"`
	Thickness     float64      `json:"thickness"`
	Mode          string       `json:"mode"`
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func wireLine(l shape.LineSegment) WireLine {
	w := WireLine{X1: l.Begin.X, Y1: l.Begin.Y, X2: l.End.X, Y2: l.End.Y}
	if l.Style != nil {
		w.Thickness = l.Style.Thickness
		w.Color = hexColor(l.Style.Color)
	}
	return w
}

func wireCircle(c shape.Circle) WireCircle {
	return WireCircle{X: c.Center.X, Y: c.Center.Y, Radius: c.Radius}
}

// NewSnapshotMessage converts an engine snapshot for the wire. In-progress
// lines are ordered by pointer id so output is stable.
func NewSnapshotMessage(s state.Snapshot) SnapshotMessage {
	msg := SnapshotMessage{
		Type:       MsgSnapshot,
		Lines:      make([]WireLine, 0, len(s.FinishedLines)),
		Circles:    make([]WireCircle, 0, len(s.FinishedCircles)),
		InProgress: make([]WireLine, 0, len(s.InProgress)),
		Selected:   s.Selected,
		Thickness:  s.Thickness,
		Mode:       s.Mode.String(),
	}
	for _, l := range s.FinishedLines {
		msg.Lines = append(msg.Lines, wireLine(l))
	}
	for _, c := range s.FinishedCircles {
		msg.Circles = append(msg.Circles, wireCircle(c))
	}
	ids := make([]pointer.ID, 0, len(s.InProgress))
	for id := range s.InProgress {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	for _, id := range ids {
		msg.InProgress = append(msg.InProgress, wireLine(s.InProgress[id]))
	}
	if s.CurrentCircle != nil {
		c := wireCircle(*s.CurrentCircle)
		msg.CurrentCircle = &c
	}
	return msg
}

// Controller is the part of the engine a remote client can drive.
// *state.Board satisfies it.
type Controller interface {
	PointerBegan([]pointer.Contact)
	PointerMoved([]pointer.Contact)
	PointerEnded([]pointer.Contact)
	PointerCancelled([]pointer.ID)
	Tap(geom.Point)
	DoubleTap()
	LongPressBegan(geom.Point)
	LongPressEnded()
	PanBegan(geom.Point)
	PanChanged(geom.Vec)
	PanVelocity(geom.Vec)
	PanEnded()
	DeleteSelected()
}

// session maps one client's pointer ids to engine identities.
type session struct {
	ids *pointer.Registry[int64]
}

func newSession() *session {
	return &session{ids: pointer.NewRegistry[int64]()}
}

// apply dispatches msg to c.
func (s *session) apply(c Controller, msg Message) error {
	at := geom.Pt(msg.X, msg.Y)
	switch msg.Type {
	case MsgBegan:
		batch := make([]pointer.Contact, 0, len(msg.Pointers))
		for _, p := range msg.Pointers {
			if _, ok := s.ids.Lookup(p.ID); ok {
				continue
			}
			batch = append(batch, pointer.Contact{ID: s.ids.Begin(p.ID), Point: geom.Pt(p.X, p.Y)})
		}
		c.PointerBegan(batch)
	case MsgMoved:
		batch := make([]pointer.Contact, 0, len(msg.Pointers))
		for _, p := range msg.Pointers {
			if id, ok := s.ids.Lookup(p.ID); ok {
				batch = append(batch, pointer.Contact{ID: id, Point: geom.Pt(p.X, p.Y)})
			}
		}
		c.PointerMoved(batch)
	case MsgEnded:
		batch := make([]pointer.Contact, 0, len(msg.Pointers))
		for _, p := range msg.Pointers {
			if id, ok := s.ids.End(p.ID); ok {
				batch = append(batch, pointer.Contact{ID: id, Point: geom.Pt(p.X, p.Y)})
			}
		}
		c.PointerEnded(batch)
	case MsgCancel:
		c.PointerCancelled(s.ids.Reset())
	case MsgTap:
		c.Tap(at)
	case MsgDoubleTap:
		c.DoubleTap()
	case MsgLongPress:
		c.LongPressBegan(at)
	case MsgLongPressEnd:
		c.LongPressEnded()
	case MsgPanBegan:
		c.PanBegan(at)
	case MsgPan:
		c.PanChanged(geom.Vec{X: msg.DX, Y: msg.DY})
	case MsgVelocity:
		c.PanVelocity(geom.Vec{X: msg.VX, Y: msg.VY})
	case MsgPanEnd:
		c.PanEnded()
	case MsgDelete:
		c.DeleteSelected()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}

// abandon cancels the pointers the client left down. Other clients'
// strokes are untouched.
func (s *session) abandon(c Controller) bool {
	if s.ids.Len() == 0 {
		return false
	}
	c.PointerCancelled(s.ids.Reset())
	return true
}

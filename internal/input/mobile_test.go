package input

import (
	"math"
	"testing"

	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"TouchTracker/internal/geom"
	"TouchTracker/internal/state"
)

func TestMobileSingleFinger(t *testing.T) {
	b := state.NewBoard(state.DefaultOptions())
	m := NewMobileTouches(b, 2)

	m.Add(touch.Event{X: 0, Y: 0, Sequence: 1, Type: touch.TypeBegin})
	m.Flush()
	m.Add(touch.Event{X: 100, Y: 40, Sequence: 1, Type: touch.TypeMove})
	m.Flush()
	m.Add(touch.Event{X: 200, Y: 80, Sequence: 1, Type: touch.TypeEnd})
	m.Flush()

	snap := b.Snapshot()
	if len(snap.FinishedLines) != 1 {
		t.Fatalf("lines = %d", len(snap.FinishedLines))
	}
	if got := snap.FinishedLines[0].End; got != geom.Pt(100, 40) {
		t.Fatalf("end = %v", got)
	}
	if m.Active() != 0 {
		t.Fatalf("active = %d", m.Active())
	}
}

func TestMobileTwoFingersInOneFrame(t *testing.T) {
	b := state.NewBoard(state.DefaultOptions())
	m := NewMobileTouches(b, 1)

	m.Add(touch.Event{X: 0, Y: 0, Sequence: 1, Type: touch.TypeBegin})
	m.Add(touch.Event{X: 10, Y: 0, Sequence: 2, Type: touch.TypeBegin})
	m.Flush()
	m.Add(touch.Event{X: 10, Y: 10, Sequence: 2, Type: touch.TypeMove})
	m.Flush()

	snap := b.Snapshot()
	if snap.CurrentCircle == nil || snap.CurrentCircle.Center != geom.Pt(5, 0) {
		t.Fatalf("circle = %+v", snap.CurrentCircle)
	}

	m.Add(touch.Event{X: 0, Y: 0, Sequence: 1, Type: touch.TypeEnd})
	m.Add(touch.Event{X: 10, Y: 10, Sequence: 2, Type: touch.TypeEnd})
	m.Flush()

	snap = b.Snapshot()
	if len(snap.FinishedCircles) != 1 || len(snap.FinishedLines) != 0 {
		t.Fatalf("circles %d, lines %d", len(snap.FinishedCircles), len(snap.FinishedLines))
	}
	if r := snap.FinishedCircles[0].Radius; math.Abs(r-math.Hypot(10, 10)) > 1e-9 {
		t.Fatalf("radius = %v", r)
	}
}

func TestMobileSequenceReuseGetsNewIdentity(t *testing.T) {
	b := state.NewBoard(state.DefaultOptions())
	m := NewMobileTouches(b, 1)

	for i := 0; i < 2; i++ {
		m.Add(touch.Event{X: 0, Y: float32(i * 100), Sequence: 7, Type: touch.TypeBegin})
		m.Add(touch.Event{X: 50, Y: float32(i * 100), Sequence: 7, Type: touch.TypeEnd})
		m.Flush()
	}
	if got := len(b.Snapshot().FinishedLines); got != 2 {
		t.Fatalf("lines = %d", got)
	}
}

func TestMobileLostCancels(t *testing.T) {
	b := state.NewBoard(state.DefaultOptions())
	m := NewMobileTouches(b, 1)

	m.Add(touch.Event{X: 0, Y: 0, Sequence: 1, Type: touch.TypeBegin})
	m.Flush()
	m.Add(touch.Event{X: 30, Y: 0, Sequence: 1, Type: touch.TypeMove})
	m.Lost()
	m.Add(touch.Event{X: 30, Y: 0, Sequence: 1, Type: touch.TypeEnd})
	m.Flush()

	snap := b.Snapshot()
	if !snap.Empty() {
		t.Fatalf("snapshot not empty after lost focus: %+v", snap)
	}
}

func TestMobileFocusLossCancels(t *testing.T) {
	b := state.NewBoard(state.DefaultOptions())
	m := NewMobileTouches(b, 1)

	if m.Lifecycle(lifecycle.Event{From: lifecycle.StageVisible, To: lifecycle.StageFocused}) {
		t.Fatal("gaining focus reported dropped touches")
	}
	m.Add(touch.Event{X: 0, Y: 0, Sequence: 1, Type: touch.TypeBegin})
	m.Flush()
	m.Add(touch.Event{X: 30, Y: 0, Sequence: 1, Type: touch.TypeMove})
	m.Flush()

	if !m.Lifecycle(lifecycle.Event{From: lifecycle.StageFocused, To: lifecycle.StageVisible}) {
		t.Fatal("focus loss with a finger down dropped nothing")
	}
	if !b.Snapshot().Empty() || m.Active() != 0 {
		t.Fatal("focus loss left the stroke")
	}
}

func TestMobileResizeScalesToPoints(t *testing.T) {
	b := state.NewBoard(state.DefaultOptions())
	m := NewMobileTouches(b, 1)
	m.Resize(size.Event{WidthPx: 800, HeightPx: 600, PixelsPerPt: 2})

	m.Add(touch.Event{X: 20, Y: 40, Sequence: 1, Type: touch.TypeBegin})
	m.Add(touch.Event{X: 220, Y: 40, Sequence: 1, Type: touch.TypeEnd})
	m.Flush()

	snap := b.Snapshot()
	if len(snap.FinishedLines) != 1 {
		t.Fatalf("lines = %d", len(snap.FinishedLines))
	}
	l := snap.FinishedLines[0]
	if l.Begin != geom.Pt(10, 20) || l.End != geom.Pt(110, 20) {
		t.Fatalf("line = %v -> %v", l.Begin, l.End)
	}
}

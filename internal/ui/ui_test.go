package ui

import (
	"image/color"
	"math"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"TouchTracker/internal/config"
	"TouchTracker/internal/geom"
	"TouchTracker/internal/pointer"
	"TouchTracker/internal/shape"
	"TouchTracker/internal/state"
)

func newTestWidget(t *testing.T) (*BoardWidget, *state.Board) {
	t.Helper()
	test.NewTempApp(t)
	engine := state.NewBoard(state.DefaultOptions())
	return NewBoardWidget(engine), engine
}

func mouse(x, y float32, button desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     button,
	}
}

func drag(x, y, dx, dy float32) *fyne.DragEvent {
	return &fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Dragged:    fyne.NewDelta(dx, dy),
	}
}

func strokeWith(b *BoardWidget, x1, y1, x2, y2 float32) {
	b.MouseDown(mouse(x1, y1, desktop.MouseButtonPrimary))
	b.Dragged(drag((x1+x2)/2, (y1+y2)/2, (x2-x1)/2, (y2-y1)/2))
	b.Dragged(drag(x2, y2, (x2-x1)/2, (y2-y1)/2))
	b.MouseUp(mouse(x2, y2, desktop.MouseButtonPrimary))
	b.DragEnd()
}

func TestDrawToolFinishesLine(t *testing.T) {
	b, engine := newTestWidget(t)

	b.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	b.Dragged(drag(60, 10, 50, 0))
	if n := len(engine.Snapshot().InProgress); n != 1 {
		t.Fatalf("in progress = %d", n)
	}
	b.MouseUp(mouse(110, 10, desktop.MouseButtonPrimary))
	b.DragEnd()

	snap := engine.Snapshot()
	if len(snap.FinishedLines) != 1 || len(snap.InProgress) != 0 {
		t.Fatalf("finished %d, in progress %d", len(snap.FinishedLines), len(snap.InProgress))
	}
	l := snap.FinishedLines[0]
	if l.Begin != geom.Pt(10, 10) || l.End != geom.Pt(110, 10) {
		t.Fatalf("line = %v -> %v", l.Begin, l.End)
	}
}

func TestClickWithoutMoveIsATap(t *testing.T) {
	b, engine := newTestWidget(t)
	strokeWith(b, 0, 50, 100, 50)

	b.MouseDown(mouse(50, 52, desktop.MouseButtonPrimary))
	b.MouseUp(mouse(50, 52, desktop.MouseButtonPrimary))
	b.Tapped(&fyne.PointEvent{Position: fyne.NewPos(50, 52)})

	snap := engine.Snapshot()
	if len(snap.FinishedLines) != 1 {
		t.Fatalf("click drew a line: %d", len(snap.FinishedLines))
	}
	if snap.Selected != 0 {
		t.Fatalf("selected = %d", snap.Selected)
	}
}

func TestClickKeepsRemoteStroke(t *testing.T) {
	b, engine := newTestWidget(t)
	remote := pointer.NewID()
	engine.PointerBegan([]pointer.Contact{{ID: remote, Point: geom.Pt(0, 200)}})
	engine.PointerMoved([]pointer.Contact{{ID: remote, Point: geom.Pt(80, 200)}})

	b.MouseDown(mouse(5, 5, desktop.MouseButtonPrimary))
	b.MouseUp(mouse(5, 5, desktop.MouseButtonPrimary))

	snap := engine.Snapshot()
	if _, ok := snap.InProgress[remote]; !ok || len(snap.InProgress) != 1 {
		t.Fatalf("in progress = %v", snap.InProgress)
	}
}

func TestDragEndWithoutMouseUp(t *testing.T) {
	b, engine := newTestWidget(t)

	b.MouseDown(mouse(0, 0, desktop.MouseButtonPrimary))
	b.Dragged(drag(0, 30, 0, 30))
	b.DragEnd()
	b.MouseUp(mouse(500, 500, desktop.MouseButtonPrimary))

	snap := engine.Snapshot()
	if len(snap.FinishedLines) != 1 {
		t.Fatalf("finished = %d", len(snap.FinishedLines))
	}
	if got := snap.FinishedLines[0].End; got != geom.Pt(0, 30) {
		t.Fatalf("end = %v", got)
	}
}

func TestMoveToolDragsSelectedLine(t *testing.T) {
	b, engine := newTestWidget(t)
	strokeWith(b, 0, 50, 100, 50)
	b.Tapped(&fyne.PointEvent{Position: fyne.NewPos(50, 50)})

	clock := time.Unix(0, 0)
	b.now = func() time.Time {
		clock = clock.Add(10 * time.Millisecond)
		return clock
	}
	b.SetTool(ToolMove)
	b.Dragged(drag(50, 60, 0, 10))
	b.Dragged(drag(50, 70, 0, 10))
	b.DragEnd()

	snap := engine.Snapshot()
	if got := snap.FinishedLines[0].Begin; got != geom.Pt(0, 70) {
		t.Fatalf("begin = %v", got)
	}
	if snap.Selected != 0 {
		t.Fatalf("selected = %d", snap.Selected)
	}
}

func TestMoveToolSetsThicknessFromSpeed(t *testing.T) {
	b, engine := newTestWidget(t)
	clock := time.Unix(0, 0)
	b.now = func() time.Time {
		clock = clock.Add(100 * time.Millisecond)
		return clock
	}
	b.SetTool(ToolMove)
	b.Dragged(drag(10, 10, 0, 0))
	b.Dragged(drag(10, 20, 0, 10))
	b.DragEnd()

	// 10 px in 0.1 s is 100 px/s.
	if th := engine.Thickness(); math.Abs(th-10) > 1e-9 {
		t.Fatalf("thickness = %v", th)
	}
}

func TestSecondaryButtonLongPress(t *testing.T) {
	b, engine := newTestWidget(t)
	strokeWith(b, 0, 50, 100, 50)

	b.MouseDown(mouse(10, 50, desktop.MouseButtonSecondary))
	if sel, ok := engine.Selected(); !ok || sel != 0 {
		t.Fatalf("long press did not select: %d %v", sel, ok)
	}
	b.MouseUp(mouse(10, 50, desktop.MouseButtonSecondary))
	if _, ok := engine.Selected(); ok {
		t.Fatal("long press end kept the selection")
	}
}

func TestDoubleTapClearsLines(t *testing.T) {
	b, engine := newTestWidget(t)
	strokeWith(b, 0, 0, 50, 50)
	b.DoubleTapped(&fyne.PointEvent{})
	if n := len(engine.Snapshot().FinishedLines); n != 0 {
		t.Fatalf("lines = %d", n)
	}
}

func TestSwitchingToolCancelsStroke(t *testing.T) {
	b, engine := newTestWidget(t)
	b.MouseDown(mouse(0, 0, desktop.MouseButtonPrimary))
	b.Dragged(drag(0, 30, 0, 30))
	b.SetTool(ToolMove)
	if !engine.Snapshot().Empty() {
		t.Fatal("tool switch left the stroke")
	}
	if b.Tool() != ToolMove {
		t.Fatalf("tool = %v", b.Tool())
	}
}

func TestRendererBuildsShapes(t *testing.T) {
	b, engine := newTestWidget(t)
	strokeWith(b, 0, 0, 100, 0)

	r := test.WidgetRenderer(b)
	r.Refresh()
	// background plus one line
	if n := len(r.Objects()); n != 2 {
		t.Fatalf("objects = %d", n)
	}
}

func TestBuildColors(t *testing.T) {
	if objs := build(state.Snapshot{Selected: state.NoSelection}); len(objs) != 0 {
		t.Fatalf("empty snapshot built %d objects", len(objs))
	}

	blue := color.RGBA{B: 255, A: 255}
	styled := func(x float64) shape.LineSegment {
		return shape.LineSegment{Begin: geom.Pt(x, 0), End: geom.Pt(x, 10), Style: &shape.Style{Thickness: 3, Color: blue}}
	}
	s := state.Snapshot{
		FinishedLines:   []shape.LineSegment{styled(0), styled(20)},
		FinishedCircles: []shape.Circle{{Center: geom.Pt(5, 5), Radius: 5}},
		InProgress:      map[pointer.ID]shape.LineSegment{pointer.NewID(): shape.NewLine(geom.Pt(1, 1))},
		CurrentCircle:   &shape.Circle{Center: geom.Pt(50, 50), Radius: 10},
		Selected:        1,
		Thickness:       7,
	}
	objs := build(s)
	if len(objs) != 5 {
		t.Fatalf("objects = %d", len(objs))
	}
	if c := objs[0].(*canvas.Line).StrokeColor; c != color.Color(blue) {
		t.Errorf("finished color = %v", c)
	}
	if c := objs[1].(*canvas.Line).StrokeColor; c != color.Color(selectedColor) {
		t.Errorf("selected color = %v", c)
	}
	progress := objs[2].(*canvas.Line)
	if progress.StrokeColor != color.Color(inProgressColor) || progress.StrokeWidth != 7 {
		t.Errorf("in-progress line = %v width %v", progress.StrokeColor, progress.StrokeWidth)
	}
	current := objs[4].(*canvas.Circle)
	if current.Position1 != fyne.NewPos(40, 40) || current.Position2 != fyne.NewPos(60, 60) {
		t.Errorf("circle box = %v %v", current.Position1, current.Position2)
	}
}

func TestAppChangedUpdatesThickness(t *testing.T) {
	fa := test.NewTempApp(t)
	engine := state.NewBoard(state.DefaultOptions())
	a := newApp(fa, engine, Options{ShareLink: "ws://127.0.0.1:8888/ws", Export: config.Default().Export})
	engine.OnChange = a.Changed

	engine.PanBegan(geom.Pt(0, 0))
	engine.PanVelocity(geom.Vec{X: 0, Y: 16})
	engine.PanEnded()

	if got := a.thickness.Text; got != "Thickness: 4.0" {
		t.Fatalf("label = %q", got)
	}
	if got := a.status.Text; got != "Share: ws://127.0.0.1:8888/ws" {
		t.Fatalf("status = %q", got)
	}
}

func TestWithExt(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"/tmp/board", "/tmp/board.pdf"},
		{"/tmp/board.pdf", "/tmp/board.pdf"},
		{"/tmp/board.PDF", "/tmp/board.PDF"},
	} {
		if got := withExt(tc.in, ".pdf"); got != tc.want {
			t.Errorf("withExt(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

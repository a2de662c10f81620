package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"TouchTracker/internal/geom"
	"TouchTracker/internal/pointer"
	"TouchTracker/internal/state"
)

// Tool selects what a primary-button drag does.
type Tool int

const (
	// ToolDraw turns a drag into one pointer of the engine.
	ToolDraw Tool = iota
	// ToolMove turns a drag into a pan gesture.
	ToolMove
)

func (t Tool) String() string {
	if t == ToolMove {
		return "Move"
	}
	return "Draw"
}

// BoardWidget shows the engine snapshot and feeds mouse input to it.
type BoardWidget struct {
	widget.BaseWidget
	engine *state.Board

	mu   sync.Mutex
	tool Tool

	// draw tool
	drawing bool
	moved   bool
	id      pointer.ID
	last    geom.Point

	// move tool
	panning  bool
	lastDrag time.Time
	now      func() time.Time

	menu *widget.PopUpMenu
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Tappable = (*BoardWidget)(nil)
var _ fyne.DoubleTappable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

// NewBoardWidget creates a widget over engine.
func NewBoardWidget(engine *state.Board) *BoardWidget {
	b := &BoardWidget{engine: engine, now: time.Now}
	b.ExtendBaseWidget(b)
	return b
}

// SetTool switches the drag behaviour. A stroke in progress is cancelled.
func (b *BoardWidget) SetTool(t Tool) {
	b.mu.Lock()
	wasDrawing, id := b.drawing, b.id
	b.tool, b.drawing, b.panning = t, false, false
	b.mu.Unlock()
	if wasDrawing {
		b.engine.PointerCancelled([]pointer.ID{id})
	}
}

// Tool returns the active tool.
func (b *BoardWidget) Tool() Tool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tool
}

func toPoint(p fyne.Position) geom.Point {
	return geom.Pt(float64(p.X), float64(p.Y))
}

func toPos(p geom.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	p := toPoint(e.Position)
	switch e.Button {
	case desktop.MouseButtonPrimary:
		b.mu.Lock()
		if b.tool != ToolDraw || b.drawing {
			b.mu.Unlock()
			return
		}
		b.drawing, b.moved = true, false
		b.id, b.last = pointer.NewID(), p
		id := b.id
		b.mu.Unlock()
		b.engine.PointerBegan([]pointer.Contact{{ID: id, Point: p}})
	case desktop.MouseButtonSecondary:
		b.engine.LongPressBegan(p)
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	switch e.Button {
	case desktop.MouseButtonPrimary:
		b.finishStroke(toPoint(e.Position))
	case desktop.MouseButtonSecondary:
		b.engine.LongPressEnded()
	}
}

// finishStroke ends the mouse pointer. A press that never moved is left to
// the tap handlers, so its line is dropped.
func (b *BoardWidget) finishStroke(p geom.Point) {
	b.mu.Lock()
	if !b.drawing {
		b.mu.Unlock()
		return
	}
	b.drawing = false
	moved, id := b.moved, b.id
	b.mu.Unlock()

	if !moved {
		b.engine.PointerCancelled([]pointer.ID{id})
		return
	}
	b.engine.PointerEnded([]pointer.Contact{{ID: id, Point: p}})
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	p := toPoint(e.Position)
	delta := geom.Vec{X: float64(e.Dragged.DX), Y: float64(e.Dragged.DY)}

	b.mu.Lock()
	switch {
	case b.tool == ToolDraw && b.drawing:
		b.moved, b.last = true, p
		id := b.id
		b.mu.Unlock()
		b.engine.PointerMoved([]pointer.Contact{{ID: id, Point: p}})
	case b.tool == ToolMove:
		now := b.now()
		starting := !b.panning
		dt := now.Sub(b.lastDrag).Seconds()
		b.panning, b.lastDrag = true, now
		b.mu.Unlock()

		if starting {
			b.engine.PanBegan(geom.Sub(p, delta))
		}
		b.engine.PanChanged(delta)
		if !starting && dt > 0 {
			b.engine.PanVelocity(geom.Vec{X: delta.X / dt, Y: delta.Y / dt})
		}
	default:
		b.mu.Unlock()
	}
}

func (b *BoardWidget) DragEnd() {
	b.mu.Lock()
	panning, drawing, last := b.panning, b.drawing, b.last
	b.panning = false
	b.mu.Unlock()

	if panning {
		b.engine.PanEnded()
	}
	if drawing {
		b.finishStroke(last)
	}
}

func (b *BoardWidget) Tapped(e *fyne.PointEvent) {
	b.engine.Tap(toPoint(e.Position))
}

func (b *BoardWidget) DoubleTapped(*fyne.PointEvent) {
	b.engine.DoubleTap()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

// ShowSelection pops the delete menu up at the selection anchor, or hides it
// when nothing is selected. Call it on the fyne goroutine.
func (b *BoardWidget) ShowSelection(c state.SelectionChange) {
	if b.menu != nil {
		b.menu.Hide()
		b.menu = nil
	}
	if c.New == state.NoSelection {
		return
	}
	app := fyne.CurrentApp()
	if app == nil {
		return
	}
	cnv := app.Driver().CanvasForObject(b)
	if cnv == nil {
		return
	}
	menu := fyne.NewMenu("", fyne.NewMenuItem("Delete", b.engine.DeleteSelected))
	b.menu = widget.NewPopUpMenu(menu, cnv)
	origin := app.Driver().AbsolutePositionForObject(b)
	b.menu.ShowAtPosition(origin.Add(toPos(c.Anchor)))
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := newBoardRenderer(b)
	r.Refresh()
	return r
}

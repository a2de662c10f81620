// Package state is the touch-to-shape engine: it tracks live pointers,
// keeps the finished shapes and owns selection and drag state.
package state

import (
	"sync"

	"TouchTracker/internal/geom"
	"TouchTracker/internal/pointer"
	"TouchTracker/internal/shape"
)

// Options configures a Board.
type Options struct {
	HitTolerance     float64
	InitialThickness float64
	Palette          shape.Palette
}

// DefaultOptions returns the stock engine settings.
func DefaultOptions() Options {
	return Options{
		HitTolerance:     DefaultHitTolerance,
		InitialThickness: 10,
		Palette:          shape.DefaultPalette,
	}
}

// Board is the drawing engine. All operations are serialized by one mutex,
// so it may be driven from several goroutines. Callbacks run after the lock
// is released, in the order the changes happened. They may read the board
// but must not drive it.
type Board struct {
	mu        sync.Mutex
	deliver   sync.Mutex
	pending   []notice
	opts      Options
	tracker   *pointer.Tracker
	shapes    *Shapes
	selection *SelectionController
	drag      *DragController

	// OnChange is called after any change that needs a redraw.
	OnChange func()
	// OnSelectionChanged is called for every selection transition.
	OnSelectionChanged func(SelectionChange)
}

// NewBoard creates an empty board.
func NewBoard(opts Options) *Board {
	if opts.HitTolerance <= 0 {
		opts.HitTolerance = DefaultHitTolerance
	}
	if len(opts.Palette) == 0 {
		opts.Palette = shape.DefaultPalette
	}
	shapes := NewShapes()
	sel := NewSelectionController(shapes)
	return &Board{
		opts:      opts,
		tracker:   pointer.NewTracker(),
		shapes:    shapes,
		selection: sel,
		drag:      NewDragController(shapes, sel, opts.HitTolerance, opts.InitialThickness),
	}
}

// notice is one change waiting to be delivered to the callbacks.
type notice struct {
	changed    bool
	selections []SelectionChange
}

// update runs fn under the lock, queues the resulting notifications and
// delivers everything queued so far. Notices are queued under the engine
// lock and drained under the delivery lock, so callbacks see changes in the
// order they happened without holding the engine lock.
func (b *Board) update(fn func() bool) {
	b.mu.Lock()
	n := notice{changed: fn(), selections: b.selection.Drain()}
	if n.changed || len(n.selections) > 0 {
		b.pending = append(b.pending, n)
	}
	b.mu.Unlock()

	b.deliver.Lock()
	defer b.deliver.Unlock()
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	onChange, onSelection := b.OnChange, b.OnSelectionChanged
	b.mu.Unlock()

	for _, n := range pending {
		if onSelection != nil {
			for _, c := range n.selections {
				onSelection(c)
			}
		}
		if onChange != nil {
			onChange()
		}
	}
}

func (b *Board) finalize(l shape.LineSegment) shape.LineSegment {
	return l.Finalize(b.drag.Thickness(), b.opts.Palette)
}

// PointerBegan registers a batch of new contacts.
func (b *Board) PointerBegan(batch []pointer.Contact) {
	if len(batch) == 0 {
		return
	}
	b.update(func() bool {
		b.tracker.Began(batch)
		Logger().Debug("[BOARD] pointers began", "count", len(batch), "active", b.tracker.ActiveCount(), "mode", b.tracker.Mode())
		return true
	})
}

// PointerMoved applies a batch of moves.
func (b *Board) PointerMoved(batch []pointer.Contact) {
	if len(batch) == 0 {
		return
	}
	b.update(func() bool {
		b.tracker.Moved(batch)
		return true
	})
}

// PointerEnded releases a batch of contacts and appends what they finished.
func (b *Board) PointerEnded(batch []pointer.Contact) {
	if len(batch) == 0 {
		return
	}
	b.update(func() bool {
		done := b.tracker.Ended(batch, b.finalize)
		b.shapes.AppendLines(done.Lines...)
		b.shapes.AppendCircles(done.Circles...)
		if !done.Empty() {
			Logger().Info("[BOARD] shapes finished", "lines", len(done.Lines), "circles", len(done.Circles))
		}
		return true
	})
}

// PointerCancelled drops the in-progress shapes of ids only. Other input
// sources keep drawing.
func (b *Board) PointerCancelled(ids []pointer.ID) {
	if len(ids) == 0 {
		return
	}
	b.update(func() bool {
		if !b.tracker.CancelPointers(ids) {
			return false
		}
		Logger().Debug("[BOARD] pointers cancelled", "count", len(ids), "active", b.tracker.ActiveCount())
		return true
	})
}

// GestureCancelled discards every in-progress shape of every source.
func (b *Board) GestureCancelled() {
	b.update(func() bool {
		b.tracker.Cancel()
		Logger().Debug("[BOARD] gesture cancelled")
		return true
	})
}

// Tap selects the line near p, or clears the selection.
func (b *Board) Tap(p geom.Point) {
	b.update(func() bool {
		if i, ok := FindLineNear(p, b.shapes.Lines(), b.opts.HitTolerance); ok {
			b.selection.Select(i, p)
		} else {
			b.selection.Clear()
		}
		return true
	})
}

// DoubleTap clears the selection, in-progress lines and finished lines.
// Finished circles are kept.
func (b *Board) DoubleTap() {
	b.update(func() bool {
		b.selection.Clear()
		b.tracker.DiscardLines()
		b.shapes.ClearLines()
		Logger().Info("[BOARD] lines cleared")
		return true
	})
}

// LongPressBegan selects the line near p. Selecting a line discards the
// in-progress lines.
func (b *Board) LongPressBegan(p geom.Point) {
	b.update(func() bool {
		if i, ok := FindLineNear(p, b.shapes.Lines(), b.opts.HitTolerance); ok {
			b.selection.Select(i, p)
			b.tracker.DiscardLines()
		} else {
			b.selection.Clear()
		}
		return true
	})
}

// LongPressEnded clears the selection.
func (b *Board) LongPressEnded() {
	b.update(func() bool {
		b.selection.Clear()
		return true
	})
}

// PanBegan starts a pan at p.
func (b *Board) PanBegan(p geom.Point) {
	b.update(func() bool {
		b.drag.Began(p)
		return false
	})
}

// PanChanged moves the selected line by delta.
func (b *Board) PanChanged(delta geom.Vec) {
	b.update(func() bool {
		return b.drag.Changed(delta)
	})
}

// PanVelocity feeds the pan velocity used for stroke thickness.
func (b *Board) PanVelocity(v geom.Vec) {
	b.update(func() bool {
		return b.drag.Velocity(v)
	})
}

// PanEnded finishes the pan.
func (b *Board) PanEnded() {
	b.update(func() bool {
		b.drag.Ended()
		return false
	})
}

// DeleteSelected removes the selected line. Without a selection it does
// nothing.
func (b *Board) DeleteSelected() {
	b.update(func() bool {
		deleted := b.selection.DeleteSelected()
		if deleted {
			Logger().Info("[BOARD] selected line deleted", "remaining", b.shapes.LineCount())
		}
		return deleted
	})
}

// Selected returns the selected line index.
func (b *Board) Selected() (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selection.Selected()
}

// Thickness returns the stroke thickness the next line will get.
func (b *Board) Thickness() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.drag.Thickness()
}

// Snapshot returns a copy of everything a renderer draws.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Snapshot{
		FinishedLines:   b.shapes.Lines(),
		FinishedCircles: b.shapes.Circles(),
		InProgress:      b.tracker.Lines(),
		Selected:        NoSelection,
		Thickness:       b.drag.Thickness(),
		Mode:            b.tracker.Mode(),
	}
	if c, ok := b.tracker.Circle(); ok {
		s.CurrentCircle = &c
	}
	if i, ok := b.selection.Selected(); ok {
		s.Selected = i
	}
	return s
}

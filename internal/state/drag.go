package state

import (
	"math"

	"TouchTracker/internal/geom"
)

// DragController applies pan gestures. With a selection the pan moves the
// selected line; without one the pan velocity sets the stroke thickness used
// by the next finished line.
type DragController struct {
	shapes    *Shapes
	selection *SelectionController
	tolerance float64
	thickness float64
	pending   geom.Vec
	active    bool
}

// NewDragController creates a controller with an initial stroke thickness.
func NewDragController(shapes *Shapes, sel *SelectionController, tolerance, thickness float64) *DragController {
	return &DragController{
		shapes:    shapes,
		selection: sel,
		tolerance: tolerance,
		thickness: thickness,
	}
}

// Thickness returns the stroke thickness for the next finished line.
func (d *DragController) Thickness() float64 {
	return d.thickness
}

// Active reports whether a pan is in progress.
func (d *DragController) Active() bool {
	return d.active
}

// Began starts a pan at start. A selection that start does not hit is
// cleared, so the rest of the pan drives thickness instead.
func (d *DragController) Began(start geom.Point) {
	d.active = true
	d.pending = geom.Vec{}
	sel, ok := d.selection.Selected()
	if !ok {
		return
	}
	hit, found := FindLineNear(start, d.shapes.Lines(), d.tolerance)
	if !found || hit != sel {
		d.selection.Clear()
	}
}

// Changed applies an incremental translation to the selected line. It
// reports whether any geometry moved.
func (d *DragController) Changed(delta geom.Vec) bool {
	sel, ok := d.selection.Selected()
	if !ok {
		return false
	}
	d.pending = geom.Add(d.pending, delta)
	moved := d.shapes.TranslateLine(sel, d.pending)
	d.pending = geom.Vec{}
	return moved
}

// Velocity updates the thickness from the pan velocity when nothing is
// selected: sqrt(hypot(|vx|, |vy|)).
func (d *DragController) Velocity(v geom.Vec) bool {
	if _, ok := d.selection.Selected(); ok {
		return false
	}
	t := math.Sqrt(math.Hypot(math.Abs(v.X), math.Abs(v.Y)))
	if math.IsNaN(t) || math.IsInf(t, 0) {
		t = 0
	}
	d.thickness = t
	return true
}

// Ended finishes the pan.
func (d *DragController) Ended() {
	d.active = false
	d.pending = geom.Vec{}
}

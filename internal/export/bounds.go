// Package export renders the finished shapes of a board to files.
package export

import (
	"errors"
	"math"

	"TouchTracker/internal/geom"
	"TouchTracker/internal/state"
)

// ErrEmptyDrawing is returned when there are no finished shapes to export.
var ErrEmptyDrawing = errors.New("nothing to export")

// Rect is an axis-aligned area in board units.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Bounds returns the box around every finished shape, grown by padding on
// each side. Stroke thickness is included so wide lines are not clipped.
func Bounds(s state.Snapshot, padding float64) (Rect, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(p geom.Point, r float64) {
		minX = math.Min(minX, p.X-r)
		minY = math.Min(minY, p.Y-r)
		maxX = math.Max(maxX, p.X+r)
		maxY = math.Max(maxY, p.Y+r)
	}

	for _, l := range s.FinishedLines {
		half := 0.0
		if l.Style != nil {
			half = l.Style.Thickness / 2
		}
		grow(l.Begin, half)
		grow(l.End, half)
	}
	for _, c := range s.FinishedCircles {
		grow(c.Center, c.Radius)
	}
	if math.IsInf(minX, 1) {
		return Rect{}, false
	}

	return Rect{
		X:      minX - padding,
		Y:      minY - padding,
		Width:  maxX - minX + 2*padding,
		Height: maxY - minY + 2*padding,
	}, true
}

// Fit maps board coordinates into a target area, preserving aspect ratio
// and centring the drawing.
type Fit struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// FitInto scales r to fit a target of width w and height h with the given
// margin.
func FitInto(r Rect, w, h, margin float64) Fit {
	aw, ah := w-2*margin, h-2*margin
	scale := 1.0
	if r.Width > 0 && r.Height > 0 {
		scale = math.Min(aw/r.Width, ah/r.Height)
	} else if r.Width > 0 {
		scale = aw / r.Width
	} else if r.Height > 0 {
		scale = ah / r.Height
	}
	return Fit{
		Scale:   scale,
		OffsetX: margin + (aw-r.Width*scale)/2 - r.X*scale,
		OffsetY: margin + (ah-r.Height*scale)/2 - r.Y*scale,
	}
}

// Apply maps a board point into the target.
func (f Fit) Apply(p geom.Point) (float64, float64) {
	return p.X*f.Scale + f.OffsetX, p.Y*f.Scale + f.OffsetY
}

// Length scales a board length into the target.
func (f Fit) Length(v float64) float64 {
	return v * f.Scale
}

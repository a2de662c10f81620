// Package shape holds the value types drawn on the board.
package shape

import (
	"image/color"

	"TouchTracker/internal/geom"
)

// Style is assigned to a line once, when it is finalized.
type Style struct {
	Thickness float64    `json:"thickness"`
	Color     color.RGBA `json:"color"`
}

// LineSegment is a straight stroke. Style is nil while the line is in progress.
type LineSegment struct {
	Begin geom.Point `json:"begin"`
	End   geom.Point `json:"end"`
	Style *Style     `json:"style,omitempty"`
}

// NewLine returns an in-progress line starting and ending at p.
func NewLine(p geom.Point) LineSegment {
	return LineSegment{Begin: p, End: p}
}

// Finalized reports whether the line has its style.
func (l LineSegment) Finalized() bool {
	return l.Style != nil
}

// Finalize assigns thickness and a palette color derived from the line's
// angle. A line that is already finalized is returned unchanged.
func (l LineSegment) Finalize(thickness float64, p Palette) LineSegment {
	if l.Finalized() {
		return l
	}
	l.Style = &Style{
		Thickness: thickness,
		Color:     p.ColorFor(l),
	}
	return l
}

// Angle returns the line direction in [0, 2π).
func (l LineSegment) Angle() float64 {
	return geom.NormalizedAngle(geom.Sub(l.End, l.Begin))
}

// At returns the point at parameter t along the line.
func (l LineSegment) At(t float64) geom.Point {
	return geom.Lerp(l.Begin, l.End, t)
}

// Translate moves both endpoints by v.
func (l LineSegment) Translate(v geom.Vec) LineSegment {
	l.Begin = geom.Add(l.Begin, v)
	l.End = geom.Add(l.End, v)
	return l
}

// Clone returns a copy that does not share its Style with l.
func (l LineSegment) Clone() LineSegment {
	if l.Style != nil {
		s := *l.Style
		l.Style = &s
	}
	return l
}

// Circle is drawn with two fingers.
type Circle struct {
	Center geom.Point `json:"center"`
	Radius float64    `json:"radius"`
}

// NewCircle builds a circle centred between p1 and p2 whose radius is the
// distance between them.
func NewCircle(p1, p2 geom.Point) Circle {
	return Circle{
		Center: geom.Midpoint(p1, p2),
		Radius: geom.Distance(p1, p2),
	}
}

// Bounds returns the top-left and bottom-right corners of the circle's box.
func (c Circle) Bounds() (min, max geom.Point) {
	return geom.Pt(c.Center.X-c.Radius, c.Center.Y-c.Radius),
		geom.Pt(c.Center.X+c.Radius, c.Center.Y+c.Radius)
}

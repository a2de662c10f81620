package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"TouchTracker/internal/export"
	"TouchTracker/internal/shape"
	"TouchTracker/internal/state"
)

const circleStroke = 2

var (
	inProgressColor = export.InProgressColor
	selectedColor   = export.SelectedColor
	circleColor     = export.CircleColor
)

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func newBoardRenderer(b *BoardWidget) *boardRenderer {
	return &boardRenderer{
		board:      b,
		background: canvas.NewRectangle(color.White),
	}
}

func newLine(l shape.LineSegment, c color.Color, width float64) *canvas.Line {
	line := canvas.NewLine(c)
	line.StrokeWidth = float32(width)
	line.Position1 = toPos(l.Begin)
	line.Position2 = toPos(l.End)
	return line
}

func newCircle(c shape.Circle) *canvas.Circle {
	circle := canvas.NewCircle(color.Transparent)
	circle.StrokeColor = circleColor
	circle.StrokeWidth = circleStroke
	circle.Position1 = fyne.NewPos(float32(c.Center.X-c.Radius), float32(c.Center.Y-c.Radius))
	circle.Position2 = fyne.NewPos(float32(c.Center.X+c.Radius), float32(c.Center.Y+c.Radius))
	return circle
}

// build turns a snapshot into canvas objects, back to front: finished
// lines, in-progress lines, circles.
func build(s state.Snapshot) []fyne.CanvasObject {
	var objs []fyne.CanvasObject
	for i, l := range s.FinishedLines {
		c, width := color.Color(circleColor), s.Thickness
		if l.Style != nil {
			c, width = l.Style.Color, l.Style.Thickness
		}
		if i == s.Selected {
			c = selectedColor
		}
		objs = append(objs, newLine(l, c, width))
	}
	for _, l := range s.InProgress {
		objs = append(objs, newLine(l, inProgressColor, s.Thickness))
	}
	for _, c := range s.FinishedCircles {
		objs = append(objs, newCircle(c))
	}
	if s.CurrentCircle != nil {
		objs = append(objs, newCircle(*s.CurrentCircle))
	}
	return objs
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return append([]fyne.CanvasObject{r.background}, r.objects...)
}

func (r *boardRenderer) Refresh() {
	r.objects = build(r.board.engine.Snapshot())
	canvas.Refresh(r.board)
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardRenderer) Destroy() {}

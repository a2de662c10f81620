package export

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"

	"TouchTracker/internal/state"
)

// Colors of the live view.
var (
	InProgressColor = colornames.Red
	SelectedColor   = colornames.Green
	CircleColor     = colornames.Black
)

// Frame renders the live board at board scale into a width x height image:
// finished lines in their own style with the selected one green, in-progress
// lines red at the current thickness, circles black. Unlike PDF and PNG an
// empty board is not an error.
func Frame(s state.Snapshot, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(gg.White)
	dc.SetLineCap(gg.LineCapRound)

	for i, l := range s.FinishedLines {
		c, w := color.Color(CircleColor), s.Thickness
		if l.Style != nil {
			c, w = l.Style.Color, l.Style.Thickness
		}
		if i == s.Selected {
			c = SelectedColor
		}
		if err := strokeLine(dc, l.Begin.X, l.Begin.Y, l.End.X, l.End.Y, w, c); err != nil {
			return nil, err
		}
	}
	for _, l := range s.InProgress {
		if err := strokeLine(dc, l.Begin.X, l.Begin.Y, l.End.X, l.End.Y, s.Thickness, InProgressColor); err != nil {
			return nil, err
		}
	}
	circles := s.FinishedCircles
	if s.CurrentCircle != nil {
		circles = append(circles[:len(circles):len(circles)], *s.CurrentCircle)
	}
	for _, c := range circles {
		if err := strokeCircle(dc, c.Center.X, c.Center.Y, c.Radius); err != nil {
			return nil, err
		}
	}

	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("could not flush frame: %w", err)
	}
	return dc.Image(), nil
}

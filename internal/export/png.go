package export

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gg"

	"TouchTracker/internal/state"
)

const (
	pngMargin    = 16.0
	pngPadding   = 5.0
	circleLinePx = 3.0
)

func strokeLine(dc *gg.Context, x1, y1, x2, y2, width float64, c color.Color) error {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.DrawLine(x1, y1, x2, y2)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("could not stroke line: %w", err)
	}
	return nil
}

func strokeCircle(dc *gg.Context, x, y, r float64) error {
	dc.SetColor(CircleColor)
	dc.SetLineWidth(circleLinePx)
	dc.DrawCircle(x, y, r)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("could not stroke circle: %w", err)
	}
	return nil
}

// PNG renders the finished lines and circles of s into a width x height
// image on a white background.
func PNG(path string, s state.Snapshot, width, height int) error {
	bounds, ok := Bounds(s, pngPadding)
	if !ok {
		return ErrEmptyDrawing
	}
	fit := FitInto(bounds, float64(width), float64(height), pngMargin)

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(gg.White)
	dc.SetLineCap(gg.LineCapRound)

	for _, l := range s.FinishedLines {
		c, w := color.Color(CircleColor), s.Thickness
		if l.Style != nil {
			c, w = l.Style.Color, l.Style.Thickness
		}
		x1, y1 := fit.Apply(l.Begin)
		x2, y2 := fit.Apply(l.End)
		if err := strokeLine(dc, x1, y1, x2, y2, max(fit.Length(w), 1), c); err != nil {
			return err
		}
	}
	for _, c := range s.FinishedCircles {
		x, y := fit.Apply(c.Center)
		if err := strokeCircle(dc, x, y, fit.Length(c.Radius)); err != nil {
			return err
		}
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("could not write PNG: %w", err)
	}
	state.Logger().Info("[EXPORT] PNG written", "path", path, "width", width, "height", height)
	return nil
}

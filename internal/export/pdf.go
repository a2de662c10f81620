package export

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"TouchTracker/internal/state"
)

const (
	pdfMargin    = 10.0 // mm
	pdfPadding   = 5.0  // board units
	minPDFLineMM = 0.1
	circleLineMM = 0.5
)

// PDF draws the finished lines and circles of s onto one A4 page.
// orientation is "P" or "L".
func PDF(path string, s state.Snapshot, orientation string) error {
	bounds, ok := Bounds(s, pdfPadding)
	if !ok {
		return ErrEmptyDrawing
	}

	p := gofpdf.New(strings.ToUpper(orientation), "mm", "A4", "")
	p.SetTitle("TouchTracker drawing", true)
	p.SetCreator("TouchTracker", true)
	p.AddPage()
	w, h := p.GetPageSize()
	fit := FitInto(bounds, w, h, pdfMargin)

	p.SetLineCapStyle("round")
	for _, l := range s.FinishedLines {
		if l.Style != nil {
			p.SetDrawColor(int(l.Style.Color.R), int(l.Style.Color.G), int(l.Style.Color.B))
			p.SetLineWidth(max(fit.Length(l.Style.Thickness), minPDFLineMM))
		}
		x1, y1 := fit.Apply(l.Begin)
		x2, y2 := fit.Apply(l.End)
		p.Line(x1, y1, x2, y2)
	}

	p.SetDrawColor(0, 0, 0)
	p.SetLineWidth(circleLineMM)
	for _, c := range s.FinishedCircles {
		x, y := fit.Apply(c.Center)
		p.Circle(x, y, fit.Length(c.Radius), "D")
	}

	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("could not write PDF: %w", err)
	}
	state.Logger().Info("[EXPORT] PDF written", "path", path, "lines", len(s.FinishedLines), "circles", len(s.FinishedCircles))
	return nil
}

package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/colornames"

	"TouchTracker/internal/geom"
	"TouchTracker/internal/pointer"
	"TouchTracker/internal/shape"
	"TouchTracker/internal/state"
)

func sampleSnapshot() state.Snapshot {
	return state.Snapshot{
		FinishedLines: []shape.LineSegment{
			{Begin: geom.Pt(0, 0), End: geom.Pt(100, 0), Style: &shape.Style{Thickness: 10, Color: colornames.Red}},
			{Begin: geom.Pt(0, 50), End: geom.Pt(100, 50), Style: &shape.Style{Thickness: 4, Color: colornames.Blue}},
		},
		FinishedCircles: []shape.Circle{{Center: geom.Pt(50, 25), Radius: 20}},
		Selected:        state.NoSelection,
	}
}

func TestBounds(t *testing.T) {
	r, ok := Bounds(sampleSnapshot(), 5)
	if !ok {
		t.Fatal("no bounds")
	}
	want := Rect{X: -10, Y: -10, Width: 120, Height: 67}
	if r != want {
		t.Fatalf("bounds = %+v, want %+v", r, want)
	}

	if _, ok := Bounds(state.Snapshot{}, 5); ok {
		t.Fatal("empty snapshot has bounds")
	}
}

func TestFitIntoCentres(t *testing.T) {
	fit := FitInto(Rect{X: 0, Y: 0, Width: 100, Height: 50}, 220, 220, 10)
	if fit.Scale != 2 {
		t.Fatalf("scale = %v", fit.Scale)
	}
	x, y := fit.Apply(geom.Pt(0, 0))
	if x != 10 || y != 60 {
		t.Fatalf("origin maps to (%v, %v)", x, y)
	}
	x, y = fit.Apply(geom.Pt(100, 50))
	if x != 210 || y != 160 {
		t.Fatalf("far corner maps to (%v, %v)", x, y)
	}
}

func TestFitIntoDegenerate(t *testing.T) {
	fit := FitInto(Rect{X: 5, Y: 5}, 100, 100, 0)
	if fit.Scale != 1 {
		t.Fatalf("scale = %v", fit.Scale)
	}
	x, y := fit.Apply(geom.Pt(5, 5))
	if x != 50 || y != 50 {
		t.Fatalf("point maps to (%v, %v)", x, y)
	}
}

func TestPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pdf")
	if err := PDF(path, sampleSnapshot(), "L"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.png")
	if err := PNG(path, sampleSnapshot(), 320, 240); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Fatalf("size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestExportEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := PDF(filepath.Join(dir, "a.pdf"), state.Snapshot{}, "P"); !errors.Is(err, ErrEmptyDrawing) {
		t.Fatalf("PDF err = %v", err)
	}
	if err := PNG(filepath.Join(dir, "a.png"), state.Snapshot{}, 10, 10); !errors.Is(err, ErrEmptyDrawing) {
		t.Fatalf("PNG err = %v", err)
	}
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestFrameDrawsLiveView(t *testing.T) {
	s := sampleSnapshot()
	s.Selected = 1
	s.Thickness = 8
	s.InProgress = map[pointer.ID]shape.LineSegment{
		pointer.NewID(): {Begin: geom.Pt(10, 150), End: geom.Pt(190, 150)},
	}

	img, err := Frame(s, 200, 200)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("bounds = %v", b)
	}
	if c := rgbaAt(img, 180, 190); c.R < 250 || c.G < 250 || c.B < 250 {
		t.Errorf("background = %v", c)
	}
	if c := rgbaAt(img, 90, 0); c.R < 200 || c.G > 60 || c.B > 60 {
		t.Errorf("finished line = %v, want red", c)
	}
	if c := rgbaAt(img, 90, 50); c.G < 100 || c.R > 60 || c.B > 60 {
		t.Errorf("selected line = %v, want green", c)
	}
	if c := rgbaAt(img, 100, 150); c.R < 200 || c.G > 60 || c.B > 60 {
		t.Errorf("in-progress line = %v, want red", c)
	}
}

func TestFrameEmptyAndInvalid(t *testing.T) {
	img, err := Frame(state.Snapshot{Selected: state.NoSelection}, 4, 4)
	if err != nil {
		t.Fatalf("empty board: %v", err)
	}
	if c := rgbaAt(img, 2, 2); c != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("empty frame pixel = %v", c)
	}
	if _, err := Frame(state.Snapshot{}, 0, 10); err == nil {
		t.Fatal("zero width accepted")
	}
}

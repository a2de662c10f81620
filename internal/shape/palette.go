package shape

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	ErrEmptyPalette = errors.New("palette has no colors")
	ErrUnknownColor = errors.New("unknown color name")
)

// Palette maps line angles to colors. Order matters: index 0 is used for
// angle 0 and the last entry for angles approaching 2π.
type Palette []color.RGBA

// DefaultPaletteNames lists the colors of DefaultPalette.
var DefaultPaletteNames = []string{
	"red", "orange", "gold", "green", "teal", "blue", "indigo", "purple",
}

// DefaultPalette is used when no palette is configured.
var DefaultPalette = Palette{
	colornames.Red,
	colornames.Orange,
	colornames.Gold,
	colornames.Green,
	colornames.Teal,
	colornames.Blue,
	colornames.Indigo,
	colornames.Purple,
}

// PaletteFromNames builds a palette from SVG 1.1 color names.
func PaletteFromNames(names []string) (Palette, error) {
	if len(names) == 0 {
		return nil, ErrEmptyPalette
	}
	p := make(Palette, 0, len(names))
	for _, name := range names {
		c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColor, name)
		}
		p = append(p, c)
	}
	return p, nil
}

// Index maps an angle in [0, 2π) to a palette index:
// floor((N-1) * angle / 2π).
func (p Palette) Index(angle float64) int {
	n := len(p)
	if n <= 1 {
		return 0
	}
	i := int(math.Floor(float64(n-1) * angle / (2 * math.Pi)))
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// ColorFor returns the color for l's angle. An empty palette yields black.
func (p Palette) ColorFor(l LineSegment) color.RGBA {
	if len(p) == 0 {
		return colornames.Black
	}
	return p[p.Index(l.Angle())]
}

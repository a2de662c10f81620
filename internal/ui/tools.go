package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"TouchTracker/internal/shape"
)

// colorSwatch shows one palette entry.
type colorSwatch struct {
	widget.BaseWidget
	Color color.Color
}

func newColorSwatch(c color.Color) *colorSwatch {
	s := &colorSwatch{Color: c}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(16, 16))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

// Actions are the toolbar commands that live outside the board widget.
type Actions struct {
	Clear     func()
	ExportPDF func()
	ExportPNG func()
}

// NewToolbar builds the tool row: tools, commands and the palette legend
// (line colors by direction, starting at 0 rad).
func NewToolbar(board *BoardWidget, palette shape.Palette, toolLabel *widget.Label, actions Actions) fyne.CanvasObject {
	setTool := func(t Tool) func() {
		return func() {
			board.SetTool(t)
			toolLabel.SetText(t.String())
		}
	}
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), setTool(ToolDraw)),
		widget.NewToolbarAction(theme.ViewRestoreIcon(), setTool(ToolMove)),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), board.engine.DeleteSelected),
		widget.NewToolbarAction(theme.ContentClearIcon(), actions.Clear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), actions.ExportPDF),
		widget.NewToolbarAction(theme.FileImageIcon(), actions.ExportPNG),
	)

	legend := container.NewHBox()
	for _, c := range palette {
		legend.Add(newColorSwatch(c))
	}

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		toolLabel,
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Colors:"),
		legend,
		layout.NewSpacer(),
	)
}

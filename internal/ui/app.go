// Package ui is the desktop front end: a fyne window that renders the
// engine and turns mouse input into engine operations.
package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"TouchTracker/internal/config"
	"TouchTracker/internal/shape"
	"TouchTracker/internal/state"
)

// Options configures the window.
type Options struct {
	Title     string
	ShareLink string
	Palette   shape.Palette
	Export    config.Export
}

// App is the main window around one engine.
type App struct {
	engine *state.Board
	opts   Options

	fyne      fyne.App
	window    fyne.Window
	Board     *BoardWidget
	status    *widget.Label
	thickness *widget.Label
}

// NewApp builds the window. The engine callbacks are not touched; the
// caller forwards them to Changed and SelectionChanged.
func NewApp(engine *state.Board, opts Options) *App {
	return newApp(app.New(), engine, opts)
}

func newApp(fa fyne.App, engine *state.Board, opts Options) *App {
	if opts.Title == "" {
		opts.Title = "TouchTracker"
	}
	if len(opts.Palette) == 0 {
		opts.Palette = shape.DefaultPalette
	}
	a := &App{
		engine:    engine,
		opts:      opts,
		fyne:      fa,
		Board:     NewBoardWidget(engine),
		status:    widget.NewLabel("Ready"),
		thickness: widget.NewLabel(""),
	}
	if opts.ShareLink != "" {
		a.status.SetText("Share: " + opts.ShareLink)
	}
	a.window = fa.NewWindow(opts.Title)
	a.window.Resize(fyne.NewSize(1024, 768))

	toolbar := NewToolbar(a.Board, opts.Palette, widget.NewLabel(ToolDraw.String()), Actions{
		Clear:     engine.DoubleTap,
		ExportPDF: a.exportPDF,
		ExportPNG: a.exportPNG,
	})
	footer := container.NewHBox(a.status, a.thickness)
	a.window.SetContent(container.NewBorder(toolbar, footer, nil, nil, a.Board))
	a.updateThickness()
	return a
}

func (a *App) updateThickness() {
	a.thickness.SetText(fmt.Sprintf("Thickness: %.1f", a.engine.Thickness()))
}

// Changed redraws the board. Safe to call from any goroutine.
func (a *App) Changed() {
	fyne.Do(func() {
		a.Board.Refresh()
		a.updateThickness()
	})
}

// SelectionChanged shows or hides the delete menu. Safe to call from any
// goroutine.
func (a *App) SelectionChanged(c state.SelectionChange) {
	fyne.Do(func() {
		a.Board.ShowSelection(c)
	})
}

// SetStatus replaces the footer text. Safe to call from any goroutine.
func (a *App) SetStatus(text string) {
	fyne.Do(func() {
		a.status.SetText(text)
	})
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	a.window.ShowAndRun()
}

package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"TouchTracker/internal/export"
	"TouchTracker/internal/state"
)

// withExt appends ext unless path already ends with it.
func withExt(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return path + ext
}

// exportDialog asks for a file name and hands the chosen path to write.
func (a *App) exportDialog(name, ext string, write func(path string) error) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := withExt(writer.URI().Path(), ext)
		if err := write(path); err != nil {
			if errors.Is(err, export.ErrEmptyDrawing) {
				dialog.ShowInformation("Export", "There is nothing to export yet.", a.window)
				return
			}
			state.Logger().Error("[EXPORT] failed", "path", path, "err", err)
			dialog.ShowError(err, a.window)
			return
		}
		a.SetStatus(fmt.Sprintf("Exported %s", filepath.Base(path)))
	}, a.window)
	fd.SetFileName(name + ext)
	fd.Show()
}

func (a *App) exportPDF() {
	a.exportDialog("board", ".pdf", func(path string) error {
		return export.PDF(path, a.engine.Snapshot(), a.opts.Export.PDFOrientation)
	})
}

func (a *App) exportPNG() {
	a.exportDialog("board", ".png", func(path string) error {
		return export.PNG(path, a.engine.Snapshot(), a.opts.Export.PNGWidth, a.opts.Export.PNGHeight)
	})
}

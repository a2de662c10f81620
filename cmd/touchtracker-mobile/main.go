//go:build darwin || linux || windows

// Command touchtracker-mobile runs the board on a touch screen through
// golang.org/x/mobile and serves it to WebSocket viewers like the desktop host.
package main

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"os"

	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
	"golang.org/x/mobile/exp/gl/glutil"
	mgeom "golang.org/x/mobile/geom"
	"golang.org/x/mobile/gl"

	"TouchTracker/internal/config"
	"TouchTracker/internal/export"
	"TouchTracker/internal/input"
	boardnet "TouchTracker/internal/net"
	"TouchTracker/internal/state"
)

func main() {
	cfg := config.Default()
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	state.SetLogger(logger)

	opts, err := cfg.BoardOptions()
	if err != nil {
		logger.Error("[BOARD] bad options", "err", err)
		os.Exit(1)
	}
	board := state.NewBoard(opts)
	hub := boardnet.NewHub(board)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if srv, err := boardnet.Listen(fmt.Sprintf(":%d", cfg.Server.Port), hub); err != nil {
		logger.Warn("[HOST] not serving viewers", "err", err)
	} else {
		logger.Info("[HOST] share link", "url", boardnet.ShareLink(srv.Port()))
		go func() {
			if err := srv.Serve(ctx); err != nil {
				logger.Error("[HOST] server stopped", "err", err)
			}
		}()
	}

	app.Main(func(a app.App) {
		board.OnChange = func() {
			hub.Broadcast()
			a.Send(paint.Event{})
		}
		run(a, board)
	})
}

// screen holds the GL objects that live while the app is visible.
type screen struct {
	glctx  gl.Context
	images *glutil.Images
	frame  *glutil.Image
	sz     size.Event
}

func (s *screen) releaseFrame() {
	if s.frame != nil {
		s.frame.Release()
		s.frame = nil
	}
}

func (s *screen) release() {
	s.releaseFrame()
	if s.images != nil {
		s.images.Release()
		s.images = nil
	}
	s.glctx = nil
}

// paint draws the board frame over the whole window.
func (s *screen) paint(snap state.Snapshot) {
	w, h := int(s.sz.WidthPt), int(s.sz.HeightPt)
	if w <= 0 || h <= 0 {
		return
	}
	img, err := export.Frame(snap, w, h)
	if err != nil {
		state.Logger().Warn("[BOARD] could not render frame", "err", err)
		return
	}
	if s.frame == nil {
		s.frame = s.images.NewImage(w, h)
	}
	draw.Draw(s.frame.RGBA, s.frame.RGBA.Bounds(), img, image.Point{}, draw.Src)
	s.frame.Upload()

	s.glctx.ClearColor(1, 1, 1, 1)
	s.glctx.Clear(gl.COLOR_BUFFER_BIT)
	s.frame.Draw(s.sz,
		mgeom.Point{},
		mgeom.Point{X: s.sz.WidthPt},
		mgeom.Point{Y: s.sz.HeightPt},
		s.frame.RGBA.Bounds(),
	)
}

// run is the event loop: touches are queued and delivered once per frame,
// focus loss cancels the gesture.
func run(a app.App, board *state.Board) {
	touches := input.NewMobileTouches(board, 1)
	var scr screen

	for e := range a.Events() {
		switch e := a.Filter(e).(type) {
		case lifecycle.Event:
			touches.Lifecycle(e)
			switch e.Crosses(lifecycle.StageVisible) {
			case lifecycle.CrossOn:
				scr.glctx, _ = e.DrawContext.(gl.Context)
				if scr.glctx != nil {
					scr.images = glutil.NewImages(scr.glctx)
				}
				a.Send(paint.Event{})
			case lifecycle.CrossOff:
				scr.release()
			}
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			scr.sz = e
			scr.releaseFrame()
			touches.Resize(e)
		case touch.Event:
			touches.Add(e)
			a.Send(paint.Event{})
		case paint.Event:
			if scr.glctx == nil || e.External {
				continue
			}
			touches.Flush()
			scr.paint(board.Snapshot())
			a.Publish()
		}
	}
}

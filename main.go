package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TouchTracker/internal/config"
	boardnet "TouchTracker/internal/net"
	"TouchTracker/internal/state"
	"TouchTracker/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	port := flag.Int("port", 0, "WebSocket port (overrides config)")
	headless := flag.Bool("headless", false, "serve the board without a window")
	discover := flag.Bool("discover", false, "list hosts on the local network and exit")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *port, *verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logger)
	state.SetLogger(logger)

	if *discover {
		runDiscover(cfg)
		return
	}
	if err := runHost(cfg, *headless); err != nil {
		logger.Error("[HOST] fatal", "err", err)
		os.Exit(1)
	}
}

func loadConfig(path string, port int, verbose bool) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

// newLogger builds the text logger at the configured level.
func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func runDiscover(cfg config.Config) {
	slog.Info("[MDNS] browsing", "service", cfg.Server.Service)
	err := boardnet.Browse(cfg.Server.Service, 3*time.Second, func(addr string) {
		fmt.Println(addr)
	})
	if err != nil {
		slog.Error("[MDNS] browse failed", "err", err)
		os.Exit(1)
	}
}

func runHost(cfg config.Config, headless bool) error {
	opts, err := cfg.BoardOptions()
	if err != nil {
		return err
	}
	board := state.NewBoard(opts)
	hub := boardnet.NewHub(board)

	srv, err := boardnet.Listen(fmt.Sprintf(":%d", cfg.Server.Port), hub)
	if err != nil {
		return err
	}
	if cfg.Server.Advertise {
		zone, err := boardnet.Advertise(cfg.Server.Service, srv.Port())
		if err != nil {
			slog.Warn("[MDNS] not advertising", "err", err)
		} else {
			defer zone.Shutdown()
		}
	}
	shareLink := boardnet.ShareLink(srv.Port())
	slog.Info("[HOST] share link", "url", shareLink)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errc := make(chan error, 1)

	if headless {
		board.OnChange = hub.Broadcast
		go func() { errc <- srv.Serve(ctx) }()
		return <-errc
	}

	app := ui.NewApp(board, ui.Options{
		ShareLink: shareLink,
		Palette:   opts.Palette,
		Export:    cfg.Export,
	})
	board.OnChange = func() {
		hub.Broadcast()
		app.Changed()
	}
	board.OnSelectionChanged = app.SelectionChanged

	ctx, cancel := context.WithCancel(ctx)
	go func() { errc <- srv.Serve(ctx) }()
	app.Run()
	cancel()
	return <-errc
}

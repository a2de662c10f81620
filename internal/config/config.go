// Package config loads TouchTracker settings from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	boardnet "TouchTracker/internal/net"
	"TouchTracker/internal/shape"
	"TouchTracker/internal/state"
)

var (
	ErrInvalidTolerance   = errors.New("hit tolerance must be positive")
	ErrInvalidThickness   = errors.New("initial thickness must not be negative")
	ErrInvalidPort        = errors.New("port out of range")
	ErrInvalidOrientation = errors.New("pdf orientation must be P or L")
	ErrInvalidImageSize   = errors.New("png size must be positive")
	ErrInvalidLogLevel    = errors.New("unknown log level")
)

type Engine struct {
	HitTolerance     float64  `toml:"hit_tolerance"`
	InitialThickness float64  `toml:"initial_thickness"`
	Palette          []string `toml:"palette"`
}

type Server struct {
	Port      int    `toml:"port"`
	Advertise bool   `toml:"advertise"`
	Service   string `toml:"service"`
}

type Export struct {
	PDFOrientation string `toml:"pdf_orientation"`
	PNGWidth       int    `toml:"png_width"`
	PNGHeight      int    `toml:"png_height"`
}

type Log struct {
	Level string `toml:"level"`
}

// Config is the complete application configuration.
type Config struct {
	Engine Engine `toml:"engine"`
	Server Server `toml:"server"`
	Export Export `toml:"export"`
	Log    Log    `toml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: Engine{
			HitTolerance:     state.DefaultHitTolerance,
			InitialThickness: 10,
			Palette:          append([]string(nil), shape.DefaultPaletteNames...),
		},
		Server: Server{
			Port:      8888,
			Advertise: true,
			Service:   boardnet.DefaultService,
		},
		Export: Export{
			PDFOrientation: "L",
			PNGWidth:       1024,
			PNGHeight:      768,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes TOML text over the defaults and validates the result.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("could not parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every value.
func (c Config) Validate() error {
	if c.Engine.HitTolerance <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTolerance, c.Engine.HitTolerance)
	}
	if c.Engine.InitialThickness < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidThickness, c.Engine.InitialThickness)
	}
	if _, err := shape.PaletteFromNames(c.Engine.Palette); err != nil {
		return fmt.Errorf("invalid palette: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}
	if o := strings.ToUpper(c.Export.PDFOrientation); o != "P" && o != "L" {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, c.Export.PDFOrientation)
	}
	if c.Export.PNGWidth <= 0 || c.Export.PNGHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidImageSize, c.Export.PNGWidth, c.Export.PNGHeight)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// BoardOptions converts the engine section into state options.
func (c Config) BoardOptions() (state.Options, error) {
	palette, err := shape.PaletteFromNames(c.Engine.Palette)
	if err != nil {
		return state.Options{}, fmt.Errorf("invalid palette: %w", err)
	}
	return state.Options{
		HitTolerance:     c.Engine.HitTolerance,
		InitialThickness: c.Engine.InitialThickness,
		Palette:          palette,
	}, nil
}

// SlogLevel maps the configured level name to a slog level.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, l.Level)
	}
	return level, nil
}

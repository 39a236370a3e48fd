package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/gallifreyan-clock/internal/gallifrey"
)

const (
	WindowWidth  = 800
	WindowHeight = 600
	WindowTitle  = "Gallifreyan Clock"

	// Glyph pen and time text
	GlyphWidth = 3
	FontSize   = 30
	TextY      = 40

	// Angle allocation
	MinSeparation = 0.5
	MaxAttempts   = 1000

	TickPeriod = time.Second

	// Chime
	ChimeFrequency = 1760
	ChimeDuration  = 35 * time.Millisecond
	ChimeVolume    = 0.3

	ServeAddr = "127.0.0.1:8080"

	// Terminal cells are roughly twice as tall as wide.
	CellAspect = 2.0
)

// RingRadii are the reference radii, outermost first.
var RingRadii = []float64{200, 180, 155, 135, 110, 90, 65}

var ErrInvalid = errors.New("invalid config")

// Config is the optional clock.toml / clock.yaml file. Zero values mean "use the default".
type Config struct {
	Width         int       `toml:"width" yaml:"width,omitempty"`
	Height        int       `toml:"height" yaml:"height,omitempty"`
	Rings         []float64 `toml:"rings" yaml:"rings,omitempty"`
	MinSeparation float64   `toml:"min_separation" yaml:"min_separation,omitempty"`
	MaxAttempts   int       `toml:"max_attempts" yaml:"max_attempts,omitempty"`
	GlyphWidth    float64   `toml:"glyph_width" yaml:"glyph_width,omitempty"`
	FontSize      float64   `toml:"font_size" yaml:"font_size,omitempty"`
	TextY         float64   `toml:"text_y" yaml:"text_y,omitempty"`
	// Seed fixes the angle source; 0 seeds from the wall clock.
	Seed uint64 `toml:"seed" yaml:"seed,omitempty"`

	Chime ChimeConfig `toml:"chime" yaml:"chime,omitempty"`
	Serve ServeConfig `toml:"serve" yaml:"serve,omitempty"`
	TTY   TTYConfig   `toml:"tty" yaml:"tty,omitempty"`
}

// ChimeConfig controls the per-second tick sound.
type ChimeConfig struct {
	Enabled   bool    `toml:"enabled" yaml:"enabled,omitempty"`
	File      string  `toml:"file" yaml:"file,omitempty"`
	Volume    float64 `toml:"volume" yaml:"volume,omitempty"`
	Frequency float64 `toml:"frequency" yaml:"frequency,omitempty"`
}

// ServeConfig controls the HTTP surface.
type ServeConfig struct {
	Addr string `toml:"addr" yaml:"addr,omitempty"`
}

// TTYConfig controls the terminal surface.
type TTYConfig struct {
	CellAspect float64 `toml:"cell_aspect" yaml:"cell_aspect,omitempty"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Width:         WindowWidth,
		Height:        WindowHeight,
		Rings:         append([]float64(nil), RingRadii...),
		MinSeparation: MinSeparation,
		MaxAttempts:   MaxAttempts,
		GlyphWidth:    GlyphWidth,
		FontSize:      FontSize,
		TextY:         TextY,
		Chime: ChimeConfig{
			Volume:    ChimeVolume,
			Frequency: ChimeFrequency,
		},
		Serve: ServeConfig{Addr: ServeAddr},
		TTY:   TTYConfig{CellAspect: CellAspect},
	}
}

// Load reads path on top of the defaults. An empty path or a missing file
// yields the defaults. The format follows the extension: .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &file); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: unsupported config format %q", ErrInvalid, ext)
	}

	cfg.merge(file)
	return cfg, cfg.Validate()
}

// merge copies every non-zero field of o into c.
func (c *Config) merge(o Config) {
	if o.Width != 0 {
		c.Width = o.Width
	}
	if o.Height != 0 {
		c.Height = o.Height
	}
	if len(o.Rings) != 0 {
		c.Rings = o.Rings
	}
	if o.MinSeparation != 0 {
		c.MinSeparation = o.MinSeparation
	}
	if o.MaxAttempts != 0 {
		c.MaxAttempts = o.MaxAttempts
	}
	if o.GlyphWidth != 0 {
		c.GlyphWidth = o.GlyphWidth
	}
	if o.FontSize != 0 {
		c.FontSize = o.FontSize
	}
	if o.TextY != 0 {
		c.TextY = o.TextY
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}

	c.Chime.Enabled = c.Chime.Enabled || o.Chime.Enabled
	if o.Chime.File != "" {
		c.Chime.File = o.Chime.File
	}
	if o.Chime.Volume != 0 {
		c.Chime.Volume = o.Chime.Volume
	}
	if o.Chime.Frequency != 0 {
		c.Chime.Frequency = o.Chime.Frequency
	}
	if o.Serve.Addr != "" {
		c.Serve.Addr = o.Serve.Addr
	}
	if o.TTY.CellAspect != 0 {
		c.TTY.CellAspect = o.TTY.CellAspect
	}
}

// Validate checks values that would make the face unrenderable.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.MinSeparation < 0 {
		return fmt.Errorf("%w: min_separation %v", ErrInvalid, c.MinSeparation)
	}
	if c.Chime.Volume < 0 || c.Chime.Volume > 1 {
		return fmt.Errorf("%w: chime volume %v not in [0, 1]", ErrInvalid, c.Chime.Volume)
	}
	if c.TTY.CellAspect <= 0 {
		return fmt.Errorf("%w: tty cell_aspect %v", ErrInvalid, c.TTY.CellAspect)
	}
	if err := c.Layout().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Layout converts the face geometry into the renderer's form.
func (c Config) Layout() gallifrey.Layout {
	return gallifrey.Layout{
		Width:      c.Width,
		Height:     c.Height,
		Rings:      gallifrey.Rings(c.Rings),
		GlyphWidth: c.GlyphWidth,
		FontSize:   c.FontSize,
		TextY:      c.TextY,
	}
}

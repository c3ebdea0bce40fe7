// Package config loads driver and backend settings from TOML
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
)

var ErrInvalid = errors.New("invalid config")

const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"

	ColorAuto      = "auto"
	Color256       = "256"
	ColorTrueColor = "truecolor"
)

// Duration is a time.Duration written as a Go duration string ("250ms")
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q: %v", ErrInvalid, text, err)
	}
	*d = Duration(v)
	return nil
}

// ColorPair names foreground and background colors as tcell color names or #rrggbb
type ColorPair struct {
	FG string `toml:"fg"`
	BG string `toml:"bg"`
}

type Theme struct {
	Normal ColorPair `toml:"normal"`
	Focus  ColorPair `toml:"focus"`
	Status ColorPair `toml:"status"`
}

type Config struct {
	TickRate     Duration `toml:"tick_rate"`
	Backend      string   `toml:"backend"`
	ColorMode    string   `toml:"color_mode"`
	Mouse        bool     `toml:"mouse"`
	Paste        bool     `toml:"paste"`
	FocusReports bool     `toml:"focus_reports"`
	Debug        bool     `toml:"debug"`

	Theme Theme `toml:"theme"`
}

// Default returns the settings used when no file is given
func Default() Config {
	return Config{
		TickRate:     Duration(250 * time.Millisecond),
		Backend:      BackendANSI,
		ColorMode:    ColorAuto,
		Mouse:        true,
		Paste:        true,
		FocusReports: true,
		Theme: Theme{
			Normal: ColorPair{FG: "silver", BG: "default"},
			Focus:  ColorPair{FG: "black", BG: "aqua"},
			Status: ColorPair{FG: "black", BG: "yellow"},
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Keys the file sets that Config does not know are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Write encodes c as TOML
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// WriteFile writes c to path, or to stdout when path is empty
func (c Config) WriteFile(path string) error {
	if path == "" {
		return c.Write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.Write(f)
}

func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %s", ErrInvalid, time.Duration(c.TickRate))
	}
	switch c.Backend {
	case BackendANSI, BackendTcell:
	default:
		return fmt.Errorf("%w: backend %q, want %q or %q", ErrInvalid, c.Backend, BackendANSI, BackendTcell)
	}
	switch c.ColorMode {
	case ColorAuto, Color256, ColorTrueColor:
	default:
		return fmt.Errorf("%w: color_mode %q", ErrInvalid, c.ColorMode)
	}
	for name, p := range map[string]ColorPair{
		"normal": c.Theme.Normal,
		"focus":  c.Theme.Focus,
		"status": c.Theme.Status,
	} {
		if _, _, err := p.Colors(); err != nil {
			return fmt.Errorf("theme.%s: %w", name, err)
		}
	}
	return nil
}

// Colors resolves the pair. Empty and "default" names mean the terminal default.
func (p ColorPair) Colors() (fg, bg tcell.Color, err error) {
	if fg, err = color(p.FG); err != nil {
		return
	}
	bg, err = color(p.BG)
	return
}

func color(name string) (tcell.Color, error) {
	if name == "" || name == "default" {
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("%w: unknown color %q", ErrInvalid, name)
	}
	return c, nil
}

// TickDuration is the tick rate as a time.Duration
func (c Config) TickDuration() time.Duration {
	return time.Duration(c.TickRate)
}

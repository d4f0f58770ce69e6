package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

type Window struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type Entry struct {
	// CloseThreshold is how near the first vertex a click must land to
	// close a click-drawn polygon.
	CloseThreshold float64 `toml:"close_threshold"`
}

type Render struct {
	CircleSegments int        `toml:"circle_segments"`
	CurveSteps     int        `toml:"curve_steps"`
	Background     [3]float64 `toml:"background"`
}

type Transform struct {
	MoveStep   float64 `toml:"move_step"`
	ScaleStep  float64 `toml:"scale_step"`
	RotateStep float64 `toml:"rotate_step"`
}

type Animation struct {
	TickMillis int     `toml:"tick_ms"`
	LoopStep   float64 `toml:"loop_step"`
}

type Log struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

type Share struct {
	Port      int  `toml:"port"`
	Advertise bool `toml:"advertise"`
}

type Config struct {
	Window    Window    `toml:"window"`
	Entry     Entry     `toml:"entry"`
	Render    Render    `toml:"render"`
	Transform Transform `toml:"transform"`
	Animation Animation `toml:"animation"`
	Log       Log       `toml:"log"`
	Share     Share     `toml:"share"`
}

func Default() *Config {
	return &Config{
		Window:    Window{Width: 800, Height: 600},
		Entry:     Entry{CloseThreshold: 10},
		Render:    Render{CircleSegments: 36, CurveSteps: 16, Background: [3]float64{1, 1, 1}},
		Transform: Transform{MoveStep: 10, ScaleStep: 1.25, RotateStep: 5},
		Animation: Animation{TickMillis: 200, LoopStep: -5},
		Log:       Log{Level: "info", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28},
		Share:     Share{Port: 8888, Advertise: true},
	}
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Animation.TickMillis) * time.Millisecond
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %gx%g must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Entry.CloseThreshold < 0 {
		errs = append(errs, fmt.Errorf("entry.close_threshold %g is negative", c.Entry.CloseThreshold))
	}
	if c.Render.CircleSegments < 3 {
		errs = append(errs, fmt.Errorf("render.circle_segments %d is below 3", c.Render.CircleSegments))
	}
	if c.Render.CurveSteps < 1 {
		errs = append(errs, fmt.Errorf("render.curve_steps %d is below 1", c.Render.CurveSteps))
	}
	for i, v := range c.Render.Background {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("render.background[%d] %g outside [0,1]", i, v))
		}
	}
	if c.Transform.ScaleStep <= 1 {
		errs = append(errs, fmt.Errorf("transform.scale_step %g must be greater than 1", c.Transform.ScaleStep))
	}
	if c.Animation.TickMillis <= 0 {
		errs = append(errs, fmt.Errorf("animation.tick_ms %d must be positive", c.Animation.TickMillis))
	}
	if c.Share.Port <= 0 || c.Share.Port > 65535 {
		errs = append(errs, fmt.Errorf("share.port %d out of range", c.Share.Port))
	}
	return errors.Join(errs...)
}

// DefaultPath is $XDG_CONFIG_HOME/shapeboard/config.toml.
func DefaultPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join("shapeboard", "config.toml"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return path, nil
}

// Load reads path over the defaults. An empty path means DefaultPath. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

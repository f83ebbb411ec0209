// Package config loads imgrid settings from TOML files.
//
// Settings come in three layers: built-in defaults, an optional config
// file, and command-line flags. The CLI applies them in that order,
// with later layers overriding earlier ones. This package owns the
// first two layers: defaults, file discovery, and parsing.
//
// The config file lives at $XDG_CONFIG_HOME/imgrid/config.toml
// (~/.config/imgrid/config.toml when unset):
//
//	output = "combined.jpg"
//	border = "LIGHT_BLUE"
//
//	[layout]
//	mode = 2
//	cols = 3
//	image_size = "400x300"
//
//	[serve]
//	addr = ":9000"
//	cache = "redis"
//	redis_addr = "localhost:6379"
//
//	[log]
//	level = "debug"
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/imgrid/imgrid/pkg/errors"
	"github.com/imgrid/imgrid/pkg/layout"
	"github.com/imgrid/imgrid/pkg/render"
)

// Config is the full settings file. Zero values mean "not configured";
// the conversion methods substitute defaults.
type Config struct {
	Output string `toml:"output"`
	Border string `toml:"border"`

	Layout LayoutSection `toml:"layout"`
	Serve  ServeSection  `toml:"serve"`
	Log    LogSection    `toml:"log"`
}

// LayoutSection configures the grid.
type LayoutSection struct {
	Mode       int    `toml:"mode"`
	Cols       int    `toml:"cols"`
	ImageSize  string `toml:"image_size"`
	CanvasSize string `toml:"canvas_size"`
}

// ServeSection configures the HTTP server.
type ServeSection struct {
	Addr      string `toml:"addr"`
	Cache     string `toml:"cache"`
	RedisAddr string `toml:"redis_addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings used when no file exists.
func Default() Config {
	return Config{
		Serve: ServeSection{
			Addr:  ":8080",
			Cache: "memory",
		},
	}
}

// Load reads and parses the config file at path. Fields absent from
// the file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}

// Discover returns the default config file path and whether a file
// exists there.
func Discover() (string, bool) {
	path, err := defaultPath()
	if err != nil {
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		return path, false
	}
	return path, true
}

// defaultPath returns the config file location using the XDG standard
// (~/.config/imgrid/config.toml).
func defaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "imgrid", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "imgrid", "config.toml"), nil
}

// ParseSize parses a geometry argument of the form "WxH" or "W". A
// lone width leaves the height zero for the caller to derive from the
// aspect ratio.
func ParseSize(s string) (w, h int, err error) {
	if i := strings.IndexByte(s, 'x'); i >= 0 {
		w, errW := strconv.Atoi(s[:i])
		h, errH := strconv.Atoi(s[i+1:])
		if errW != nil || errH != nil || w <= 0 || h <= 0 {
			return 0, 0, errors.New(errors.ErrCodeInvalidGeometry, "size %q must be WxH or W", s)
		}
		return w, h, nil
	}
	w, errW := strconv.Atoi(s)
	if errW != nil || w <= 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidGeometry, "size %q must be WxH or W", s)
	}
	return w, 0, nil
}

// Mode returns the configured layout mode, defaulting to equal-size.
func (c Config) Mode() (layout.Mode, error) {
	if c.Layout.Mode == 0 {
		return layout.ModeEqual, nil
	}
	return layout.ParseMode(c.Layout.Mode)
}

// BorderValue returns the configured pane border, defaulting to GREEN.
func (c Config) BorderValue() (render.Border, error) {
	if c.Border == "" {
		return render.DefaultBorder(), nil
	}
	return render.ParseBorder(c.Border)
}

// SizingValue parses the configured size strings. Conflicts between
// image and canvas size are left for layout.Resolve to reject so every
// settings source shares one rule.
func (c Config) SizingValue() (layout.Sizing, error) {
	var s layout.Sizing
	var err error
	if c.Layout.ImageSize != "" {
		s.ImageWidth, s.ImageHeight, err = ParseSize(c.Layout.ImageSize)
		if err != nil {
			return layout.Sizing{}, err
		}
	}
	if c.Layout.CanvasSize != "" {
		s.CanvasWidth, s.CanvasHeight, err = ParseSize(c.Layout.CanvasSize)
		if err != nil {
			return layout.Sizing{}, err
		}
	}
	return s, nil
}

// LogLevel parses the configured log level, defaulting to info.
func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, errors.Wrap(errors.ErrCodeInvalidConfig, err, "log level %q", c.Log.Level)
	}
	return lvl, nil
}

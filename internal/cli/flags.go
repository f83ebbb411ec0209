package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/imgrid/imgrid/pkg/compose"
	"github.com/imgrid/imgrid/pkg/config"
	"github.com/imgrid/imgrid/pkg/crop"
	"github.com/imgrid/imgrid/pkg/errors"
	"github.com/imgrid/imgrid/pkg/layout"
	"github.com/imgrid/imgrid/pkg/render"
)

// =============================================================================
// Compose Flags
// =============================================================================

// composeFlags holds the flag values shared by the root and serve commands.
// The short flag letters match the command lines the session recorder
// emits, so a recorded command replays unchanged.
type composeFlags struct {
	imageSize  string
	canvasSize string
	cols       int
	layoutMode int
	border     string
	output     string
	crops      []string
	configPath string
	batch      bool
}

// registerComposeFlags registers the composition flags common to the root
// and serve commands. Output file and batch mode are root-only and are
// registered by the root command itself.
func registerComposeFlags(fs *pflag.FlagSet, f *composeFlags) {
	fs.StringVarP(&f.imageSize, "image-size", "i", "", "per-image cell size as WxH or W (height derived 4:3)")
	fs.StringVarP(&f.canvasSize, "canvas-size", "o", "", "total canvas size as WxH or W")
	fs.IntVarP(&f.cols, "cols", "c", 0, "number of grid columns (0 picks a default)")
	fs.IntVarP(&f.layoutMode, "layout", "l", 1, "layout mode: 1 equal cells, 2 first image doubled")
	fs.StringVarP(&f.border, "border", "b", "", "border color name, or NONE (default GREEN)")
	fs.StringArrayVarP(&f.crops, "crop", "k", nil, "preset crop as index,x,y,w,h in percent (repeatable)")
	fs.StringVar(&f.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/imgrid/config.toml)")
}

// =============================================================================
// Config Resolution
// =============================================================================

// loadConfig returns the effective configuration. An explicit --config
// path must exist; otherwise the discovered default file is used when
// present, and built-in defaults when not.
func (c *CLI) loadConfig(f composeFlags) (config.Config, error) {
	if f.configPath != "" {
		return config.Load(f.configPath)
	}
	path, ok := config.Discover()
	if !ok {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config file", "path", path)
	return cfg, nil
}

// buildOptions merges flag values over config file values into session
// options. A flag that was set on the command line wins over the file;
// fs decides what counts as set.
func buildOptions(cfg config.Config, f composeFlags, fs *pflag.FlagSet) (compose.Options, error) {
	var opts compose.Options
	var err error

	if fs.Changed("layout") {
		opts.Mode, err = layout.ParseMode(f.layoutMode)
	} else {
		opts.Mode, err = cfg.Mode()
	}
	if err != nil {
		return compose.Options{}, err
	}

	opts.Cols = cfg.Layout.Cols
	if fs.Changed("cols") {
		opts.Cols = f.cols
	}

	if fs.Changed("border") {
		opts.Border, err = render.ParseBorder(f.border)
	} else {
		opts.Border, err = cfg.BorderValue()
	}
	if err != nil {
		return compose.Options{}, err
	}

	opts.OutputPath = cfg.Output
	if f.output != "" {
		opts.OutputPath = f.output
	}

	opts.Sizing, err = resolveSizing(cfg, f, fs)
	if err != nil {
		return compose.Options{}, err
	}

	for _, s := range f.crops {
		spec, err := parseCropFlag(s)
		if err != nil {
			return compose.Options{}, err
		}
		opts.Crops = append(opts.Crops, spec)
	}

	return opts, nil
}

// resolveSizing picks the size constraints. A size flag on the command
// line replaces the config file's size pair entirely, so a configured
// canvas size never conflicts with a -i flag given at the prompt.
func resolveSizing(cfg config.Config, f composeFlags, fs *pflag.FlagSet) (layout.Sizing, error) {
	if !fs.Changed("image-size") && !fs.Changed("canvas-size") {
		return cfg.SizingValue()
	}

	var s layout.Sizing
	if f.imageSize != "" {
		w, h, err := config.ParseSize(f.imageSize)
		if err != nil {
			return layout.Sizing{}, err
		}
		s.ImageWidth, s.ImageHeight = w, h
	}
	if f.canvasSize != "" {
		w, h, err := config.ParseSize(f.canvasSize)
		if err != nil {
			return layout.Sizing{}, err
		}
		s.CanvasWidth, s.CanvasHeight = w, h
	}
	return s, nil
}

// =============================================================================
// Crop Flag Parsing
// =============================================================================

// parseCropFlag parses a -k value of the form "index,x,y,w,h" with the
// index counted from zero and the rectangle in percent of the image.
// Rectangle bounds are validated later when the session is created; only
// the shape and the index range are checked here.
func parseCropFlag(s string) (compose.CropSpec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 5 {
		return compose.CropSpec{}, errors.New(errors.ErrCodeInvalidCrop, "crop %q must be index,x,y,w,h", s)
	}

	idx, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return compose.CropSpec{}, errors.New(errors.ErrCodeInvalidCrop, "crop index %q is not a number", parts[0])
	}
	if idx < 0 || idx >= compose.MaxImages {
		return compose.CropSpec{}, errors.New(errors.ErrCodeInvalidCrop, "crop index %d not in range 0 - %d", idx, compose.MaxImages-1)
	}

	vals := make([]float64, 4)
	for i, p := range parts[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return compose.CropSpec{}, errors.New(errors.ErrCodeInvalidCrop, "crop value %q is not a number", p)
		}
		vals[i] = v
	}

	return compose.CropSpec{
		Index: idx,
		Rect:  crop.Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]},
	}, nil
}

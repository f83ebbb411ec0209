package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/imgrid/imgrid/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "imgrid"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// logOutput is the writer the logger was created with. Interactive
	// mode temporarily redirects logging while the terminal is in the
	// alternate screen, then restores this writer.
	logOutput io.Writer

	// levelSet records an explicit SetLogLevel call, which takes
	// precedence over the level configured in the config file.
	levelSet bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:    newLogger(w, level),
		logOutput: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.levelSet = true
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root command itself performs the composition: positional arguments
// name the input images, and without --batch an interactive editor opens.
func (c *CLI) RootCommand() *cobra.Command {
	var flags composeFlags

	root := &cobra.Command{
		Use:   "imgrid [flags] image...",
		Short: "Compose images into a tiled grid with interactive cropping",
		Long: `Imgrid composes a set of images into a single tiled grid image.

By default an interactive editor opens where crops, column count, and
canvas size can be adjusted before writing the result. With --batch the
composite is written immediately and the process exits, which makes a
previously edited session reproducible from its recorded command line.

Layout 1 gives every image an equal cell; layout 2 enlarges the first
image to a 2x2 block. Either the per-image size (-i) or the total canvas
size (-o) may be given, not both.`,
		Example: `  imgrid a.jpg b.jpg c.jpg
  imgrid -l 2 -c 3 -b LIGHT_BLUE *.png
  imgrid -o 1280x960 -f wall.png -z -k 0,10,10,80,80 a.jpg b.jpg`,
		Args:         cobra.ArbitraryArgs,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompose(cmd.Context(), args, flags, cmd.Flags())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	registerComposeFlags(root.Flags(), &flags)
	root.Flags().StringVarP(&flags.output, "file", "f", "", "output file, .jpg or .png (default out.jpg)")
	root.Flags().BoolVarP(&flags.batch, "batch", "z", false, "write the composite and exit without opening the editor")

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.colorsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/imgrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

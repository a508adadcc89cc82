// Package cli implements the moodcanvas command-line interface.
//
// This package provides commands for rendering prompts as flowfield or
// emotion compositions, inspecting derived palettes, serving the HTTP
// API, and managing the render cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - flow: Render a prompt as flowfield line art
//   - emotion: Render a prompt as an emotion composition
//   - palette: Derive and display the palette for a prompt
//   - serve: Run the HTTP API server
//   - cache: Manage the render cache
//   - tui: Interactive prompt explorer
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/moodcanvas/moodcanvas/pkg/buildinfo"
	"github.com/moodcanvas/moodcanvas/pkg/cache"
	"github.com/moodcanvas/moodcanvas/pkg/config"
	"github.com/moodcanvas/moodcanvas/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "moodcanvas"

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
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "MoodCanvas turns text into deterministic generative art",
		Long:         `MoodCanvas derives colors, randomness, and composition from the text you give it: the same prompt always produces the same image. Render flowfield line art or emotion-driven shape compositions, straight to PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/moodcanvas/config.toml)")

	// Register all subcommands
	root.AddCommand(c.flowCommand())
	root.AddCommand(c.emotionCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file, falling back to defaults when no
// file exists.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil // no config dir, run on defaults
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/moodcanvas/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// bindRenderFlags registers the flags shared by the flow and emotion
// commands onto cmd, bound to opts.
func bindRenderFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	f.IntVar(&opts.Width, "width", 0, "canvas width in pixels")
	f.IntVar(&opts.Height, "height", 0, "canvas height in pixels")
	f.IntVar(&opts.PaletteSize, "colors", 0, "number of palette colors")
	f.StringVar(&opts.Scheme, "scheme", "", "palette scheme: slice (default), harmonic")
	f.Float64Var(&opts.Blur, "blur", 0, "gaussian blur sigma applied to the output")
	f.StringVar(&opts.Background, "background", "", "background: dark (default), light, palette")
	f.BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and recompute")
}

// promptFromArgs joins positional args into the prompt text.
func promptFromArgs(args []string) string {
	switch len(args) {
	case 0:
		return ""
	case 1:
		return args[0]
	default:
		prompt := args[0]
		for _, a := range args[1:] {
			prompt += " " + a
		}
		return prompt
	}
}

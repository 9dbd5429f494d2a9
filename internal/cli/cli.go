// Package cli implements the coachtree command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/coachtree/coachtree/pkg/buildinfo"
	"github.com/coachtree/coachtree/pkg/cache"
	"github.com/coachtree/coachtree/pkg/pipeline"
	"github.com/coachtree/coachtree/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "coachtree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and config.
// The config file (if any) is loaded lazily when the root command runs,
// so flag parsing can name an alternate path first.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose    bool
		quiet      bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "coachtree",
		Short:        "Coachtree visualizes coaching mentorship lineages",
		Long:         `Coachtree ingests a coaching dataset, prunes it to the lineages behind today's head coaches, and lays the result out as a deterministic layered diagram. It also answers lineage queries (mentor chains, reachable sets, connections) from the same pruned graph.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg

			// Flags beat config, config beats the default level.
			switch {
			case verbose:
				c.SetLogLevel(LogDebug)
			case quiet:
				c.SetLogLevel(LogWarn)
			default:
				c.SetLogLevel(cfg.logLevel())
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/coachtree/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

// newCache selects the cache backend: disabled, Redis when configured,
// otherwise the file cache. A missing cache dir degrades to no caching
// rather than failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.NoCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.Config.RedisAddr})
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore selects the snapshot store backend: MongoDB when configured,
// otherwise the file store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.Config.MongoURI != "" {
		return store.NewMongoStore(ctx, store.MongoConfig{URI: c.Config.MongoURI})
	}
	return store.NewFileStore(c.Config.StoreDir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to the
// XDG standard (~/.cache/coachtree/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	return cacheDir()
}

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

// datasetArg resolves the dataset path from a positional argument or the
// configured default.
func (c *CLI) datasetArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return c.Config.DatasetPath
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parseHighlight parses a comma-separated coach id list, dropping empties.
func parseHighlight(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

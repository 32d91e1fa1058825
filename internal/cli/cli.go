package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vladshablinsky/brew/pkg/buildinfo"
	"github.com/vladshablinsky/brew/pkg/cache"
	"github.com/vladshablinsky/brew/pkg/cellar"
	"github.com/vladshablinsky/brew/pkg/formula"
	"github.com/vladshablinsky/brew/pkg/observability"
	"github.com/vladshablinsky/brew/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "brewdeps"

	// defaultPrefix is the Homebrew prefix used when HOMEBREW_PREFIX is unset.
	defaultPrefix = "/usr/local"
)

// Environment variables read by the CLI.
const (
	envPrefix    = "HOMEBREW_PREFIX"
	envCellar    = "HOMEBREW_CELLAR"
	envTaps      = "HOMEBREW_TAPS"
	envCacheHome = "XDG_CACHE_HOME"
	envRedisAddr = "BREWDEPS_REDIS_ADDR"
	envScope     = "BREWDEPS_CACHE_SCOPE"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose bool
	cellar  string
	taps    string
	noCache bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "brewdeps lists and draws Homebrew formula dependencies",
		Long: `brewdeps expands the dependencies of Homebrew formulae from tap definition
files, applying the same pruning rules as "brew deps" and taking the installed
cellar into account when choosing which lineage each dependency resolves to.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.NewLogHooks(c.Logger).Install()
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.cellar, "cellar", defaultCellar(), "cellar directory (env "+envCellar+")")
	flags.StringVar(&c.taps, "taps", defaultTaps(), "taps directory (env "+envTaps+")")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the result cache")

	root.AddCommand(c.depsCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.upgradeSpecCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner over the configured taps and cellar.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	loader := formula.NewFormulary(c.taps)
	c.Logger.Debug("using directories", "taps", c.taps, "cellar", c.cellar)
	return pipeline.NewRunner(loader, cellar.NewDir(c.cellar, loader), store, newKeyer(), c.Logger), nil
}

// newKeyer namespaces cache keys under BREWDEPS_CACHE_SCOPE when it is set,
// so several cellars can share one Redis instance or cache directory.
func newKeyer() cache.Keyer {
	scope := os.Getenv(envScope)
	if scope == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), scope+":")
}

// newCache picks the cache backend: none with --no-cache, Redis when
// BREWDEPS_REDIS_ADDR is set, the file cache otherwise.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if addr := os.Getenv(envRedisAddr); addr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

func homebrewPrefix() string {
	if p := os.Getenv(envPrefix); p != "" {
		return p
	}
	return defaultPrefix
}

// defaultCellar returns HOMEBREW_CELLAR, or <prefix>/Cellar.
func defaultCellar() string {
	if p := os.Getenv(envCellar); p != "" {
		return p
	}
	return filepath.Join(homebrewPrefix(), "Cellar")
}

// defaultTaps returns HOMEBREW_TAPS, or <prefix>/Homebrew/Library/Taps.
func defaultTaps() string {
	if p := os.Getenv(envTaps); p != "" {
		return p
	}
	return filepath.Join(homebrewPrefix(), "Homebrew", "Library", "Taps")
}

// cacheDir returns the cache directory using XDG standard (~/.cache/brewdeps/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv(envCacheHome); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

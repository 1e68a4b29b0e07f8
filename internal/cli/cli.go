// Package cli implements the rbgen command-line interface.
//
// # Commands
//
//   - process: composite every PNG of a directory
//   - render: composite a single image
//   - modes, themes: list what can be drawn
//   - cache: inspect and clear the result cache
//   - serve: run the HTTP API
//   - completion: shell completion scripts
//
// Defaults for most flags can be set in a TOML config file, see [Config].
// All commands accept --verbose (-v) for debug logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/spa-dev/rbgen/pkg/cache"
	"github.com/spa-dev/rbgen/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName names the binary and its config and cache directories.
const appName = "rbgen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config

	configPath string
	noCache    bool
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: &Config{},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner builds a pipeline runner from the loaded config.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if ns := c.Config.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(nil, ns+":")
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	if err := runner.Themes.Merge(c.Config.Themes); err != nil {
		runner.Close()
		return nil, err
	}
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			URL:    c.Config.Cache.RedisURL,
			Prefix: appName + ":",
		})
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory ($XDG_CACHE_HOME/rbgen or ~/.cache/rbgen).
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

// defaultConfigPath returns the default config file location
// ($XDG_CONFIG_HOME/rbgen/config.toml or ~/.config/rbgen/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

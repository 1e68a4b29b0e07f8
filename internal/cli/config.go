package cli

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/spa-dev/rbgen/pkg/catalog"
	rberrors "github.com/spa-dev/rbgen/pkg/errors"
	"github.com/spa-dev/rbgen/pkg/palette"
)

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the optional config file:
//
//	mode  = "marble"
//	theme = "ocean"
//	seed  = 42
//
//	[cache]
//	backend   = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":9000"
//
//	[themes.harbor]
//	pairs = [["#1e3c5a", "#78b4d2"]]
//
//	[modes.checkered]
//	square_size = 30
//
// Flags given on the command line take precedence.
type Config struct {
	Mode  string  `toml:"mode"`
	Theme string  `toml:"theme"`
	Seed  *uint64 `toml:"seed"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`

	Themes map[string]palette.ThemeConfig `toml:"themes" validate:"dive"`
	Modes  map[string]map[string]any      `toml:"modes"`
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Backend  string `toml:"backend" validate:"omitempty,oneof=file redis none"`
	RedisURL string `toml:"redis_url" validate:"required_if=Backend redis"`

	// Namespace separates users sharing one cache.
	Namespace string `toml:"namespace" validate:"omitempty,alphanum"`
}

// ServerConfig configures "rbgen serve".
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes" validate:"gte=0"`
}

// LoadConfig reads the config file at path. A missing file yields an empty
// config unless required is set.
func LoadConfig(path string, required bool) (*Config, error) {
	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, rberrors.Wrap(rberrors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return nil, rberrors.Wrap(rberrors.ErrCodeInvalidParameter, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, rberrors.New(rberrors.ErrCodeInvalidParameter, "config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, rberrors.Wrap(rberrors.GetCode(err), err, "config file %s", path)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := rberrors.ValidateStruct(c); err != nil {
		return err
	}
	if c.Mode != "" {
		if _, err := catalog.ParseMode(c.Mode); err != nil {
			return err
		}
	}
	// Decode every mode table now so mistakes surface at startup.
	names := make([]string, 0, len(c.Modes))
	for name := range c.Modes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m, err := catalog.ParseMode(name)
		if err != nil {
			return err
		}
		if _, err := catalog.DecodeParamsMap(m, c.Modes[name]); err != nil {
			return err
		}
	}
	return nil
}

// ModeParams returns the configured parameters of m, or nil when the
// config has no table for it.
func (c *Config) ModeParams(m catalog.Mode) (catalog.Params, error) {
	table, ok := c.Modes[string(m)]
	if !ok {
		return nil, nil
	}
	return catalog.DecodeParamsMap(m, table)
}

// loadConfig resolves the config path and loads it into c.Config.
func (c *CLI) loadConfig() error {
	path, required := c.configPath, true
	if path == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return nil
		}
		path, required = p, false
	}
	cfg, err := LoadConfig(path, required)
	if err != nil {
		return err
	}
	c.Config = cfg
	if _, statErr := os.Stat(path); statErr == nil {
		c.Logger.Debug("loaded config", "path", path)
	}
	return nil
}

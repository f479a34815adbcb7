// Package config loads the mosaic configuration file.
//
// The file is TOML. It is looked up at the path given with --config, then
// $XDG_CONFIG_HOME/mosaic/config.toml, then ~/.config/mosaic/config.toml.
// A missing file at a default location yields [Default]; a missing file
// named explicitly is an error.
//
//	[log]
//	level = "debug"
//
//	[content]
//	mode = "raw"
//
//	[store]
//	backend = "redis"
//
//	[store.redis]
//	addr = "localhost:6379"
//	ttl = "720h"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/content"
	errs "github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/store"
)

const appName = "mosaic"

// Config is the full configuration file.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Content ContentConfig `toml:"content"`
	Store   store.Config  `toml:"store"`
	Server  ServerConfig  `toml:"server"`
	Render  RenderConfig  `toml:"render"`

	path string
}

// LogConfig sets the default log level. --verbose overrides it.
type LogConfig struct {
	Level string `toml:"level"`
}

// ContentConfig selects how tile markup is decoded: "editable" or "raw".
type ContentConfig struct {
	Mode string `toml:"mode"`
}

// ServerConfig configures `mosaic serve`.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// RenderConfig configures the render cache.
type RenderConfig struct {
	Cache    bool   `toml:"cache"`
	CacheDir string `toml:"cache_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:     LogConfig{Level: "info"},
		Content: ContentConfig{Mode: "editable"},
		Store:   store.DefaultConfig(),
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Render: RenderConfig{Cache: true},
	}
}

// Path returns the file the configuration was read from, or "" when
// defaults are in use.
func (c Config) Path() string { return c.path }

// DefaultPath returns the config file location used when --config is not
// given.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration at path, or at [DefaultPath] when path is
// empty. Values missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := Parse(data, &cfg); err != nil {
		return Default(), errs.Wrap(errs.ErrCodeInvalidConfig, err, "config %s", path)
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes TOML data over cfg and validates the result.
// Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errs.New(errs.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errs.New(errs.ErrCodeInvalidConfig, "log.level: unknown level %q", c.Log.Level)
	}
	if _, ok := content.DecoderFor(c.Content.Mode); !ok {
		return errs.New(errs.ErrCodeInvalidConfig, "content.mode: want editable or raw, got %q", c.Content.Mode)
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "server.addr is required")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server timeouts must not be negative")
	}
	return nil
}

// LogLevel returns the configured level, falling back to info.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Decoder returns the content decoder for the configured mode.
func (c Config) Decoder() content.Decoder {
	d, ok := content.DecoderFor(c.Content.Mode)
	if !ok {
		return content.Decode
	}
	return d
}

// CacheDir returns the render cache directory, defaulting to
// $XDG_CACHE_HOME/mosaic or ~/.cache/mosaic.
func (c Config) CacheDir() (string, error) {
	if c.Render.CacheDir != "" {
		return c.Render.CacheDir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

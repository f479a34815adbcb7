package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/store"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, store.BackendFile, cfg.Store.Backend)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
	assert.Empty(t, cfg.Path())
}

func TestParse(t *testing.T) {
	data := []byte(`
[log]
level = "debug"

[content]
mode = "raw"

[store]
backend = "redis"

[store.redis]
addr = "cache:6379"
ttl = "720h"

[server]
addr = ":9000"
read_timeout = "5s"

[render]
cache = false
cache_dir = "/tmp/mosaic-cache"
`)
	cfg := Default()
	require.NoError(t, Parse(data, &cfg))

	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "raw", cfg.Content.Mode)
	assert.Equal(t, store.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 720*time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, "mosaic:", cfg.Store.Redis.Prefix, "unset keys keep defaults")
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.False(t, cfg.Render.Cache)

	dir, err := cfg.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/mosaic-cache", dir)

	c, err := cfg.Decoder()("<p>x</p>")
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", c.Markup())
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `[log`},
		{"unknown key", "[log]\ncolour = true\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"bad mode", "[content]\nmode = \"wysiwyg\"\n"},
		{"bad backend", "[store]\nbackend = \"sqlite\"\n"},
		{"empty server addr", "[server]\naddr = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, Parse([]byte(tt.data), &cfg))
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mosaic.toml")
		require.NoError(t, os.WriteFile(path, []byte("[store]\nbackend = \"memory\"\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, store.BackendMemory, cfg.Store.Backend)
		assert.Equal(t, path, cfg.Path())
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig))
	})

	t.Run("default path missing", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default().Store, cfg.Store)
		assert.Empty(t, cfg.Path())
	})

	t.Run("xdg config home", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "mosaic"), 0o700))
		path := filepath.Join(dir, "mosaic", "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[content]\nmode = \"raw\"\n"), 0o600))

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "raw", cfg.Content.Mode)
		assert.Equal(t, path, cfg.Path())
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[store]\nbackend = \"tape\"\n"), 0o600))
		_, err := Load(path)
		assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig))
	})
}

func TestCacheDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	got, err := Default().CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mosaic"), got)
}

package store

import (
	"time"

	errs "github.com/matzehuels/mosaic/pkg/errors"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string      `toml:"backend"`
	File    FileConfig  `toml:"file"`
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// FileConfig configures [FileStore].
type FileConfig struct {
	// Dir holds one JSON file per document. Empty means the user config
	// directory (~/.config/mosaic/documents).
	Dir string `toml:"dir"`
}

// RedisConfig configures [RedisStore].
type RedisConfig struct {
	Addr     string        `toml:"addr"`
	Password string        `toml:"password"`
	DB       int           `toml:"db"`
	Prefix   string        `toml:"prefix"`
	TTL      time.Duration `toml:"ttl"`
}

// MongoConfig configures [MongoStore].
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// DefaultConfig returns a file-backed configuration.
func DefaultConfig() Config {
	return Config{
		Backend: BackendFile,
		Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "mosaic:"},
		Mongo:   MongoConfig{URI: "mongodb://localhost:27017", Database: "mosaic", Collection: "documents"},
	}
}

// Validate checks the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "store.redis.addr is required")
		}
		if c.Redis.TTL < 0 {
			return errs.New(errs.ErrCodeInvalidConfig, "store.redis.ttl must not be negative")
		}
	case BackendMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "store.mongo needs uri, database and collection")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown store backend %q (want memory, file, redis or mongo)", c.Backend)
	}
	return nil
}

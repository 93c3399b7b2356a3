package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
)

// Backend types accepted by Open.
const (
	BackendNone     = "none"
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// BackendConfig selects and configures a storage backend.
//
// Example configuration (HCL):
//
//	storage {
//	  backend = "file"
//	  path    = "/home/me/.cocobase"
//	}
type BackendConfig struct {
	// Backend is one of "none", "memory", "file", "redis", "sqlite" or
	// "postgres". Empty means "none".
	Backend string `hcl:"backend,optional"`

	// Path is the directory for the file backend. Default: ~/.cocobase
	Path string `hcl:"path,optional"`

	// RedisAddr is the host:port of the Redis server.
	RedisAddr     string `hcl:"redis_addr,optional"`
	RedisPassword string `hcl:"redis_password,optional"`
	RedisDB       int    `hcl:"redis_db,optional"`

	// KeyPrefix is prepended to Redis keys. Default: "cocobase:"
	KeyPrefix string `hcl:"key_prefix,optional"`

	// DSN is the data source name for the sqlite and postgres backends.
	DSN string `hcl:"dsn,optional"`
}

// Open builds the backend described by cfg. It returns a nil Backend for the
// "none" backend.
func Open(cfg BackendConfig, logger hclog.Logger) (Backend, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	switch cfg.Backend {
	case "", BackendNone:
		return nil, nil

	case BackendMemory:
		return NewMemoryBackend(), nil

	case BackendFile:
		dir := cfg.Path
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("error resolving home directory: %w", err)
			}
			dir = filepath.Join(home, ".cocobase")
		}
		logger.Debug("using file storage backend", "path", dir)
		return NewFileBackend(afero.NewOsFs(), dir), nil

	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis_addr is required for the redis backend")
		}
		prefix := cfg.KeyPrefix
		if prefix == "" {
			prefix = "cocobase:"
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		logger.Debug("using redis storage backend", "addr", cfg.RedisAddr, "prefix", prefix)
		return NewRedisBackend(client, prefix), nil

	case BackendSQLite, BackendPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("dsn is required for the %s backend", cfg.Backend)
		}
		logger.Debug("using SQL storage backend", "driver", cfg.Backend)
		backend, err := OpenSQL(cfg.Backend, cfg.DSN, logger)
		if err != nil {
			return nil, err
		}
		return backend, nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}

package cache

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Backends lists the valid backend names.
var Backends = []string{BackendFile, BackendMemory, BackendRedis, BackendMongo, BackendNone}

// Config selects and configures a cache backend.
type Config struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Size    int         `toml:"size"`
	Prefix  string      `toml:"prefix"`
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// Open creates the cache described by cfg. An empty backend means "file".
// The prefix, when set, is applied to Redis keys that have no prefix of
// their own.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory configured")
		}
		return wrap(NewFileCache(cfg.Dir))
	case BackendMemory:
		return wrap(NewMemoryCache(cfg.Size))
	case BackendRedis:
		rc := cfg.Redis
		if rc.Prefix == "" {
			rc.Prefix = cfg.Prefix
		}
		return wrap(NewRedisCache(ctx, rc))
	case BackendMongo:
		return wrap(NewMongoCache(ctx, cfg.Mongo))
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w %q (must be one of: %s)", ErrUnknownBackend, cfg.Backend, strings.Join(Backends, ", "))
	}
}

// wrap converts a constructor result to the interface without producing a
// non-nil Cache that holds a nil pointer.
func wrap[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

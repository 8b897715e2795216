// Package config loads the funcstructs configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/funcstructs/config.toml
// (or ~/.config/funcstructs/config.toml). Every key is optional; a missing
// file yields the defaults. Command-line flags override file values.
//
//	[output]
//	format = "json"
//	limit  = 1000
//
//	[cache]
//	backend = "redis"
//	prefix  = "funcstructs:"
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr           = ":8080"
//	max_size       = 24
//	shutdown_grace = "10s"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/funcstructs/pkg/cache"
	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
	"github.com/matzehuels/funcstructs/pkg/pipeline"
)

const appName = "funcstructs"

// Config is the decoded configuration file.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
	Cache  cache.Config `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn or error
}

// OutputConfig holds defaults for the enumeration commands.
type OutputConfig struct {
	Format string `toml:"format"`
	Limit  int    `toml:"limit"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// MaxSize caps n for API requests.
	MaxSize       int           `toml:"max_size"`
	Metrics       bool          `toml:"metrics"`
	ShutdownGrace time.Duration `toml:"shutdown_grace"`
}

// Log levels accepted in [log].
var LogLevels = []string{"debug", "info", "warn", "error"}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info"},
		Output: OutputConfig{Format: pipeline.DefaultFormat},
		Cache:  cache.Config{Backend: cache.BackendFile, Size: cache.DefaultMemorySize},
		Server: ServerConfig{
			Addr:          ":8080",
			MaxSize:       fserrors.MaxEnumerationSize,
			Metrics:       true,
			ShutdownGrace: 10 * time.Second,
		},
	}
}

// DefaultPath returns the XDG config file location.
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

// Load reads the file at path over the defaults. A missing file is not an
// error. Unknown keys and invalid values fail with INVALID_CONFIG.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fserrors.Wrap(fserrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fserrors.New(fserrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every value that has a fixed set of choices or a range.
func (c *Config) Validate() error {
	if err := fserrors.ValidateChoice(fserrors.ErrCodeInvalidConfig, "log level", c.Log.Level, LogLevels...); err != nil {
		return err
	}
	if err := fserrors.ValidateChoice(fserrors.ErrCodeInvalidConfig, "output format", c.Output.Format, pipeline.ValidFormats...); err != nil {
		return err
	}
	if c.Output.Limit < 0 {
		return fserrors.New(fserrors.ErrCodeInvalidConfig, "output limit cannot be negative, got %d", c.Output.Limit)
	}
	if err := fserrors.ValidateChoice(fserrors.ErrCodeInvalidConfig, "cache backend", c.Cache.Backend, cache.Backends...); err != nil {
		return err
	}
	if strings.EqualFold(c.Cache.Backend, cache.BackendRedis) && c.Cache.Redis.Addr == "" {
		return fserrors.New(fserrors.ErrCodeInvalidConfig, "cache.redis.addr is required for the redis backend")
	}
	if strings.EqualFold(c.Cache.Backend, cache.BackendMongo) && c.Cache.Mongo.URI == "" {
		return fserrors.New(fserrors.ErrCodeInvalidConfig, "cache.mongo.uri is required for the mongo backend")
	}
	if c.Server.Addr == "" {
		return fserrors.New(fserrors.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	if c.Server.MaxSize < 1 || c.Server.MaxSize > fserrors.MaxEnumerationSize {
		return fserrors.New(fserrors.ErrCodeInvalidConfig, "server.max_size must be in [1, %d], got %d",
			fserrors.MaxEnumerationSize, c.Server.MaxSize)
	}
	if c.Server.ShutdownGrace < 0 {
		return fserrors.New(fserrors.ErrCodeInvalidConfig, "server.shutdown_grace cannot be negative")
	}
	return nil
}

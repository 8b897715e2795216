package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[output]
format = "json"
limit = 100

[cache]
backend = "redis"
prefix = "fs:"
[cache.redis]
addr = "localhost:6379"
db = 2

[server]
addr = "127.0.0.1:9000"
max_size = 20
shutdown_grace = "3s"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 100, cfg.Output.Limit)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 20, cfg.Server.MaxSize)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownGrace)
	assert.True(t, cfg.Server.Metrics, "unset keys keep their defaults")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `[output`},
		{"unknown key", "[output]\ncolour = \"red\"\n"},
		{"bad format", "[output]\nformat = \"svg\"\n"},
		{"negative limit", "[output]\nlimit = -1\n"},
		{"bad backend", "[cache]\nbackend = \"etcd\"\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n"},
		{"mongo without uri", "[cache]\nbackend = \"mongo\"\n"},
		{"max size too large", "[server]\nmax_size = 1000\n"},
		{"bad log level", "[log]\nlevel = \"loud\"\n"},
		{"empty addr", "[server]\naddr = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, fserrors.Is(err, fserrors.ErrCodeInvalidConfig), "got %v", err)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/funcstructs/config.toml", path)
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimdesk/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	v := config.New("")
	require.NoError(t, config.ReadFile(v))

	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8005", cfg.Server.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 2.0, cfg.Batch.Rate)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".claimdesk", "claimdesk.log"), cfg.Log.File)
	assert.Equal(t, "http://localhost:8005/api/process", cfg.ProcessURL())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `server:
  base_url: https://claims.example.com/
  timeout: 5s
cache:
  enabled: false
batch:
  rate: 0.5
export:
  dir: /tmp/exports
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := config.New(path)
	require.NoError(t, config.ReadFile(v))
	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 0.5, cfg.Batch.Rate)
	assert.Equal(t, "/tmp/exports", cfg.Export.Dir)
	assert.Equal(t, "/api/process", cfg.Server.ProcessPath)
	assert.Equal(t, "https://claims.example.com/api/process", cfg.ProcessURL())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  base_url: http://file.example\n"), 0o644))
	t.Setenv("CLAIMDESK_SERVER_BASE_URL", "http://env.example:9000")

	v := config.New(path)
	require.NoError(t, config.ReadFile(v))
	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, "http://env.example:9000", cfg.Server.BaseURL)
}

func TestReadFile_MissingExplicitFile(t *testing.T) {
	v := config.New(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, config.ReadFile(v))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"defaults ok", func(c *config.Config) {}, ""},
		{"empty base url", func(c *config.Config) { c.Server.BaseURL = "" }, "must be set"},
		{"bad scheme", func(c *config.Config) { c.Server.BaseURL = "ftp://host" }, "unsupported scheme"},
		{"no host", func(c *config.Config) { c.Server.BaseURL = "http://" }, "missing host"},
		{"zero timeout", func(c *config.Config) { c.Server.Timeout = 0 }, "server.timeout"},
		{"zero rate", func(c *config.Config) { c.Batch.Rate = 0 }, "batch.rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProcessURL_PathWithoutSlash(t *testing.T) {
	cfg := config.Default()
	cfg.Server.BaseURL = "http://h:1"
	cfg.Server.ProcessPath = "v2/process"
	assert.Equal(t, "http://h:1/v2/process", cfg.ProcessURL())
}

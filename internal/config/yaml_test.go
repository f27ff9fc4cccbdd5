package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimdesk/internal/config"
)

func TestMarshal_DurationsAsStrings(t *testing.T) {
	data, err := config.Marshal(config.Default())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "timeout: 30s")
	assert.Contains(t, out, "ttl: 10m0s")
	assert.Contains(t, out, "base_url: http://localhost:8005")
}

func TestWriteDefault_LoadsBackAsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, config.WriteDefault(path))

	v := config.New(path)
	require.NoError(t, config.ReadFile(v))
	cfg, err := config.Load(v)
	require.NoError(t, err)

	want := config.Default()
	assert.Equal(t, want.Server, cfg.Server)
	assert.Equal(t, want.Cache, cfg.Cache)
	assert.Equal(t, want.Batch, cfg.Batch)
	assert.Equal(t, want.Log.Level, cfg.Log.Level)
}

func TestWriteDefault_RefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))

	err := config.WriteDefault(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrFileExists))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "log:\n  level: debug\n", string(data))
}

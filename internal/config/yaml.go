package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileView mirrors Config with durations spelled the way they are written
// in config.yaml ("30s" rather than nanoseconds).
type fileView struct {
	Server struct {
		BaseURL     string `yaml:"base_url"`
		ProcessPath string `yaml:"process_path"`
		Timeout     string `yaml:"timeout"`
		UserAgent   string `yaml:"user_agent"`
	} `yaml:"server"`
	Cache struct {
		Enabled bool   `yaml:"enabled"`
		TTL     string `yaml:"ttl"`
	} `yaml:"cache"`
	Batch  BatchConfig  `yaml:"batch"`
	Export ExportConfig `yaml:"export"`
	Log    LogConfig    `yaml:"log"`
}

// Marshal renders c as config.yaml content.
func Marshal(c Config) ([]byte, error) {
	var fv fileView
	fv.Server.BaseURL = c.Server.BaseURL
	fv.Server.ProcessPath = c.Server.ProcessPath
	fv.Server.Timeout = c.Server.Timeout.String()
	fv.Server.UserAgent = c.Server.UserAgent
	fv.Cache.Enabled = c.Cache.Enabled
	fv.Cache.TTL = c.Cache.TTL.String()
	fv.Batch = c.Batch
	fv.Export = c.Export
	fv.Log = c.Log

	data, err := yaml.Marshal(&fv)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

const fileHeader = `# claimdesk configuration
#
# Priority (highest first):
#   1. command-line flags
#   2. CLAIMDESK_* environment variables (CLAIMDESK_SERVER_BASE_URL, ...)
#   3. this file
#   4. built-in defaults

`

// ErrFileExists is returned by WriteDefault when path already exists.
var ErrFileExists = errors.New("config file already exists")

// WriteDefault writes the built-in defaults to path, creating its directory.
// An existing file is never overwritten.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrFileExists, path)
	}
	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(fileHeader), data...), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultPath returns ~/.claimdesk/config.yaml.
func DefaultPath() (string, error) {
	dir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName+".yaml"), nil
}

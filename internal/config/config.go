// Package config loads claimdesk settings from defaults, the config file,
// CLAIMDESK_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix for environment overrides (CLAIMDESK_SERVER_BASE_URL etc).
	EnvPrefix = "CLAIMDESK"
	// DirName is the per-user config directory under $HOME.
	DirName = ".claimdesk"
	// FileName is the config file name inside DirName, without extension.
	FileName = "config"
)

// Version is reported by `claimdesk version` and in the default User-Agent.
var Version = "0.3.0"

// Config holds all claimdesk configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Cache  CacheConfig  `mapstructure:"cache" yaml:"cache"`
	Batch  BatchConfig  `mapstructure:"batch" yaml:"batch"`
	Export ExportConfig `mapstructure:"export" yaml:"export"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// ServerConfig describes the claims-processing endpoint.
type ServerConfig struct {
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url"`
	ProcessPath string        `mapstructure:"process_path" yaml:"process_path"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent   string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// CacheConfig controls the in-memory result cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// BatchConfig paces `claimdesk batch` submissions.
type BatchConfig struct {
	Rate  float64 `mapstructure:"rate" yaml:"rate"`
	Burst int     `mapstructure:"burst" yaml:"burst"`
}

// ExportConfig sets where exported analyses are written.
type ExportConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig sets the log level and log file.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			BaseURL:     "http://localhost:8005",
			ProcessPath: "/api/process",
			Timeout:     30 * time.Second,
			UserAgent:   "claimdesk/" + Version,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Batch: BatchConfig{
			Rate:  2,
			Burst: 1,
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join("~", DirName, "claimdesk.log"),
		},
	}
}

// SetDefaults registers every default with v so env and file values can
// override them key by key.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.base_url", d.Server.BaseURL)
	v.SetDefault("server.process_path", d.Server.ProcessPath)
	v.SetDefault("server.timeout", d.Server.Timeout)
	v.SetDefault("server.user_agent", d.Server.UserAgent)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("batch.rate", d.Batch.Rate)
	v.SetDefault("batch.burst", d.Batch.Burst)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// New returns a viper instance with defaults and env binding. If cfgFile is
// empty the config is looked up at ~/.claimdesk/config.yaml.
func New(cfgFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if dir, err := UserDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigType("yaml")
		v.SetConfigName(FileName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads the config file if present. A missing file in the default
// location is not an error; a missing explicit --config file is.
func ReadFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load decodes v into a Config, expands ~ in paths and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Log.File = expandHome(cfg.Log.File)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return errors.New("server.base_url must be set")
	}
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("server.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.base_url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("server.base_url: missing host in %q", c.Server.BaseURL)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Batch.Rate <= 0 {
		return fmt.Errorf("batch.rate must be positive, got %g", c.Batch.Rate)
	}
	return nil
}

// ProcessURL joins the base URL and the process path.
func (c *Config) ProcessURL() string {
	base := strings.TrimRight(c.Server.BaseURL, "/")
	path := c.Server.ProcessPath
	if path == "" {
		path = Default().Server.ProcessPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// UserDir returns ~/.claimdesk.
func UserDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DirName), nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

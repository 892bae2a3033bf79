package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/csimons/hn/internal/logger"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const (
	appName          = "hn"
	defaultCacheFile = ".hn2"

	// FeedURLEnv overrides feed_url when set.
	FeedURLEnv = "HN_FEED_URL"
)

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file,omitempty"`
	MaxSize    int    `yaml:"max_size,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAge     int    `yaml:"max_age,omitempty"`
}

type Config struct {
	FeedURL   string    `yaml:"feed_url"`
	CacheFile string    `yaml:"cache_file"`
	Parser    string    `yaml:"parser"`
	Log       LogConfig `yaml:"log"`
}

// CachePath returns the configured cache file, or ~/.hn2 when unset. A
// leading "~/" is expanded against the home directory.
func (c *Config) CachePath() string {
	p := c.CacheFile
	if p == "" {
		return filepath.Join(xdg.Home, defaultCacheFile)
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(xdg.Home, p[2:])
	}
	return p
}

// Logger converts the log section for logger.Init.
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
	}
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (DefaultConfigPath when empty) on top of the
// embedded defaults. A missing file is seeded with the defaults. The result
// is not validated; callers apply their overrides first, then call Validate.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := writeDefaults(path); err != nil {
			// Non-fatal: just use embedded defaults
			logger.Debugf("writing default config to %s: %v", path, err)
		}
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if v := os.Getenv(FeedURLEnv); v != "" {
		cfg.FeedURL = v
	}
	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the fields that would otherwise fail late.
func Validate(cfg *Config) error {
	if cfg.FeedURL == "" {
		return fmt.Errorf("feed_url is required")
	}
	u, err := url.Parse(cfg.FeedURL)
	if err != nil {
		return fmt.Errorf("feed_url: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("feed_url: scheme must be http or https, got %q", u.Scheme)
	}

	switch cfg.Parser {
	case "", "stream", "item":
	default:
		return fmt.Errorf("unknown parser %q (valid: stream, item)", cfg.Parser)
	}

	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

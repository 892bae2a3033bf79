package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.FeedURL != "https://news.ycombinator.com/rss" {
		t.Errorf("unexpected default feed_url %q", cfg.FeedURL)
	}
	if cfg.Parser != "stream" {
		t.Errorf("expected stream parser by default, got %q", cfg.Parser)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected warn log level by default, got %q", cfg.Log.Level)
	}
}

func TestCachePath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", filepath.Join(xdg.Home, ".hn2")},
		{"~/cache/hn", filepath.Join(xdg.Home, "cache", "hn")},
		{"/tmp/hn.cache", "/tmp/hn.cache"},
	}
	for _, tt := range tests {
		cfg := &Config{CacheFile: tt.input}
		if got := cfg.CachePath(); got != tt.want {
			t.Errorf("CachePath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv(FeedURLEnv, "")
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `feed_url: https://example.com/rss
parser: item
log:
  level: debug
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FeedURL != "https://example.com/rss" {
		t.Errorf("expected custom feed_url, got %s", cfg.FeedURL)
	}
	if cfg.Parser != "item" {
		t.Errorf("expected item parser, got %s", cfg.Parser)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Log.Level)
	}
	// Unset keys keep their defaults
	if cfg.CacheFile != "" {
		t.Errorf("expected default cache_file, got %q", cfg.CacheFile)
	}
}

func TestLoadNonexistentWritesDefaults(t *testing.T) {
	t.Setenv(FeedURLEnv, "")
	cfgPath := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FeedURL == "" {
		t.Error("expected default feed_url when config doesn't exist")
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("expected defaults written to %s: %v", cfgPath, err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(FeedURLEnv, "https://lobste.rs/rss")
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FeedURL != "https://lobste.rs/rss" {
		t.Errorf("expected env override, got %s", cfg.FeedURL)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("feed_url: [unclosed"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadDoesNotValidate(t *testing.T) {
	t.Setenv(FeedURLEnv, "")
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("parser: dom\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Parser != "dom" {
		t.Errorf("expected file value kept for later override, got %q", cfg.Parser)
	}
	if err := Validate(cfg); err == nil {
		t.Error("expected Validate to reject the unknown parser")
	}
}

func TestLoggerConfig(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "info", File: "/tmp/hn.log", MaxSize: 4}}
	lc := cfg.Logger()
	if lc.Level != "info" || lc.File != "/tmp/hn.log" || lc.MaxSize != 4 {
		t.Errorf("unexpected logger config: %+v", lc)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"https", Config{FeedURL: "https://example.com/rss"}, false},
		{"http", Config{FeedURL: "http://example.com/rss"}, false},
		{"missing url", Config{}, true},
		{"file scheme", Config{FeedURL: "file:///etc/passwd"}, true},
		{"item parser", Config{FeedURL: "https://a.com", Parser: "item"}, false},
		{"unknown parser", Config{FeedURL: "https://a.com", Parser: "dom"}, true},
		{"bad level", Config{FeedURL: "https://a.com", Log: LogConfig{Level: "loud"}}, true},
	}
	for _, tt := range tests {
		err := Validate(&tt.cfg)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/bookmap/pkg/constants"
	"github.com/agentstation/bookmap/pkg/errors"
	"github.com/agentstation/bookmap/pkg/kv"
)

// TestLoadConfig verifies defaults.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.BaseURL != constants.DefaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", config.BaseURL, constants.DefaultBaseURL)
	}
	if config.Store != string(kv.BackendFile) {
		t.Errorf("Store = %s, want file", config.Store)
	}
	if filepath.Base(config.StorePath) != "state.json" {
		t.Errorf("StorePath = %s, want .../state.json", config.StorePath)
	}
	if config.HTTPTimeout != constants.DefaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v, want %v", config.HTTPTimeout, constants.DefaultHTTPTimeout)
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies BOOKMAP_ variables override defaults.
func TestConfig_EnvironmentVariables(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOOKMAP_STORE", "SQLite")
	t.Setenv("BOOKMAP_STORE_PATH", filepath.Join(dir, "state.db"))
	t.Setenv("BOOKMAP_BASE_URL", "http://localhost:8000")
	t.Setenv("BOOKMAP_HTTP_TIMEOUT", "3s")
	t.Setenv("BOOKMAP_RATE_LIMIT", "0.5")
	t.Setenv("BOOKMAP_FORMAT", "yaml")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Store != "sqlite" {
		t.Errorf("Store = %s, want sqlite", config.Store)
	}
	if config.StorePath != filepath.Join(dir, "state.db") {
		t.Errorf("StorePath = %s", config.StorePath)
	}
	if config.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %s", config.BaseURL)
	}
	if config.HTTPTimeout != 3*time.Second {
		t.Errorf("HTTPTimeout = %v, want 3s", config.HTTPTimeout)
	}
	if config.RateLimit != 0.5 {
		t.Errorf("RateLimit = %v, want 0.5", config.RateLimit)
	}
	if config.Format != "yaml" {
		t.Errorf("Format = %s, want yaml", config.Format)
	}

	sc := config.StoreConfig()
	if sc.Backend != kv.BackendSQLite || sc.Path != config.StorePath {
		t.Errorf("StoreConfig() = %+v", sc)
	}
}

// TestConfig_File verifies an explicit config file is read.
func TestConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmap.yaml")
	data := "store: redis\nredis_url: redis://localhost:6379/2\nredis_prefix: \"test:\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %s, want %s", config.ConfigFile, path)
	}
	if config.Store != "redis" || config.RedisURL != "redis://localhost:6379/2" || config.RedisPrefix != "test:" {
		t.Errorf("unexpected redis config: %+v", config.StoreConfig())
	}
}

// TestConfig_Invalid verifies validation failures are config errors.
func TestConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"BOOKMAP_STORE": "etcd"}},
		{name: "redis without url", env: map[string]string{"BOOKMAP_STORE": "redis"}},
		{name: "negative timeout", env: map[string]string{"BOOKMAP_HTTP_TIMEOUT": "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig("")
			var cfgErr *errors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("LoadConfig() error = %v, want *ConfigError", err)
			}
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("LoadConfig() with a missing file should fail")
	}
}

// TestConfig_UpdateFromFlags verifies flag values take precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "json", LogLevel: "warn"}

	config.UpdateFromFlags(true, false, true, "", "")
	if !config.Verbose || !config.NoColor {
		t.Error("boolean flags not applied")
	}
	if config.Format != "json" || config.LogLevel != "warn" {
		t.Error("empty flag values should keep configured values")
	}

	config.UpdateFromFlags(false, false, false, "wide", "trace")
	if config.Format != "wide" || config.LogLevel != "trace" {
		t.Errorf("Format = %s, LogLevel = %s", config.Format, config.LogLevel)
	}
}

package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/bookmap/pkg/constants"
	"github.com/agentstation/bookmap/pkg/errors"
	"github.com/agentstation/bookmap/pkg/kv"
)

// EnvPrefix prefixes every environment variable the CLI reads,
// e.g. BOOKMAP_STORE=sqlite.
const EnvPrefix = "BOOKMAP"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Catalog
	BaseURL     string
	RateLimit   float64
	RateBurst   int
	HTTPTimeout time.Duration

	// Durable state
	Store       string
	StorePath   string
	RedisURL    string
	RedisPrefix string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (BOOKMAP_*)
// 3. .env files
// 4. Config file (configFile, or ~/.bookmap.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".bookmap")

		// Read config file (ignore error if not found)
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		BaseURL:     v.GetString("base_url"),
		RateLimit:   v.GetFloat64("rate_limit"),
		RateBurst:   v.GetInt("rate_burst"),
		HTTPTimeout: v.GetDuration("http_timeout"),

		Store:       strings.ToLower(v.GetString("store")),
		StorePath:   expandHome(v.GetString("store_path")),
		RedisURL:    v.GetString("redis_url"),
		RedisPrefix: v.GetString("redis_prefix"),

		// Logging configuration
		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch kv.Backend(c.Store) {
	case kv.BackendMemory, kv.BackendFile, kv.BackendRedis, kv.BackendSQLite:
	default:
		return errors.NewConfigError("store", "unsupported backend "+c.Store+" (memory, file, redis, sqlite)", nil)
	}
	if kv.Backend(c.Store) == kv.BackendRedis && c.RedisURL == "" {
		return errors.NewConfigError("redis_url", "required when store is redis", nil)
	}
	if c.HTTPTimeout < 0 {
		return errors.NewConfigError("http_timeout", "must not be negative", nil)
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return errors.NewConfigError("rate_limit", "rate_limit and rate_burst must not be negative", nil)
	}
	return nil
}

// StoreConfig returns the key/value backend configuration.
func (c *Config) StoreConfig() kv.Config {
	return kv.Config{
		Backend: kv.Backend(c.Store),
		Path:    c.StorePath,
		URL:     c.RedisURL,
		Prefix:  c.RedisPrefix,
	}
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", constants.DefaultBaseURL)
	v.SetDefault("rate_limit", constants.DefaultRateLimit)
	v.SetDefault("rate_burst", constants.DefaultRateBurst)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("store", string(kv.BackendFile))
	v.SetDefault("store_path", filepath.Join("~", ".bookmap", "state.json"))
	v.SetDefault("redis_prefix", "bookmap:")
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

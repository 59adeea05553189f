// Package config loads service configuration from an optional YAML file,
// a .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full service configuration.
type Config struct {
	Port        int    `mapstructure:"port"`
	DatabaseURL string `mapstructure:"database_url"`

	// RedisURL is optional; without it computed results are not cached.
	RedisURL string        `mapstructure:"redis_url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// GeminiAPIKey is optional; without it keyword extraction is disabled.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
	BcryptCost         int    `mapstructure:"bcrypt_cost"`
	PasswordPepper     string `mapstructure:"password_pepper"`

	RateLimitEnabled   bool          `mapstructure:"rate_limit_enabled"`
	RateLimitDefault   int           `mapstructure:"rate_limit_default_limit"`
	RateLimitWindow    time.Duration `mapstructure:"rate_limit_default_window"`
	RateLimitWhitelist []string      `mapstructure:"rate_limit_whitelist"`
	RateLimitBlacklist []string      `mapstructure:"rate_limit_blacklist"`
}

var defaults = map[string]any{
	"port":                 8080,
	"database_url":         "",
	"redis_url":            "",
	"cache_ttl":            10 * time.Minute,
	"gemini_api_key":       "",
	"gemini_model":         "gemini-2.5-flash",
	"log_level":            "info",
	"log_format":           "console",
	"jwt_secret":           "",
	"jwt_expiration_hours": 24,
	"bcrypt_cost":          12,
	"password_pepper":      "",

	"rate_limit_enabled":        true,
	"rate_limit_default_limit":  1000,
	"rate_limit_default_window": time.Minute,
	"rate_limit_whitelist":      []string{},
	"rate_limit_blacklist":      []string{},
}

// Load reads configuration. configFile may be empty, in which case climb.yaml is
// looked up in the working directory and ./configs; a missing file is not an error.
// Environment variables (DATABASE_URL, JWT_SECRET, ...) override file values.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("climb")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges. Fields only the server needs are checked by ValidateServer.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config error: 'cache_ttl' must be non-negative")
	}
	if c.RateLimitEnabled && (c.RateLimitDefault < 1 || c.RateLimitWindow <= 0) {
		return fmt.Errorf("config error: rate limit default must be positive, got %d per %s", c.RateLimitDefault, c.RateLimitWindow)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// ValidateServer checks the fields required to run the HTTP API.
func (c *Config) ValidateServer() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config error: JWT_SECRET is required")
	}
	return nil
}

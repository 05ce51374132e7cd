// Package config loads service configuration from an optional file and
// INTELLIHIRE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. INTELLIHIRE_SERVER_ADDR.
const EnvPrefix = "INTELLIHIRE"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Screening ScreeningConfig `mapstructure:"screening"`
	Log       LogConfig       `mapstructure:"log"`
	JWT       JWTConfig       `mapstructure:"jwt"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	CORSOrigin     string        `mapstructure:"cors_origin"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RateLimit      bool          `mapstructure:"rate_limit"`
}

// DatabaseConfig points at PostgreSQL.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig configures the analysis cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Enabled reports whether a cache should be built.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// LLMConfig configures the optional augmenter.
type LLMConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	Project  string `mapstructure:"project"`
	Location string `mapstructure:"location"`
	Model    string `mapstructure:"model"`
}

// Usable reports whether enough credentials are present to build a client.
func (l LLMConfig) Usable() bool {
	return l.Enabled && (l.APIKey != "" || l.Project != "")
}

// ScreeningConfig tunes the batch pipeline.
type ScreeningConfig struct {
	Workers          int           `mapstructure:"workers"`
	AugmenterTimeout time.Duration `mapstructure:"augmenter_timeout"`
}

// LogConfig selects the zap encoder and level.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadEnvFile loads a .env file if present. A missing file is not an error.
func LoadEnvFile(path string) {
	if path == "" {
		path = ".env"
	}
	_ = godotenv.Load(path)
}

// Load reads configuration. path may be empty, in which case only
// ./intellihire.{yaml,json} is consulted, and its absence is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindFallbackEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("intellihire")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration Load produces with no file and no environment.
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{CORSOrigin: "*", RateLimit: true},
		LLM:    LLMConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origin", "*")
	v.SetDefault("server.max_upload_bytes", 16<<20)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "5m")
	v.SetDefault("server.rate_limit", true)

	v.SetDefault("database.url", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "24h")

	v.SetDefault("llm.enabled", true)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.project", "")
	v.SetDefault("llm.location", "us-central1")
	v.SetDefault("llm.model", "")

	v.SetDefault("screening.workers", 0)
	v.SetDefault("screening.augmenter_timeout", "20s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration_hours", DefaultJWTExpirationHours)
}

// bindFallbackEnv accepts the conventional unprefixed names as well.
func bindFallbackEnv(v *viper.Viper) {
	_ = v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("llm.project", EnvPrefix+"_LLM_PROJECT", "GOOGLE_CLOUD_PROJECT")
	_ = v.BindEnv("jwt.secret", EnvPrefix+"_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("jwt.expiration_hours", EnvPrefix+"_JWT_EXPIRATION_HOURS", "JWT_EXPIRATION_HOURS")
}

// applyDefaults fills zero values a partial file may have left behind.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = 16 << 20
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 5 * time.Minute
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = 24 * time.Hour
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}
	if c.LLM.Location == "" {
		c.LLM.Location = "us-central1"
	}
	if c.Screening.AugmenterTimeout == 0 {
		c.Screening.AugmenterTimeout = 20 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.JWT.ExpirationHours == 0 {
		c.JWT.ExpirationHours = DefaultJWTExpirationHours
	}
}

// Validate checks value ranges. Missing optional services are not errors.
func (c *Config) Validate() error {
	if c.Server.MaxUploadBytes < 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}
	if c.Screening.Workers < 0 {
		return fmt.Errorf("screening.workers must be >= 0, got %d", c.Screening.Workers)
	}
	if c.Screening.AugmenterTimeout < 0 {
		return fmt.Errorf("screening.augmenter_timeout must be positive, got %s", c.Screening.AugmenterTimeout)
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must be positive, got %s", c.Redis.TTL)
	}
	switch c.LLM.Provider {
	case "gemini", "vertex":
	default:
		return fmt.Errorf("llm.provider must be gemini or vertex, got %q", c.LLM.Provider)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	if c.JWT.Secret != "" {
		if err := c.JWT.normalize(); err != nil {
			return err
		}
	}
	return nil
}

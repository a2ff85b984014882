// ABOUTME: Server settings loaded with viper from defaults, an optional config file, and COURSESITE_* env vars.
// ABOUTME: A .env file is read first with godotenv and never overrides variables already in the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Environments understood by Config.
const (
	Development = "development"
	Production  = "production"
)

// Config holds all server settings.
type Config struct {
	Addr        string `mapstructure:"addr"`
	Environment string `mapstructure:"environment"`

	// SiteFile replaces the embedded site definition when set.
	SiteFile string `mapstructure:"site_file"`
	// ContentDir replaces the embedded markdown documents when set.
	ContentDir string `mapstructure:"content_dir"`
	// CSSBundle is the href of a prebuilt CSS bundle; empty means none is available.
	CSSBundle string `mapstructure:"css_bundle"`

	LiveReload     bool          `mapstructure:"live_reload"`
	ReloadInterval time.Duration `mapstructure:"reload_interval"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load reads configuration. The config file is COURSESITE_CONFIG when set,
// otherwise coursesite.{yaml,toml,json} in the working directory if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("COURSESITE_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("coursesite")
	}

	v.SetEnvPrefix("COURSESITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Bound keys show up in Unmarshal even when they have no default.
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// live_reload defaults on only in development; an explicit setting wins.
	if !v.IsSet("live_reload") {
		v.SetDefault("live_reload", v.GetString("environment") == Development)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var keys = []string{
	"addr", "environment", "site_file", "content_dir", "css_bundle",
	"live_reload", "reload_interval", "cache_ttl", "log_level", "log_format",
}

// setDefaults covers every key except live_reload, whose default depends on
// the environment.
func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", "127.0.0.1:3000")
	v.SetDefault("environment", Development)
	v.SetDefault("site_file", "")
	v.SetDefault("content_dir", "")
	v.SetDefault("css_bundle", "")
	v.SetDefault("reload_interval", time.Second)
	v.SetDefault("cache_ttl", 10*time.Minute)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "")
}

// Validate checks enumerated and duration fields.
func (c *Config) Validate() error {
	switch c.Environment {
	case Development, Production:
	default:
		return fmt.Errorf("environment must be %q or %q, got %q", Development, Production, c.Environment)
	}
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.LogFormat {
	case "", "json", "text":
	default:
		return fmt.Errorf("log_format must be json or text, got %q", c.LogFormat)
	}
	if c.LiveReload && c.ReloadInterval <= 0 {
		return errors.New("reload_interval must be positive when live_reload is enabled")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// Logger builds the process logger: JSON in production (or when asked),
// text otherwise.
func (c *Config) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	format := c.LogFormat
	if format == "" {
		format = "text"
		if c.IsProduction() {
			format = "json"
		}
	}
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

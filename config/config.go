package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. TRADEZILLA_STORE_DRIVER.
const EnvPrefix = "TRADEZILLA_"

// Config represents the complete journal configuration
type Config struct {
	Store   StoreConfig   `json:"store" yaml:"store" envPrefix:"STORE_"`
	Log     LogConfig     `json:"log" yaml:"log" envPrefix:"LOG_"`
	Server  ServerConfig  `json:"server" yaml:"server" envPrefix:"SERVER_"`
	Cron    CronConfig    `json:"cron" yaml:"cron" envPrefix:"CRON_"`
	AI      AIConfig      `json:"ai" yaml:"ai" envPrefix:"AI_"`
	Notify  NotifyConfig  `json:"notify" yaml:"notify" envPrefix:"NOTIFY_"`
	Profile ProfileConfig `json:"profile" yaml:"profile" envPrefix:"PROFILE_"`
}

// StoreConfig selects the key-value backend trades are kept in
type StoreConfig struct {
	Driver        string `json:"driver" yaml:"driver" env:"DRIVER"` // "memory", "file", "sqlite" or "redis"
	Path          string `json:"path,omitempty" yaml:"path,omitempty" env:"PATH"`
	RedisAddr     string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty" env:"REDIS_ADDR"`
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty" env:"REDIS_PASSWORD"`
	RedisDB       int    `json:"redis_db,omitempty" yaml:"redis_db,omitempty" env:"REDIS_DB"`
}

type LogConfig struct {
	Level       string `json:"level" yaml:"level" env:"LEVEL"`
	Encoding    string `json:"encoding" yaml:"encoding" env:"ENCODING"` // "console" or "json"
	Development bool   `json:"development" yaml:"development" env:"DEVELOPMENT"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" env:"ADDR"`
	Mode string `json:"mode" yaml:"mode" env:"MODE"` // gin mode
}

// CronConfig holds six-field (seconds first) cron specs for the jobs serve runs
type CronConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled" env:"ENABLED"`
	NotifySpec string `json:"notify_spec" yaml:"notify_spec" env:"NOTIFY_SPEC"`
	ReviewSpec string `json:"review_spec" yaml:"review_spec" env:"REVIEW_SPEC"`
}

// AIConfig configures the coach
type AIConfig struct {
	Provider    string `json:"provider" yaml:"provider" env:"PROVIDER"` // "gemini", "anthropic" or "openai"
	APIKey      string `json:"api_key,omitempty" yaml:"api_key,omitempty" env:"API_KEY"`
	BaseURL     string `json:"base_url,omitempty" yaml:"base_url,omitempty" env:"BASE_URL"`
	ReviewModel string `json:"review_model" yaml:"review_model" env:"REVIEW_MODEL"`
	ChatModel   string `json:"chat_model" yaml:"chat_model" env:"CHAT_MODEL"`
	MaxTokens   int    `json:"max_tokens" yaml:"max_tokens" env:"MAX_TOKENS"`
	Timeout     string `json:"timeout" yaml:"timeout" env:"TIMEOUT"` // e.g. "60s"
}

// ParseTimeout converts the timeout string to time.Duration
func (a AIConfig) ParseTimeout() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(a.Timeout)
}

type NotifyConfig struct {
	LossAlert bool `json:"loss_alert" yaml:"loss_alert" env:"LOSS_ALERT"`
}

type ProfileConfig struct {
	// Timezone trade dates are read in, "Local" or an IANA name.
	Timezone string `json:"timezone" yaml:"timezone" env:"TIMEZONE"`
}

// Location resolves Timezone.
func (p ProfileConfig) Location() (*time.Location, error) {
	if p.Timezone == "" || p.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(p.Timezone)
}

// Load builds the effective configuration: defaults, then the file at path
// if one is given, then a .env file and TRADEZILLA_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// a missing .env is fine
	_ = godotenv.Load()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (JSON or YAML) on top of the
// defaults. Environment overrides are not applied.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func unmarshal(data []byte, cfg *Config) error {
	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from TRADEZILLA_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "memory":
	case "file", "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path required for %s driver", c.Store.Driver)
		}
	case "redis":
		if c.Store.RedisAddr == "" {
			return errors.New("store.redis_addr required for redis driver")
		}
	default:
		return fmt.Errorf("store.driver must be one of memory, file, sqlite, redis: got %q", c.Store.Driver)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error: got %q", c.Log.Level)
	}
	if c.Log.Encoding != "console" && c.Log.Encoding != "json" {
		return fmt.Errorf("log.encoding must be 'console' or 'json'")
	}

	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test: got %q", c.Server.Mode)
	}

	if c.Cron.Enabled {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(c.Cron.NotifySpec); err != nil {
			return fmt.Errorf("cron.notify_spec: %w", err)
		}
		if _, err := parser.Parse(c.Cron.ReviewSpec); err != nil {
			return fmt.Errorf("cron.review_spec: %w", err)
		}
	}

	switch c.AI.Provider {
	case "gemini", "anthropic", "openai":
	default:
		return fmt.Errorf("ai.provider must be gemini, anthropic or openai: got %q", c.AI.Provider)
	}
	if c.AI.ReviewModel == "" || c.AI.ChatModel == "" {
		return errors.New("ai.review_model and ai.chat_model are required")
	}
	if c.AI.MaxTokens <= 0 {
		return errors.New("ai.max_tokens must be positive")
	}
	if _, err := c.AI.ParseTimeout(); err != nil {
		return fmt.Errorf("ai.timeout: %w", err)
	}

	if _, err := c.Profile.Location(); err != nil {
		return fmt.Errorf("profile.timezone: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: "file",
			Path:   "./tradezilla-data",
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "release",
		},
		Cron: CronConfig{
			Enabled:    true,
			NotifySpec: "0 0 9 * * *",
			ReviewSpec: "0 0 10 * * 6",
		},
		AI: AIConfig{
			Provider:    "gemini",
			ReviewModel: "gemini-3-pro-preview",
			ChatModel:   "gemini-3-flash-preview",
			MaxTokens:   2048,
			Timeout:     "60s",
		},
		Notify: NotifyConfig{
			LossAlert: true,
		},
		Profile: ProfileConfig{
			Timezone: "Local",
		},
	}
}

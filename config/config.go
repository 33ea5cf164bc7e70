package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "config/config.yaml"

type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Weather   WeatherConfig   `yaml:"weather"`
	Timezone  TimezoneConfig  `yaml:"timezone"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATELIMIT"`
	Sentry    SentryConfig    `yaml:"sentry"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"NAME"`
	Version string `yaml:"version" envconfig:"VERSION"`
	Env     string `yaml:"env" envconfig:"ENV"`
}

type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"PORT"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

type DatabaseConfig struct {
	// Driver is sqlite or postgres.
	Driver string `yaml:"driver" envconfig:"DRIVER"`
	DSN    string `yaml:"dsn" envconfig:"DSN"`
}

type WeatherConfig struct {
	BaseURL      string        `yaml:"base_url" envconfig:"BASE_URL"`
	APIKey       string        `yaml:"api_key" envconfig:"API_KEY"`
	Timeout      time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	StaleAfter   time.Duration `yaml:"stale_after" envconfig:"STALE_AFTER"`
	ForecastDays int           `yaml:"forecast_days" envconfig:"FORECAST_DAYS"`
	AuditDir     string        `yaml:"audit_dir" envconfig:"AUDIT_DIR"`
	IconsDir     string        `yaml:"icons_dir" envconfig:"ICONS_DIR"`
	IconsURL     string        `yaml:"icons_url" envconfig:"ICONS_URL"`
}

type TimezoneConfig struct {
	BaseURL  string        `yaml:"base_url" envconfig:"BASE_URL"`
	APIKey   string        `yaml:"api_key" envconfig:"API_KEY"`
	Default  string        `yaml:"default" envconfig:"DEFAULT"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	CacheTTL time.Duration `yaml:"cache_ttl" envconfig:"CACHE_TTL"`
}

type RateLimitConfig struct {
	// Backend is window, token or redis.
	Backend       string `yaml:"backend" envconfig:"BACKEND"`
	PerSecond     int    `yaml:"per_second" envconfig:"PER_SECOND"`
	RedisAddr     string `yaml:"redis_addr" envconfig:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" envconfig:"REDIS_DB"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" envconfig:"DSN"`
	Debug bool   `yaml:"debug" envconfig:"DEBUG"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" envconfig:"ENABLED"`
	Path    string `yaml:"path" envconfig:"ENDPOINT"`
}

// ConfigProvider loads and validates configuration.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider layers defaults, a YAML file and environment variables,
// in that order.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-dashboard",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "weather.db",
		},
		Weather: WeatherConfig{
			BaseURL:      "https://api.tomorrow.io/v4/timelines",
			Timeout:      10 * time.Second,
			StaleAfter:   6 * time.Hour,
			ForecastDays: 3,
			AuditDir:     "output",
			IconsDir:     "static/media/images/icons",
			IconsURL:     "images/icons",
		},
		Timezone: TimezoneConfig{
			BaseURL:  "https://maps.googleapis.com/maps/api/timezone/json",
			Default:  "America/Los_Angeles",
			Timeout:  5 * time.Second,
			CacheTTL: 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Backend:   "window",
			PerSecond: 3,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := Default()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

// loadFromFile overlays the YAML file onto config. A missing file is not an error.
func (p *FileConfigProvider) loadFromFile(config *Config) error {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse config file %s: %w", p.path, err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	var errs []error

	if config.App.Name == "" {
		errs = append(errs, errors.New("app.name is required"))
	}
	if config.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	switch config.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("database.driver %q is not supported", config.Database.Driver))
	}
	if config.Weather.StaleAfter <= 0 {
		errs = append(errs, errors.New("weather.stale_after must be positive"))
	}
	if config.Weather.ForecastDays <= 0 {
		errs = append(errs, errors.New("weather.forecast_days must be positive"))
	}
	if config.Timezone.Default == "" {
		errs = append(errs, errors.New("timezone.default is required"))
	} else if _, err := time.LoadLocation(config.Timezone.Default); err != nil {
		errs = append(errs, fmt.Errorf("timezone.default: %w", err))
	}
	switch config.RateLimit.Backend {
	case "window", "token":
	case "redis":
		if config.RateLimit.RedisAddr == "" {
			errs = append(errs, errors.New("rate_limit.redis_addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("rate_limit.backend %q is not supported", config.RateLimit.Backend))
	}
	if config.RateLimit.PerSecond <= 0 {
		errs = append(errs, errors.New("rate_limit.per_second must be positive"))
	}

	if config.Metrics.Enabled && !strings.HasPrefix(config.Metrics.Path, "/") {
		errs = append(errs, errors.New("metrics.path must start with /"))
	}

	return errors.Join(errs...)
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cnf, nil
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider(DefaultConfigPath))
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

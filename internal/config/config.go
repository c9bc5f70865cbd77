package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment          string             `yaml:"environment" default:"production" validate:"oneof=development staging production test"`
	Server               ServerConfig       `yaml:"server"`
	Log                  LogConfig          `yaml:"log"`
	AlphaVantage         AlphaVantageConfig `yaml:"alpha_vantage"`
	Yahoo                YahooConfig        `yaml:"yahoo"`
	Cache                CacheConfig        `yaml:"cache"`
	MaxConcurrentFetches int                `yaml:"max_concurrent_fetches" default:"10" validate:"min=1,max=100"`
}

type ServerConfig struct {
	Port               string        `yaml:"port" default:"8080" validate:"required,numeric"`
	ReadTimeout        time.Duration `yaml:"read_timeout" default:"30s"`
	WriteTimeout       time.Duration `yaml:"write_timeout" default:"30s"`
	IdleTimeout        time.Duration `yaml:"idle_timeout" default:"120s"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout" default:"30s"`
	BodyLimit          int           `yaml:"body_limit" default:"4194304" validate:"min=1024"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute" default:"100" validate:"min=1"`
	AllowOrigins       string        `yaml:"allow_origins" default:"*"`
}

type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" default:"json" validate:"oneof=json console"`
}

type AlphaVantageConfig struct {
	APIKey            string        `yaml:"api_key"`
	BaseURL           string        `yaml:"base_url" default:"https://www.alphavantage.co/query" validate:"url"`
	RequestsPerMinute int           `yaml:"requests_per_minute" default:"5" validate:"min=0"`
	Timeout           time.Duration `yaml:"timeout" default:"15s"`
}

type YahooConfig struct {
	BaseURL string        `yaml:"base_url" default:"https://query1.finance.yahoo.com/v8/finance/chart" validate:"url"`
	Timeout time.Duration `yaml:"timeout" default:"10s"`
}

type CacheConfig struct {
	QuoteTTL     time.Duration   `yaml:"quote_ttl" default:"24h"`
	IndicatorTTL time.Duration   `yaml:"indicator_ttl" default:"1h"`
	Redis        RedisConfig     `yaml:"redis"`
	Firestore    FirestoreConfig `yaml:"firestore"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr" default:"localhost:6379" validate:"required_if=Enabled true"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"min=0"`
	Prefix   string `yaml:"prefix" default:"macromatch:"`
}

type FirestoreConfig struct {
	Enabled         bool   `yaml:"enabled"`
	ProjectID       string `yaml:"project_id" validate:"required_if=Enabled true"`
	CredentialsFile string `yaml:"credentials_file"`
}

// IsDevelopment reports whether the service runs in a development setup.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load builds the configuration from defaults, an optional YAML file, an
// optional .env file and the process environment, in that order. An empty
// path skips the YAML layer.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func applyEnv(c *Config) error {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.AlphaVantage.APIKey = getEnv("ALPHA_VANTAGE_KEY", c.AlphaVantage.APIKey)

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Addr = addr
	}
	c.Cache.Redis.Password = getEnv("REDIS_PASSWORD", c.Cache.Redis.Password)

	if project := os.Getenv("FIRESTORE_PROJECT_ID"); project != "" {
		c.Cache.Firestore.Enabled = true
		c.Cache.Firestore.ProjectID = project
	}
	c.Cache.Firestore.CredentialsFile = getEnv("GOOGLE_APPLICATION_CREDENTIALS", c.Cache.Firestore.CredentialsFile)

	if v := os.Getenv("MAX_CONCURRENT_FETCHES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_CONCURRENT_FETCHES: %w", err)
		}
		c.MaxConcurrentFetches = n
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Package config loads application configuration and initializes logging.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Prediction PredictionConfig `yaml:"prediction" mapstructure:"prediction"`
	Weather    WeatherConfig    `yaml:"weather" mapstructure:"weather"`
	Reference  ReferenceConfig  `yaml:"reference" mapstructure:"reference"`
	History    HistoryConfig    `yaml:"history" mapstructure:"history"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// PredictionConfig configures the remote prediction backend. An empty
// BaseURL disables the remote stage.
type PredictionConfig struct {
	BaseURL         string        `yaml:"base_url" mapstructure:"base_url"`
	RemoteTimeout   time.Duration `yaml:"remote_timeout" mapstructure:"remote_timeout"`
	BreakerFailures int           `yaml:"breaker_failures" mapstructure:"breaker_failures"`
	BreakerReset    time.Duration `yaml:"breaker_reset" mapstructure:"breaker_reset"`
}

// WeatherConfig configures the weather CSV source and its cache. An empty
// CSVURL means weather is always synthesized.
type WeatherConfig struct {
	CSVURL       string        `yaml:"csv_url" mapstructure:"csv_url"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`
	RatePerSec   float64       `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	CacheSize    int           `yaml:"cache_size" mapstructure:"cache_size"`
	CacheTTL     time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// ReferenceConfig configures the crop and district lookup tables.
type ReferenceConfig struct {
	Path               string `yaml:"path" mapstructure:"path"`
	NormalizeDistricts bool   `yaml:"normalize_districts" mapstructure:"normalize_districts"`
}

// HistoryConfig configures synthetic history. Seed 0 means time-seeded.
type HistoryConfig struct {
	Seed uint64 `yaml:"seed" mapstructure:"seed"`
}

// BatchConfig configures batch prediction.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, config.yaml, and YIELD_* environment
// variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file in place of ./config.yaml.
// Unlike the default file, an explicit one must exist.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("YIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("prediction.base_url", "http://localhost:8000")
	v.SetDefault("prediction.remote_timeout", 5*time.Second)
	v.SetDefault("prediction.breaker_failures", 3)
	v.SetDefault("prediction.breaker_reset", 30*time.Second)
	v.SetDefault("weather.csv_url", "")
	v.SetDefault("weather.fetch_timeout", 10*time.Second)
	v.SetDefault("weather.rate_per_sec", 2.0)
	v.SetDefault("weather.cache_size", 64)
	v.SetDefault("weather.cache_ttl", time.Hour)
	v.SetDefault("reference.path", "")
	v.SetDefault("reference.normalize_districts", false)
	v.SetDefault("history.seed", 0)
	v.SetDefault("batch.max_concurrent", 8)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.Prediction.RemoteTimeout <= 0 {
		return eris.New("config: prediction.remote_timeout must be positive")
	}
	if c.Weather.FetchTimeout <= 0 {
		return eris.New("config: weather.fetch_timeout must be positive")
	}
	if c.Batch.MaxConcurrent <= 0 {
		return eris.New("config: batch.max_concurrent must be positive")
	}
	if c.Weather.CacheSize < 0 {
		return eris.New("config: weather.cache_size must not be negative")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"
)

// Config carries the settings of the API and worker processes. Every key can be set
// through the upper-cased environment variable of the same name (PORT, POSTGRES_DSN, ...).
type Config struct {
	Port              string  `mapstructure:"port" validate:"required,numeric"`
	PostgresDSN       string  `mapstructure:"postgres_dsn"`
	TemporalAddress   string  `mapstructure:"temporal_address" validate:"required"`
	TemporalNamespace string  `mapstructure:"temporal_namespace" validate:"required"`
	TemporalDisabled  bool    `mapstructure:"temporal_disabled"`
	RateLimitRPS      float64 `mapstructure:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst    int     `mapstructure:"rate_limit_burst" validate:"gte=1"`
	Environment       string  `mapstructure:"environment" validate:"required"`
	LogLevel          string  `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	OTLPEndpoint      string  `mapstructure:"otel_exporter_otlp_endpoint"`
	OTLPInsecure      bool    `mapstructure:"otel_exporter_otlp_insecure"`
}

var defaults = map[string]any{
	"port":                        "8080",
	"postgres_dsn":                "",
	"temporal_address":            client.DefaultHostPort,
	"temporal_namespace":          client.DefaultNamespace,
	"temporal_disabled":           false,
	"rate_limit_rps":              50.0,
	"rate_limit_burst":            100,
	"environment":                 "local",
	"log_level":                   "info",
	"otel_exporter_otlp_endpoint": "",
	"otel_exporter_otlp_insecure": true,
}

// LoadConfig reads the environment on top of the defaults and validates the result.
func LoadConfig() (Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile is LoadConfig with an optional YAML file whose values sit between the
// defaults and the environment.
func LoadConfigFile(path string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file %s: %w", path, err)
			}
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode configuration: %w", err)
	}
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := validator.New().Struct(&cfg); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

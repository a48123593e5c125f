// Package config loads the demo server's configuration from YAML with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/pthm/animalform/internal/logging"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Form     FormConfig     `yaml:"form"`
	Security SecurityConfig `yaml:"security"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr         string        `yaml:"addr" env:"ANIMALFORM_ADDR"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"ANIMALFORM_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"ANIMALFORM_WRITE_TIMEOUT"`
}

// FormConfig configures the form component.
type FormConfig struct {
	Name      string `yaml:"name" env:"ANIMALFORM_FORM_NAME"`
	Sensitive bool   `yaml:"sensitive" env:"ANIMALFORM_FORM_SENSITIVE"`
}

// SecurityConfig holds the key used to sign or encrypt form state.
type SecurityConfig struct {
	Key string `yaml:"key" env:"ANIMALFORM_KEY"`
}

// LoggingConfig configures the slog logger.
type LoggingConfig struct {
	Level      string `yaml:"level" env:"ANIMALFORM_LOG_LEVEL"`
	Format     string `yaml:"format" env:"ANIMALFORM_LOG_FORMAT"`
	File       string `yaml:"file" env:"ANIMALFORM_LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"ANIMALFORM_LOG_MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" env:"ANIMALFORM_LOG_MAX_BACKUPS"`
	MaxAgeDays int    `yaml:"max_age_days" env:"ANIMALFORM_LOG_MAX_AGE_DAYS"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"ANIMALFORM_METRICS_ENABLED"`
	Path    string `yaml:"path" env:"ANIMALFORM_METRICS_PATH"`
}

// Load reads configFile (if not empty), applies environment overrides and
// validates the result.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromYAML(cfg, configFile); err != nil {
			return nil, fmt.Errorf("failed to load config from YAML: %w", err)
		}
	}

	if err := overrideWithEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to override with environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Form: FormConfig{
			Name: "animalcreate",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks required values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	if c.Form.Name == "" {
		return fmt.Errorf("form name is required")
	}
	if strings.ContainsAny(c.Form.Name, "/?# ") {
		return fmt.Errorf("form name %q must be usable in a URL path segment", c.Form.Name)
	}
	if key := c.Security.Key; key != "" && len(key) < 32 {
		return fmt.Errorf("security key must be at least 32 bytes, got %d", len(key))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging format must be text or json, got %q", c.Logging.Format)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with /, got %q", c.Metrics.Path)
	}
	return nil
}

// LoggingConfig converts the logging section for the logging package.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:      c.Logging.Level,
		Format:     c.Logging.Format,
		File:       c.Logging.File,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAgeDays: c.Logging.MaxAgeDays,
	}
}

func loadFromYAML(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

func overrideWithEnv(cfg *Config) error {
	return overrideStructWithEnv(reflect.ValueOf(cfg).Elem())
}

// overrideStructWithEnv walks v and sets every field whose env tag names a
// non-empty environment variable.
func overrideStructWithEnv(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := overrideStructWithEnv(field); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}
		envValue := os.Getenv(envTag)
		if envValue == "" {
			continue
		}

		if err := setFieldFromString(field, envValue); err != nil {
			return fmt.Errorf("failed to set field %s from env %s: %w", fieldType.Name, envTag, err)
		}
	}
	return nil
}

func setFieldFromString(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool value: %s", value)
		}
		field.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid int value: %s", value)
		}
		field.SetInt(int64(n))
	case reflect.Int64:
		if field.Type() != reflect.TypeOf(time.Duration(0)) {
			return fmt.Errorf("unsupported int64 field type: %s", field.Type())
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value: %s", value)
		}
		field.SetInt(int64(d))
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	return nil
}

// Package config loads the optional bayesnet.yaml file that configures the servers.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up in the working directory when no --config flag is given.
const DefaultPath = "bayesnet.yaml"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// validate is a singleton validator instance
var validate = validator.New()

// Config is the structure of bayesnet.yaml.
type Config struct {
	Network   string       `yaml:"network" json:"network"`
	LogLevel  string       `yaml:"log_level" json:"log_level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	LogFormat string       `yaml:"log_format" json:"log_format" validate:"omitempty,oneof=text json"`
	Server    ServerConfig `yaml:"server" json:"server"`
	Cache     CacheConfig  `yaml:"cache" json:"cache"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr    string `yaml:"addr" json:"addr" validate:"required,hostname_port"`
	Metrics bool   `yaml:"metrics" json:"metrics"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend       string `yaml:"backend" json:"backend" validate:"oneof=none memory redis"`
	RedisAddr     string `yaml:"redis_addr" json:"redis_addr" validate:"required_if=Backend redis,omitempty,hostname_port"`
	RedisPassword string `yaml:"redis_password" json:"redis_password"`
	RedisDB       int    `yaml:"redis_db" json:"redis_db" validate:"min=0,max=15"`
	Prefix        string `yaml:"prefix" json:"prefix"`
	TTL           string `yaml:"ttl" json:"ttl"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Server: ServerConfig{
			Addr:    ":8080",
			Metrics: true,
		},
		Cache: CacheConfig{
			Backend: CacheMemory,
		},
	}
}

// Load reads a configuration file (YAML or JSON by extension) over the defaults.
// A missing file at DefaultPath is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if cfg.Network != "" && !filepath.IsAbs(cfg.Network) {
		cfg.Network = filepath.Join(filepath.Dir(path), cfg.Network)
	}
	return cfg, cfg.Validate()
}

// Validate checks the struct tags and the values they cannot express.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}
	return nil
}

// TTLDuration parses TTL. An empty TTL means no expiration.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("cache.ttl: invalid duration %q", c.TTL)
	}
	return d, nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := strings.TrimPrefix(e.Namespace(), "Config.")
		switch e.Tag() {
		case "required", "required_if":
			msgs = append(msgs, fmt.Sprintf("%s: field is required", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of [%s]", field, e.Param()))
		case "hostname_port":
			msgs = append(msgs, fmt.Sprintf("%s: must be host:port", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: validation failed (%s)", field, e.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

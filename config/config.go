package config

import (
	"github.com/skillsenselab/authcore/database"
	"github.com/skillsenselab/authcore/errors"
	"github.com/skillsenselab/authcore/issuer"
	"github.com/skillsenselab/authcore/jwt"
	"github.com/skillsenselab/authcore/logger"
	"github.com/skillsenselab/authcore/redis"
	"github.com/skillsenselab/authcore/refresh"
	"github.com/skillsenselab/authcore/throttle"
)

// Backend selection values.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendDatabase = "database"
)

// Config is the aggregate authcore configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	// ThrottleBackend selects the attempt-throttle store: memory or redis.
	ThrottleBackend string `yaml:"throttle_backend" mapstructure:"throttle_backend"`

	// TokenBackend selects the refresh-token store: redis or database.
	TokenBackend string `yaml:"token_backend" mapstructure:"token_backend"`

	Logging  logger.Config   `yaml:"logging" mapstructure:"logging"`
	Database database.Config `yaml:"database" mapstructure:"database"`
	Redis    redis.Config    `yaml:"redis" mapstructure:"redis"`
	JWT      jwt.Config      `yaml:"jwt" mapstructure:"jwt"`
	Throttle throttle.Config `yaml:"throttle" mapstructure:"throttle"`
	Refresh  refresh.Config  `yaml:"refresh" mapstructure:"refresh"`
	Issuer   issuer.Config   `yaml:"issuer" mapstructure:"issuer"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "authcore"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.ThrottleBackend == "" {
		c.ThrottleBackend = BackendMemory
	}
	if c.TokenBackend == "" {
		c.TokenBackend = BackendRedis
	}
	c.Logging.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Redis.ApplyDefaults()
	c.JWT.ApplyDefaults()
	c.Throttle.ApplyDefaults()
	c.Refresh.ApplyDefaults()
	c.Issuer.ApplyDefaults()
}

// Validate checks the configuration. A missing JWT signing key is fatal
// here, at startup, never at first signing.
func (c *Config) Validate() error {
	switch c.Environment {
	case "development", "staging", "production":
	default:
		return errors.Configuration("environment must be one of development, staging, production")
	}
	switch c.ThrottleBackend {
	case BackendMemory, BackendRedis:
	default:
		return errors.Configuration("throttle_backend must be memory or redis")
	}
	switch c.TokenBackend {
	case BackendRedis, BackendDatabase:
	default:
		return errors.Configuration("token_backend must be redis or database")
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.JWT.Validate(); err != nil {
		return err
	}
	return nil
}

// LoadConfig loads, defaults, and validates the aggregate configuration.
func LoadConfig(opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := Load(&cfg, opts...); err != nil {
		return nil, errors.Configuration(err.Error())
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

package jwt

import (
	"time"

	"github.com/skillsenselab/authcore/errors"
)

// Config configures the JWT signing service.
type Config struct {
	// Secret is the symmetric HMAC signing key. Required; its absence is a
	// fatal startup error, never a per-request one.
	Secret string `mapstructure:"secret"`

	// Issuer is the "iss" claim (optional).
	Issuer string `mapstructure:"issuer"`

	// AccessTokenTTL is the lifetime of access tokens (default: 3h).
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = 3 * time.Hour
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.Configuration("jwt signing key is required")
	}
	return nil
}

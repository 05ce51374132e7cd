package config

import "fmt"

// DefaultJWTExpirationHours is the token lifetime when none is configured.
const DefaultJWTExpirationHours = 24

// JWTConfig holds configuration for JWT token generation and validation.
// An empty Secret leaves the API unauthenticated.
type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// Enabled reports whether write routes require a bearer token.
func (c JWTConfig) Enabled() bool { return c.Secret != "" }

// RequireSecret returns the JWT settings or an error when no secret is set.
// Used by commands that must sign tokens.
func (c *Config) RequireSecret() (*JWTConfig, error) {
	jwt := c.JWT
	if err := jwt.normalize(); err != nil {
		return nil, err
	}
	return &jwt, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("jwt.secret cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("jwt.expiration_hours must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}

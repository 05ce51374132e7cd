package ratelimit

import "time"

// EndpointConfig represents rate limiting configuration for a specific endpoint tier.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" makes it a prefix
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns the limiter settings used by the API server.
func DefaultConfig(enabled bool) *Config {
	return &Config{
		Enabled:         enabled,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint tiers.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: batch screening and model calls
		{Path: "/api/analyze", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/api/jobs/", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},

		// Tier 2: writes and report generation
		{Path: "/api/jobs", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/candidates/", Method: "GET", Limit: 300, Window: time.Minute, Burst: 60},

		// Tier 3: other reads use the default limit
		// Tier 4: /health and /metrics are unlimited, see MatchEndpoint
	}
}

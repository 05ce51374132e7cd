// Package llm provides model configuration and client abstractions over the supported
// Gemini providers.
package llm

import "fmt"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short free-text tasks such as candidate comparison.
	TierLite ModelTier = "lite"
	// TierStandard is for structured scoring output.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long multi-candidate reasoning.
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Supported providers.
const (
	// ProviderGemini calls the Gemini API with an API key.
	ProviderGemini Provider = "gemini"
	// ProviderVertex calls Gemini models hosted on Vertex AI.
	ProviderVertex Provider = "vertex"
)

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	// Project and Location address the Vertex AI endpoint.
	Project  string
	Location string
}

const defaultTemperature = 0.1

// DefaultConfig returns the default Gemini API configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Temperature: defaultTemperature,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// DefaultVertexConfig returns the default Vertex AI configuration for a project.
func DefaultVertexConfig(project, location string) *Config {
	cfg := DefaultConfig()
	cfg.Provider = ProviderVertex
	cfg.Project = project
	cfg.Location = location
	return cfg
}

// ParseProvider validates a provider name from configuration.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(name); p {
	case ProviderGemini, ProviderVertex:
		return p, nil
	case "":
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("unsupported llm provider %q", name)
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with a specific model for a tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := *c
	next.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return &next
}

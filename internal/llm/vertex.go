package llm

import (
	"context"
	"fmt"
	"strings"

	genaisdk "google.golang.org/genai"
)

// VertexClient implements Client with the unified Gen AI SDK. With a project it
// targets Vertex AI using application default credentials, otherwise the Gemini API.
type VertexClient struct {
	client *genaisdk.Client
	config *Config
}

// NewVertexClient creates a client for Gemini models on Vertex AI.
func NewVertexClient(ctx context.Context, config *Config, apiKey string) (*VertexClient, error) {
	cc, err := vertexClientConfig(config, apiKey)
	if err != nil {
		return nil, err
	}

	client, err := genaisdk.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}
	return &VertexClient{client: client, config: config}, nil
}

func vertexClientConfig(config *Config, apiKey string) (*genaisdk.ClientConfig, error) {
	switch {
	case config.Project != "":
		return &genaisdk.ClientConfig{
			Project:  config.Project,
			Location: config.Location,
			Backend:  genaisdk.BackendVertexAI,
		}, nil
	case apiKey != "":
		return &genaisdk.ClientConfig{
			APIKey:  apiKey,
			Backend: genaisdk.BackendGeminiAPI,
		}, nil
	default:
		return nil, fmt.Errorf("vertex: %w", ErrMissingCredentials)
	}
}

// GenerateContent generates text content using the specified model tier
func (c *VertexClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.generate(ctx, prompt, tier, c.generationConfig(""))
}

// GenerateJSON generates JSON content using the specified model tier
func (c *VertexClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.generate(ctx, prompt, tier, c.generationConfig("application/json"))
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *VertexClient) generationConfig(mimeType string) *genaisdk.GenerateContentConfig {
	return &genaisdk.GenerateContentConfig{
		Temperature:      genaisdk.Ptr(c.config.Temperature),
		ResponseMIMEType: mimeType,
	}
}

func (c *VertexClient) generate(ctx context.Context, prompt string, tier ModelTier, cfg *genaisdk.GenerateContentConfig) (string, error) {
	model := c.config.GetModel(tier)
	if model == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, genaisdk.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no text parts in response")
	}
	return text, nil
}

// GetModel returns the model name for a tier
func (c *VertexClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the Gen AI SDK client holds no releasable resources.
func (c *VertexClient) Close() error {
	return nil
}

package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	genaisdk "google.golang.org/genai"
)

func TestVertexClientConfig(t *testing.T) {
	cc, err := vertexClientConfig(DefaultVertexConfig("hiring-prod", "europe-west4"), "")
	require.NoError(t, err)
	assert.Equal(t, genaisdk.BackendVertexAI, cc.Backend)
	assert.Equal(t, "hiring-prod", cc.Project)
	assert.Equal(t, "europe-west4", cc.Location)

	cc, err = vertexClientConfig(DefaultVertexConfig("", ""), "key-123")
	require.NoError(t, err)
	assert.Equal(t, genaisdk.BackendGeminiAPI, cc.Backend)
	assert.Equal(t, "key-123", cc.APIKey)

	_, err = vertexClientConfig(DefaultVertexConfig("", ""), "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestNewClient_MissingCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), DefaultConfig(), "")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = NewClient(context.Background(), &Config{Provider: "openai"}, "key")
	assert.Error(t, err)
}

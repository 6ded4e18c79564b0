package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GenAIClient implements Client with the unified google.golang.org/genai SDK
type GenAIClient struct {
	client *genai.Client
	config *Config
}

// NewGenAIClient creates a client against the Gemini API backend
func NewGenAIClient(ctx context.Context, config *Config, apiKey string) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GenAIClient{
		client: client,
		config: config,
	}, nil
}

// GenerateJSON asks for a JSON response and returns the raw text
func (c *GenAIClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	temperature := c.config.Temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.config.ModelName(), genai.Text(prompt), cfg)
	if err != nil {
		return "", newProviderError(ctx, c.config, "failed to generate content", err)
	}
	if resp == nil {
		return "", newProviderError(ctx, c.config, "unusable response", fmt.Errorf("nil response"))
	}

	text := resp.Text()
	if text == "" {
		return "", newProviderError(ctx, c.config, "unusable response", fmt.Errorf("no text content in response"))
	}
	return text, nil
}

// Model returns the configured model name
func (c *GenAIClient) Model() string {
	return c.config.ModelName()
}

// Close is a no-op; the genai client holds no closable resources
func (c *GenAIClient) Close() error {
	return nil
}

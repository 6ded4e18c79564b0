// Package llm provides the LLM client abstraction used by the fit-check pipeline
// and its Gemini-backed implementations.
package llm

import (
	"fmt"
	"strings"
)

// Provider selects the SDK a client is built on
type Provider string

// Provider constants define supported LLM backends
const (
	// ProviderGemini uses github.com/google/generative-ai-go
	ProviderGemini Provider = "gemini"
	// ProviderGenAI uses the unified google.golang.org/genai SDK
	ProviderGenAI Provider = "genai"
)

// DefaultModel is used when no model override is configured
const DefaultModel = "gemini-2.5-flash-lite"

// DefaultTemperature keeps scoring output stable between calls
const DefaultTemperature float32 = 0.1

// Config holds the model configuration for a client
type Config struct {
	Provider    Provider
	Model       string
	Temperature float32
}

// DefaultConfig returns the Gemini configuration with the default model
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
	}
}

// WithModel returns a copy of c using model. An empty model keeps the current one.
func (c *Config) WithModel(model string) *Config {
	next := *c
	if model = strings.TrimSpace(model); model != "" {
		next.Model = model
	}
	return &next
}

// ModelName returns the configured model or DefaultModel
func (c *Config) ModelName() string {
	if c == nil || strings.TrimSpace(c.Model) == "" {
		return DefaultModel
	}
	return c.Model
}

// ParseProvider maps a config string to a Provider. Empty selects ProviderGemini.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProviderGemini:
		return ProviderGemini, nil
	case ProviderGenAI:
		return ProviderGenAI, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q (want %q or %q)", s, ProviderGemini, ProviderGenAI)
	}
}

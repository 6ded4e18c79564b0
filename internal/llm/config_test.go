package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.ModelName())
	assert.InDelta(t, 0.1, config.Temperature, 1e-6)
}

func TestModelName_Fallback(t *testing.T) {
	var nilConfig *Config
	assert.Equal(t, DefaultModel, nilConfig.ModelName())
	assert.Equal(t, DefaultModel, (&Config{Model: "  "}).ModelName())
	assert.Equal(t, "gemini-2.5-pro", (&Config{Model: "gemini-2.5-pro"}).ModelName())
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel("custom-model")

	// Original should be unchanged
	assert.Equal(t, DefaultModel, config.ModelName())
	assert.Equal(t, "custom-model", newConfig.ModelName())
	assert.Equal(t, config.Provider, newConfig.Provider)

	assert.Equal(t, DefaultModel, config.WithModel("").ModelName())
}

func TestParseProvider(t *testing.T) {
	tests := []struct {
		input   string
		want    Provider
		wantErr bool
	}{
		{input: "", want: ProviderGemini},
		{input: "gemini", want: ProviderGemini},
		{input: " GenAI ", want: ProviderGenAI},
		{input: "openai", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProvider(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown LLM provider")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProviderConstants(t *testing.T) {
	assert.Equal(t, Provider("gemini"), ProviderGemini)
	assert.Equal(t, Provider("genai"), ProviderGenAI)
}

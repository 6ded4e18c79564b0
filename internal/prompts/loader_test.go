package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_MatchingPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("matching.json", "jd-fit-assessment")
	require.NoError(t, err)
	assert.Contains(t, prompt, "job-matching assistant")
	assert.Contains(t, prompt, "{{.CandidateWorkRights}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("matching.json", "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet("matching.json", "jd-fit-assessment"))
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{
			name:     "replaces placeholders",
			template: "Hello {{.Name}}, welcome to {{.Company}}!",
			data:     map[string]string{"Name": "Alice", "Company": "Acme Corp"},
			expected: "Hello Alice, welcome to Acme Corp!",
		},
		{
			name:     "no placeholders",
			template: "No placeholders here",
			data:     map[string]string{"Key": "Value"},
			expected: "No placeholders here",
		},
		{
			name:     "empty data leaves placeholder",
			template: "Hello {{.Name}}",
			data:     map[string]string{},
			expected: "Hello {{.Name}}",
		},
		{
			name:     "values are not re-expanded",
			template: "{{.A}} and {{.B}}",
			data:     map[string]string{"A": "{{.B}}", "B": "bee"},
			expected: "{{.B}} and bee",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}

func TestKeys(t *testing.T) {
	ClearCache()

	keys, err := Keys("matching.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "jd-fit-assessment")
}

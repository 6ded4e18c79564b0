package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRequestFromBody(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]any
		expected MatchRequest
	}{
		{
			name:     "primary keys",
			body:     map[string]any{"jd": "Go engineer", "cvText": "Wrote Go"},
			expected: MatchRequest{JobDescription: "Go engineer", ResumeText: "Wrote Go"},
		},
		{
			name:     "alias keys",
			body:     map[string]any{"jobDescription": "Go engineer", "resumeText": "Wrote Go"},
			expected: MatchRequest{JobDescription: "Go engineer", ResumeText: "Wrote Go"},
		},
		{
			name:     "non-string values are missing",
			body:     map[string]any{"jd": 42, "cvText": []any{"a"}},
			expected: MatchRequest{},
		},
		{
			name:     "empty body",
			body:     map[string]any{},
			expected: MatchRequest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchRequestFromBody(tt.body))
		})
	}
}

func TestMatchRequest_Validate(t *testing.T) {
	valid := MatchRequest{JobDescription: "JD", ResumeText: "CV"}
	assert.NoError(t, valid.Validate())

	missingJD := MatchRequest{ResumeText: "CV"}
	assert.Error(t, missingJD.Validate())

	blankCV := MatchRequest{JobDescription: "JD", ResumeText: "   \n\t"}
	assert.Error(t, blankCV.Validate())
}

package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// MatchRequest is the inbound fit-check payload: a job description paired with résumé text.
type MatchRequest struct {
	JobDescription string `json:"jd" validate:"required"`
	ResumeText     string `json:"cvText" validate:"required"`
}

// Accepted JSON keys for each field, first match wins. Integrations name the
// résumé field differently, so aliases are tolerated.
var (
	jobDescriptionKeys = []string{"jd", "jobDescription"}
	resumeTextKeys     = []string{"cvText", "resumeText"}
)

var validate = validator.New()

// MatchRequestFromBody builds a MatchRequest from a decoded JSON object.
// Non-string values are treated as missing.
func MatchRequestFromBody(body map[string]any) MatchRequest {
	return MatchRequest{
		JobDescription: firstString(body, jobDescriptionKeys),
		ResumeText:     firstString(body, resumeTextKeys),
	}
}

// Validate checks that both texts are non-empty after trimming
func (r *MatchRequest) Validate() error {
	trimmed := MatchRequest{
		JobDescription: strings.TrimSpace(r.JobDescription),
		ResumeText:     strings.TrimSpace(r.ResumeText),
	}
	return validate.Struct(trimmed)
}

func firstString(body map[string]any, keys []string) string {
	for _, key := range keys {
		if s, ok := body[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

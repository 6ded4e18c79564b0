package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/jdfit/internal/llm"
	"github.com/jonathan/jdfit/internal/llm/llmtest"
	"github.com/jonathan/jdfit/internal/schemas"
	"github.com/jonathan/jdfit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodModelOutput = `{
	"overallScore": 99,
	"exactMatchScore": 80,
	"relatedMatchScore": 60,
	"gapScore": 20,
	"confidenceScore": 71,
	"dimensionScores": {"techStack": 70, "responsibilities": 70, "domainContext": 70, "seniority": 70, "tooling": 70},
	"fitLabel": "Strong match",
	"fitHeadline": "Good Go backend fit.",
	"fitVerdict": "Strong service and database overlap.",
	"eligibility": {
		"visa": {"status": "OK", "note": "Full work rights"},
		"experience": {"status": "OK", "note": "3+ years"},
		"location": {"status": "OK", "note": "Sydney"}
	},
	"evidencePairs": [
		{"type": "exact", "jdText": "Go", "cvText": "Go microservices", "note": "direct"},
		{"type": "related", "jdText": "Kafka", "cvText": "RabbitMQ", "note": "messaging"}
	],
	"matchedKeywords": ["Go", "PostgreSQL", "REST"],
	"related": [{"name": "JD Kafka -> CV RabbitMQ", "reason": "message brokers"}],
	"missingKeywords": ["Kubernetes"],
	"riskFlags": ["No Kubernetes production evidence"],
	"summary": "Strong backend overlap.",
	"strengths": ["Go services"],
	"gaps": ["Kubernetes"],
	"suggestions": ["Ship a k8s side project"]
}`

var validRequest = types.MatchRequest{
	JobDescription: "Backend engineer: Go, PostgreSQL, Kubernetes. Full work rights in Australia.",
	ResumeText:     "Engineer with Go microservices and PostgreSQL experience.",
}

func TestAssess_EndToEnd(t *testing.T) {
	fake := &llmtest.Fake{Response: goodModelOutput}
	m := NewMatcher(fake)

	a, err := m.Assess(context.Background(), validRequest)
	require.NoError(t, err)

	assert.Equal(t, 69, a.OverallScore, "model overallScore is always re-derived")
	assert.Equal(t, 71, a.ConfidenceScore, "in-range model confidence is kept")
	assert.Equal(t, types.FitGoodMatch, a.FitLabel)
	assert.Equal(t, "Good Go backend fit.", a.FitHeadline)
	assert.Equal(t, "Strong service and database overlap.", a.FitVerdict)
	assert.Equal(t, types.ScoreSummary{Overall: 69, Exact: 80, Related: 60, Gaps: 20, Confidence: 71}, a.Score)
	assert.Len(t, a.EvidencePairs, 2)

	assert.NoError(t, schemas.ValidateAssessment(a))

	require.Equal(t, 1, fake.Calls())
	prompt := fake.Prompts()[0]
	assert.Contains(t, prompt, validRequest.JobDescription)
	assert.Contains(t, prompt, validRequest.ResumeText)
}

func TestAssess_RecoversMalformedOutput(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantOverall int
	}{
		{name: "fenced", response: "```json\n" + goodModelOutput + "\n```", wantOverall: 69},
		{name: "prose wrapped", response: "Here is my analysis:\n" + goodModelOutput + "\nLet me know!", wantOverall: 69},
		{name: "garbage", response: "I cannot help with that.", wantOverall: 0},
		{name: "empty", response: "", wantOverall: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(&llmtest.Fake{Response: tt.response}, WithContractCheck(false))

			a, err := m.Assess(context.Background(), validRequest)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOverall, a.OverallScore)
			assert.NoError(t, schemas.ValidateAssessment(a))
		})
	}
}

func TestAssess_GarbageFallsBackToDefaults(t *testing.T) {
	m := NewMatcher(&llmtest.Fake{Response: "not json at all"})

	a, err := m.Assess(context.Background(), validRequest)
	require.NoError(t, err)

	assert.Equal(t, types.FitNotAFit, a.FitLabel)
	assert.Equal(t, 22, a.ConfidenceScore)
	assert.Equal(t, "Not a fit for this role right now.", a.FitHeadline)
	assert.True(t, a.Eligibility.Visa.Is(types.StatusUnknown))
	assert.NotNil(t, a.MatchedKeywords)
}

func TestAssess_OutOfRangeConfidenceIsDerived(t *testing.T) {
	raw := `{"confidenceScore": 140, "matchedKeywords": ["Go"], "eligibility": {
		"visa": {"status": "OK"}, "experience": {"status": "OK"}, "location": {"status": "OK"}}}`
	m := NewMatcher(&llmtest.Fake{Response: raw})

	a, err := m.Assess(context.Background(), validRequest)
	require.NoError(t, err)
	assert.Equal(t, 75, a.ConfidenceScore)
}

func TestAssess_VisaIssueOverridesModel(t *testing.T) {
	raw := `{
		"exactMatchScore": 100, "relatedMatchScore": 100,
		"fitLabel": "Strong match", "fitHeadline": "Perfect!", "fitVerdict": "Hire.",
		"eligibility": {"visa": {"status": "Issue", "note": "Citizens only"}, "experience": {"status": "OK"}, "location": {"status": "OK"}},
		"matchedKeywords": ["Go"]
	}`
	m := NewMatcher(&llmtest.Fake{Response: raw})

	a, err := m.Assess(context.Background(), validRequest)
	require.NoError(t, err)

	assert.Equal(t, types.FitNotAFit, a.FitLabel)
	assert.LessOrEqual(t, a.OverallScore, 35)
	assert.LessOrEqual(t, a.ConfidenceScore, 40)
	assert.Equal(t, HeadlineVisaIneligible, a.FitHeadline)
	assert.Equal(t, VerdictIneligible, a.FitVerdict)
	assert.Equal(t, "Citizens only", a.Eligibility.Visa.Note)
}

func TestAssess_ProviderError(t *testing.T) {
	providerErr := &llm.ProviderError{Provider: llm.ProviderGemini, Model: "m", Message: "quota"}
	m := NewMatcher(&llmtest.Fake{Err: providerErr})

	a, err := m.Assess(context.Background(), validRequest)
	require.Error(t, err)
	assert.Nil(t, a)

	var got *llm.ProviderError
	require.ErrorAs(t, err, &got)
	assert.False(t, llm.IsTimeout(err))
}

func TestAssess_Timeout(t *testing.T) {
	m := NewMatcher(&llmtest.Fake{Block: true}, WithTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := m.Assess(context.Background(), validRequest)
	require.Error(t, err)

	assert.True(t, llm.IsTimeout(err))
	assert.Less(t, time.Since(start), 5*time.Second)
}

// slowClient ignores ctx and reports a generic failure once it is done
type slowClient struct{}

func (slowClient) GenerateJSON(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", errors.New("transport closed")
}
func (slowClient) Model() string { return "slow" }
func (slowClient) Close() error  { return nil }

func TestAssess_DeadlineClassifiedAsTimeout(t *testing.T) {
	m := NewMatcher(slowClient{}, WithTimeout(10*time.Millisecond))

	_, err := m.Assess(context.Background(), validRequest)
	require.Error(t, err)
	assert.True(t, llm.IsTimeout(err))
	assert.ErrorContains(t, err, "transport closed")
}

func TestAssess_InvalidRequest(t *testing.T) {
	fake := &llmtest.Fake{Response: goodModelOutput}
	m := NewMatcher(fake)

	_, err := m.Assess(context.Background(), types.MatchRequest{JobDescription: "  ", ResumeText: "cv"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Zero(t, fake.Calls())
}

func TestNewMatcher_Options(t *testing.T) {
	m := NewMatcher(&llmtest.Fake{})
	assert.Equal(t, DefaultTimeout, m.timeout)
	assert.True(t, m.contractCheck)
	assert.Equal(t, DefaultEligibilityPolicy(), m.Policy())

	m = NewMatcher(&llmtest.Fake{},
		WithTimeout(0),
		WithContractCheck(false),
		WithPolicy(EligibilityPolicy{Market: "Canadian"}),
	)
	assert.Zero(t, m.timeout)
	assert.False(t, m.contractCheck)
	assert.Equal(t, "Canadian", m.Policy().Market)
	assert.Equal(t, DefaultEligibilityPolicy().UnclearRule, m.Policy().UnclearRule)

	m = NewMatcher(&llmtest.Fake{}, WithTimeout(-time.Second))
	assert.Equal(t, DefaultTimeout, m.timeout)
}

func TestAssess_UsesPolicyInPrompt(t *testing.T) {
	fake := &llmtest.Fake{Response: "{}"}
	m := NewMatcher(fake, WithPolicy(EligibilityPolicy{CandidateWorkRights: "Candidate is a UK citizen."}))

	_, err := m.Assess(context.Background(), validRequest)
	require.NoError(t, err)
	assert.Contains(t, fake.Prompts()[0], "Candidate is a UK citizen.")
}

func TestScore_IsTotal(t *testing.T) {
	a := Score(nil)
	assert.Equal(t, types.FitNotAFit, a.FitLabel)
	assert.NotEmpty(t, a.FitHeadline)
	assert.NotEmpty(t, a.FitVerdict)
	assert.Equal(t, a.OverallScore, a.Score.Overall)
}

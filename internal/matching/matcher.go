package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/jdfit/internal/llm"
	"github.com/jonathan/jdfit/internal/logger"
	"github.com/jonathan/jdfit/internal/schemas"
	"github.com/jonathan/jdfit/internal/types"
)

// ErrInvalidRequest wraps MatchRequest validation failures
var ErrInvalidRequest = errors.New("invalid match request")

// DefaultTimeout bounds a single provider call
const DefaultTimeout = 60 * time.Second

// Matcher runs the fit-check pipeline. It holds no per-request state and is safe for concurrent use.
type Matcher struct {
	client        llm.Client
	policy        EligibilityPolicy
	timeout       time.Duration
	contractCheck bool
}

// Option configures a Matcher
type Option func(*Matcher)

// WithPolicy replaces the eligibility policy embedded in prompts
func WithPolicy(policy EligibilityPolicy) Option {
	return func(m *Matcher) {
		m.policy = policy.MergeWithDefaults()
	}
}

// WithTimeout bounds each provider call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(m *Matcher) {
		if d >= 0 {
			m.timeout = d
		}
	}
}

// WithContractCheck toggles logging of model output that drifts from the prompt schema
func WithContractCheck(enabled bool) Option {
	return func(m *Matcher) {
		m.contractCheck = enabled
	}
}

// NewMatcher creates a Matcher backed by client
func NewMatcher(client llm.Client, opts ...Option) *Matcher {
	m := &Matcher{
		client:        client,
		policy:        DefaultEligibilityPolicy(),
		timeout:       DefaultTimeout,
		contractCheck: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Policy returns the eligibility policy in use
func (m *Matcher) Policy() EligibilityPolicy {
	return m.policy
}

// Assess scores one JD/résumé pair. It fails only for an invalid request (ErrInvalidRequest)
// or a provider failure; unusable model output still yields an assessment.
func (m *Matcher) Assess(ctx context.Context, req types.MatchRequest) (*types.Assessment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	log := logger.Ctx(ctx)
	prompt := BuildPrompt(req.JobDescription, req.ResumeText, m.policy)

	callCtx := ctx
	if m.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := m.client.GenerateJSON(callCtx, prompt)
	if err != nil {
		if !llm.IsTimeout(err) && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			err = &llm.ProviderError{
				Model:   m.client.Model(),
				Message: "provider call exceeded deadline",
				Timeout: true,
				Cause:   err,
			}
		}
		return nil, err
	}

	extracted := Extract(raw)
	log.Debug().
		Str("model", m.client.Model()).
		Dur("llm_duration", time.Since(start)).
		Str("strategy", extracted.Strategy).
		Str("outcome", string(extracted.Outcome)).
		Msg("Model response extracted")

	if m.contractCheck && extracted.Outcome != OutcomeFailed {
		if err := schemas.ValidateModelOutput(extracted.Data); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				log.Warn().Strs("fields", validationErr.Fields()).Msg("Model output drifted from contract " + SchemaVersion)
			} else {
				log.Error().Err(err).Msg("Contract check failed to run")
			}
		}
	}

	return Score(extracted.Data), nil
}

// Score normalizes parsed model output and fills every derived field
func Score(parsed map[string]any) *types.Assessment {
	a := Normalize(parsed)

	a.OverallScore = DeriveOverallScore(a)
	if confidence, ok := ModelConfidence(parsed); ok {
		a.ConfidenceScore = confidence
	} else {
		a.ConfidenceScore = DeriveConfidenceScore(a)
	}

	a.FitLabel = DeriveFitLabel(a, a.OverallScore)
	a.FitHeadline, a.FitVerdict = PatchFitTexts(a, a.OverallScore)
	a.SyncScore()
	return a
}

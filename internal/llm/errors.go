package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned by NewClient when no credential is configured
var ErrMissingAPIKey = errors.New("API key is required")

// ErrProviderTimeout matches any ProviderError caused by a deadline
var ErrProviderTimeout = errors.New("LLM provider timed out")

// ProviderError wraps a failed provider call
type ProviderError struct {
	Provider Provider
	Model    string
	Message  string
	Timeout  bool
	Cause    error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s (%s/%s)", e.Message, e.Provider, e.Model)
	if e.Timeout {
		msg += " [timeout]"
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrProviderTimeout) match timeout failures
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderTimeout && e.Timeout
}

// IsTimeout reports whether err is a provider timeout
func IsTimeout(err error) bool {
	return errors.Is(err, ErrProviderTimeout)
}

// newProviderError classifies err, treating an expired ctx or deadline error as a timeout
func newProviderError(ctx context.Context, c *Config, message string, err error) *ProviderError {
	timeout := errors.Is(err, context.DeadlineExceeded) ||
		(ctx != nil && errors.Is(ctx.Err(), context.DeadlineExceeded))
	return &ProviderError{
		Provider: c.Provider,
		Model:    c.ModelName(),
		Message:  message,
		Timeout:  timeout,
		Cause:    err,
	}
}

// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/jdfit/internal/llm"
)

// Fake returns a fixed response or error and records prompts
type Fake struct {
	Response string
	Err      error
	// Block makes GenerateJSON wait for ctx to finish and return a timeout ProviderError
	Block bool

	mu      sync.Mutex
	prompts []string
	closed  bool
}

var _ llm.Client = (*Fake)(nil)

// GenerateJSON implements llm.Client
func (f *Fake) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.Block {
		<-ctx.Done()
		return "", &llm.ProviderError{
			Provider: "fake",
			Model:    f.Model(),
			Message:  "failed to generate content",
			Timeout:  true,
			Cause:    ctx.Err(),
		}
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}

// Model implements llm.Client
func (f *Fake) Model() string {
	return "fake-model"
}

// Close implements llm.Client
func (f *Fake) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

// Prompts returns every prompt received so far
func (f *Fake) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// Calls returns the number of GenerateJSON calls
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// Closed reports whether Close was called
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

package matching

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/jdfit/internal/llm"
	"github.com/jonathan/jdfit/internal/logger"
)

// ExtractOutcome tags how a model response was recovered
type ExtractOutcome string

const (
	// OutcomeParsed means the first strategy succeeded
	OutcomeParsed ExtractOutcome = "parsed"
	// OutcomeFallback means a later strategy succeeded after an earlier one failed
	OutcomeFallback ExtractOutcome = "fallback"
	// OutcomeFailed means no strategy produced an object; Data is empty
	OutcomeFailed ExtractOutcome = "failed"
)

// Strategy names
const (
	StrategyStrict = "strict"
	StrategyBraces = "braces"
)

// ExtractAttempt records one strategy run
type ExtractAttempt struct {
	Strategy string
	Err      error
}

// ExtractResult is the outcome of Extract. Data is never nil.
type ExtractResult struct {
	Data     map[string]any
	Strategy string
	Outcome  ExtractOutcome
	Attempts []ExtractAttempt
}

type extractStrategy struct {
	name string
	run  func(text string) (map[string]any, error)
}

// strategies run in order; the first success wins
var strategies = []extractStrategy{
	{name: StrategyStrict, run: parseStrict},
	{name: StrategyBraces, run: parseBraces},
}

// Extract recovers a JSON object from raw model text. It never fails:
// when every strategy fails the result carries an empty object.
func Extract(text string) ExtractResult {
	cleaned := llm.CleanJSONBlock(text)
	result := ExtractResult{Attempts: make([]ExtractAttempt, 0, len(strategies))}

	for i, s := range strategies {
		data, err := s.run(cleaned)
		result.Attempts = append(result.Attempts, ExtractAttempt{Strategy: s.name, Err: err})
		if err == nil {
			result.Data = data
			result.Strategy = s.name
			if i == 0 {
				result.Outcome = OutcomeParsed
			} else {
				result.Outcome = OutcomeFallback
			}
			return result
		}

		next := "empty object"
		if i+1 < len(strategies) {
			next = strategies[i+1].name
		}
		logger.Warn().
			Str("strategy", s.name).
			Str("next", next).
			Err(err).
			Int("raw_length", len(cleaned)).
			Msg("Model output did not parse, falling back")
	}

	result.Data = map[string]any{}
	result.Outcome = OutcomeFailed
	return result
}

func parseStrict(text string) (map[string]any, error) {
	return decodeObject(text)
}

// parseBraces decodes the span from the first '{' to the last '}'
func parseBraces(text string) (map[string]any, error) {
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last <= first {
		return nil, &ExtractError{Strategy: StrategyBraces, Message: "no brace-delimited object found"}
	}
	return decodeObject(text[first : last+1])
}

func decodeObject(text string) (map[string]any, error) {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, &ExtractError{Message: "invalid JSON", Cause: err}
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, &ExtractError{Message: "JSON value is not an object"}
	}
	return obj, nil
}

// ExtractError describes why a single strategy failed
type ExtractError struct {
	Strategy string
	Message  string
	Cause    error
}

func (e *ExtractError) Error() string {
	msg := e.Message
	if e.Strategy != "" {
		msg = e.Strategy + ": " + msg
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

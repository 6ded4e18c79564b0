package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/jdfit/internal/llm"
	"github.com/jonathan/jdfit/internal/matching"
)

// Request errors raised before the pipeline runs
var (
	// ErrPayloadTooLarge means the body exceeded the size cap
	ErrPayloadTooLarge = errors.New("payload too large")
	// ErrMalformedBody means the body was not valid JSON
	ErrMalformedBody = errors.New("malformed JSON body")
	// ErrMissingFields means jd or cvText was absent or blank
	ErrMissingFields = errors.New("jd and cvText are required")
	// ErrNotConfigured means no LLM credential is set
	ErrNotConfigured = errors.New("LLM credential is not configured")
)

// Client-facing messages. Nothing else about a failure leaves the process.
const (
	MsgMethodNotAllowed = "Only POST is allowed"
	MsgNotConfigured    = "GEMINI_API_KEY is not set on the server"
	MsgPayloadTooLarge  = "Payload too large"
	MsgInvalidJSON      = "Invalid JSON body"
	MsgMissingFields    = "jd and cvText are required"
	MsgTimedOut         = "JD analysis timed out"
	MsgFailed           = "JD analysis failed"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	status, _ := classify(err)
	return status
}

// PublicMessage returns the fixed client message for an error
func PublicMessage(err error) string {
	_, msg := classify(err)
	return msg
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return http.StatusInternalServerError, MsgNotConfigured
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusBadRequest, MsgPayloadTooLarge
	case errors.Is(err, ErrMalformedBody):
		return http.StatusBadRequest, MsgInvalidJSON
	case errors.Is(err, ErrMissingFields), errors.Is(err, matching.ErrInvalidRequest):
		return http.StatusBadRequest, MsgMissingFields
	case llm.IsTimeout(err):
		return http.StatusGatewayTimeout, MsgTimedOut
	default:
		return http.StatusInternalServerError, MsgFailed
	}
}

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/jonathan/jdfit/internal/llm"
	"github.com/jonathan/jdfit/internal/logger"
	"github.com/jonathan/jdfit/internal/types"
)

// handleMatch runs a fit check for one JD/résumé pair
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	log := logger.Ctx(r.Context())

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		s.errorResponse(w, r, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
		return
	}

	if !s.cfg.HasAPIKey() || s.assessor == nil {
		log.Error().Msg("GEMINI_API_KEY is not set; rejecting match request")
		s.fail(w, r, ErrNotConfigured)
		return
	}

	body, err := readJSONBody(w, r, s.maxBodyBytes)
	if err != nil {
		log.Warn().Err(err).Msg("Error reading request body")
		s.fail(w, r, err)
		return
	}

	req := types.MatchRequestFromBody(body)
	if err := req.Validate(); err != nil {
		s.fail(w, r, ErrMissingFields)
		return
	}

	start := time.Now()
	assessment, err := s.assessor.Assess(r.Context(), req)
	if err != nil {
		event := log.Error().Err(err).Dur("duration", time.Since(start))
		var providerErr *llm.ProviderError
		if errors.As(err, &providerErr) {
			event = event.Str("model", providerErr.Model).Bool("timeout", providerErr.Timeout)
		}
		event.Msg("JD assistant error")
		s.fail(w, r, err)
		return
	}

	log.Info().
		Int("overall_score", assessment.OverallScore).
		Str("fit_label", string(assessment.FitLabel)).
		Dur("duration", time.Since(start)).
		Msg("JD analysis completed")

	s.jsonResponse(w, r, http.StatusOK, assessment)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// fail maps err to its fixed status and message
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.errorResponse(w, r, HTTPStatus(err), PublicMessage(err))
}

package main

import (
	"fmt"

	"github.com/jonathan/jdfit/internal/logger"
	"github.com/jonathan/jdfit/internal/matching"
	"github.com/jonathan/jdfit/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JD fit-check API server",
	Long:  `Start an HTTP server exposing POST /api/agents/jd (and /api/jd) for fit assessments.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv, closeClient, err := buildServer(cmd)
	if err != nil {
		return err
	}
	defer closeClient()

	return srv.Start()
}

// buildServer wires the matcher into the HTTP server. Without an API key the
// server still starts and answers match requests with a configuration error.
func buildServer(cmd *cobra.Command) (*server.Server, func(), error) {
	if servePort != 0 {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	if !cfg.HasAPIKey() {
		logger.Warn().Msg("GEMINI_API_KEY is not set; match requests will fail until it is configured")
		return server.New(cfg, nil), func() {}, nil
	}

	client, err := newLLMClient(cmd.Context(), cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	logger.Info().
		Str("provider", string(cfg.LLMConfig().Provider)).
		Str("model", client.Model()).
		Dur("llm_timeout", cfg.LLMTimeout).
		Msg("LLM client ready")

	matcher := matching.NewMatcher(client, cfg.MatcherOptions()...)
	return server.New(cfg, matcher), func() { _ = client.Close() }, nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jonathan/jdfit/internal/fetch"
	"github.com/jonathan/jdfit/internal/ingestion"
	"github.com/jonathan/jdfit/internal/logger"
	"github.com/jonathan/jdfit/internal/matching"
	"github.com/jonathan/jdfit/internal/observability"
	"github.com/jonathan/jdfit/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// DefaultCheckConcurrency bounds parallel provider calls in check
const DefaultCheckConcurrency = 4

var (
	checkJobSources  []string
	checkResumePath  string
	checkJSON        bool
	checkConcurrency int
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Assess a résumé against one or more job descriptions",
	Long:  "Run the fit check locally. Each --job is a text file or a URL; the résumé may be .txt, .md, .pdf or .docx.",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringArrayVarP(&checkJobSources, "job", "j", nil, "Job description file or URL (repeatable)")
	checkCmd.Flags().StringVarP(&checkResumePath, "resume", "r", "", "Résumé file (required)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print assessments as JSON")
	checkCmd.Flags().IntVarP(&checkConcurrency, "concurrency", "c", DefaultCheckConcurrency, "Maximum jobs assessed in parallel")

	_ = checkCmd.MarkFlagRequired("job")
	_ = checkCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(checkCmd)
}

// checkResult is the JSON shape of one check
type checkResult struct {
	Source     string            `json:"source"`
	Assessment *types.Assessment `json:"assessment,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if !cfg.HasAPIKey() {
		return errors.New("GEMINI_API_KEY is not set")
	}

	resume, err := ingestion.LoadResume(checkResumePath)
	if err != nil {
		return fmt.Errorf("failed to load résumé: %w", err)
	}

	ctx := cmd.Context()
	client, err := newLLMClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	matcher := matching.NewMatcher(client, cfg.MatcherOptions()...)
	results := checkJobs(ctx, matcher, fetch.New(), resume, checkJobSources, checkConcurrency)

	if err := writeResults(cmd.OutOrStdout(), results, checkJSON); err != nil {
		return err
	}
	return failureSummary(results)
}

// checkJobs assesses every job against resume with at most limit in flight.
// Results keep the order of sources; one failing job does not stop the others.
func checkJobs(ctx context.Context, matcher *matching.Matcher, fetcher ingestion.JobFetcher, resume string, sources []string, limit int) []observability.Result {
	results := make([]observability.Result, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, source := range sources {
		g.Go(func() error {
			results[i] = checkOne(ctx, matcher, fetcher, resume, source)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func checkOne(ctx context.Context, matcher *matching.Matcher, fetcher ingestion.JobFetcher, resume, source string) observability.Result {
	log := logger.Ctx(ctx).With().Str("job", source).Logger()

	job, err := ingestion.IngestJob(ctx, source, fetcher)
	if err != nil {
		log.Error().Err(err).Msg("Failed to ingest job")
		return observability.Result{Source: source, Err: err}
	}

	assessment, err := matcher.Assess(ctx, types.MatchRequest{JobDescription: job.Text, ResumeText: resume})
	if err != nil {
		log.Error().Err(err).Msg("Assessment failed")
		return observability.Result{Source: source, Err: err}
	}

	log.Info().Int("overall", assessment.OverallScore).Str("label", string(assessment.FitLabel)).Msg("Job assessed")
	return observability.Result{Source: source, Assessment: assessment}
}

func writeResults(out io.Writer, results []observability.Result, asJSON bool) error {
	if asJSON {
		payload := make([]checkResult, len(results))
		for i, r := range results {
			payload[i] = checkResult{Source: r.Source, Assessment: r.Assessment}
			if r.Err != nil {
				payload[i].Error = r.Err.Error()
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
		return nil
	}

	p := observability.NewPrinter(out)
	for _, r := range results {
		p.PrintAssessment(r.Source, r.Assessment)
	}
	if len(results) > 1 {
		p.PrintSummary(results)
	}
	return nil
}

func failureSummary(results []observability.Result) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(results))
	}
	return nil
}

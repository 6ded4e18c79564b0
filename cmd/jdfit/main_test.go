package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/jdfit/internal/llm"
	"github.com/jonathan/jdfit/internal/llm/llmtest"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const modelOutput = `{
	"exactMatchScore": 85,
	"relatedMatchScore": 70,
	"gapScore": 10,
	"dimensionScores": {"techStack": 90, "responsibilities": 80, "domainContext": 70, "seniority": 75, "tooling": 80},
	"eligibility": {
		"visa": {"status": "OK", "note": "Full work rights"},
		"experience": {"status": "OK", "note": "Meets 3 years"},
		"location": {"status": "OK", "note": "Sydney"}
	},
	"matchedKeywords": ["Go", "PostgreSQL", "Docker", "REST"],
	"missingKeywords": ["Kubernetes"],
	"summary": "Strong backend fit."
}`

// useFakeClient routes every LLM client the commands build to fake
func useFakeClient(t *testing.T, fake *llmtest.Fake) {
	t.Helper()
	orig := newLLMClient
	newLLMClient = func(_ context.Context, _ *llm.Config, _ string) (llm.Client, error) {
		return fake, nil
	}
	t.Cleanup(func() { newLLMClient = orig })
}

// isolateEnv clears the variables config.Load reads
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "GEMINI_MODEL", "LLM_PROVIDER", "PORT", "LLM_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "CONTRACT_CHECK"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")
}

// executeCommand runs the root command with args and returns its stdout
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags undoes flag state left by a previous Execute
func resetFlags() {
	configPath = ""
	servePort = 0
	checkJobSources = nil
	checkResumePath = ""
	checkJSON = false
	checkConcurrency = DefaultCheckConcurrency
	extractIn = ""
	extractOut = ""

	for _, c := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

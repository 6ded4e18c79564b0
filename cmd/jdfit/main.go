// Package main provides the jdfit command: the JD fit-check HTTP API and local CLI helpers.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/jdfit/internal/config"
	"github.com/jonathan/jdfit/internal/llm"
	"github.com/jonathan/jdfit/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        *config.Config
)

// newLLMClient is swapped out in tests
var newLLMClient = llm.NewClient

var rootCmd = &cobra.Command{
	Use:               "jdfit",
	Short:             "JD fit-checker",
	Long:              "jdfit scores how well a résumé fits a job description using an LLM, over HTTP or from the command line.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.InitWithWriter(c.LoggerConfig(), os.Stderr)
	cfg = c
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

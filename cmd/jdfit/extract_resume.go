package main

import (
	"fmt"
	"os"

	"github.com/jonathan/jdfit/internal/ingestion"
	"github.com/spf13/cobra"
)

var (
	extractIn  string
	extractOut string
)

var extractResumeCmd = &cobra.Command{
	Use:   "extract-resume",
	Short: "Convert a PDF or DOCX résumé into plain text",
	Long:  "Extract, clean and truncate résumé text to the form posted as cvText. Writes to --out, or stdout when --out is omitted.",
	RunE:  runExtractResume,
}

func init() {
	extractResumeCmd.Flags().StringVarP(&extractIn, "in", "i", "", "Résumé file (.pdf, .docx, .txt, .md)")
	extractResumeCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Output text file")

	_ = extractResumeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(extractResumeCmd)
}

func runExtractResume(cmd *cobra.Command, _ []string) error {
	text, err := ingestion.LoadResume(extractIn)
	if err != nil {
		return fmt.Errorf("failed to extract résumé: %w", err)
	}

	if extractOut == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}

	if err := os.WriteFile(extractOut, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d characters to %s\n", len([]rune(text)), extractOut)
	return nil
}

// Package observability formats fit assessments for the terminal.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/jdfit/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the check command
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Result pairs an assessment with the job it was produced for
type Result struct {
	Source     string
	Assessment *types.Assessment
	Err        error
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, inner) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(wrapped, inner))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAssessment outputs the boxed fit report for one job
func (p *Printer) PrintAssessment(source string, a *types.Assessment) {
	if a == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  (%d/100, confidence %d)\n", a.FitLabel, a.OverallScore, a.ConfidenceScore)
	sb.WriteString(a.FitHeadline + "\n")
	if a.FitVerdict != "" {
		sb.WriteString(a.FitVerdict + "\n")
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Exact %d   Related %d   Gaps %d\n", a.ExactMatchScore, a.RelatedMatchScore, a.GapScore)
	d := a.DimensionScores
	fmt.Fprintf(&sb, "Tech %d  Resp %d  Domain %d  Seniority %d  Tooling %d\n\n",
		d.TechStack, d.Responsibilities, d.DomainContext, d.Seniority, d.Tooling)

	sb.WriteString("Eligibility:\n")
	writeCheck(&sb, "Visa", a.Eligibility.Visa)
	writeCheck(&sb, "Experience", a.Eligibility.Experience)
	writeCheck(&sb, "Location", a.Eligibility.Location)

	writeList(&sb, "Matched", a.MatchedKeywords)
	writeList(&sb, "Missing", a.MissingKeywords)
	writeList(&sb, "Risks", a.RiskFlags)

	if a.Summary != "" {
		sb.WriteString("\n" + a.Summary + "\n")
	}

	p.printBox("JD FIT: "+source, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs one line per job, best score first as given
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSummary(results []Result) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(&sb, "  ERR  %s: %v\n", r.Source, r.Err)
			continue
		}
		if r.Assessment == nil {
			continue
		}
		fmt.Fprintf(&sb, "%5d  %-15s %s\n", r.Assessment.OverallScore, r.Assessment.FitLabel, r.Source)
	}
	p.printBox(fmt.Sprintf("SUMMARY (%d jobs)", len(results)), strings.TrimSuffix(sb.String(), "\n"))
}

func writeCheck(sb *strings.Builder, name string, c types.EligibilityCheck) {
	mark := "?"
	switch {
	case c.Is(types.StatusOK):
		mark = "✓"
	case c.Is(types.StatusIssue):
		mark = "✗"
	}
	fmt.Fprintf(sb, "  %s %-10s %s\n", mark, name, c.Note)
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	shown := items[:min(len(items), maxItemsToShow)]
	fmt.Fprintf(sb, "%s: %s", label, strings.Join(shown, ", "))
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, " (+%d more)", len(items)-maxItemsToShow)
	}
	sb.WriteString("\n")
}

// pad right-pads s with spaces to width characters
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// wrap splits a line into chunks of at most width characters, breaking on spaces when it can
func wrap(line string, width int) []string {
	runes := []rune(line)
	if len(runes) <= width {
		return []string{line}
	}

	var out []string
	for len(runes) > width {
		cut := width
		for i := width; i > width/2; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimRight(string(runes[:cut]), " "))
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " "))
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

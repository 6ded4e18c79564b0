// Package matching turns a job description and résumé into a normalized fit
// assessment: prompt construction, model output recovery, normalization,
// deterministic score derivation and verdict text.
package matching

import (
	"fmt"
	"strings"

	"github.com/jonathan/jdfit/internal/prompts"
)

// SchemaVersion identifies the output contract carried by the prompt.
// Bump it whenever the JSON structure in matching.json changes.
const SchemaVersion = "jd-fit/v4"

const (
	promptFile = "matching.json"
	promptKey  = "jd-fit-assessment"
)

// EligibilityPolicy is the candidate-specific work-rights policy embedded in the prompt
type EligibilityPolicy struct {
	Market              string   `json:"market" yaml:"market"`
	CandidateWorkRights string   `json:"candidate_work_rights" yaml:"candidate_work_rights"`
	VisaIssuePhrases    []string `json:"visa_issue_phrases" yaml:"visa_issue_phrases"`
	WorkRightsOKRule    string   `json:"work_rights_ok_rule" yaml:"work_rights_ok_rule"`
	UnclearRule         string   `json:"unclear_rule" yaml:"unclear_rule"`
}

// DefaultEligibilityPolicy returns the policy used when configuration does not override it
func DefaultEligibilityPolicy() EligibilityPolicy {
	return EligibilityPolicy{
		Market:              "Australian",
		CandidateWorkRights: "Candidate has 485 Graduate Visa with full work rights until 4 Sep 2027.",
		VisaIssuePhrases: []string{
			"Australian citizen",
			"citizenship",
			"PR only",
			"must have Australian PR or citizenship",
		},
		WorkRightsOKRule: `If JD only asks for full work rights in Australia (without citizen/PR hard requirement), visa status is "OK".`,
		UnclearRule:      `If unclear, visa status is "Unknown".`,
	}
}

// MergeWithDefaults fills empty fields from DefaultEligibilityPolicy
func (p EligibilityPolicy) MergeWithDefaults() EligibilityPolicy {
	d := DefaultEligibilityPolicy()
	if strings.TrimSpace(p.Market) != "" {
		d.Market = p.Market
	}
	if strings.TrimSpace(p.CandidateWorkRights) != "" {
		d.CandidateWorkRights = p.CandidateWorkRights
	}
	if len(p.VisaIssuePhrases) > 0 {
		d.VisaIssuePhrases = p.VisaIssuePhrases
	}
	if strings.TrimSpace(p.WorkRightsOKRule) != "" {
		d.WorkRightsOKRule = p.WorkRightsOKRule
	}
	if strings.TrimSpace(p.UnclearRule) != "" {
		d.UnclearRule = p.UnclearRule
	}
	return d
}

// BuildPrompt renders the assessment prompt for one JD/résumé pair.
// Both texts are appended after template expansion and are never interpreted.
func BuildPrompt(jd, resume string, policy EligibilityPolicy) string {
	template := prompts.MustGet(promptFile, promptKey)

	instructions := prompts.Format(template, map[string]string{
		"Market":              policy.Market,
		"SchemaVersion":       SchemaVersion,
		"CandidateWorkRights": policy.CandidateWorkRights,
		"VisaIssuePhrases":    quotePhrases(policy.VisaIssuePhrases),
		"WorkRightsOKRule":    policy.WorkRightsOKRule,
		"UnclearRule":         policy.UnclearRule,
	})

	var b strings.Builder
	b.Grow(len(instructions) + len(jd) + len(resume) + 32)
	b.WriteString(strings.TrimRight(instructions, "\n"))
	b.WriteString("\n\nJD:\n---\n")
	b.WriteString(jd)
	b.WriteString("\n\nCV:\n---\n")
	b.WriteString(resume)
	b.WriteString("\n")
	return b.String()
}

// quotePhrases renders ["a","b","c"] as `"a", "b", or "c"`
func quotePhrases(phrases []string) string {
	quoted := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p = strings.TrimSpace(p); p != "" {
			quoted = append(quoted, fmt.Sprintf("%q", p))
		}
	}

	switch len(quoted) {
	case 0:
		return `"citizenship"`
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " or " + quoted[1]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
	}
}

// Package types provides type definitions for the structured data exchanged by the JD fit-checker.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// FitLabel is the categorical outcome of a fit assessment
type FitLabel string

// Fit label values, ordered from best to worst
const (
	FitStrongMatch   FitLabel = "Strong match"
	FitGoodMatch     FitLabel = "Good match"
	FitPossibleMatch FitLabel = "Possible match"
	FitNotAFit       FitLabel = "Not a fit"
)

// Eligibility status values as written in the prompt contract
const (
	StatusOK      = "OK"
	StatusIssue   = "Issue"
	StatusUnknown = "Unknown"
)

// Evidence pair types
const (
	EvidenceExact   = "exact"
	EvidenceRelated = "related"
)

// Assessment is the normalized fit assessment returned to the portfolio widget.
// Every list field is non-nil after normalization so it serializes as [].
type Assessment struct {
	OverallScore      int `json:"overallScore"`
	ExactMatchScore   int `json:"exactMatchScore"`
	RelatedMatchScore int `json:"relatedMatchScore"`
	GapScore          int `json:"gapScore"`
	ConfidenceScore   int `json:"confidenceScore"`

	DimensionScores DimensionScores `json:"dimensionScores"`

	FitLabel    FitLabel `json:"fitLabel"`
	FitHeadline string   `json:"fitHeadline"`
	FitVerdict  string   `json:"fitVerdict"`

	Eligibility Eligibility `json:"eligibility"`

	EvidencePairs   []EvidencePair `json:"evidencePairs"`
	MatchedKeywords []string       `json:"matchedKeywords"`
	Related         []RelatedItem  `json:"related"`
	MissingKeywords []string       `json:"missingKeywords"`
	RiskFlags       []string       `json:"riskFlags"`

	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Gaps        []string `json:"gaps"`
	Suggestions []string `json:"suggestions"`

	Score ScoreSummary `json:"score"`
}

// DimensionScores breaks the match down into five sub-scores (0-100)
type DimensionScores struct {
	TechStack        int `json:"techStack"`
	Responsibilities int `json:"responsibilities"`
	DomainContext    int `json:"domainContext"`
	Seniority        int `json:"seniority"`
	Tooling          int `json:"tooling"`
}

// Average returns the mean of the five sub-scores
func (d DimensionScores) Average() float64 {
	sum := d.TechStack + d.Responsibilities + d.DomainContext + d.Seniority + d.Tooling
	return float64(sum) / 5
}

// Eligibility holds the three hard eligibility gates
type Eligibility struct {
	Visa       EligibilityCheck `json:"visa"`
	Experience EligibilityCheck `json:"experience"`
	Location   EligibilityCheck `json:"location"`
}

// EligibilityCheck is a single gate result.
// Status keeps the casing the model used; compare with Is.
type EligibilityCheck struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// Is reports whether the status equals want, ignoring case
func (c EligibilityCheck) Is(want string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Status), want)
}

// EvidencePair links a JD phrase to the résumé phrase that supports or contradicts it
type EvidencePair struct {
	Type   string `json:"type"` // exact or related
	JDText string `json:"jdText"`
	CVText string `json:"cvText"`
	Note   string `json:"note"`
}

// RelatedItem is a transferable-skill mapping (JD X -> CV Y)
type RelatedItem struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ScoreSummary mirrors the headline scores for older widget versions
type ScoreSummary struct {
	Overall    int `json:"overall"`
	Exact      int `json:"exact"`
	Related    int `json:"related"`
	Gaps       int `json:"gaps"`
	Confidence int `json:"confidence"`
}

// NewAssessment returns the all-zero template every response starts from
func NewAssessment() *Assessment {
	return &Assessment{
		FitLabel: FitNotAFit,
		Eligibility: Eligibility{
			Visa:       EligibilityCheck{Status: StatusUnknown},
			Experience: EligibilityCheck{Status: StatusUnknown},
			Location:   EligibilityCheck{Status: StatusUnknown},
		},
		EvidencePairs:   []EvidencePair{},
		MatchedKeywords: []string{},
		Related:         []RelatedItem{},
		MissingKeywords: []string{},
		RiskFlags:       []string{},
		Strengths:       []string{},
		Gaps:            []string{},
		Suggestions:     []string{},
	}
}

// SyncScore copies the headline scores into the Score mirror
func (a *Assessment) SyncScore() {
	a.Score = ScoreSummary{
		Overall:    a.OverallScore,
		Exact:      a.ExactMatchScore,
		Related:    a.RelatedMatchScore,
		Gaps:       a.GapScore,
		Confidence: a.ConfidenceScore,
	}
}

package matching

import (
	"math"

	"github.com/jonathan/jdfit/internal/types"
)

// Fit label tier thresholds, inclusive lower bounds
const (
	StrongMatchThreshold   = 82
	GoodMatchThreshold     = 68
	PossibleMatchThreshold = 50
)

// Overall score weights
const (
	weightExact     = 0.42
	weightRelated   = 0.18
	weightCoverage  = 0.15
	weightDimension = 0.25
	weightGap       = 0.20

	visaIssuePenalty       = 35
	experienceIssuePenalty = 25
	locationIssuePenalty   = 10

	hardIssueCap     = 35
	locationIssueCap = 75
)

// Confidence components
const (
	confidenceBase           = 45
	confidenceCoverageWeight = 30
	confidencePerEvidence    = 3
	confidenceEvidenceMax    = 15
	confidencePerRelated     = 2
	confidenceRelatedMax     = 8

	visaUnknownPenalty       = 10
	experienceUnknownPenalty = 8
	locationUnknownPenalty   = 5

	visaIssueConfidenceCap       = 40
	experienceIssueConfidenceCap = 45
)

// KeywordCoverage returns matched / (matched + missing) in [0,1]; 0 when both lists are empty
func KeywordCoverage(a *types.Assessment) float64 {
	matched := len(a.MatchedKeywords)
	total := matched + len(a.MissingKeywords)
	if total == 0 {
		total = 1
	}
	return float64(matched) / float64(total)
}

// DeriveOverallScore computes the weighted overall fit score with eligibility penalties and caps
func DeriveOverallScore(a *types.Assessment) int {
	score := weightExact*float64(a.ExactMatchScore) +
		weightRelated*float64(a.RelatedMatchScore) +
		weightCoverage*KeywordCoverage(a)*100 +
		weightDimension*a.DimensionScores.Average()

	score -= weightGap * float64(a.GapScore)

	visaIssue := a.Eligibility.Visa.Is(types.StatusIssue)
	expIssue := a.Eligibility.Experience.Is(types.StatusIssue)
	locIssue := a.Eligibility.Location.Is(types.StatusIssue)

	if visaIssue {
		score -= visaIssuePenalty
	}
	if expIssue {
		score -= experienceIssuePenalty
	}
	if locIssue {
		score -= locationIssuePenalty
	}

	if visaIssue || expIssue {
		score = math.Min(score, hardIssueCap)
	} else if locIssue {
		score = math.Min(score, locationIssueCap)
	}

	return clampFloat(score)
}

// DeriveConfidenceScore estimates assessment confidence from evidence volume and eligibility certainty
func DeriveConfidenceScore(a *types.Assessment) int {
	confidence := float64(confidenceBase)
	confidence += KeywordCoverage(a) * confidenceCoverageWeight
	confidence += math.Min(confidenceEvidenceMax, float64(len(a.EvidencePairs)*confidencePerEvidence))
	confidence += math.Min(confidenceRelatedMax, float64(len(a.Related)*confidencePerRelated))

	elig := a.Eligibility
	if elig.Visa.Is(types.StatusUnknown) {
		confidence -= visaUnknownPenalty
	}
	if elig.Experience.Is(types.StatusUnknown) {
		confidence -= experienceUnknownPenalty
	}
	if elig.Location.Is(types.StatusUnknown) {
		confidence -= locationUnknownPenalty
	}

	if elig.Visa.Is(types.StatusIssue) {
		confidence = math.Min(confidence, visaIssueConfidenceCap)
	}
	if elig.Experience.Is(types.StatusIssue) {
		confidence = math.Min(confidence, experienceIssueConfidenceCap)
	}

	return clampFloat(confidence)
}

// DeriveFitLabel tiers the overall score. A visa or experience Issue is always Not a fit.
func DeriveFitLabel(a *types.Assessment, overall int) types.FitLabel {
	if hardIneligible(a) {
		return types.FitNotAFit
	}
	return tierLabel(overall)
}

func tierLabel(overall int) types.FitLabel {
	switch {
	case overall >= StrongMatchThreshold:
		return types.FitStrongMatch
	case overall >= GoodMatchThreshold:
		return types.FitGoodMatch
	case overall >= PossibleMatchThreshold:
		return types.FitPossibleMatch
	default:
		return types.FitNotAFit
	}
}

func hardIneligible(a *types.Assessment) bool {
	return a.Eligibility.Visa.Is(types.StatusIssue) || a.Eligibility.Experience.Is(types.StatusIssue)
}

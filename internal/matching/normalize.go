package matching

import (
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/jdfit/internal/types"
)

// List caps and evidence text limits (runes)
const (
	MaxKeywords      = 20
	MaxRelated       = 20
	MaxNarrativeList = 10
	MaxEvidencePairs = 10

	MaxEvidenceQuoteRunes = 180
	MaxEvidenceNoteRunes  = 220
)

// Normalize merges parsed model output over the default template and coerces every
// field into its declared bounds. It accepts any decoded JSON shape and never panics.
// Derived fields (overall score, confidence, label, texts) are left to the caller.
func Normalize(parsed map[string]any) *types.Assessment {
	a := types.NewAssessment()
	if parsed == nil {
		return a
	}

	a.OverallScore = ClampScore(parsed["overallScore"])
	a.ExactMatchScore = ClampScore(parsed["exactMatchScore"])
	a.RelatedMatchScore = ClampScore(parsed["relatedMatchScore"])
	a.GapScore = ClampScore(parsed["gapScore"])
	a.ConfidenceScore = ClampScore(parsed["confidenceScore"])

	a.DimensionScores = normalizeDimensions(parsed["dimensionScores"], a.ExactMatchScore, a.RelatedMatchScore)
	a.Eligibility = normalizeEligibility(parsed["eligibility"])

	a.FitHeadline = strings.TrimSpace(asString(parsed["fitHeadline"]))
	a.FitVerdict = strings.TrimSpace(asString(parsed["fitVerdict"]))
	a.Summary = strings.TrimSpace(asString(parsed["summary"]))

	a.EvidencePairs = normalizeEvidencePairs(parsed["evidencePairs"])
	a.MatchedKeywords = stringList(parsed["matchedKeywords"], MaxKeywords)
	a.MissingKeywords = stringList(parsed["missingKeywords"], MaxKeywords)
	a.Related = normalizeRelated(parsed["related"])
	a.RiskFlags = stringList(parsed["riskFlags"], MaxNarrativeList)
	a.Strengths = stringList(parsed["strengths"], MaxNarrativeList)
	a.Gaps = stringList(parsed["gaps"], MaxNarrativeList)
	a.Suggestions = stringList(parsed["suggestions"], MaxNarrativeList)

	return a
}

// ClampScore coerces a decoded JSON value to an integer score in [0,100].
// Anything that is not a finite number becomes 0.
func ClampScore(v any) int {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return clampFloat(f)
}

// ModelConfidence returns the model's confidenceScore when it is a number already in [0,100]
func ModelConfidence(parsed map[string]any) (int, bool) {
	f, ok := parsed["confidenceScore"].(float64)
	if !ok || math.IsNaN(f) || f < 0 || f > 100 {
		return 0, false
	}
	return clampFloat(f), true
}

func clampFloat(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	f = math.Round(f)
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return int(f)
}

// normalizeDimensions clamps supplied sub-scores and back-fills absent ones from exact/related
func normalizeDimensions(raw any, exact, related int) types.DimensionScores {
	d, _ := raw.(map[string]any)
	e, r := float64(exact), float64(related)

	return types.DimensionScores{
		TechStack:        dimension(d, "techStack", exact),
		Responsibilities: dimension(d, "responsibilities", clampFloat((e+r)/2)),
		DomainContext:    dimension(d, "domainContext", related),
		Seniority:        dimension(d, "seniority", clampFloat(0.7*e+0.3*r)),
		Tooling:          dimension(d, "tooling", related),
	}
}

// dimension uses fallback only when the key is absent or null
func dimension(d map[string]any, key string, fallback int) int {
	v, ok := d[key]
	if !ok || v == nil {
		return fallback
	}
	return ClampScore(v)
}

func normalizeEligibility(raw any) types.Eligibility {
	m, _ := raw.(map[string]any)
	return types.Eligibility{
		Visa:       eligibilityCheck(m["visa"]),
		Experience: eligibilityCheck(m["experience"]),
		Location:   eligibilityCheck(m["location"]),
	}
}

// eligibilityCheck keeps a recognized status in the model's casing; anything else is Unknown
func eligibilityCheck(raw any) types.EligibilityCheck {
	m, _ := raw.(map[string]any)
	check := types.EligibilityCheck{
		Status: types.StatusUnknown,
		Note:   strings.TrimSpace(asString(m["note"])),
	}

	status := strings.TrimSpace(asString(m["status"]))
	for _, known := range []string{types.StatusOK, types.StatusIssue, types.StatusUnknown} {
		if strings.EqualFold(status, known) {
			check.Status = status
			break
		}
	}
	return check
}

func normalizeEvidencePairs(raw any) []types.EvidencePair {
	items, _ := raw.([]any)
	pairs := make([]types.EvidencePair, 0, min(len(items), MaxEvidencePairs))

	for _, item := range items {
		if len(pairs) == MaxEvidencePairs {
			break
		}
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}

		pair := types.EvidencePair{
			Type:   types.EvidenceRelated,
			JDText: truncateRunes(strings.TrimSpace(asString(m["jdText"])), MaxEvidenceQuoteRunes),
			CVText: truncateRunes(strings.TrimSpace(asString(m["cvText"])), MaxEvidenceQuoteRunes),
			Note:   truncateRunes(strings.TrimSpace(asString(m["note"])), MaxEvidenceNoteRunes),
		}
		if t, _ := m["type"].(string); t == types.EvidenceExact {
			pair.Type = types.EvidenceExact
		}
		if pair.JDText == "" && pair.CVText == "" {
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// normalizeRelated accepts {name, reason} objects or bare strings
func normalizeRelated(raw any) []types.RelatedItem {
	items, _ := raw.([]any)
	related := make([]types.RelatedItem, 0, min(len(items), MaxRelated))

	for _, item := range items {
		if len(related) == MaxRelated {
			break
		}

		var r types.RelatedItem
		switch v := item.(type) {
		case string:
			r.Name = strings.TrimSpace(v)
		case map[string]any:
			r.Name = strings.TrimSpace(asString(v["name"]))
			r.Reason = strings.TrimSpace(asString(v["reason"]))
		default:
			continue
		}
		if r.Name == "" && r.Reason == "" {
			continue
		}
		related = append(related, r)
	}
	return related
}

// stringList keeps non-empty string elements, up to limit
func stringList(raw any, limit int) []string {
	items, _ := raw.([]any)
	out := make([]string, 0, min(len(items), limit))

	for _, item := range items {
		if len(out) == limit {
			break
		}
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// asString renders scalar JSON values as text; objects, arrays and null become ""
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}

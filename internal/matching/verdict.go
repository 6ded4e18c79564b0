package matching

import "github.com/jonathan/jdfit/internal/types"

// Eligibility override texts
const (
	HeadlineBothIneligible       = "Not a fit - visa and experience requirements are not met."
	HeadlineVisaIneligible       = "Not a fit - visa/work-rights requirement is not met."
	HeadlineExperienceIneligible = "Not a fit - experience requirement is not met."
	VerdictIneligible            = "Hard eligibility requirements block progression for this JD."
)

var tierHeadlines = map[types.FitLabel]string{
	types.FitStrongMatch:   "Strong match for this role.",
	types.FitGoodMatch:     "Good match for this role.",
	types.FitPossibleMatch: "Possible match if requirements are flexible.",
	types.FitNotAFit:       "Not a fit for this role right now.",
}

var tierVerdicts = map[types.FitLabel]string{
	types.FitStrongMatch:   "Core requirements are strongly aligned with clear delivery evidence.",
	types.FitGoodMatch:     "Core requirements are mostly aligned with clear delivery evidence.",
	types.FitPossibleMatch: "Several requirements align, but some need stronger evidence or targeted upskilling.",
	types.FitNotAFit:       "There are material gaps that require targeted upskilling and stronger evidence.",
}

// PatchFitTexts returns the final headline and verdict.
// Hard eligibility failures override model text; otherwise empty texts are filled from the score tier.
func PatchFitTexts(a *types.Assessment, overall int) (headline, verdict string) {
	visaIssue := a.Eligibility.Visa.Is(types.StatusIssue)
	expIssue := a.Eligibility.Experience.Is(types.StatusIssue)

	switch {
	case visaIssue && expIssue:
		return HeadlineBothIneligible, VerdictIneligible
	case visaIssue:
		return HeadlineVisaIneligible, VerdictIneligible
	case expIssue:
		return HeadlineExperienceIneligible, VerdictIneligible
	}

	tier := tierLabel(overall)
	headline, verdict = a.FitHeadline, a.FitVerdict
	if headline == "" {
		headline = tierHeadlines[tier]
	}
	if verdict == "" {
		verdict = tierVerdicts[tier]
	}
	return headline, verdict
}

package fetch

import (
	"net/url"
	"strings"
)

// Board is a job board whose markup we know
type Board string

// Known boards
const (
	BoardGreenhouse Board = "greenhouse"
	BoardLever      Board = "lever"
	BoardWorkday    Board = "workday"
	BoardSeek       Board = "seek"
	BoardLinkedIn   Board = "linkedin"
	BoardUnknown    Board = "unknown"
)

// Selectors lists where the description lives on a page and what to strip first
type Selectors struct {
	Content []string
	Noise   []string
}

var boardHosts = []struct {
	board    Board
	suffixes []string
}{
	{BoardGreenhouse, []string{"greenhouse.io"}},
	{BoardLever, []string{"lever.co"}},
	{BoardWorkday, []string{"workday.com", "myworkdayjobs.com"}},
	{BoardSeek, []string{"seek.com.au", "seek.co.nz"}},
	{BoardLinkedIn, []string{"linkedin.com"}},
}

// Application forms, EEO blurbs and share widgets show up on most boards
var genericNoise = []string{
	"form",
	".application-form",
	".apply-button-container",
	".eeo-statement",
	".voluntary-disclosure",
	".social-share",
	".share-buttons",
	".cookie-consent",
}

var genericContent = []string{
	".job-description",
	"#job-description",
	".job-details",
	".posting-content",
	"[data-testid='job-description']",
	"main",
	"article",
	"#content",
}

var boardSelectors = map[Board]Selectors{
	BoardGreenhouse: {
		Content: []string{".job__description", ".job-post-container", "#content"},
		Noise:   []string{".application--wrapper", "#usa_self_id_section", ".post-apply"},
	},
	BoardLever: {
		Content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description"},
		Noise:   []string{".apply-section", ".posting-apply"},
	},
	BoardWorkday: {
		Content: []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"},
		Noise:   []string{"[data-automation-id='applyButton']"},
	},
	BoardSeek: {
		Content: []string{"[data-automation='jobAdDetails']", "[data-automation='jobDescription']"},
		Noise:   []string{"[data-automation='job-detail-apply']"},
	},
	BoardLinkedIn: {
		Content: []string{".description__text", ".show-more-less-html__markup"},
		Noise:   []string{".sign-in-modal", ".join-form"},
	},
}

// DetectBoard identifies the job board from a URL's host
func DetectBoard(rawURL string) Board {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return BoardUnknown
	}
	host := strings.ToLower(parsed.Hostname())

	for _, entry := range boardHosts {
		for _, suffix := range entry.suffixes {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return entry.board
			}
		}
	}
	return BoardUnknown
}

// Selectors returns the board's selectors followed by the generic ones
func (b Board) Selectors() Selectors {
	specific := boardSelectors[b]
	return Selectors{
		Content: append(append([]string{}, specific.Content...), genericContent...),
		Noise:   append(append([]string{}, genericNoise...), specific.Noise...),
	}
}

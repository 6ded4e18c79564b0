// Package fetch downloads job postings and reduces their HTML to the description text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/jdfit/internal/logger"
)

// Defaults for a Fetcher
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible; jdfit/1.0)"
	DefaultMaxBytes  = 5 << 20
)

// Page is a fetched HTML document
type Page struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Fetcher retrieves job posting pages
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithHTTPClient replaces the default client
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBytes caps how much of a response body is read
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// New creates a Fetcher
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Get retrieves the page at rawURL. Non-200 responses return the page along with an *Error.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (*Page, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}

	page := &Page{
		URL:         rawURL,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return page, &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode), StatusCode: resp.StatusCode}
	}
	return page, nil
}

// JobText fetches a job posting and returns its description text.
// Selectors are picked from the job board the URL points at.
func (f *Fetcher) JobText(ctx context.Context, rawURL string) (string, error) {
	page, err := f.Get(ctx, rawURL)
	if err != nil {
		return "", err
	}

	board := DetectBoard(rawURL)
	text, err := ExtractMainText(page.HTML, board.Selectors())
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to extract text", Cause: err}
	}

	logger.Ctx(ctx).Debug().
		Str("url", rawURL).
		Str("board", string(board)).
		Int("html_bytes", len(page.HTML)).
		Int("text_chars", len(text)).
		Msg("Fetched job posting")

	if text == "" {
		return "", &Error{URL: rawURL, Message: "no text content found"}
	}
	return text, nil
}

// commonNoise is removed from every page before extraction
const commonNoise = "nav, footer, header, script, style, noscript, svg, iframe, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

// ExtractMainText parses html, strips noise and returns the text of the first
// content selector that matches, falling back to body.
func ExtractMainText(html string, sel Selectors) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(commonNoise).Remove()
	if len(sel.Noise) > 0 {
		doc.Find(strings.Join(sel.Noise, ", ")).Remove()
	}

	content := doc.Find("body")
	for _, s := range sel.Content {
		if found := doc.Find(s); found.Length() > 0 {
			content = found.First()
			break
		}
	}

	return collapseLines(content.Text()), nil
}

// collapseLines trims each line and drops the empty ones
func collapseLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

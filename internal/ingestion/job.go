package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// JobFetcher retrieves the description text of an online job posting
type JobFetcher interface {
	JobText(ctx context.Context, url string) (string, error)
}

// Job is an ingested job description
type Job struct {
	Source string `json:"source"`
	Text   string `json:"text"`
	Hash   string `json:"hash"` // SHA256 hex of Text
}

// IsURL reports whether source should be fetched rather than read from disk
func IsURL(source string) bool {
	s := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// IngestJob loads a job description from a URL or a text file and cleans it.
// fetcher may be nil when source is a file.
func IngestJob(ctx context.Context, source string, fetcher JobFetcher) (*Job, error) {
	var raw string
	if IsURL(source) {
		if fetcher == nil {
			return nil, fmt.Errorf("no fetcher configured for %s", source)
		}
		text, err := fetcher.JobText(ctx, strings.TrimSpace(source))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch job posting: %w", err)
		}
		raw = text
	} else {
		data, err := readFile(source)
		if err != nil {
			return nil, err
		}
		raw = string(data)
	}

	text := CleanText(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyContent, source)
	}
	return &Job{Source: source, Text: text, Hash: hashText(text)}, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

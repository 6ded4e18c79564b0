// Package ingestion turns job postings and résumés into the plain text the matcher consumes.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// Bullet glyphs that PDF and DOCX exports leave behind
var bulletPrefixes = []string{"• ", "· ", "▪ ", "◦ ", "‣ ", "– "}

// CleanText normalizes line endings, collapses runs of spaces and blank lines,
// and rewrites bullet glyphs to "- ". Headings and list markers are kept.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	// Keep list nesting readable: leading indentation is normalized, not dropped
	indent := ""
	if isBulletLine(trimmed) && len(line) > len(strings.TrimLeft(line, " \t")) {
		indent = "  "
	}

	for _, glyph := range bulletPrefixes {
		if strings.HasPrefix(trimmed, glyph) {
			trimmed = "- " + strings.TrimPrefix(trimmed, glyph)
			break
		}
	}

	return indent + spaceRun.ReplaceAllString(trimmed, " ")
}

func isBulletLine(line string) bool {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return true
	}
	for _, glyph := range bulletPrefixes {
		if strings.HasPrefix(line, glyph) {
			return true
		}
	}
	return false
}

// TruncateRunes cuts s to at most limit characters
func TruncateRunes(s string, limit int) string {
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

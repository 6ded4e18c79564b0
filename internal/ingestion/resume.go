package ingestion

import (
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxResumeChars caps the résumé text sent as cvText
const MaxResumeChars = 40000

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:tab\s*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]*>`)
)

// LoadResume reads a résumé by extension (.txt, .md, .pdf, .docx), cleans it
// and truncates it to MaxResumeChars.
func LoadResume(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return "", fmt.Errorf("failed to stat file: %w", err)
	}

	var (
		raw string
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", ".md", ".text":
		var data []byte
		data, err = readFile(path)
		raw = string(data)
	case ".pdf":
		raw, err = pdfText(path)
	case ".docx":
		raw, err = docxText(path)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", err
	}

	text := CleanText(raw)
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyContent, path)
	}
	return TruncateRunes(text, MaxResumeChars), nil
}

func pdfText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open PDF: %w", ErrUnreadableDocument, err)
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

func docxText(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open DOCX: %w", ErrUnreadableDocument, err)
	}
	defer func() { _ = doc.Close() }()

	return DocxXMLToText(doc.Editable().GetContent()), nil
}

// DocxXMLToText strips WordprocessingML markup, keeping paragraph breaks
func DocxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllStringFunc(content, func(tag string) string {
		if strings.HasPrefix(tag, "<w:tab") {
			return " "
		}
		return "\n"
	})
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

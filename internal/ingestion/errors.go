package ingestion

import "errors"

var (
	// ErrFileNotFound is returned when an input path does not exist
	ErrFileNotFound = errors.New("file not found")
	// ErrUnsupportedFormat is returned for résumé files that are not txt, md, pdf or docx
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrUnreadableDocument is returned when a PDF or DOCX cannot be parsed
	ErrUnreadableDocument = errors.New("unreadable document")
	// ErrEmptyContent is returned when an input yields no text
	ErrEmptyContent = errors.New("no text content")
)

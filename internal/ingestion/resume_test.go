package ingestion

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Go &amp; PostgreSQL</w:t><w:tab/><w:t>2021-2024</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>• Built REST APIs</w:t></w:r></w:p>` +
	`</w:body></w:document>`

// writeDocx builds a minimal DOCX package in dir
func writeDocx(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "cv.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	files := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func TestLoadResume_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane   Doe\n\n\n\nGo developer\n"), 0o644))

	text, err := LoadResume(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nGo developer", text)
}

func TestLoadResume_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.md")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("a", MaxResumeChars+500)), 0o644))

	text, err := LoadResume(path)
	require.NoError(t, err)
	assert.Len(t, text, MaxResumeChars)
}

func TestLoadResume_Docx(t *testing.T) {
	path := writeDocx(t, t.TempDir())

	text, err := LoadResume(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Go & PostgreSQL 2021-2024")
	assert.Contains(t, text, "- Built REST APIs")
	assert.NotContains(t, text, "<w:")
}

func TestLoadResume_Errors(t *testing.T) {
	dir := t.TempDir()

	corruptPDF := filepath.Join(dir, "cv.pdf")
	require.NoError(t, os.WriteFile(corruptPDF, []byte("not a pdf"), 0o644))
	corruptDocx := filepath.Join(dir, "cv.docx")
	require.NoError(t, os.WriteFile(corruptDocx, []byte("not a zip"), 0o644))
	rtf := filepath.Join(dir, "cv.rtf")
	require.NoError(t, os.WriteFile(rtf, []byte("{\\rtf1}"), 0o644))
	blank := filepath.Join(dir, "blank.txt")
	require.NoError(t, os.WriteFile(blank, []byte("\n \n"), 0o644))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "missing", path: filepath.Join(dir, "missing.pdf"), wantErr: ErrFileNotFound},
		{name: "unsupported extension", path: rtf, wantErr: ErrUnsupportedFormat},
		{name: "corrupt pdf", path: corruptPDF, wantErr: ErrUnreadableDocument},
		{name: "corrupt docx", path: corruptDocx, wantErr: ErrUnreadableDocument},
		{name: "blank text", path: blank, wantErr: ErrEmptyContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadResume(tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDocxXMLToText(t *testing.T) {
	got := DocxXMLToText(`<w:p><w:r><w:t>A</w:t></w:r></w:p><w:p><w:t>B&lt;C</w:t><w:br/><w:t>D</w:t></w:p>`)
	assert.Equal(t, "A\nB<C\nD\n", got)
}

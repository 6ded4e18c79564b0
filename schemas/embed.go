// Package schemas holds the JSON Schema contracts for model output and the
// assessment response. The files are embedded so the server needs no paths at runtime.
package schemas

import "embed"

// Schema file names
const (
	ModelOutputFile = "model_output.schema.json"
	AssessmentFile  = "assessment.schema.json"
)

//go:embed *.schema.json
var Files embed.FS

// Read returns the raw schema document for name
func Read(name string) (string, error) {
	data, err := Files.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/jdfit/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	schemas.ModelOutputFile,
	schemas.AssessmentFile,
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := schemas.Read(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var v any
			assert.NoError(t, json.Unmarshal([]byte(data), &v), "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := schemas.Read(schemaFile)
			require.NoError(t, err)

			var schemaObj map[string]any
			require.NoError(t, json.Unmarshal([]byte(data), &schemaObj))

			assert.Equal(t, "object", schemaObj["type"])
			assert.Contains(t, schemaObj, "$schema")
			assert.Contains(t, schemaObj, "properties")
			assert.Contains(t, schemaObj, "required")
		})
	}
}

func TestAssessmentSchema_RequiresEveryResponseField(t *testing.T) {
	data, err := schemas.Read(schemas.AssessmentFile)
	require.NoError(t, err)

	var schemaObj struct {
		Required   []string       `json:"required"`
		Properties map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &schemaObj))

	for _, field := range schemaObj.Required {
		assert.Contains(t, schemaObj.Properties, field, "required field %s has no property definition", field)
	}
	assert.Len(t, schemaObj.Required, len(schemaObj.Properties))
}

func TestRead_Missing(t *testing.T) {
	_, err := schemas.Read("nope.schema.json")
	assert.Error(t, err)
}

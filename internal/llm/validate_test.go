package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"level": map[string]any{"type": "string", "enum": []any{"beginner", "advanced"}},
				"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"all fields", `{"name":"scope","age":2,"level":"beginner","tags":["js"]}`, true},
		{"optional fields omitted", `{"name":"scope","age":2}`, true},
		{"missing required", `{"name":"scope"}`, false},
		{"wrong type", `{"name":"scope","age":"two"}`, false},
		{"enum violation", `{"name":"scope","age":2,"level":"expert"}`, false},
		{"wrong item type", `{"name":"scope","age":2,"tags":[1]}`, false},
		{"malformed JSON", `{name}`, false},
		{"empty body", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if tt.valid {
				require.NoError(t, err)
				return
			}
			var inv *InvalidResponseError
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, tt.raw, string(inv.Content))
		})
	}
}

func TestValidateResponse_NilSchemaAcceptsAnything(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`not even json`)))
}

func TestCompileSchema_Cached(t *testing.T) {
	a, err := compileSchema(testSchema())
	require.NoError(t, err)
	b, err := compileSchema(testSchema())
	require.NoError(t, err)
	assert.Same(t, a, b)
}

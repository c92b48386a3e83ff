package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string", "description": "prompt"},
			"level": map[string]any{
				"type": "string",
				"enum": []any{"beginner", "intermediate", "advanced"},
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"properties":           map[string]any{"is_correct": map[string]any{"type": "boolean"}},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"text", "options"},
		"additionalProperties": false,
	})

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"text", "options"}, s.Required)
	require.Len(t, s.Properties, 3)
	assert.Equal(t, "prompt", s.Properties["text"].Description)
	assert.Equal(t, []string{"beginner", "intermediate", "advanced"}, s.Properties["level"].Enum)

	opts := s.Properties["options"]
	assert.Equal(t, genai.TypeArray, opts.Type)
	require.NotNil(t, opts.Items)
	assert.Equal(t, genai.TypeBoolean, opts.Items.Properties["is_correct"].Type)
}

func TestGeminiSchema_UnknownTypeFallsBackToString(t *testing.T) {
	assert.Equal(t, genai.TypeString, geminiSchema(map[string]any{"type": "null"}).Type)
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini", "gemini-flash"))
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini", "gemini-2.0-flash"))
	assert.Equal(t, "gemini-flash", resolveModel("openrouter", "gemini-flash"))
}

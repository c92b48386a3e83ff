package questiongen

import "github.com/abhisek/skillpath/internal/llm"

// QuestionBatchSchema defines the JSON shape of a generated question batch.
// Option multiplicity is described here but enforced by quiz.NewDraft.
var QuestionBatchSchema = &llm.Schema{
	Name:        "quiz-question-batch",
	Description: "A batch of multiple-choice quiz questions for one topic and difficulty",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The generated questions",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The question shown to the learner",
						},
						"options": map[string]any{
							"type":        "array",
							"description": "Exactly 4 answer choices, exactly one of them correct",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"text": map[string]any{
										"type":        "string",
										"description": "Answer choice text",
									},
									"is_correct": map[string]any{
										"type":        "boolean",
										"description": "True for the single correct choice",
									},
								},
								"required":             []any{"text", "is_correct"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"text", "options"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

package questiongen

import "github.com/algority/algority/internal/llm"

// QuestionSchema defines the JSON schema for LLM question generation
// responses.
var QuestionSchema = &llm.Schema{
	Name:        "coach-question",
	Description: "A single multiple-choice coaching question with explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt": map[string]any{
				"type":        "string",
				"description": "The question shown to the learner, in plain ASCII text",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"enum":        []any{"a", "b", "c", "d"},
							"description": "Option identifier",
						},
						"text": map[string]any{
							"type":        "string",
							"description": "Option text",
						},
					},
					"required":             []any{"id", "text"},
					"additionalProperties": false,
				},
				"description": "Exactly 4 options with ids a through d",
			},
			"correct_option_ids": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "IDs of the correct options. At least one, never all four.",
			},
			"difficulty": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     5,
				"description": "Self-assessed difficulty from 1 (easy) to 5 (hard)",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Why the correct options are correct and the others are not",
			},
		},
		"required":             []any{"prompt", "options", "correct_option_ids", "difficulty", "explanation"},
		"additionalProperties": false,
	},
}

// ProbeSchema defines the JSON schema for LLM probe generation
// responses.
var ProbeSchema = &llm.Schema{
	Name:        "probe-question",
	Description: "A free-form probing question asking the learner to explain their reasoning",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt": map[string]any{
				"type":        "string",
				"description": "The open-ended question shown to the learner",
			},
		},
		"required":             []any{"prompt"},
		"additionalProperties": false,
	},
}

package evaluation

import "github.com/algority/algority/internal/llm"

// ProbeEvalSchema defines the JSON schema for probe-response grading.
var ProbeEvalSchema = &llm.Schema{
	Name:        "probe-evaluation",
	Description: "Assessment of a learner's free-form explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"level": map[string]any{
				"type":        "string",
				"enum":        []any{"strong", "partial", "unclear", "incorrect"},
				"description": "How well the explanation demonstrates understanding",
			},
			"commentary": map[string]any{
				"type":        "string",
				"description": "Short feedback on the explanation, addressed to the learner",
			},
		},
		"required":             []any{"level", "commentary"},
		"additionalProperties": false,
	},
}

// ExplanationSchema defines the JSON schema for answer feedback.
var ExplanationSchema = &llm.Schema{
	Name:        "answer-explanation",
	Description: "Feedback on a graded multiple-choice answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "Why the correct options are correct; for a wrong answer, where the chosen options go astray",
			},
		},
		"required":             []any{"explanation"},
		"additionalProperties": false,
	},
}

// ResponseSchema defines the JSON schema for free-form coach responses.
var ResponseSchema = &llm.Schema{
	Name:        "coach-response",
	Description: "A coach's reply to a learner's question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"response": map[string]any{
				"type":        "string",
				"description": "The reply shown to the learner",
			},
		},
		"required":             []any{"response"},
		"additionalProperties": false,
	},
}

// SummarySchema defines the JSON schema for phase-completion remarks.
var SummarySchema = &llm.Schema{
	Name:        "phase-summary",
	Description: "A short coach remark wrapping up a completed phase",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Two or three sentences recapping the phase and framing the next one",
			},
		},
		"required":             []any{"summary"},
		"additionalProperties": false,
	},
}

package questiongen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated question. They execute in order; the first failure
	// stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorPrompts is the maximum number of prior prompts to
	// include in the prompt for deduplication.
	MaxPriorPrompts int

	// MaxRecentMistakes is the maximum number of recent mistakes to
	// include in the prompt for context.
	MaxRecentMistakes int
}

// DefaultConfig returns a Config with the standard validator chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
		},
		MaxTokens:         768,
		Temperature:       0.7,
		MaxPriorPrompts:   10,
		MaxRecentMistakes: 5,
	}
}

package evaluation

// Config holds configuration for the LLM evaluation service.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults. Evaluation wants low
// temperature: we are grading and summarizing, not brainstorming.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.3,
	}
}

package questiongen

import "context"

// Generator produces coaching questions using an LLM provider.
type Generator interface {
	// Question produces a single multiple-choice question for the given
	// input context. All configured validators are run before returning.
	Question(ctx context.Context, input Input) (*Question, error)

	// Probe produces a free-form probing question for the given input
	// context.
	Probe(ctx context.Context, input Input) (*Probe, error)
}

package questiongen

import "fmt"

// optionCount is the required number of options per question.
const optionCount = 4

// OptionsValidator checks that the option set is well-formed: exactly
// four options with unique IDs, and correct IDs referencing them.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *Question, _ Input) *ValidationError {
	if len(q.Options) != optionCount {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d options, got %d", optionCount, len(q.Options)),
			Retryable: true,
		}
	}

	ids := make(map[string]bool, len(q.Options))
	texts := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt.ID == "" || opt.Text == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "option with empty id or text",
				Retryable: true,
			}
		}
		if ids[opt.ID] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate option id %q", opt.ID),
				Retryable: true,
			}
		}
		if texts[opt.Text] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "duplicate option text",
				Retryable: true,
			}
		}
		ids[opt.ID] = true
		texts[opt.Text] = true
	}

	if len(q.CorrectOptionIDs) == 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "no correct option ids",
			Retryable: true,
		}
	}
	if len(q.CorrectOptionIDs) == len(q.Options) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "every option marked correct",
			Retryable: true,
		}
	}
	seen := make(map[string]bool, len(q.CorrectOptionIDs))
	for _, id := range q.CorrectOptionIDs {
		if !ids[id] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("correct option id %q not in options", id),
				Retryable: true,
			}
		}
		if seen[id] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("correct option id %q listed twice", id),
				Retryable: true,
			}
		}
		seen[id] = true
	}

	return nil
}

package questiongen

// StructuralValidator checks that required fields are present and
// within length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ Input) *ValidationError {
	if q.Prompt == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "prompt is empty",
			Retryable: true,
		}
	}
	if len(q.Prompt) > 800 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "prompt exceeds 800 characters",
			Retryable: true,
		}
	}
	if q.Explanation == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation is empty",
			Retryable: true,
		}
	}
	if len(q.Explanation) > 1500 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation exceeds 1500 characters",
			Retryable: true,
		}
	}
	if q.Difficulty < 1 || q.Difficulty > 5 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "difficulty must be between 1 and 5",
			Retryable: true,
		}
	}
	return nil
}

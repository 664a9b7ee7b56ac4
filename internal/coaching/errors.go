package coaching

import "fmt"

// GenerationFailure reports that a model call failed or timed out while
// serving an interactive operation. The session stays in its last valid
// state; the caller shows a retry affordance.
type GenerationFailure struct {
	Op  string
	Err error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("%s: generation failed: %v", e.Op, e.Err)
}

func (e *GenerationFailure) Unwrap() error {
	return e.Err
}

// ErrSessionCompleted is returned for mutations on a finished session.
type ErrSessionCompleted struct {
	SessionID string
}

func (e *ErrSessionCompleted) Error() string {
	return fmt.Sprintf("session %s is completed", e.SessionID)
}

package phase

import "fmt"

// InvalidStateError reports an illegal transition attempt. The machine
// never mutates state before returning it, so callers can recover by
// re-reading current state.
type InvalidStateError struct {
	PhaseID string
	Reason  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid phase state for %q: %s", e.PhaseID, e.Reason)
}

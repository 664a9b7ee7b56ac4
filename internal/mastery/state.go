package mastery

// State describes how far along a learner is with a pattern.
type State string

const (
	StateNew        State = "new"
	StateLearning   State = "learning"
	StateProficient State = "proficient"
	StateMastered   State = "mastered"
)

// Label returns the display name for a state.
func (s State) Label() string {
	switch s {
	case StateNew:
		return "New"
	case StateLearning:
		return "Learning"
	case StateProficient:
		return "Proficient"
	case StateMastered:
		return "Mastered"
	default:
		return string(s)
	}
}

// Thresholds for state transitions. Accuracy is correct answers over
// questions seen across all sessions touching the pattern.
const (
	proficientSessions = 2
	proficientAccuracy = 0.7
	masteredSessions   = 4
	masteredAccuracy   = 0.85
)

package phase

// Status is a phase's position in the coaching flow.
type Status string

const (
	StatusLocked    Status = "locked"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Phase is one ordered stage of the coaching dialogue. A phase holds a
// fixed number of questions; it completes only when all of them have
// been answered and the completion is explicitly committed.
type Phase struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Position           int    `json:"position"`
	Status             Status `json:"status"`
	QuestionsCompleted int    `json:"questions_completed"`
	QuestionsTotal     int    `json:"questions_total"`
}

// DefaultPhases returns the standard reasoning flow for a new session:
// clarify the problem, identify the pattern, reason about complexity,
// then sketch the implementation. The first phase starts active.
func DefaultPhases() []Phase {
	return []Phase{
		{ID: "clarify", Title: "Clarify the Problem", Position: 0, Status: StatusActive, QuestionsTotal: 2},
		{ID: "pattern", Title: "Pattern Recognition", Position: 1, Status: StatusLocked, QuestionsTotal: 3},
		{ID: "complexity", Title: "Complexity Analysis", Position: 2, Status: StatusLocked, QuestionsTotal: 2},
		{ID: "implementation", Title: "Implementation Plan", Position: 3, Status: StatusLocked, QuestionsTotal: 3},
	}
}

// Transition reports a committed active-phase handoff. Next is empty
// when the completed phase was the last one.
type Transition struct {
	Previous string
	Next     string
}

// Final reports whether the transition completed the last phase.
func (t Transition) Final() bool {
	return t.Next == ""
}

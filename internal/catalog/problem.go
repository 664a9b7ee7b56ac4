package catalog

// Difficulty represents a problem's difficulty rating.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Label returns the display label for a difficulty.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// Pattern is a named problem-solving pattern (e.g. two pointers,
// sliding window). Problems and patterns are many-to-many.
type Pattern struct {
	ID          string
	Name        string
	Description string
}

// Problem is a single coding-interview problem in the catalog.
type Problem struct {
	ID          string
	Title       string
	Difficulty  Difficulty
	Description string
	PatternIDs  []string
	Examples    []string
	Constraints []string
}

// CompletionStatus is a problem's state relative to the learner.
// It is derived from session history, never stored on the problem.
type CompletionStatus int

const (
	StatusUntouched CompletionStatus = iota // No session exists
	StatusAttempted                         // An incomplete session exists
	StatusSolved                            // A completed session exists
)

// Icon returns the display icon for a completion status.
func (s CompletionStatus) Icon() string {
	switch s {
	case StatusAttempted:
		return "◐"
	case StatusSolved:
		return "●"
	default:
		return "○"
	}
}

// Label returns the display label for a completion status.
func (s CompletionStatus) Label() string {
	switch s {
	case StatusAttempted:
		return "Attempted"
	case StatusSolved:
		return "Solved"
	default:
		return "Untouched"
	}
}

package phase

import "fmt"

// Machine owns an ordered phase list and is the single source of truth
// for which phase is active. Only AdvanceQuestion and CompletePhase
// mutate it; every mutation is validated first and applied whole or
// not at all.
type Machine struct {
	phases []Phase
}

// NewMachine builds a machine over an ordered, non-empty phase list.
// The list must have monotonically increasing positions, counters within
// bounds, and at most one active phase with everything before it
// completed and everything after it locked.
func NewMachine(phases []Phase) (*Machine, error) {
	if len(phases) == 0 {
		return nil, fmt.Errorf("phase list is empty")
	}

	activeIdx := -1
	for i, p := range phases {
		if i > 0 && p.Position <= phases[i-1].Position {
			return nil, fmt.Errorf("phase %q: position %d not increasing", p.ID, p.Position)
		}
		if p.QuestionsTotal <= 0 {
			return nil, fmt.Errorf("phase %q: questions_total must be positive", p.ID)
		}
		if p.QuestionsCompleted < 0 || p.QuestionsCompleted > p.QuestionsTotal {
			return nil, fmt.Errorf("phase %q: questions_completed %d out of range", p.ID, p.QuestionsCompleted)
		}
		switch p.Status {
		case StatusActive:
			if activeIdx != -1 {
				return nil, fmt.Errorf("phases %q and %q both active", phases[activeIdx].ID, p.ID)
			}
			activeIdx = i
		case StatusCompleted:
			if activeIdx != -1 {
				return nil, fmt.Errorf("completed phase %q follows the active phase", p.ID)
			}
		case StatusLocked:
			if activeIdx == -1 {
				return nil, fmt.Errorf("locked phase %q precedes the active phase", p.ID)
			}
		default:
			return nil, fmt.Errorf("phase %q: unknown status %q", p.ID, p.Status)
		}
	}

	cloned := make([]Phase, len(phases))
	copy(cloned, phases)
	return &Machine{phases: cloned}, nil
}

// Phases returns a copy of the current phase list.
func (m *Machine) Phases() []Phase {
	out := make([]Phase, len(m.phases))
	copy(out, m.phases)
	return out
}

// Active returns the currently active phase, or false if every phase
// is completed.
func (m *Machine) Active() (Phase, bool) {
	for _, p := range m.phases {
		if p.Status == StatusActive {
			return p, true
		}
	}
	return Phase{}, false
}

// Get returns the phase with the given ID.
func (m *Machine) Get(id string) (Phase, bool) {
	for _, p := range m.phases {
		if p.ID == id {
			return p, true
		}
	}
	return Phase{}, false
}

// AllCompleted reports whether every phase has been committed complete.
func (m *Machine) AllCompleted() bool {
	for _, p := range m.phases {
		if p.Status != StatusCompleted {
			return false
		}
	}
	return true
}

// Completable reports whether the named phase is active with all of its
// questions answered, i.e. CompletePhase would succeed.
func (m *Machine) Completable(id string) bool {
	p, ok := m.Get(id)
	return ok && p.Status == StatusActive && p.QuestionsCompleted == p.QuestionsTotal
}

// AdvanceQuestion increments the completed-question counter for the
// named phase. The phase must be active and the counter must not
// exceed the total.
func (m *Machine) AdvanceQuestion(id string) error {
	idx := m.index(id)
	if idx < 0 {
		return &InvalidStateError{PhaseID: id, Reason: "unknown phase"}
	}
	p := &m.phases[idx]
	if p.Status != StatusActive {
		return &InvalidStateError{PhaseID: id, Reason: fmt.Sprintf("phase is %s, not active", p.Status)}
	}
	if p.QuestionsCompleted >= p.QuestionsTotal {
		return &InvalidStateError{PhaseID: id, Reason: "all questions already completed"}
	}
	p.QuestionsCompleted++
	return nil
}

// CompletePhase commits the named phase as completed and activates the
// next one, returning the transition so the caller can drive downstream
// effects (transition UI, first question of the next phase). Allowed
// only when the phase is active and its question counter is full.
// Completing the last phase returns a final transition, not an error.
func (m *Machine) CompletePhase(id string) (Transition, error) {
	idx := m.index(id)
	if idx < 0 {
		return Transition{}, &InvalidStateError{PhaseID: id, Reason: "unknown phase"}
	}
	p := &m.phases[idx]
	if p.Status != StatusActive {
		return Transition{}, &InvalidStateError{PhaseID: id, Reason: fmt.Sprintf("phase is %s, not active", p.Status)}
	}
	if p.QuestionsCompleted != p.QuestionsTotal {
		return Transition{}, &InvalidStateError{
			PhaseID: id,
			Reason:  fmt.Sprintf("%d of %d questions completed", p.QuestionsCompleted, p.QuestionsTotal),
		}
	}

	p.Status = StatusCompleted
	t := Transition{Previous: id}
	if idx+1 < len(m.phases) {
		m.phases[idx+1].Status = StatusActive
		t.Next = m.phases[idx+1].ID
	}
	return t, nil
}

func (m *Machine) index(id string) int {
	for i := range m.phases {
		if m.phases[i].ID == id {
			return i
		}
	}
	return -1
}

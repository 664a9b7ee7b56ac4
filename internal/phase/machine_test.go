package phase

import (
	"errors"
	"testing"
)

func twoPhases() []Phase {
	return []Phase{
		{ID: "p1", Title: "One", Position: 0, Status: StatusActive, QuestionsTotal: 3},
		{ID: "p2", Title: "Two", Position: 1, Status: StatusLocked, QuestionsTotal: 2},
	}
}

func TestNewMachine_RejectsEmpty(t *testing.T) {
	if _, err := NewMachine(nil); err == nil {
		t.Fatal("expected error for empty phase list")
	}
}

func TestNewMachine_RejectsTwoActive(t *testing.T) {
	phases := twoPhases()
	phases[1].Status = StatusActive
	if _, err := NewMachine(phases); err == nil {
		t.Fatal("expected error for two active phases")
	}
}

func TestNewMachine_RejectsLockedBeforeActive(t *testing.T) {
	phases := []Phase{
		{ID: "p1", Position: 0, Status: StatusLocked, QuestionsTotal: 1},
		{ID: "p2", Position: 1, Status: StatusActive, QuestionsTotal: 1},
	}
	if _, err := NewMachine(phases); err == nil {
		t.Fatal("expected error for locked phase before active")
	}
}

func TestNewMachine_RejectsCounterOverflow(t *testing.T) {
	phases := twoPhases()
	phases[0].QuestionsCompleted = 4
	if _, err := NewMachine(phases); err == nil {
		t.Fatal("expected error for questions_completed > total")
	}
}

func TestAdvanceQuestion(t *testing.T) {
	m, err := NewMachine(twoPhases())
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	if err := m.AdvanceQuestion("p1"); err != nil {
		t.Fatalf("AdvanceQuestion: %v", err)
	}
	p, _ := m.Get("p1")
	if p.QuestionsCompleted != 1 {
		t.Errorf("QuestionsCompleted = %d, want 1", p.QuestionsCompleted)
	}
}

func TestAdvanceQuestion_LockedPhase(t *testing.T) {
	m, _ := NewMachine(twoPhases())

	err := m.AdvanceQuestion("p2")
	var ise *InvalidStateError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
	p, _ := m.Get("p2")
	if p.QuestionsCompleted != 0 {
		t.Error("locked phase counter must not change")
	}
}

func TestAdvanceQuestion_BeyondTotal(t *testing.T) {
	m, _ := NewMachine(twoPhases())
	for i := 0; i < 3; i++ {
		if err := m.AdvanceQuestion("p1"); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	err := m.AdvanceQuestion("p1")
	var ise *InvalidStateError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
	p, _ := m.Get("p1")
	if p.QuestionsCompleted != 3 {
		t.Errorf("counter clamped silently: %d", p.QuestionsCompleted)
	}
}

func TestCompletePhase_FullFlow(t *testing.T) {
	m, _ := NewMachine(twoPhases())
	for i := 0; i < 3; i++ {
		if err := m.AdvanceQuestion("p1"); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}

	tr, err := m.CompletePhase("p1")
	if err != nil {
		t.Fatalf("CompletePhase: %v", err)
	}
	if tr.Previous != "p1" || tr.Next != "p2" {
		t.Errorf("transition = %+v, want {p1 p2}", tr)
	}
	if tr.Final() {
		t.Error("transition to p2 must not be final")
	}

	p1, _ := m.Get("p1")
	p2, _ := m.Get("p2")
	if p1.Status != StatusCompleted {
		t.Errorf("p1 status = %s, want completed", p1.Status)
	}
	if p2.Status != StatusActive {
		t.Errorf("p2 status = %s, want active", p2.Status)
	}
}

func TestCompletePhase_EarlyFails(t *testing.T) {
	m, _ := NewMachine(twoPhases())
	m.AdvanceQuestion("p1")
	m.AdvanceQuestion("p1")

	before := m.Phases()
	_, err := m.CompletePhase("p1")
	var ise *InvalidStateError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}

	after := m.Phases()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("phase %q mutated by failed CompletePhase", before[i].ID)
		}
	}
}

func TestCompletePhase_NonActiveFails(t *testing.T) {
	m, _ := NewMachine(twoPhases())
	_, err := m.CompletePhase("p2")
	var ise *InvalidStateError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestCompletePhase_LastPhase(t *testing.T) {
	phases := []Phase{
		{ID: "only", Position: 0, Status: StatusActive, QuestionsTotal: 1, QuestionsCompleted: 1},
	}
	m, err := NewMachine(phases)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	tr, err := m.CompletePhase("only")
	if err != nil {
		t.Fatalf("CompletePhase on last phase: %v", err)
	}
	if !tr.Final() {
		t.Error("expected final transition")
	}
	if !m.AllCompleted() {
		t.Error("expected AllCompleted after last phase")
	}
	if _, ok := m.Active(); ok {
		t.Error("no phase should be active after the last completes")
	}
}

func TestInvariant_SingleActiveOrdering(t *testing.T) {
	m, _ := NewMachine(DefaultPhases())

	// Drive the whole flow and check the invariant after every mutation.
	check := func() {
		t.Helper()
		phases := m.Phases()
		activeSeen := false
		for _, p := range phases {
			switch p.Status {
			case StatusActive:
				if activeSeen {
					t.Fatal("more than one active phase")
				}
				activeSeen = true
			case StatusCompleted:
				if activeSeen {
					t.Fatal("completed phase after active")
				}
			case StatusLocked:
				if !activeSeen && !m.AllCompleted() {
					t.Fatal("locked phase before active")
				}
			}
		}
	}

	for {
		active, ok := m.Active()
		if !ok {
			break
		}
		for active.QuestionsCompleted < active.QuestionsTotal {
			if err := m.AdvanceQuestion(active.ID); err != nil {
				t.Fatalf("advance: %v", err)
			}
			check()
			active, _ = m.Get(active.ID)
		}
		if !m.Completable(active.ID) {
			t.Fatalf("phase %q should be completable", active.ID)
		}
		if _, err := m.CompletePhase(active.ID); err != nil {
			t.Fatalf("complete: %v", err)
		}
		check()
	}

	if !m.AllCompleted() {
		t.Error("expected all phases completed")
	}
}

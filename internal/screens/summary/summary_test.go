package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/algority/algority/internal/catalog"
	"github.com/algority/algority/internal/coaching"
	"github.com/algority/algority/internal/dialogue"
	"github.com/algority/algority/internal/phase"
	"github.com/algority/algority/internal/router"
)

func solvedSession(t *testing.T) *coaching.Session {
	t.Helper()
	problem, err := catalog.GetProblem("two-sum")
	if err != nil {
		t.Fatalf("GetProblem: %v", err)
	}
	machine, err := phase.NewMachine(phase.DefaultPhases())
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	log := dialogue.NewLog()
	ask := func(phaseID string, correct bool) {
		q, err := log.Append(dialogue.Question{
			PhaseID: phaseID,
			Prompt:  "What does the input look like?",
			Options: []dialogue.Option{
				{ID: "a", Label: "A", Text: "An int slice"},
				{ID: "b", Label: "B", Text: "A string"},
			},
			CorrectOptionIDs: []string{"a"},
		})
		if err != nil {
			t.Fatalf("append question: %v", err)
		}
		if _, err := log.Append(dialogue.UserAnswer{
			QuestionID:        q.ID,
			SelectedOptionIDs: []string{"a"},
		}); err != nil {
			t.Fatalf("append answer: %v", err)
		}
		if _, err := log.Append(dialogue.Feedback{
			QuestionID:  q.ID,
			Correct:     correct,
			Explanation: "Noted.",
		}); err != nil {
			t.Fatalf("append feedback: %v", err)
		}
	}

	ask("clarify", true)
	ask("clarify", false)
	ask("pattern", true)
	if _, err := log.Append(dialogue.CoachRemark{Text: "Nice work today."}); err != nil {
		t.Fatalf("append remark: %v", err)
	}

	return &coaching.Session{
		ID:        "sess-1",
		Problem:   problem,
		Machine:   machine,
		Log:       log,
		Completed: true,
	}
}

func TestFromSession(t *testing.T) {
	sess := solvedSession(t)
	d := FromSession(sess, 3*time.Minute)

	if d.ProblemTitle != "Two Sum" {
		t.Errorf("ProblemTitle = %q, want %q", d.ProblemTitle, "Two Sum")
	}
	if d.Correct != 2 {
		t.Errorf("Correct = %d, want 2", d.Correct)
	}
	if d.FinalRemark != "Nice work today." {
		t.Errorf("FinalRemark = %q", d.FinalRemark)
	}
	if d.Elapsed != 3*time.Minute {
		t.Errorf("Elapsed = %v, want 3m", d.Elapsed)
	}

	var total int
	for _, p := range phase.DefaultPhases() {
		total += p.QuestionsTotal
	}
	if d.Total != total {
		t.Errorf("Total = %d, want %d", d.Total, total)
	}
	if len(d.Phases) != len(phase.DefaultPhases()) {
		t.Fatalf("Phases = %d, want %d", len(d.Phases), len(phase.DefaultPhases()))
	}
	if d.Phases[0].Correct != 1 {
		t.Errorf("clarify correct = %d, want 1", d.Phases[0].Correct)
	}
	if d.Phases[1].Correct != 1 {
		t.Errorf("pattern correct = %d, want 1", d.Phases[1].Correct)
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(nil, Data{})
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestSummaryScreen_View(t *testing.T) {
	sess := solvedSession(t)
	s := New(nil, FromSession(sess, 95*time.Second))

	view := s.View(100, 30)
	if !strings.Contains(view, "Two Sum — solved!") {
		t.Error("expected solved headline in view")
	}
	if !strings.Contains(view, "1:35") {
		t.Error("expected elapsed time in view")
	}
	if !strings.Contains(view, "Nice work today.") {
		t.Error("expected final remark in view")
	}
}

func TestSummaryScreen_ViewWithPatterns(t *testing.T) {
	s := New(nil, Data{ProblemTitle: "Two Sum"})
	scr, _ := s.Update(patternsMsg{Lines: []string{"Hash Map    Practicing    2 sessions, 80% accuracy"}})
	view := scr.View(100, 30)
	if !strings.Contains(view, "Pattern Mastery") {
		t.Error("expected pattern mastery section")
	}
	if !strings.Contains(view, "Hash Map") {
		t.Error("expected pattern line in view")
	}
}

func TestSummaryScreen_DonePops(t *testing.T) {
	s := New(nil, Data{})
	for _, key := range []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: tea.KeyEscape},
	} {
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("expected a command for %v", key)
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("expected PopScreenMsg for %v", key)
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(nil, Data{})
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}

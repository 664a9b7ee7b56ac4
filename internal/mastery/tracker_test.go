package mastery

import (
	"testing"

	"github.com/algority/algority/internal/dialogue"
)

func result(seen, correct int, patterns ...string) SessionResult {
	return SessionResult{PatternIDs: patterns, QuestionsSeen: seen, QuestionsCorrect: correct}
}

func TestState_Thresholds(t *testing.T) {
	tests := []struct {
		name string
		pm   PatternMastery
		want State
	}{
		{"no sessions", PatternMastery{}, StateNew},
		{"one session", PatternMastery{Sessions: 1, QuestionsSeen: 10, QuestionsCorrect: 10}, StateLearning},
		{"two sessions good accuracy", PatternMastery{Sessions: 2, QuestionsSeen: 10, QuestionsCorrect: 8}, StateProficient},
		{"two sessions weak accuracy", PatternMastery{Sessions: 2, QuestionsSeen: 10, QuestionsCorrect: 5}, StateLearning},
		{"four sessions high accuracy", PatternMastery{Sessions: 4, QuestionsSeen: 20, QuestionsCorrect: 18}, StateMastered},
		{"four sessions mid accuracy", PatternMastery{Sessions: 4, QuestionsSeen: 20, QuestionsCorrect: 15}, StateProficient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pm.State(); got != tt.want {
				t.Errorf("State() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	results := []SessionResult{
		result(10, 8, "hash-map", "two-pointers"),
		result(10, 9, "hash-map"),
	}

	agg := Aggregate(results)

	hm := agg["hash-map"]
	if hm == nil {
		t.Fatal("missing hash-map record")
	}
	if hm.Sessions != 2 || hm.QuestionsSeen != 20 || hm.QuestionsCorrect != 17 {
		t.Errorf("hash-map = %+v", hm)
	}
	if hm.State() != StateProficient {
		t.Errorf("hash-map state = %q", hm.State())
	}

	tp := agg["two-pointers"]
	if tp == nil || tp.Sessions != 1 {
		t.Fatalf("two-pointers = %+v", tp)
	}
	if tp.State() != StateLearning {
		t.Errorf("two-pointers state = %q", tp.State())
	}
}

func TestResultFromMessages(t *testing.T) {
	log := dialogue.NewLog()

	q1, err := log.Append(dialogue.Question{
		PhaseID: "pattern",
		Prompt:  "Pick the structure.",
		Options: []dialogue.Option{
			{ID: "a", Label: "A", Text: "Hash map"},
			{ID: "b", Label: "B", Text: "List"},
			{ID: "c", Label: "C", Text: "Stack"},
			{ID: "d", Label: "D", Text: "Queue"},
		},
		CorrectOptionIDs: []string{"a"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := log.Append(dialogue.UserAnswer{QuestionID: q1.ID, SelectedOptionIDs: []string{"a"}}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := log.Append(dialogue.Feedback{QuestionID: q1.ID, Correct: true, Explanation: "yes"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	res := ResultFromMessages([]string{"hash-map"}, log.Messages())
	if res.QuestionsSeen != 1 || res.QuestionsCorrect != 1 {
		t.Errorf("result = %+v", res)
	}

	if pm := (PatternMastery{}); pm.Accuracy() != 0 {
		t.Error("accuracy with no data should be 0")
	}
}

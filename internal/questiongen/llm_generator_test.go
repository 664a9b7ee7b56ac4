package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/algority/algority/internal/catalog"
	"github.com/algority/algority/internal/llm"
	"github.com/algority/algority/internal/phase"
)

func testInput(t *testing.T) Input {
	t.Helper()
	problem, err := catalog.GetProblem("two-sum")
	if err != nil {
		t.Fatalf("GetProblem: %v", err)
	}
	return Input{
		Problem: problem,
		Phase: phase.Phase{
			ID:                 "pattern",
			Title:              "Pattern Discovery",
			Position:           1,
			Status:             phase.StatusActive,
			QuestionsCompleted: 1,
			QuestionsTotal:     3,
		},
		PriorPrompts:   []string{"What does the function return?"},
		RecentMistakes: []string{"picked brute force for a sorted-array problem"},
	}
}

func validQuestionJSON() json.RawMessage {
	return json.RawMessage(`{
		"prompt": "Which data structure gives O(1) complement lookups?",
		"options": [
			{"id": "a", "text": "A hash map"},
			{"id": "b", "text": "A sorted list"},
			{"id": "c", "text": "A stack"},
			{"id": "d", "text": "A queue"}
		],
		"correct_option_ids": ["a"],
		"difficulty": 2,
		"explanation": "A hash map answers membership queries in constant time; the others need a scan or impose ordering."
	}`)
}

func TestQuestion_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuestionJSON()})
	gen := New(mock, DefaultConfig())

	q, err := gen.Question(context.Background(), testInput(t))
	if err != nil {
		t.Fatalf("Question: %v", err)
	}

	if q.PhaseID != "pattern" {
		t.Errorf("PhaseID = %q, want pattern", q.PhaseID)
	}
	if len(q.Options) != 4 {
		t.Fatalf("options = %d, want 4", len(q.Options))
	}
	if q.Options[0].Label != "A" {
		t.Errorf("label = %q, want A", q.Options[0].Label)
	}
	if len(q.CorrectOptionIDs) != 1 || q.CorrectOptionIDs[0] != "a" {
		t.Errorf("correct ids = %v", q.CorrectOptionIDs)
	}

	body := q.Body()
	if body.Kind() != "question" {
		t.Errorf("body kind = %q", body.Kind())
	}
	if body.Prompt != q.Prompt {
		t.Errorf("body prompt mismatch")
	}
}

func TestQuestion_PromptIncludesContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuestionJSON()})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Question(context.Background(), testInput(t)); err != nil {
		t.Fatalf("Question: %v", err)
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d", len(calls))
	}
	msg := calls[0].Messages[0].Content
	for _, want := range []string{"Two Sum", "Pattern Discovery", "2 of 3", "What does the function return?"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestQuestion_ValidationFailure(t *testing.T) {
	// Three options instead of four.
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"prompt": "Pick one",
		"options": [
			{"id": "a", "text": "x"},
			{"id": "b", "text": "y"},
			{"id": "c", "text": "z"}
		],
		"correct_option_ids": ["a"],
		"difficulty": 2,
		"explanation": "because"
	}`)})
	gen := New(mock, DefaultConfig())

	_, err := gen.Question(context.Background(), testInput(t))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Validator != "options" {
		t.Errorf("validator = %q, want options", verr.Validator)
	}
}

func TestQuestion_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	gen := New(mock, DefaultConfig())

	_, err := gen.Question(context.Background(), testInput(t))
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestProbe_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"prompt": "Why does the hash map avoid the nested loop?"}`),
	})
	gen := New(mock, DefaultConfig())

	p, err := gen.Probe(context.Background(), testInput(t))
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if p.PhaseID != "pattern" {
		t.Errorf("PhaseID = %q", p.PhaseID)
	}
	if p.Body().Kind() != "probe-question" {
		t.Errorf("body kind = %q", p.Body().Kind())
	}
}

func TestProbe_EmptyPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"prompt": ""}`),
	})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Probe(context.Background(), testInput(t)); err == nil {
		t.Fatal("expected error for empty probe prompt")
	}
}

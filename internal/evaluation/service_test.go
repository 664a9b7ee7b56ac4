package evaluation

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/algority/algority/internal/dialogue"
	"github.com/algority/algority/internal/llm"
)

func TestEvaluateProbe_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"level": "partial", "commentary": "You named the structure but not why it wins."}`),
	})
	s := NewService(mock, DefaultConfig())

	res, err := s.EvaluateProbe(context.Background(), ProbeInput{
		ProblemTitle: "Two Sum",
		PhaseTitle:   "Pattern Discovery",
		ProbePrompt:  "Why does a hash map avoid the nested loop?",
		ResponseText: "Because you can look things up fast.",
	})
	if err != nil {
		t.Fatalf("EvaluateProbe: %v", err)
	}
	if res.Level != dialogue.UnderstandingPartial {
		t.Errorf("Level = %q, want partial", res.Level)
	}
	if res.Commentary == "" {
		t.Error("empty commentary")
	}

	msg := mock.Calls()[0].Messages[0].Content
	for _, want := range []string{"Two Sum", "Pattern Discovery", "look things up fast"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestEvaluateProbe_UnknownLevel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"level": "superb", "commentary": "great"}`),
	})
	s := NewService(mock, DefaultConfig())

	_, err := s.EvaluateProbe(context.Background(), ProbeInput{})
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestEvaluateProbe_EmptyCommentary(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"level": "strong", "commentary": ""}`),
	})
	s := NewService(mock, DefaultConfig())

	if _, err := s.EvaluateProbe(context.Background(), ProbeInput{}); err == nil {
		t.Fatal("expected error for empty commentary")
	}
}

func TestExplainAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"explanation": "Sorting throws away the original indices the problem asks for."}`),
	})
	s := NewService(mock, DefaultConfig())

	got, err := s.ExplainAnswer(context.Background(), AnswerInput{
		ProblemTitle: "Two Sum",
		PhaseTitle:   "Pattern Discovery",
		Prompt:       "Which approach fits?",
		Options: []dialogue.Option{
			{ID: "a", Label: "A", Text: "Hash map"},
			{ID: "b", Label: "B", Text: "Sort first"},
			{ID: "c", Label: "C", Text: "Brute force"},
			{ID: "d", Label: "D", Text: "Binary search"},
		},
		CorrectOptionIDs:  []string{"a"},
		SelectedOptionIDs: []string{"b"},
		Correct:           false,
	})
	if err != nil {
		t.Fatalf("ExplainAnswer: %v", err)
	}
	if got == "" {
		t.Error("empty explanation")
	}

	msg := mock.Calls()[0].Messages[0].Content
	for _, want := range []string{"Verdict: incorrect", "Correct options: a", "Learner selected: b"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestRespond_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"response": "Think about what you need to find for each element."}`),
	})
	s := NewService(mock, DefaultConfig())

	reply, err := s.Respond(context.Background(), RespondInput{
		ProblemTitle: "Two Sum",
		PhaseTitle:   "Pattern Discovery",
		QuestionText: "Can you just tell me the answer?",
	})
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if reply == "" {
		t.Error("empty reply")
	}
}

func TestRespond_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	s := NewService(mock, DefaultConfig())

	if _, err := s.Respond(context.Background(), RespondInput{}); err == nil {
		t.Fatal("expected provider error to propagate")
	}
}

func TestPhaseSummary_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"summary": "You nailed the pattern. Next we pin down the complexity."}`),
	})
	s := NewService(mock, DefaultConfig())

	summary, err := s.PhaseSummary(context.Background(), SummaryInput{
		ProblemTitle:   "Two Sum",
		CompletedTitle: "Pattern Discovery",
		NextTitle:      "Complexity Analysis",
		CorrectCount:   3,
		QuestionCount:  3,
	})
	if err != nil {
		t.Fatalf("PhaseSummary: %v", err)
	}
	if summary == "" {
		t.Error("empty summary")
	}

	msg := mock.Calls()[0].Messages[0].Content
	if !strings.Contains(msg, "Next phase: Complexity Analysis") {
		t.Errorf("prompt missing next phase:\n%s", msg)
	}
}

func TestPhaseSummary_FinalPhase(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"summary": "That wraps the whole problem."}`),
	})
	s := NewService(mock, DefaultConfig())

	if _, err := s.PhaseSummary(context.Background(), SummaryInput{
		ProblemTitle:   "Two Sum",
		CompletedTitle: "Implementation",
	}); err != nil {
		t.Fatalf("PhaseSummary: %v", err)
	}

	msg := mock.Calls()[0].Messages[0].Content
	if !strings.Contains(msg, "final phase") {
		t.Errorf("prompt missing final-phase marker:\n%s", msg)
	}
}

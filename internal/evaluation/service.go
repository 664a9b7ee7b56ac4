package evaluation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/algority/algority/internal/dialogue"
	"github.com/algority/algority/internal/llm"
)

// Service performs the LLM-backed parts of answer and probe handling:
// grading free-form explanations, answering learner questions, and
// wrapping up completed phases.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an evaluation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// ProbeInput is the input for grading a probe response.
type ProbeInput struct {
	ProblemTitle string
	PhaseTitle   string
	ProbePrompt  string
	ResponseText string
}

// ProbeResult is a graded probe response.
type ProbeResult struct {
	Level      dialogue.UnderstandingLevel
	Commentary string
}

type probeEvalOutput struct {
	Level      string `json:"level"`
	Commentary string `json:"commentary"`
}

// EvaluateProbe grades a learner's free-form explanation.
func (s *Service) EvaluateProbe(ctx context.Context, input ProbeInput) (*ProbeResult, error) {
	ctx = llm.WithPurpose(ctx, "probe-eval")

	userMsg, err := execTemplate(probeEvalUserTemplate, input)
	if err != nil {
		return nil, fmt.Errorf("build probe-eval prompt: %w", err)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: probeEvalSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      ProbeEvalSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("probe evaluation failed: %w", err)
	}

	var raw probeEvalOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse probe-eval response: %w", err)
	}

	level := dialogue.UnderstandingLevel(raw.Level)
	if !dialogue.ValidUnderstanding(level) {
		return nil, fmt.Errorf("probe evaluation returned unknown level %q", raw.Level)
	}
	if raw.Commentary == "" {
		return nil, fmt.Errorf("probe evaluation returned empty commentary")
	}

	return &ProbeResult{Level: level, Commentary: raw.Commentary}, nil
}

// AnswerInput is the input for explaining a graded answer. Correct is
// the verdict from Grade; the model only writes the commentary.
type AnswerInput struct {
	ProblemTitle      string
	PhaseTitle        string
	Prompt            string
	Options           []dialogue.Option
	CorrectOptionIDs  []string
	SelectedOptionIDs []string
	Correct           bool
}

type explainOutput struct {
	Explanation string `json:"explanation"`
}

// ExplainAnswer produces the feedback explanation for a graded answer.
func (s *Service) ExplainAnswer(ctx context.Context, input AnswerInput) (string, error) {
	ctx = llm.WithPurpose(ctx, "answer-eval")

	userMsg, err := execTemplate(explainUserTemplate, input)
	if err != nil {
		return "", fmt.Errorf("build explanation prompt: %w", err)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: explainSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      ExplanationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("answer explanation failed: %w", err)
	}

	var raw explainOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return "", fmt.Errorf("parse explanation response: %w", err)
	}
	if raw.Explanation == "" {
		return "", fmt.Errorf("empty answer explanation")
	}

	return raw.Explanation, nil
}

// RespondInput is the input for answering a learner's question.
type RespondInput struct {
	ProblemTitle string
	PhaseTitle   string
	Transcript   string
	QuestionText string
}

type respondOutput struct {
	Response string `json:"response"`
}

// Respond answers a question the learner asked the coach.
func (s *Service) Respond(ctx context.Context, input RespondInput) (string, error) {
	ctx = llm.WithPurpose(ctx, "coach-response")

	userMsg, err := execTemplate(respondUserTemplate, input)
	if err != nil {
		return "", fmt.Errorf("build response prompt: %w", err)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: respondSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      ResponseSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("coach response failed: %w", err)
	}

	var raw respondOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if raw.Response == "" {
		return "", fmt.Errorf("empty coach response")
	}

	return raw.Response, nil
}

// SummaryInput is the input for a phase-completion remark.
type SummaryInput struct {
	ProblemTitle   string
	CompletedTitle string
	NextTitle      string // empty for the final phase
	CorrectCount   int
	QuestionCount  int
}

type summaryOutput struct {
	Summary string `json:"summary"`
}

// PhaseSummary produces the coach remark shown when a phase completes.
func (s *Service) PhaseSummary(ctx context.Context, input SummaryInput) (string, error) {
	ctx = llm.WithPurpose(ctx, "phase-summary")

	userMsg, err := execTemplate(summaryUserTemplate, input)
	if err != nil {
		return "", fmt.Errorf("build summary prompt: %w", err)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: summarySystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      SummarySchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("phase summary failed: %w", err)
	}

	var raw summaryOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return "", fmt.Errorf("parse summary response: %w", err)
	}
	if raw.Summary == "" {
		return "", fmt.Errorf("empty phase summary")
	}

	return raw.Summary, nil
}

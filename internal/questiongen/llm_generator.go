package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/algority/algority/internal/dialogue"
	"github.com/algority/algority/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Prompt  string `json:"prompt"`
	Options []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"options"`
	CorrectOptionIDs []string `json:"correct_option_ids"`
	Difficulty       int      `json:"difficulty"`
	Explanation      string   `json:"explanation"`
}

// probeOutput is the raw LLM probe response.
type probeOutput struct {
	Prompt string `json:"prompt"`
}

// Question produces a single multiple-choice question for the given
// input context.
func (g *LLMGenerator) Question(ctx context.Context, input Input) (*Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: questionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionMessage(input, g.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	options := make([]dialogue.Option, len(raw.Options))
	for i, o := range raw.Options {
		options[i] = dialogue.Option{
			ID:    o.ID,
			Label: strings.ToUpper(o.ID),
			Text:  o.Text,
		}
	}

	q := &Question{
		PhaseID:          input.Phase.ID,
		Prompt:           raw.Prompt,
		Options:          options,
		CorrectOptionIDs: raw.CorrectOptionIDs,
		Difficulty:       raw.Difficulty,
		Explanation:      raw.Explanation,
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return nil, verr
		}
	}

	return q, nil
}

// Probe produces a free-form probing question for the given input
// context.
func (g *LLMGenerator) Probe(ctx context.Context, input Input) (*Probe, error) {
	ctx = llm.WithPurpose(ctx, "probe-gen")

	req := llm.Request{
		System: probeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildProbeMessage(input, g.config)},
		},
		Schema:      ProbeSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw probeOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if raw.Prompt == "" {
		return nil, fmt.Errorf("empty probe prompt")
	}

	return &Probe{PhaseID: input.Phase.ID, Prompt: raw.Prompt}, nil
}

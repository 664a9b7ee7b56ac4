package questiongen

import (
	"testing"

	"github.com/algority/algority/internal/dialogue"
)

func validQuestion() *Question {
	return &Question{
		PhaseID: "pattern",
		Prompt:  "Which structure gives O(1) lookups?",
		Options: []dialogue.Option{
			{ID: "a", Label: "A", Text: "Hash map"},
			{ID: "b", Label: "B", Text: "Sorted list"},
			{ID: "c", Label: "C", Text: "Stack"},
			{ID: "d", Label: "D", Text: "Queue"},
		},
		CorrectOptionIDs: []string{"a"},
		Difficulty:       2,
		Explanation:      "Hash maps answer membership in constant time.",
	}
}

func TestOptionsValidator_Valid(t *testing.T) {
	v := &OptionsValidator{}
	if err := v.Validate(validQuestion(), Input{}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestOptionsValidator_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Question)
	}{
		{"too few options", func(q *Question) { q.Options = q.Options[:3] }},
		{"duplicate id", func(q *Question) { q.Options[3].ID = "a" }},
		{"duplicate text", func(q *Question) { q.Options[1].Text = "Hash map" }},
		{"empty text", func(q *Question) { q.Options[2].Text = "" }},
		{"no correct ids", func(q *Question) { q.CorrectOptionIDs = nil }},
		{"unknown correct id", func(q *Question) { q.CorrectOptionIDs = []string{"z"} }},
		{"correct id repeated", func(q *Question) { q.CorrectOptionIDs = []string{"a", "a"} }},
		{"all correct", func(q *Question) { q.CorrectOptionIDs = []string{"a", "b", "c", "d"} }},
	}

	v := &OptionsValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			if err := v.Validate(q, Input{}); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestStructuralValidator(t *testing.T) {
	v := &StructuralValidator{}

	if err := v.Validate(validQuestion(), Input{}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Question)
	}{
		{"empty prompt", func(q *Question) { q.Prompt = "" }},
		{"empty explanation", func(q *Question) { q.Explanation = "" }},
		{"difficulty low", func(q *Question) { q.Difficulty = 0 }},
		{"difficulty high", func(q *Question) { q.Difficulty = 6 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := v.Validate(q, Input{})
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !err.Retryable {
				t.Error("structural failures should be retryable")
			}
		})
	}
}

package catalog

import (
	"testing"
)

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("seed catalog invalid: %v", err)
	}
}

func TestGetProblem(t *testing.T) {
	p, err := GetProblem("two-sum")
	if err != nil {
		t.Fatalf("GetProblem: %v", err)
	}
	if p.Title != "Two Sum" {
		t.Errorf("Title = %q, want %q", p.Title, "Two Sum")
	}
	if p.Difficulty != DifficultyEasy {
		t.Errorf("Difficulty = %q, want easy", p.Difficulty)
	}
}

func TestGetProblem_NotFound(t *testing.T) {
	_, err := GetProblem("no-such-problem")
	if err == nil {
		t.Fatal("expected error for unknown problem")
	}
}

func TestPatterns_Resolved(t *testing.T) {
	p, err := GetProblem("longest-substring")
	if err != nil {
		t.Fatalf("GetProblem: %v", err)
	}
	pats := p.Patterns()
	if len(pats) != 2 {
		t.Fatalf("len(Patterns) = %d, want 2", len(pats))
	}
	if pats[0].ID != "sliding-window" {
		t.Errorf("first pattern = %q, want sliding-window", pats[0].ID)
	}
}

func TestByPattern(t *testing.T) {
	probs := ByPattern("binary-search")
	if len(probs) != 2 {
		t.Fatalf("len(ByPattern) = %d, want 2", len(probs))
	}
	for _, p := range probs {
		found := false
		for _, id := range p.PatternIDs {
			if id == "binary-search" {
				found = true
			}
		}
		if !found {
			t.Errorf("problem %q not tagged binary-search", p.ID)
		}
	}
}

func TestAllProblems_DisplayOrder(t *testing.T) {
	probs := AllProblems()
	if len(probs) == 0 {
		t.Fatal("empty catalog")
	}
	lastRank := -1
	for _, p := range probs {
		r := difficultyRank[p.Difficulty]
		if r < lastRank {
			t.Fatalf("problem %q out of difficulty order", p.ID)
		}
		lastRank = r
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		query string
		want  string // expected problem ID in results, "" for none
	}{
		{"two sum", "two-sum"},
		{"SLIDING", "longest-substring"},
		{"median", "median-two-arrays"},
		{"zzz-nothing", ""},
	}

	for _, tt := range tests {
		got := Search(tt.query)
		if tt.want == "" {
			if len(got) != 0 {
				t.Errorf("Search(%q) = %d results, want 0", tt.query, len(got))
			}
			continue
		}
		found := false
		for _, p := range got {
			if p.ID == tt.want {
				found = true
			}
		}
		if !found {
			t.Errorf("Search(%q) missing %q", tt.query, tt.want)
		}
	}
}

func TestSearch_EmptyReturnsAll(t *testing.T) {
	if len(Search("  ")) != len(AllProblems()) {
		t.Error("empty query should return full catalog")
	}
}

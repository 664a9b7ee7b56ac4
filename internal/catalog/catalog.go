package catalog

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// registry holds the problem catalog with precomputed indices.
type registry struct {
	problems      []Problem
	patterns      []Pattern
	problemByID   map[string]*Problem
	patternByID   map[string]*Pattern
	byPattern     map[string][]Problem
	byDifficulty  map[Difficulty][]Problem
	displayOrder  []Problem
}

// reg is the package-level registry singleton, set by init() in seed.go.
var reg *registry

// difficultyRank orders difficulties for display.
var difficultyRank = map[Difficulty]int{
	DifficultyEasy:   0,
	DifficultyMedium: 1,
	DifficultyHard:   2,
}

// buildRegistry constructs the registry and its indices from seed data.
func buildRegistry(problems []Problem, patterns []Pattern) *registry {
	r := &registry{
		problems:     problems,
		patterns:     patterns,
		problemByID:  make(map[string]*Problem, len(problems)),
		patternByID:  make(map[string]*Pattern, len(patterns)),
		byPattern:    make(map[string][]Problem),
		byDifficulty: make(map[Difficulty][]Problem),
	}

	for i := range r.problems {
		r.problemByID[r.problems[i].ID] = &r.problems[i]
	}
	for i := range r.patterns {
		r.patternByID[r.patterns[i].ID] = &r.patterns[i]
	}

	for i := range r.problems {
		p := r.problems[i]
		r.byDifficulty[p.Difficulty] = append(r.byDifficulty[p.Difficulty], p)
		for _, patID := range p.PatternIDs {
			r.byPattern[patID] = append(r.byPattern[patID], p)
		}
	}

	// Display order: difficulty ascending, then title.
	order := make([]Problem, len(problems))
	copy(order, problems)
	sort.Slice(order, func(i, j int) bool {
		di, dj := difficultyRank[order[i].Difficulty], difficultyRank[order[j].Difficulty]
		if di != dj {
			return di < dj
		}
		return order[i].Title < order[j].Title
	})
	r.displayOrder = order

	return r
}

// GetProblem returns a problem by ID, or error if not found.
func GetProblem(id string) (Problem, error) {
	p, ok := reg.problemByID[id]
	if !ok {
		return Problem{}, fmt.Errorf("problem not found: %q", id)
	}
	return *p, nil
}

// GetPattern returns a pattern by ID, or error if not found.
func GetPattern(id string) (Pattern, error) {
	p, ok := reg.patternByID[id]
	if !ok {
		return Pattern{}, fmt.Errorf("pattern not found: %q", id)
	}
	return *p, nil
}

// AllProblems returns every problem in display order.
func AllProblems() []Problem {
	return slices.Clone(reg.displayOrder)
}

// AllPatterns returns every pattern in seed order.
func AllPatterns() []Pattern {
	return slices.Clone(reg.patterns)
}

// ByPattern returns all problems tagged with the given pattern ID.
func ByPattern(patternID string) []Problem {
	return slices.Clone(reg.byPattern[patternID])
}

// ByDifficulty returns all problems with the given difficulty.
func ByDifficulty(d Difficulty) []Problem {
	return slices.Clone(reg.byDifficulty[d])
}

// Patterns resolves a problem's pattern IDs to Pattern values,
// skipping any unknown IDs.
func (p Problem) Patterns() []Pattern {
	result := make([]Pattern, 0, len(p.PatternIDs))
	for _, id := range p.PatternIDs {
		if pat, ok := reg.patternByID[id]; ok {
			result = append(result, *pat)
		}
	}
	return result
}

// Search returns problems whose title or pattern names contain the query,
// case-insensitive, in display order. An empty query matches everything.
func Search(query string) []Problem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return AllProblems()
	}

	var result []Problem
	for _, p := range reg.displayOrder {
		if strings.Contains(strings.ToLower(p.Title), q) {
			result = append(result, p)
			continue
		}
		for _, pat := range p.Patterns() {
			if strings.Contains(strings.ToLower(pat.Name), q) {
				result = append(result, p)
				break
			}
		}
	}
	return result
}

// Validate checks the catalog for structural issues: duplicate IDs and
// dangling pattern references.
func Validate() error {
	seen := make(map[string]bool, len(reg.problems))
	for _, p := range reg.problems {
		if seen[p.ID] {
			return fmt.Errorf("duplicate problem ID: %q", p.ID)
		}
		seen[p.ID] = true
		if len(p.PatternIDs) == 0 {
			return fmt.Errorf("problem %q has no patterns", p.ID)
		}
		for _, patID := range p.PatternIDs {
			if _, ok := reg.patternByID[patID]; !ok {
				return fmt.Errorf("problem %q references unknown pattern %q", p.ID, patID)
			}
		}
	}
	return nil
}

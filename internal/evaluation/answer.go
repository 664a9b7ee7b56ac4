package evaluation

// Grade reports whether the selected option IDs exactly match the
// correct set: every correct option selected and nothing else, order
// ignored. Grading is deterministic; no model call is involved.
func Grade(selected, correct []string) bool {
	if len(selected) != len(correct) {
		return false
	}
	seen := make(map[string]bool, len(selected))
	for _, s := range selected {
		if seen[s] {
			return false
		}
		seen[s] = true
	}
	for _, c := range correct {
		if !seen[c] {
			return false
		}
	}
	return true
}

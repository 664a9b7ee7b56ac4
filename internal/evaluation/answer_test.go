package evaluation

import "testing"

func TestGrade(t *testing.T) {
	correct := []string{"a", "c"}

	tests := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"exact match", []string{"a", "c"}, true},
		{"order ignored", []string{"c", "a"}, true},
		{"missing one", []string{"a"}, false},
		{"extra wrong option", []string{"a", "c", "b"}, false},
		{"all wrong", []string{"b", "d"}, false},
		{"empty selection", nil, false},
		{"duplicate selection", []string{"a", "a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Grade(tt.selected, correct); got != tt.want {
				t.Errorf("Grade(%v) = %t, want %t", tt.selected, got, tt.want)
			}
		})
	}
}

package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/algority/algority/internal/phase"
	"github.com/algority/algority/internal/ui/theme"
)

// PhaseTrack renders the ordered phase list as a single-line breadcrumb
// with per-phase question counters.
type PhaseTrack struct {
	Phases []phase.Phase
}

// NewPhaseTrack creates a phase track.
func NewPhaseTrack(phases []phase.Phase) PhaseTrack {
	return PhaseTrack{Phases: phases}
}

// View renders the track.
func (pt PhaseTrack) View() string {
	parts := make([]string, 0, len(pt.Phases))
	for _, p := range pt.Phases {
		label := fmt.Sprintf("%s %d/%d", p.Title, p.QuestionsCompleted, p.QuestionsTotal)
		switch p.Status {
		case phase.StatusCompleted:
			parts = append(parts, theme.Correct.Render("✓ "+p.Title))
		case phase.StatusActive:
			parts = append(parts, theme.Selected.Render("▸ "+label))
		default:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render("· "+p.Title))
		}
	}
	sep := lipgloss.NewStyle().Foreground(theme.Border).Render("  ─  ")
	return strings.Join(parts, sep)
}

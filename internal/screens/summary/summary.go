package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/algority/algority/internal/catalog"
	"github.com/algority/algority/internal/coaching"
	"github.com/algority/algority/internal/dialogue"
	"github.com/algority/algority/internal/mastery"
	"github.com/algority/algority/internal/router"
	"github.com/algority/algority/internal/screen"
	"github.com/algority/algority/internal/ui/layout"
	"github.com/algority/algority/internal/ui/theme"
)

// PhaseResult is one completed phase's score.
type PhaseResult struct {
	Title   string
	Correct int
	Total   int
}

// Data is everything the summary renders without touching the store.
type Data struct {
	ProblemTitle string
	PatternIDs   []string
	Phases       []PhaseResult
	Correct      int
	Total        int
	Elapsed      time.Duration
	FinalRemark  string
}

// FromSession distills a completed session into summary data.
func FromSession(sess *coaching.Session, elapsed time.Duration) Data {
	d := Data{
		ProblemTitle: sess.Problem.Title,
		PatternIDs:   sess.Problem.PatternIDs,
		Elapsed:      elapsed,
	}

	phaseOf := make(map[string]string)
	correctByPhase := make(map[string]int)
	for _, m := range sess.Log.Messages() {
		switch b := m.Body.(type) {
		case dialogue.Question:
			phaseOf[m.ID] = b.PhaseID
		case dialogue.Feedback:
			if b.Correct {
				correctByPhase[phaseOf[b.QuestionID]]++
			}
		case dialogue.CoachRemark:
			d.FinalRemark = b.Text
		}
	}

	for _, p := range sess.Machine.Phases() {
		correct := correctByPhase[p.ID]
		d.Phases = append(d.Phases, PhaseResult{
			Title:   p.Title,
			Correct: correct,
			Total:   p.QuestionsTotal,
		})
		d.Correct += correct
		d.Total += p.QuestionsTotal
	}
	return d
}

// patternsMsg carries the learner's mastery for the problem's patterns.
type patternsMsg struct {
	Lines []string
	Err   error
}

// SummaryScreen displays the completed-session recap.
type SummaryScreen struct {
	svc      *coaching.Service
	data     Data
	patterns []string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen.
func New(svc *coaching.Service, data Data) *SummaryScreen {
	return &SummaryScreen{svc: svc, data: data}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return s.loadPatterns()
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Back"},
	}
}

// loadPatterns fetches mastery for the problem's patterns, now that the
// finished session counts toward them.
func (s *SummaryScreen) loadPatterns() tea.Cmd {
	svc, patternIDs := s.svc, s.data.PatternIDs
	return func() tea.Msg {
		all, err := svc.PatternSummary(context.Background())
		if err != nil {
			return patternsMsg{Err: err}
		}
		var lines []string
		for _, id := range patternIDs {
			pm, ok := all[id]
			if !ok {
				pm = &mastery.PatternMastery{PatternID: id}
			}
			name := id
			if p, err := catalog.GetPattern(id); err == nil {
				name = p.Name
			}
			lines = append(lines, fmt.Sprintf("%s    %s    %d sessions, %.0f%% accuracy",
				name, pm.State().Label(), pm.Sessions, pm.Accuracy()*100))
		}
		return patternsMsg{Lines: lines}
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case patternsMsg:
		if msg.Err == nil {
			s.patterns = msg.Lines
		}
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	d := s.data

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("%s — solved!", d.ProblemTitle)))
	b.WriteString("\n\n")

	mins := int(d.Elapsed.Minutes())
	secs := int(d.Elapsed.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Time this sitting: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	accuracy := 0.0
	if d.Total > 0 {
		accuracy = float64(d.Correct) / float64(d.Total)
	}
	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		d.Total, d.Correct, accuracy*100)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Phases")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, pr := range d.Phases {
		line := fmt.Sprintf("  %-26s %d/%d correct", pr.Title, pr.Correct, pr.Total)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if pr.Correct == pr.Total {
			style = style.Foreground(theme.Success)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if len(s.patterns) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Pattern Mastery")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, line := range s.patterns {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Secondary).Render("  "+line)))
			b.WriteString("\n")
		}
	}

	if d.FinalRemark != "" {
		b.WriteString("\n")
		remark := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Italic(true).
			Render("“" + d.FinalRemark + "”")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, remark))
		b.WriteString("\n")
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

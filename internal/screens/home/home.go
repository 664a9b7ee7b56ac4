package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/algority/algority/internal/catalog"
	"github.com/algority/algority/internal/coaching"
	"github.com/algority/algority/internal/router"
	"github.com/algority/algority/internal/screen"
	coachscreen "github.com/algority/algority/internal/screens/coach"
	"github.com/algority/algority/internal/ui/layout"
	"github.com/algority/algority/internal/ui/theme"
)

// statusesMsg delivers per-problem completion statuses.
type statusesMsg struct {
	Statuses map[string]catalog.CompletionStatus
	Err      error
}

// HomeScreen is the problem picker shown on launch.
type HomeScreen struct {
	svc      *coaching.Service
	problems []catalog.Problem
	statuses map[string]catalog.CompletionStatus
	cursor   int
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(svc *coaching.Service) *HomeScreen {
	return &HomeScreen{
		svc:      svc,
		problems: catalog.AllProblems(),
		statuses: make(map[string]catalog.CompletionStatus),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStatuses()
}

func (h *HomeScreen) Title() string {
	return "Problems"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Coach me"},
		{Key: "R", Description: "Refresh"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) loadStatuses() tea.Cmd {
	svc := h.svc
	return func() tea.Msg {
		statuses, err := svc.ProblemStatuses(context.Background())
		return statusesMsg{Statuses: statuses, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statusesMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.statuses = msg.Statuses
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if h.cursor > 0 {
				h.cursor--
			}
		case "down", "j":
			if h.cursor < len(h.problems)-1 {
				h.cursor++
			}
		case "r", "R":
			return h, h.loadStatuses()
		case "enter":
			if h.cursor >= 0 && h.cursor < len(h.problems) {
				p := h.problems[h.cursor]
				svc := h.svc
				return h, func() tea.Msg {
					return router.PushScreenMsg{Screen: coachscreen.New(svc, p.ID)}
				}
			}
		}
	}
	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("ALGORITY"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Socratic coaching for coding interviews"))
	b.WriteString("\n\n")

	solved := 0
	for _, p := range h.problems {
		if h.statuses[p.ID] == catalog.StatusSolved {
			solved++
		}
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d of %d problems solved", solved, len(h.problems))))
	b.WriteString("\n\n")

	if h.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(h.errMsg))
		b.WriteString("\n\n")
	}

	var rows []string
	for i, p := range h.problems {
		status := h.statuses[p.ID]

		patterns := make([]string, 0, len(p.PatternIDs))
		for _, pat := range p.Patterns() {
			patterns = append(patterns, pat.Name)
		}

		line := fmt.Sprintf("%s  %-28s %-8s %s",
			status.Icon(), p.Title, p.Difficulty.Label(), strings.Join(patterns, ", "))

		if i == h.cursor {
			rows = append(rows, theme.Selected.Render("▸ "+line))
		} else {
			rows = append(rows, theme.Unselected.Render("  "+line))
		}
	}

	list := strings.Join(rows, "\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, list))

	return b.String()
}

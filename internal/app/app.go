package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/algority/algority/internal/coaching"
	"github.com/algority/algority/internal/router"
	"github.com/algority/algority/internal/screen"
	"github.com/algority/algority/internal/screens/coach"
	"github.com/algority/algority/internal/screens/home"
	"github.com/algority/algority/internal/ui/layout"
)

// Options carries the wired dependencies for the TUI.
type Options struct {
	Service *coaching.Service

	// ProblemID, when set, skips the picker and opens that problem's
	// session directly.
	ProblemID string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the initial screen.
func newAppModel(opts Options) AppModel {
	var initial screen.Screen
	if opts.ProblemID != "" {
		initial = coach.New(opts.Service, opts.ProblemID)
	} else {
		initial = home.New(opts.Service)
	}
	return AppModel{
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, "", m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

package coach

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/algority/algority/internal/dialogue"
	"github.com/algority/algority/internal/ui/components"
	"github.com/algority/algority/internal/ui/theme"
)

func (c *CoachScreen) View(width, height int) string {
	if c.mode == modeLoading {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Opening your session...")
	}
	if c.sess == nil {
		return c.renderError(width)
	}
	if c.mode == modeQuit {
		return renderQuitConfirm(width)
	}

	var b strings.Builder

	// Phase breadcrumb and elapsed clock.
	track := components.NewPhaseTrack(c.sess.Machine.Phases()).View()
	mins := int(c.elapsed.Minutes())
	secs := int(c.elapsed.Seconds()) % 60
	clock := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%d:%02d", mins, secs))

	trackPad := width - lipgloss.Width(track) - lipgloss.Width(clock) - 4
	line := "  " + track
	if trackPad > 0 {
		line += strings.Repeat(" ", trackPad) + clock
	}
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	// Bottom control area height depends on the mode.
	control := c.renderControl(width)
	controlHeight := lipgloss.Height(control)

	transcriptHeight := height - 2 - controlHeight - 1
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}
	b.WriteString(c.renderTranscript(width, transcriptHeight))
	b.WriteString("\n")
	b.WriteString(control)

	return b.String()
}

// renderControl renders the mode-specific interaction block shown below
// the transcript.
func (c *CoachScreen) renderControl(width int) string {
	var b strings.Builder

	if c.errMsg != "" && c.mode != modeError {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + c.errMsg))
		b.WriteString("\n\n")
	}

	switch c.mode {
	case modeQuestion:
		b.WriteString(c.options.View())
		b.WriteString(theme.Hint.Render("  Mark with space, submit with enter"))

	case modeProbe:
		b.WriteString("  " + c.input.View())

	case modeAsk:
		b.WriteString(theme.Hint.Render("  Your question for the coach:"))
		b.WriteString("\n")
		b.WriteString("  " + c.input.View())

	case modeTransition:
		if c.pending != nil {
			from, _ := c.sess.Machine.Get(c.pending.Previous)
			title := fmt.Sprintf("%s complete!", from.Title)
			b.WriteString(theme.Correct.Render("  " + title))
			b.WriteString("\n")
			if c.pending.Next == "" {
				b.WriteString(theme.Body.Render("  That was the last phase. Press enter to wrap up."))
			} else {
				next, _ := c.sess.Machine.Get(c.pending.Next)
				b.WriteString(theme.Body.Render(fmt.Sprintf("  Press enter to move on to %s.", next.Title)))
			}
		}

	case modeBusy:
		b.WriteString(theme.Hint.Render("  " + c.busyLabel))

	case modeError:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + c.errMsg))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  Press r to retry"))
	}

	return b.String()
}

// renderTranscript renders the tail of the dialogue that fits the given
// height.
func (c *CoachScreen) renderTranscript(width, height int) string {
	textWidth := width - 4
	if textWidth < 20 {
		textWidth = 20
	}
	wrap := lipgloss.NewStyle().Width(textWidth)

	var lines []string
	for _, m := range c.sess.Log.Messages() {
		entry := c.renderMessage(m, textWidth)
		if entry == "" {
			continue
		}
		for _, l := range strings.Split(wrap.Render(entry), "\n") {
			lines = append(lines, "  "+l)
		}
		lines = append(lines, "")
	}

	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}

// renderMessage renders one transcript entry. The currently open
// question is rendered by the option list instead, so only its prompt
// appears here.
func (c *CoachScreen) renderMessage(m dialogue.Message, width int) string {
	coach := theme.CoachLabel.Render("Coach")
	you := theme.LearnerLabel.Render("You")
	flag := ""
	if m.Flagged {
		flag = lipgloss.NewStyle().Foreground(theme.Error).Render(" ⚑")
	}

	switch b := m.Body.(type) {
	case dialogue.CoachRemark:
		return coach + flag + ": " + b.Text
	case dialogue.Question:
		return coach + flag + ": " + b.Prompt
	case dialogue.UserAnswer:
		labels := c.optionLabels(b.QuestionID, b.SelectedOptionIDs)
		return you + ": " + strings.Join(labels, ", ")
	case dialogue.Feedback:
		verdict := theme.Correct.Render("Correct!")
		if !b.Correct {
			verdict = theme.Incorrect.Render("Not quite.")
		}
		return coach + flag + ": " + verdict + " " + b.Explanation
	case dialogue.UserQuestion:
		return you + ": " + b.Text
	case dialogue.CoachResponse:
		return coach + flag + ": " + b.Text
	case dialogue.ProbeQuestion:
		return coach + flag + ": " + b.Prompt
	case dialogue.ProbeResponse:
		return you + ": " + b.Text
	case dialogue.ProbeEvaluation:
		level := lipgloss.NewStyle().Foreground(theme.Accent).Render("[" + string(b.Level) + "]")
		return coach + flag + " " + level + ": " + b.Commentary
	default:
		return ""
	}
}

// optionLabels resolves selected option IDs to their display labels.
func (c *CoachScreen) optionLabels(questionID string, ids []string) []string {
	labels := make([]string, 0, len(ids))
	q, ok := c.sess.Log.Get(questionID)
	if !ok {
		return ids
	}
	body, ok := q.Body.(dialogue.Question)
	if !ok {
		return ids
	}
	for _, id := range ids {
		label := id
		for _, opt := range body.Options {
			if opt.ID == id {
				label = opt.Label
				break
			}
		}
		labels = append(labels, label)
	}
	return labels
}

func (c *CoachScreen) renderError(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press r to retry, esc to go back.", c.errMsg))
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this session?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your progress is saved; you can pick up where you left off."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/algority/algority/internal/dialogue"
	"github.com/algority/algority/internal/ui/theme"
)

// OptionList is a multi-select picker for a question's answer options.
// More than one option can be correct, so space toggles and enter
// submits the marked set.
type OptionList struct {
	Options   []dialogue.Option
	Cursor    int
	Marked    map[string]bool
	Submitted bool

	// CorrectIDs drives post-submit highlighting.
	CorrectIDs []string
}

// NewOptionList creates an option list with nothing marked.
func NewOptionList(options []dialogue.Option, correctIDs []string) OptionList {
	return OptionList{
		Options:    options,
		Marked:     make(map[string]bool),
		CorrectIDs: correctIDs,
	}
}

// Init returns nil (no initial command).
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and marking.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Submitted {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case "space":
		if o.Cursor >= 0 && o.Cursor < len(o.Options) {
			id := o.Options[o.Cursor].ID
			o.Marked[id] = !o.Marked[id]
		}
	}

	return o, nil
}

// Selected returns the IDs of the marked options.
func (o OptionList) Selected() []string {
	var ids []string
	for _, opt := range o.Options {
		if o.Marked[opt.ID] {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

// Submit locks the list against further edits.
func (o *OptionList) Submit() {
	o.Submitted = true
}

func (o OptionList) correct(id string) bool {
	for _, c := range o.CorrectIDs {
		if c == id {
			return true
		}
	}
	return false
}

// View renders the option list.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		cursor := "  "
		if i == o.Cursor && !o.Submitted {
			cursor = "▸ "
		}
		mark := "[ ]"
		if o.Marked[opt.ID] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s%s %s) %s", cursor, mark, opt.Label, opt.Text)

		if o.Submitted {
			switch {
			case o.correct(opt.ID):
				s += theme.Correct.Render(line) + "\n"
			case o.Marked[opt.ID]:
				s += theme.Incorrect.Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else {
			if i == o.Cursor {
				s += theme.Selected.Render(line) + "\n"
			} else {
				s += theme.Unselected.Render(line) + "\n"
			}
		}
	}
	return s
}

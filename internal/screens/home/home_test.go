package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/algority/algority/internal/catalog"
	"github.com/algority/algority/internal/router"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestHomeScreen_Title(t *testing.T) {
	h := New(nil)
	if h.Title() != "Problems" {
		t.Errorf("Title = %q, want %q", h.Title(), "Problems")
	}
}

func TestHomeScreen_Navigation(t *testing.T) {
	h := New(nil)

	// Up at the top is a no-op.
	scr, _ := h.Update(keyPress('k'))
	h = scr.(*HomeScreen)
	if h.cursor != 0 {
		t.Errorf("cursor = %d, want 0", h.cursor)
	}

	scr, _ = h.Update(keyPress('j'))
	h = scr.(*HomeScreen)
	if h.cursor != 1 {
		t.Errorf("cursor = %d, want 1", h.cursor)
	}

	// Down never runs past the last problem.
	for i := 0; i < len(h.problems)+5; i++ {
		scr, _ = h.Update(keyPress('j'))
		h = scr.(*HomeScreen)
	}
	if h.cursor != len(h.problems)-1 {
		t.Errorf("cursor = %d, want %d", h.cursor, len(h.problems)-1)
	}
}

func TestHomeScreen_EnterPushesCoach(t *testing.T) {
	h := New(nil)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T, want PushScreenMsg", cmd())
	}
	if msg.Screen == nil {
		t.Error("expected a screen to push")
	}
}

func TestHomeScreen_StatusesApplied(t *testing.T) {
	h := New(nil)
	scr, _ := h.Update(statusesMsg{Statuses: map[string]catalog.CompletionStatus{
		"two-sum": catalog.StatusSolved,
	}})
	h = scr.(*HomeScreen)

	view := h.View(120, 40)
	if !strings.Contains(view, "1 of") {
		t.Error("expected solved count in view")
	}
}

func TestHomeScreen_View(t *testing.T) {
	h := New(nil)
	view := h.View(120, 40)
	if !strings.Contains(view, "ALGORITY") {
		t.Error("expected branding in view")
	}
	if !strings.Contains(view, "Two Sum") {
		t.Error("expected problem titles in view")
	}
}

func TestHomeScreen_KeyHints(t *testing.T) {
	h := New(nil)
	if len(h.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}

package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/algority/algority/internal/coaching"
	"github.com/algority/algority/internal/dialogue"
	"github.com/algority/algority/internal/evaluation"
	"github.com/algority/algority/internal/llm"
	"github.com/algority/algority/internal/prefetch"
	"github.com/algority/algority/internal/questiongen"
	"github.com/algority/algority/internal/screen"
	"github.com/algority/algority/internal/store"
)

// stubGenerator produces deterministic questions.
type stubGenerator struct {
	calls int
	fail  bool
}

func (g *stubGenerator) Question(_ context.Context, input questiongen.Input) (*questiongen.Question, error) {
	if g.fail {
		return nil, errors.New("generator down")
	}
	g.calls++
	return &questiongen.Question{
		PhaseID: input.Phase.ID,
		Prompt:  fmt.Sprintf("Question %d for %s", g.calls, input.Phase.ID),
		Options: []dialogue.Option{
			{ID: "a", Label: "A", Text: "First"},
			{ID: "b", Label: "B", Text: "Second"},
			{ID: "c", Label: "C", Text: "Third"},
			{ID: "d", Label: "D", Text: "Fourth"},
		},
		CorrectOptionIDs: []string{"a"},
		Difficulty:       2,
		Explanation:      "a is right",
	}, nil
}

func (g *stubGenerator) Probe(_ context.Context, input questiongen.Input) (*questiongen.Probe, error) {
	return &questiongen.Probe{PhaseID: input.Phase.ID, Prompt: "Explain your reasoning."}, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func explanationResponse() llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(`{"explanation": "Because a holds."}`)}
}

func summaryResponse() llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(`{"summary": "Phase done, onward."}`)}
}

func probeEvalResponse() llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(`{"level": "strong", "commentary": "Solid reasoning."}`)}
}

func testCoachScreen(t *testing.T) (*CoachScreen, *llm.MockProvider) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	mock := llm.NewMockProvider()
	svc := coaching.NewService(
		st.Sessions(), st.Messages(),
		&stubGenerator{},
		evaluation.NewService(mock, evaluation.DefaultConfig()),
		prefetch.NewMemoryCache(0),
		nil,
		zap.NewNop(),
	)
	return New(svc, "two-sum"), mock
}

// loadedScreen runs the load command synchronously and applies it.
func loadedScreen(t *testing.T) (*CoachScreen, *llm.MockProvider) {
	t.Helper()
	c, mock := testCoachScreen(t)
	msg := c.loadSession()()
	ready, ok := msg.(sessionReadyMsg)
	if !ok || ready.Err != nil {
		t.Fatalf("load session: %v", msg)
	}
	scr, _ := c.Update(ready)
	return scr.(*CoachScreen), mock
}

// runStep applies a key, executes the returned command, and applies its
// message back to the screen.
func runStep(t *testing.T, c *CoachScreen, key tea.KeyPressMsg) *CoachScreen {
	t.Helper()
	scr, cmd := c.Update(key)
	c = scr.(*CoachScreen)
	if cmd == nil {
		t.Fatal("expected a command")
	}
	scr, _ = c.Update(cmd())
	return scr.(*CoachScreen)
}

func TestCoachScreen_TitleBeforeLoad(t *testing.T) {
	c, _ := testCoachScreen(t)
	if c.Title() != "Coaching" {
		t.Errorf("Title = %q, want %q", c.Title(), "Coaching")
	}
}

func TestCoachScreen_LoadsIntoQuestionMode(t *testing.T) {
	c, _ := loadedScreen(t)

	if c.mode != modeQuestion {
		t.Fatalf("mode = %d, want modeQuestion", c.mode)
	}
	if c.questionID == "" {
		t.Error("expected an open question ID")
	}
	if c.Title() != "Two Sum" {
		t.Errorf("Title = %q, want %q", c.Title(), "Two Sum")
	}
}

func TestCoachScreen_View_Loading(t *testing.T) {
	c, _ := testCoachScreen(t)
	if c.View(80, 24) == "" {
		t.Error("expected non-empty view for loading state")
	}
}

func TestCoachScreen_View_Question(t *testing.T) {
	c, _ := loadedScreen(t)
	view := c.View(100, 30)
	if !strings.Contains(view, "Question 1 for clarify") {
		t.Error("expected question prompt in view")
	}
}

func TestCoachScreen_SubmitAnswer(t *testing.T) {
	c, mock := loadedScreen(t)
	firstID := c.questionID

	// Mark the first option and submit.
	scr, _ := c.Update(specialKey(' '))
	c = scr.(*CoachScreen)
	if len(c.options.Selected()) != 1 {
		t.Fatalf("selected = %v, want one option", c.options.Selected())
	}

	mock.AddResponse(explanationResponse())
	c = runStep(t, c, specialKey(tea.KeyEnter))

	if c.mode != modeQuestion {
		t.Fatalf("mode = %d, want modeQuestion after follow-up", c.mode)
	}
	if c.questionID == firstID {
		t.Error("expected a new open question after answering")
	}
}

func TestCoachScreen_SubmitWithoutSelectionIsNoop(t *testing.T) {
	c, _ := loadedScreen(t)
	_, cmd := c.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command without a selection")
	}
}

func TestCoachScreen_PhaseTransitionFlow(t *testing.T) {
	c, mock := loadedScreen(t)

	// Answer both clarify questions.
	for i := 0; i < 2; i++ {
		scr, _ := c.Update(specialKey(' '))
		c = scr.(*CoachScreen)
		mock.AddResponse(explanationResponse())
		c = runStep(t, c, specialKey(tea.KeyEnter))
	}

	if c.mode != modeTransition {
		t.Fatalf("mode = %d, want modeTransition after last clarify answer", c.mode)
	}
	if c.pending == nil || c.pending.Next != "pattern" {
		t.Fatalf("pending = %+v, want transition to pattern", c.pending)
	}

	// Commit the transition.
	mock.AddResponse(summaryResponse())
	c = runStep(t, c, specialKey(tea.KeyEnter))

	if c.mode != modeQuestion {
		t.Fatalf("mode = %d, want modeQuestion in next phase", c.mode)
	}
	active, _ := c.sess.Machine.Active()
	if active.ID != "pattern" {
		t.Errorf("active phase = %q, want pattern", active.ID)
	}
}

func TestCoachScreen_EvaluationFailureThenRetry(t *testing.T) {
	c, mock := loadedScreen(t)

	// No canned response: evaluation fails.
	scr, _ := c.Update(specialKey(' '))
	c = scr.(*CoachScreen)
	c = runStep(t, c, specialKey(tea.KeyEnter))

	if c.mode != modeError {
		t.Fatalf("mode = %d, want modeError", c.mode)
	}
	if c.retry == nil {
		t.Fatal("expected a retry command")
	}

	// Retry with a response queued.
	mock.AddResponse(explanationResponse())
	c = runStep(t, c, keyPress('r'))

	if c.mode != modeQuestion {
		t.Errorf("mode = %d, want modeQuestion after retry", c.mode)
	}
}

func TestCoachScreen_ProbeDuringTransition(t *testing.T) {
	c, mock := loadedScreen(t)

	for i := 0; i < 2; i++ {
		scr, _ := c.Update(specialKey(' '))
		c = scr.(*CoachScreen)
		mock.AddResponse(explanationResponse())
		c = runStep(t, c, specialKey(tea.KeyEnter))
	}
	if c.mode != modeTransition {
		t.Fatalf("mode = %d, want modeTransition", c.mode)
	}

	// Ask for a probe check.
	c = runStep(t, c, keyPress('p'))
	if c.mode != modeProbe {
		t.Fatalf("mode = %d, want modeProbe", c.mode)
	}

	// Answer it.
	c.input.Model.SetValue("Hash lookups are O(1) on average.")
	mock.AddResponse(probeEvalResponse())
	c = runStep(t, c, specialKey(tea.KeyEnter))

	if c.mode != modeTransition {
		t.Errorf("mode = %d, want modeTransition after probe evaluation", c.mode)
	}
}

func TestCoachScreen_AskMode(t *testing.T) {
	c, mock := loadedScreen(t)

	scr, _ := c.Update(keyPress('a'))
	c = scr.(*CoachScreen)
	if c.mode != modeAsk {
		t.Fatalf("mode = %d, want modeAsk", c.mode)
	}

	// Esc backs out without sending.
	scr, _ = c.Update(specialKey(tea.KeyEscape))
	c = scr.(*CoachScreen)
	if c.mode != modeQuestion {
		t.Fatalf("mode = %d, want modeQuestion after cancel", c.mode)
	}

	// Ask for real.
	scr, _ = c.Update(keyPress('a'))
	c = scr.(*CoachScreen)
	c.input.Model.SetValue("Why a hash map?")
	mock.AddResponse(llm.MockResponse{Content: json.RawMessage(`{"response": "Constant-time lookups."}`)})
	c = runStep(t, c, specialKey(tea.KeyEnter))

	if c.mode != modeQuestion {
		t.Errorf("mode = %d, want modeQuestion after reply", c.mode)
	}

	// Both sides of the exchange are in the log.
	var sawQuestion, sawResponse bool
	for _, m := range c.sess.Log.Messages() {
		switch m.Body.(type) {
		case dialogue.UserQuestion:
			sawQuestion = true
		case dialogue.CoachResponse:
			sawResponse = true
		}
	}
	if !sawQuestion || !sawResponse {
		t.Error("expected user question and coach response in the log")
	}
}

func TestCoachScreen_QuitConfirm(t *testing.T) {
	c, _ := loadedScreen(t)

	var scr screen.Screen = c
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	c = scr.(*CoachScreen)
	if c.mode != modeQuit {
		t.Fatalf("mode = %d, want modeQuit", c.mode)
	}

	// N keeps going.
	scr, _ = c.Update(keyPress('n'))
	c = scr.(*CoachScreen)
	if c.mode != modeQuestion {
		t.Fatalf("mode = %d, want modeQuestion after dismiss", c.mode)
	}

	// Y leaves.
	scr, _ = c.Update(specialKey(tea.KeyEscape))
	c = scr.(*CoachScreen)
	_, cmd := c.Update(keyPress('y'))
	if cmd == nil {
		t.Error("expected a command after quit confirmation")
	}
}

func TestCoachScreen_KeyHints(t *testing.T) {
	c, _ := loadedScreen(t)
	if len(c.KeyHints()) == 0 {
		t.Error("expected non-empty key hints")
	}
}

func TestCoachScreen_FlagQuestion(t *testing.T) {
	c, _ := loadedScreen(t)
	id := c.questionID

	c = runStep(t, c, keyPress('f'))

	msg, ok := c.sess.Log.Get(id)
	if !ok || !msg.Flagged {
		t.Error("expected the open question to be flagged")
	}
}

package coach

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/algority/algority/internal/coaching"
	"github.com/algority/algority/internal/dialogue"
	"github.com/algority/algority/internal/phase"
	"github.com/algority/algority/internal/router"
	"github.com/algority/algority/internal/screen"
	summaryscreen "github.com/algority/algority/internal/screens/summary"
	"github.com/algority/algority/internal/ui/components"
	"github.com/algority/algority/internal/ui/layout"
)

// mode is the screen's interaction state.
type mode int

const (
	modeLoading mode = iota
	modeQuestion
	modeProbe
	modeAsk
	modeTransition
	modeBusy
	modeError
	modeQuit
)

// CoachScreen drives one coaching session: it renders the transcript,
// collects answers, and walks the learner through phase transitions.
type CoachScreen struct {
	svc       *coaching.Service
	problemID string
	sess      *coaching.Session

	mode      mode
	busyLabel string
	errMsg    string
	retry     tea.Cmd

	options      components.OptionList
	input        components.TextInput
	questionID   string
	probeID      string
	lastSelected []string
	pending      *phase.Transition

	started  time.Time
	elapsed  time.Duration
	recorded bool
}

var _ screen.Screen = (*CoachScreen)(nil)
var _ screen.KeyHintProvider = (*CoachScreen)(nil)

// New creates a coach screen for the given problem.
func New(svc *coaching.Service, problemID string) *CoachScreen {
	return &CoachScreen{
		svc:       svc,
		problemID: problemID,
		mode:      modeLoading,
		started:   time.Now(),
	}
}

func (c *CoachScreen) Init() tea.Cmd {
	return tea.Batch(c.loadSession(), tickCmd())
}

func (c *CoachScreen) Title() string {
	if c.sess != nil {
		return c.sess.Problem.Title
	}
	return "Coaching"
}

func (c *CoachScreen) KeyHints() []layout.KeyHint {
	switch c.mode {
	case modeQuestion:
		return []layout.KeyHint{
			{Key: "Space", Description: "Mark"},
			{Key: "Enter", Description: "Submit"},
			{Key: "A", Description: "Ask the coach"},
			{Key: "F", Description: "Flag"},
			{Key: "Esc", Description: "Leave"},
		}
	case modeProbe, modeAsk:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeTransition:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next phase"},
			{Key: "P", Description: "Probe check"},
			{Key: "Esc", Description: "Leave"},
		}
	case modeError:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Leave"},
		}
	case modeQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave session"},
			{Key: "N", Description: "Keep going"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Leave"},
		}
	}
}

func (c *CoachScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		return c.handleReady(msg)
	case answerOutcomeMsg:
		return c.handleOutcome(msg)
	case nextQuestionMsg:
		return c.handleNextQuestion(msg)
	case transitionMsg:
		return c.handleTransition(msg)
	case coachReplyMsg:
		return c.handleCoachReply(msg)
	case probeAskedMsg:
		return c.handleProbeAsked(msg)
	case probeEvalMsg:
		return c.handleProbeEval(msg)
	case flaggedMsg:
		// Flag state is rendered from the log; a persistence failure is
		// not worth interrupting the session for.
		return c, nil
	case elapsedTickMsg:
		c.elapsed = time.Since(c.started)
		return c, tickCmd()
	case leaveMsg:
		return c, func() tea.Msg { return router.PopScreenMsg{} }
	case tea.KeyMsg:
		return c.handleKey(msg)
	}

	if c.mode == modeAsk || c.mode == modeProbe {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}
	return c, nil
}

func (c *CoachScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch c.mode {
	case modeQuit:
		switch key {
		case "y", "Y":
			return c, c.leave()
		case "n", "N", "esc":
			c.sync()
		}
		return c, nil

	case modeError:
		switch key {
		case "r", "R":
			if c.retry != nil {
				c.busy("Retrying...")
				return c, c.retry
			}
		case "esc":
			c.mode = modeQuit
		}
		return c, nil

	case modeQuestion:
		switch key {
		case "esc":
			c.mode = modeQuit
			return c, nil
		case "a", "A":
			c.input = components.NewTextInput("Ask the coach anything...", 300)
			c.mode = modeAsk
			return c, c.input.Init()
		case "f", "F":
			return c, c.flag(c.questionID)
		case "enter":
			selected := c.options.Selected()
			if len(selected) == 0 {
				return c, nil
			}
			c.options.Submit()
			c.lastSelected = selected
			c.busy("Grading your answer...")
			return c, c.submitAnswer(c.questionID, selected)
		}
		var cmd tea.Cmd
		c.options, cmd = c.options.Update(msg)
		return c, cmd

	case modeProbe:
		switch key {
		case "esc":
			c.mode = modeQuit
			return c, nil
		case "enter":
			text := c.input.Value()
			if text == "" {
				return c, nil
			}
			c.busy("Evaluating your explanation...")
			return c, c.submitProbe(c.probeID, text)
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd

	case modeAsk:
		switch key {
		case "esc":
			c.sync()
			return c, nil
		case "enter":
			text := c.input.Value()
			if text == "" {
				return c, nil
			}
			c.busy("Thinking...")
			return c, c.askCoach(text)
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd

	case modeTransition:
		switch key {
		case "esc":
			c.mode = modeQuit
		case "p", "P":
			c.busy("Preparing a probe question...")
			return c, c.askProbe()
		case "enter":
			if c.pending != nil {
				c.busy("Wrapping up the phase...")
				return c, c.completeTransition(c.pending.Previous, c.pending.Next)
			}
		}
		return c, nil

	case modeLoading, modeBusy:
		if key == "esc" {
			c.mode = modeQuit
		}
		return c, nil
	}

	return c, nil
}

func (c *CoachScreen) handleReady(msg sessionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		c.fail(msg.Err, c.loadSession())
		return c, nil
	}
	c.sess = msg.Session
	c.sync()
	return c, nil
}

func (c *CoachScreen) handleOutcome(msg answerOutcomeMsg) (screen.Screen, tea.Cmd) {
	if msg.Outcome == nil && msg.Err != nil {
		// Evaluation failed: answer is logged, feedback is not. Retrying
		// resubmits the same selection.
		c.fail(msg.Err, c.submitAnswer(c.questionID, c.lastSelected))
		return c, nil
	}
	if msg.Err != nil {
		// Feedback landed but the follow-up question could not be
		// generated; NextQuestion is the retry entry point.
		c.fail(msg.Err, c.nextQuestion())
		return c, nil
	}
	c.sync()
	return c, nil
}

func (c *CoachScreen) handleNextQuestion(msg nextQuestionMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		c.fail(msg.Err, c.nextQuestion())
		return c, nil
	}
	c.sync()
	return c, nil
}

func (c *CoachScreen) handleTransition(msg transitionMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if c.pending != nil {
			c.fail(msg.Err, c.completeTransition(c.pending.Previous, c.pending.Next))
		} else {
			c.fail(msg.Err, nil)
		}
		return c, nil
	}

	c.pending = nil
	if msg.Result.Transition.Final() {
		return c, c.finish()
	}
	c.sync()
	return c, nil
}

func (c *CoachScreen) handleCoachReply(msg coachReplyMsg) (screen.Screen, tea.Cmd) {
	c.sync()
	if msg.Err != nil {
		// The learner's question stays in the log; surface the failure
		// and fall back to the open prompt.
		c.errMsg = msg.Err.Error()
	}
	return c, nil
}

func (c *CoachScreen) handleProbeAsked(msg probeAskedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		c.fail(msg.Err, c.askProbe())
		return c, nil
	}
	c.sync()
	return c, nil
}

func (c *CoachScreen) handleProbeEval(msg probeEvalMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		c.fail(msg.Err, c.submitProbe(c.probeID, c.input.Value()))
		return c, nil
	}
	c.sync()
	return c, nil
}

// sync derives the interaction mode from the session aggregate. Order
// matters: an open prompt takes precedence over a pending transition.
func (c *CoachScreen) sync() {
	c.errMsg = ""
	if c.sess == nil {
		c.mode = modeLoading
		return
	}

	if c.sess.Completed {
		c.mode = modeBusy
		c.busyLabel = "Finishing up..."
		return
	}

	if q, ok := c.sess.Log.FindPendingQuestion(); ok {
		body := q.Body.(dialogue.Question)
		if q.ID != c.questionID {
			c.questionID = q.ID
			c.options = components.NewOptionList(body.Options, body.CorrectOptionIDs)
			c.lastSelected = nil
		}
		c.mode = modeQuestion
		return
	}

	if p, ok := c.sess.Log.PendingPrompt(); ok {
		if p.ID != c.probeID {
			c.probeID = p.ID
			c.input = components.NewTextInput("Explain your thinking...", 500)
		}
		c.mode = modeProbe
		return
	}

	if t, ok := c.sess.PendingTransition(); ok {
		c.pending = &t
		c.mode = modeTransition
		return
	}

	// No open prompt and no pending transition: the follow-up question
	// was never generated. NextQuestion recovers.
	c.fail(nil, c.nextQuestion())
}

func (c *CoachScreen) busy(label string) {
	c.mode = modeBusy
	c.busyLabel = label
	c.errMsg = ""
}

func (c *CoachScreen) fail(err error, retry tea.Cmd) {
	c.mode = modeError
	if err != nil {
		c.errMsg = err.Error()
	} else if c.errMsg == "" {
		c.errMsg = "the coach lost its train of thought"
	}
	c.retry = retry
}

// loadSession opens (or resumes) the session and starts it if fresh.
func (c *CoachScreen) loadSession() tea.Cmd {
	svc, problemID := c.svc, c.problemID
	return func() tea.Msg {
		ctx := context.Background()
		sess, err := svc.Open(ctx, problemID)
		if err != nil {
			return sessionReadyMsg{Err: err}
		}
		if !sess.Initialized {
			if err := svc.Start(ctx, sess); err != nil {
				return sessionReadyMsg{Err: err}
			}
		}
		return sessionReadyMsg{Session: sess}
	}
}

func (c *CoachScreen) submitAnswer(questionID string, selected []string) tea.Cmd {
	svc, sess := c.svc, c.sess
	return func() tea.Msg {
		outcome, err := svc.SubmitAnswer(context.Background(), sess, questionID, selected)
		return answerOutcomeMsg{Outcome: outcome, Err: err}
	}
}

func (c *CoachScreen) nextQuestion() tea.Cmd {
	svc, sess := c.svc, c.sess
	return func() tea.Msg {
		q, err := svc.NextQuestion(context.Background(), sess)
		return nextQuestionMsg{Question: q, Err: err}
	}
}

func (c *CoachScreen) completeTransition(fromID, toID string) tea.Cmd {
	svc, sess := c.svc, c.sess
	return func() tea.Msg {
		res, err := svc.CompletePhaseTransition(context.Background(), sess, fromID, toID)
		return transitionMsg{Result: res, Err: err}
	}
}

func (c *CoachScreen) askCoach(text string) tea.Cmd {
	svc, sess := c.svc, c.sess
	return func() tea.Msg {
		_, err := svc.AskCoachQuestion(context.Background(), sess, text)
		return coachReplyMsg{Err: err}
	}
}

func (c *CoachScreen) askProbe() tea.Cmd {
	svc, sess := c.svc, c.sess
	return func() tea.Msg {
		p, err := svc.AskProbe(context.Background(), sess)
		return probeAskedMsg{Probe: p, Err: err}
	}
}

func (c *CoachScreen) submitProbe(probeID, text string) tea.Cmd {
	svc, sess := c.svc, c.sess
	return func() tea.Msg {
		_, err := svc.SubmitProbeResponse(context.Background(), sess, probeID, text)
		return probeEvalMsg{Err: err}
	}
}

func (c *CoachScreen) flag(messageID string) tea.Cmd {
	svc, sess := c.svc, c.sess
	return func() tea.Msg {
		err := svc.FlagMessage(context.Background(), sess, messageID)
		return flaggedMsg{Err: err}
	}
}

// leave persists elapsed time and pops back to the problem list.
func (c *CoachScreen) leave() tea.Cmd {
	d := c.recordable()
	svc, sess := c.svc, c.sess
	return func() tea.Msg {
		if sess != nil {
			_ = svc.RecordElapsed(context.Background(), sess, d)
		}
		return leaveMsg{}
	}
}

// finish persists elapsed time and replaces this screen with the
// session summary.
func (c *CoachScreen) finish() tea.Cmd {
	d := c.recordable()
	svc, sess := c.svc, c.sess
	data := summaryscreen.FromSession(sess, time.Since(c.started))
	return func() tea.Msg {
		_ = svc.RecordElapsed(context.Background(), sess, d)
		return router.ReplaceScreenMsg{Screen: summaryscreen.New(svc, data)}
	}
}

// recordable returns the yet-unrecorded elapsed time, at most once.
func (c *CoachScreen) recordable() time.Duration {
	if c.recorded {
		return 0
	}
	c.recorded = true
	return time.Since(c.started)
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return elapsedTickMsg(t)
	})
}

package coach

import (
	"time"

	"github.com/algority/algority/internal/coaching"
	"github.com/algority/algority/internal/dialogue"
)

// sessionReadyMsg is sent when the session has been opened (and started,
// for a fresh one).
type sessionReadyMsg struct {
	Session *coaching.Session
	Err     error
}

// answerOutcomeMsg is sent when a submitted answer has been graded.
type answerOutcomeMsg struct {
	Outcome *coaching.AnswerOutcome
	Err     error
}

// nextQuestionMsg is sent when a follow-up question retry completes.
type nextQuestionMsg struct {
	Question *dialogue.Message
	Err      error
}

// transitionMsg is sent when a phase transition commit completes.
type transitionMsg struct {
	Result *coaching.TransitionResult
	Err    error
}

// coachReplyMsg is sent when the coach has answered a free-form question.
type coachReplyMsg struct {
	Err error
}

// probeAskedMsg is sent when an open-ended probe has been generated.
type probeAskedMsg struct {
	Probe *dialogue.Message
	Err   error
}

// probeEvalMsg is sent when a probe response has been evaluated.
type probeEvalMsg struct {
	Err error
}

// flaggedMsg is sent when a message flag has been persisted.
type flaggedMsg struct {
	Err error
}

// elapsedTickMsg updates the header clock once a second.
type elapsedTickMsg time.Time

// leaveMsg is sent after elapsed time has been persisted on the way out.
type leaveMsg struct{}

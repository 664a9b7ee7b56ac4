package dialogue

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReferentialError reports a message that references a question or
// probe that does not exist (or is not in an answerable state) in the
// log. This indicates a caller bug: the orchestration layer only
// appends references it just read from the log.
type ReferentialError struct {
	Kind   Kind
	Ref    string
	Reason string
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s references %q: %s", e.Kind, e.Ref, e.Reason)
}

// Log is the append-only conversation record for one session. It is
// replayed to render the transcript and to derive whether a question
// is awaiting an answer. The log enforces referential integrity on
// append and allows at most one open question (of any kind) at a time.
type Log struct {
	messages []Message
	byID     map[string]int
	answered map[string]bool // question/probe ID -> has a response
	resolved map[string]bool // question/probe ID -> has feedback/evaluation
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{
		byID:     make(map[string]int),
		answered: make(map[string]bool),
		resolved: make(map[string]bool),
	}
}

// Replay reconstructs a log from persisted messages, re-validating
// ordering and references. Messages must be in ascending Seq order.
func Replay(messages []Message) (*Log, error) {
	l := NewLog()
	for _, m := range messages {
		if err := l.validate(m.Body); err != nil {
			return nil, fmt.Errorf("replay message %s: %w", m.ID, err)
		}
		l.admit(m)
	}
	return l, nil
}

// Append validates the body, assigns an ID, sequence number and
// timestamp, and adds the message to the log.
func (l *Log) Append(body Body) (Message, error) {
	if err := l.validate(body); err != nil {
		return Message{}, err
	}
	m := Message{
		ID:        uuid.NewString(),
		Seq:       int64(len(l.messages)),
		Timestamp: time.Now().UTC(),
		Body:      body,
	}
	l.admit(m)
	return m, nil
}

// validate checks referential integrity and the single-open-question
// rule without mutating the log.
func (l *Log) validate(body Body) error {
	switch b := body.(type) {
	case CoachRemark, UserQuestion, CoachResponse:
		return nil

	case Question:
		if open, ok := l.PendingPrompt(); ok {
			return &ReferentialError{Kind: b.Kind(), Ref: open.ID, Reason: "a question is already awaiting a response"}
		}
		return nil

	case ProbeQuestion:
		if open, ok := l.PendingPrompt(); ok {
			return &ReferentialError{Kind: b.Kind(), Ref: open.ID, Reason: "a question is already awaiting a response"}
		}
		return nil

	case UserAnswer:
		return l.checkAnswerable(b.Kind(), b.QuestionID, KindQuestion)

	case ProbeResponse:
		return l.checkAnswerable(b.Kind(), b.ProbeID, KindProbeQuestion)

	case Feedback:
		return l.checkResolvable(b.Kind(), b.QuestionID, KindQuestion)

	case ProbeEvaluation:
		if !ValidUnderstanding(b.Level) {
			return &ReferentialError{Kind: b.Kind(), Ref: b.ProbeID, Reason: fmt.Sprintf("unknown understanding level %q", b.Level)}
		}
		return l.checkResolvable(b.Kind(), b.ProbeID, KindProbeQuestion)

	default:
		return fmt.Errorf("unknown message body %T", body)
	}
}

func (l *Log) checkAnswerable(kind Kind, ref string, wantKind Kind) error {
	idx, ok := l.byID[ref]
	if !ok {
		return &ReferentialError{Kind: kind, Ref: ref, Reason: "no such message"}
	}
	if got := l.messages[idx].Kind(); got != wantKind {
		return &ReferentialError{Kind: kind, Ref: ref, Reason: fmt.Sprintf("references a %s, want %s", got, wantKind)}
	}
	if l.answered[ref] {
		return &ReferentialError{Kind: kind, Ref: ref, Reason: "already answered"}
	}
	return nil
}

func (l *Log) checkResolvable(kind Kind, ref string, wantKind Kind) error {
	idx, ok := l.byID[ref]
	if !ok {
		return &ReferentialError{Kind: kind, Ref: ref, Reason: "no such message"}
	}
	if got := l.messages[idx].Kind(); got != wantKind {
		return &ReferentialError{Kind: kind, Ref: ref, Reason: fmt.Sprintf("references a %s, want %s", got, wantKind)}
	}
	if !l.answered[ref] {
		return &ReferentialError{Kind: kind, Ref: ref, Reason: "not yet answered"}
	}
	if l.resolved[ref] {
		return &ReferentialError{Kind: kind, Ref: ref, Reason: "already has feedback"}
	}
	return nil
}

// admit records a validated message and updates derived indices.
func (l *Log) admit(m Message) {
	l.byID[m.ID] = len(l.messages)
	l.messages = append(l.messages, m)

	switch b := m.Body.(type) {
	case UserAnswer:
		l.answered[b.QuestionID] = true
	case ProbeResponse:
		l.answered[b.ProbeID] = true
	case Feedback:
		l.resolved[b.QuestionID] = true
	case ProbeEvaluation:
		l.resolved[b.ProbeID] = true
	}
}

// Messages returns the log in insertion order.
func (l *Log) Messages() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of messages in the log.
func (l *Log) Len() int {
	return len(l.messages)
}

// Get returns the message with the given ID.
func (l *Log) Get(id string) (Message, bool) {
	idx, ok := l.byID[id]
	if !ok {
		return Message{}, false
	}
	return l.messages[idx], true
}

// Answered reports whether the given question or probe has a response.
func (l *Log) Answered(id string) bool {
	return l.answered[id]
}

// FindPendingQuestion returns the most recent multiple-choice question
// with no answer yet. The UI renders an input prompt when one exists
// and a static answered card otherwise.
func (l *Log) FindPendingQuestion() (Message, bool) {
	for i := len(l.messages) - 1; i >= 0; i-- {
		m := l.messages[i]
		if m.Kind() == KindQuestion && !l.answered[m.ID] {
			return m, true
		}
	}
	return Message{}, false
}

// PendingPrompt returns the most recent question of any kind
// (multiple-choice or probe) that is still awaiting a response.
func (l *Log) PendingPrompt() (Message, bool) {
	for i := len(l.messages) - 1; i >= 0; i-- {
		m := l.messages[i]
		k := m.Kind()
		if (k == KindQuestion || k == KindProbeQuestion) && !l.answered[m.ID] {
			return m, true
		}
	}
	return Message{}, false
}

// Flag sets the moderation bit on a message. Flagging is one-way and
// idempotent: flagging twice is a no-op, not an error.
func (l *Log) Flag(id string) error {
	idx, ok := l.byID[id]
	if !ok {
		return fmt.Errorf("flag: no such message %q", id)
	}
	l.messages[idx].Flagged = true
	return nil
}

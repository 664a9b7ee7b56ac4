package dialogue

import "time"

// Kind tags a message variant in the conversation log.
type Kind string

const (
	KindCoach           Kind = "coach"
	KindQuestion        Kind = "question"
	KindUserAnswer      Kind = "user-answer"
	KindFeedback        Kind = "feedback"
	KindUserQuestion    Kind = "user-question"
	KindCoachResponse   Kind = "coach-response"
	KindProbeQuestion   Kind = "probe-question"
	KindProbeResponse   Kind = "probe-response"
	KindProbeEvaluation Kind = "probe-evaluation"
)

// UnderstandingLevel classifies a probe response.
type UnderstandingLevel string

const (
	UnderstandingStrong    UnderstandingLevel = "strong"
	UnderstandingPartial   UnderstandingLevel = "partial"
	UnderstandingUnclear   UnderstandingLevel = "unclear"
	UnderstandingIncorrect UnderstandingLevel = "incorrect"
)

// ValidUnderstanding reports whether l is one of the four known levels.
func ValidUnderstanding(l UnderstandingLevel) bool {
	switch l {
	case UnderstandingStrong, UnderstandingPartial, UnderstandingUnclear, UnderstandingIncorrect:
		return true
	}
	return false
}

// Body is the kind-specific payload of a message. The concrete types
// below are the only implementations; consumers switch exhaustively
// on Kind().
type Body interface {
	Kind() Kind
}

// Option is a single multiple-choice answer option.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// CoachRemark is a free-standing remark from the coach (intros,
// encouragement, phase framing).
type CoachRemark struct {
	Text string `json:"text"`
}

// Question is a multiple-choice question posed by the coach. The
// message's own ID is the question ID that answers and feedback
// reference.
type Question struct {
	PhaseID          string   `json:"phase_id"`
	Prompt           string   `json:"prompt"`
	Options          []Option `json:"options"`
	CorrectOptionIDs []string `json:"correct_option_ids"`
}

// UserAnswer records the learner's selected options for a question.
type UserAnswer struct {
	QuestionID        string   `json:"question_id"`
	SelectedOptionIDs []string `json:"selected_option_ids"`
}

// Feedback is the coach's evaluation of an answered question.
type Feedback struct {
	QuestionID  string `json:"question_id"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
}

// UserQuestion is a free-form question from the learner.
type UserQuestion struct {
	Text string `json:"text"`
}

// CoachResponse is the coach's free-form reply to a UserQuestion.
type CoachResponse struct {
	Text string `json:"text"`
}

// ProbeQuestion is an open-ended follow-up testing depth of
// understanding. The message's own ID is the probe ID.
type ProbeQuestion struct {
	PhaseID string `json:"phase_id"`
	Prompt  string `json:"prompt"`
}

// ProbeResponse is the learner's free-text answer to a probe.
type ProbeResponse struct {
	ProbeID string `json:"probe_id"`
	Text    string `json:"text"`
}

// ProbeEvaluation classifies a probe response.
type ProbeEvaluation struct {
	ProbeID    string             `json:"probe_id"`
	Level      UnderstandingLevel `json:"level"`
	Commentary string             `json:"commentary"`
}

func (CoachRemark) Kind() Kind     { return KindCoach }
func (Question) Kind() Kind        { return KindQuestion }
func (UserAnswer) Kind() Kind      { return KindUserAnswer }
func (Feedback) Kind() Kind        { return KindFeedback }
func (UserQuestion) Kind() Kind    { return KindUserQuestion }
func (CoachResponse) Kind() Kind   { return KindCoachResponse }
func (ProbeQuestion) Kind() Kind   { return KindProbeQuestion }
func (ProbeResponse) Kind() Kind   { return KindProbeResponse }
func (ProbeEvaluation) Kind() Kind { return KindProbeEvaluation }

// Message is one entry in the append-only conversation log.
// Seq is the insertion order within the session. Flagged is a one-way
// moderation bit; no other field is ever mutated after append.
type Message struct {
	ID        string
	Seq       int64
	Timestamp time.Time
	Flagged   bool
	Body      Body
}

// Kind returns the variant tag of the message body.
func (m Message) Kind() Kind {
	return m.Body.Kind()
}

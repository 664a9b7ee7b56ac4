package coaching

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/algority/algority/internal/catalog"
	"github.com/algority/algority/internal/dialogue"
	"github.com/algority/algority/internal/evaluation"
	"github.com/algority/algority/internal/phase"
	"github.com/algority/algority/internal/prefetch"
	"github.com/algority/algority/internal/questiongen"
	"github.com/algority/algority/internal/store"
)

// Service orchestrates coaching sessions: it composes the phase
// machine, the message log, the speculative cache and the model-backed
// collaborators, and keeps the store in step. All mutations for one
// session are expected to come from a single interactive client.
type Service struct {
	sessions  store.SessionRepo
	messages  store.MessageRepo
	generator questiongen.Generator
	evaluator *evaluation.Service
	cache     prefetch.Cache
	warmer    *prefetch.Warmer
	logger    *zap.Logger
}

// NewService creates a coaching service. The logger must not be nil;
// pass zap.NewNop() to discard.
func NewService(
	sessions store.SessionRepo,
	messages store.MessageRepo,
	generator questiongen.Generator,
	evaluator *evaluation.Service,
	cache prefetch.Cache,
	warmer *prefetch.Warmer,
	logger *zap.Logger,
) *Service {
	return &Service{
		sessions:  sessions,
		messages:  messages,
		generator: generator,
		evaluator: evaluator,
		cache:     cache,
		warmer:    warmer,
		logger:    logger,
	}
}

// Open resumes the incomplete session for the problem, or creates a new
// one when none exists. New sessions are uninitialized until Start.
func (s *Service) Open(ctx context.Context, problemID string) (*Session, error) {
	problem, err := catalog.GetProblem(problemID)
	if err != nil {
		return nil, err
	}

	rec, err := s.sessions.Incomplete(ctx, problemID)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return s.Load(ctx, rec.ID)
	}

	rec, err = s.sessions.Create(ctx, problemID, phase.DefaultPhases())
	if err != nil {
		return nil, err
	}
	machine, err := phase.NewMachine(rec.Phases)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:      rec.ID,
		Problem: problem,
		Machine: machine,
		Log:     dialogue.NewLog(),
	}, nil
}

// Load rebuilds a session aggregate from the store, fetching the
// session row and its transcript concurrently.
func (s *Service) Load(ctx context.Context, sessionID string) (*Session, error) {
	var rec *store.SessionRecord
	var msgs []dialogue.Message

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rec, err = s.sessions.Get(gctx, sessionID)
		return err
	})
	g.Go(func() error {
		var err error
		msgs, err = s.messages.List(gctx, sessionID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	problem, err := catalog.GetProblem(rec.ProblemID)
	if err != nil {
		return nil, err
	}
	machine, err := phase.NewMachine(rec.Phases)
	if err != nil {
		return nil, err
	}
	log, err := dialogue.Replay(msgs)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:          rec.ID,
		Problem:     problem,
		Machine:     machine,
		Log:         log,
		Initialized: rec.Initialized,
		Completed:   rec.Completed(),
	}

	if sess.Initialized && !sess.Completed {
		s.warmNext(sess)
	}
	return sess, nil
}

// Start initializes a new session: generates the first question of the
// first phase, appends the coach intro and the question, and marks the
// session initialized. On GenerationFailure the session remains
// uninitialized and Start can be retried.
func (s *Service) Start(ctx context.Context, sess *Session) error {
	if sess.Initialized {
		return fmt.Errorf("session %s already initialized", sess.ID)
	}

	active, ok := sess.Machine.Active()
	if !ok {
		return &phase.InvalidStateError{Reason: "no active phase"}
	}

	q, err := s.generator.Question(ctx, sess.genInput(active))
	if err != nil {
		return &GenerationFailure{Op: "start session", Err: err}
	}

	intro := fmt.Sprintf(
		"Let's work through %s together. I won't hand you the solution; I'll ask questions that lead you to it. First up: %s.",
		sess.Problem.Title, active.Title,
	)
	if _, err := s.append(ctx, sess, dialogue.CoachRemark{Text: intro}); err != nil {
		return err
	}
	if _, err := s.append(ctx, sess, q.Body()); err != nil {
		return err
	}

	if err := s.sessions.MarkInitialized(ctx, sess.ID); err != nil {
		return err
	}
	sess.Initialized = true

	s.warmNext(sess)
	return nil
}

// AnswerOutcome is the result of a graded answer submission.
type AnswerOutcome struct {
	Feedback dialogue.Message

	// NextQuestion is the follow-up question appended when the phase
	// continues. Nil when a phase transition is pending.
	NextQuestion *dialogue.Message

	// PendingTransition is set when the phase is now completable. The
	// caller shows the transition view, then commits it with
	// CompletePhaseTransition.
	PendingTransition *phase.Transition
}

// SubmitAnswer appends the learner's answer, grades it, appends
// feedback, and advances the phase counter. When the phase still has
// questions, the next question is appended (cache first, then
// synchronous generation). When the phase is now completable, a pending
// transition is returned instead and nothing further is generated.
//
// If grading feedback generation fails, the user-answer stays in the
// log and a GenerationFailure is returned; the phase counter is not
// advanced.
func (s *Service) SubmitAnswer(ctx context.Context, sess *Session, questionID string, selected []string) (*AnswerOutcome, error) {
	if sess.Completed {
		return nil, &ErrSessionCompleted{SessionID: sess.ID}
	}

	qMsg, ok := sess.Log.Get(questionID)
	if !ok {
		return nil, &dialogue.ReferentialError{Kind: dialogue.KindUserAnswer, Ref: questionID, Reason: "no such message"}
	}
	qBody, ok := qMsg.Body.(dialogue.Question)
	if !ok {
		return nil, &dialogue.ReferentialError{Kind: dialogue.KindUserAnswer, Ref: questionID, Reason: "not a question"}
	}

	// A retry after a failed evaluation already has the answer in the
	// log; don't append it twice.
	if !sess.Log.Answered(questionID) {
		if _, err := s.append(ctx, sess, dialogue.UserAnswer{
			QuestionID:        questionID,
			SelectedOptionIDs: selected,
		}); err != nil {
			return nil, err
		}
	}

	correct := evaluation.Grade(selected, qBody.CorrectOptionIDs)

	ph, _ := sess.Machine.Get(qBody.PhaseID)
	explanation, err := s.evaluator.ExplainAnswer(ctx, evaluation.AnswerInput{
		ProblemTitle:      sess.Problem.Title,
		PhaseTitle:        ph.Title,
		Prompt:            qBody.Prompt,
		Options:           qBody.Options,
		CorrectOptionIDs:  qBody.CorrectOptionIDs,
		SelectedOptionIDs: selected,
		Correct:           correct,
	})
	if err != nil {
		return nil, &GenerationFailure{Op: "evaluate answer", Err: err}
	}

	fbMsg, err := s.append(ctx, sess, dialogue.Feedback{
		QuestionID:  questionID,
		Correct:     correct,
		Explanation: explanation,
	})
	if err != nil {
		return nil, err
	}

	if err := sess.Machine.AdvanceQuestion(qBody.PhaseID); err != nil {
		return nil, err
	}
	if err := s.sessions.UpdatePhases(ctx, sess.ID, sess.Machine.Phases()); err != nil {
		return nil, err
	}

	outcome := &AnswerOutcome{Feedback: fbMsg}

	if t, pending := sess.PendingTransition(); pending {
		outcome.PendingTransition = &t
		s.warmTransition(sess, t)
		return outcome, nil
	}

	next, err := s.NextQuestion(ctx, sess)
	if err != nil {
		return outcome, err
	}
	outcome.NextQuestion = next
	return outcome, nil
}

// NextQuestion appends the next question for the active phase, serving
// from the speculative cache when possible and generating synchronously
// on a miss. It is also the retry entry point after a failed follow-up
// generation.
func (s *Service) NextQuestion(ctx context.Context, sess *Session) (*dialogue.Message, error) {
	active, ok := sess.Machine.Active()
	if !ok {
		return nil, &phase.InvalidStateError{Reason: "no active phase"}
	}

	q, hit := s.cache.Take(prefetch.NextKey(sess.ID))
	if hit && q.PhaseID != active.ID {
		// Stale entry from a previous phase; regenerate.
		hit = false
	}
	if !hit {
		var err error
		q, err = s.generator.Question(ctx, sess.genInput(active))
		if err != nil {
			return nil, &GenerationFailure{Op: "next question", Err: err}
		}
	}

	msg, err := s.append(ctx, sess, q.Body())
	if err != nil {
		return nil, err
	}

	s.warmNext(sess)
	return &msg, nil
}

// TransitionResult is the output of a committed phase transition.
type TransitionResult struct {
	Transition phase.Transition
	Remark     dialogue.Message

	// Question is the first question of the next phase; nil when the
	// final phase was completed and the session is now finished.
	Question *dialogue.Message
}

// CompletePhaseTransition commits a pending phase completion. For a
// non-final phase the next phase's first question is obtained (cache
// first) before the completion is committed, so a generation failure
// leaves the phase state untouched and retryable.
func (s *Service) CompletePhaseTransition(ctx context.Context, sess *Session, fromID, toID string) (*TransitionResult, error) {
	if sess.Completed {
		return nil, &ErrSessionCompleted{SessionID: sess.ID}
	}
	if want := sess.nextPhaseID(fromID); want != toID {
		return nil, &phase.InvalidStateError{
			PhaseID: fromID,
			Reason:  fmt.Sprintf("next phase is %q, not %q", want, toID),
		}
	}

	var nextQ *questiongen.Question
	if toID != "" {
		toPhase, ok := sess.Machine.Get(toID)
		if !ok {
			return nil, &phase.InvalidStateError{PhaseID: toID, Reason: "unknown phase"}
		}

		q, hit := s.cache.Take(prefetch.TransitionKey(sess.ID, fromID, toID))
		if !hit {
			var err error
			q, err = s.generator.Question(ctx, sess.genInput(toPhase))
			if err != nil {
				return nil, &GenerationFailure{Op: "phase transition", Err: err}
			}
		}
		nextQ = q
	}

	fromPhase, _ := sess.Machine.Get(fromID)
	transition, err := sess.Machine.CompletePhase(fromID)
	if err != nil {
		return nil, err
	}

	remark, err := s.append(ctx, sess, dialogue.CoachRemark{
		Text: s.phaseSummary(ctx, sess, fromPhase, transition),
	})
	if err != nil {
		return nil, err
	}

	result := &TransitionResult{Transition: transition, Remark: remark}

	if nextQ != nil {
		msg, err := s.append(ctx, sess, nextQ.Body())
		if err != nil {
			return nil, err
		}
		result.Question = &msg
	}

	if err := s.sessions.UpdatePhases(ctx, sess.ID, sess.Machine.Phases()); err != nil {
		return nil, err
	}

	if transition.Final() {
		if err := s.sessions.Complete(ctx, sess.ID); err != nil {
			return nil, err
		}
		sess.Completed = true
		return result, nil
	}

	s.warmNext(sess)
	return result, nil
}

// phaseSummary asks the model for a wrap-up remark, falling back to a
// static line so a summary failure never blocks the committed
// transition.
func (s *Service) phaseSummary(ctx context.Context, sess *Session, completed phase.Phase, t phase.Transition) string {
	// Count correct answers to questions belonging to the completed
	// phase only.
	phaseOf := make(map[string]string)
	correct := 0
	for _, m := range sess.Log.Messages() {
		switch b := m.Body.(type) {
		case dialogue.Question:
			phaseOf[m.ID] = b.PhaseID
		case dialogue.Feedback:
			if b.Correct && phaseOf[b.QuestionID] == completed.ID {
				correct++
			}
		}
	}

	var nextTitle string
	if !t.Final() {
		if next, ok := sess.Machine.Get(t.Next); ok {
			nextTitle = next.Title
		}
	}

	summary, err := s.evaluator.PhaseSummary(ctx, evaluation.SummaryInput{
		ProblemTitle:   sess.Problem.Title,
		CompletedTitle: completed.Title,
		NextTitle:      nextTitle,
		CorrectCount:   correct,
		QuestionCount:  completed.QuestionsTotal,
	})
	if err == nil {
		return summary
	}

	s.logger.Warn("phase summary generation failed, using fallback",
		zap.String("session_id", sess.ID),
		zap.Error(err),
	)
	if t.Final() {
		return fmt.Sprintf("That completes %s. Well done working through the whole problem!", completed.Title)
	}
	return fmt.Sprintf("That completes %s. On to %s.", completed.Title, nextTitle)
}

// AskCoachQuestion appends the learner's free-form question and the
// coach's reply. Phase counters are unaffected. The user question stays
// in the log even when reply generation fails.
func (s *Service) AskCoachQuestion(ctx context.Context, sess *Session, text string) (*dialogue.Message, error) {
	if sess.Completed {
		return nil, &ErrSessionCompleted{SessionID: sess.ID}
	}

	if _, err := s.append(ctx, sess, dialogue.UserQuestion{Text: text}); err != nil {
		return nil, err
	}

	var phaseTitle string
	if active, ok := sess.Machine.Active(); ok {
		phaseTitle = active.Title
	}

	reply, err := s.evaluator.Respond(ctx, evaluation.RespondInput{
		ProblemTitle: sess.Problem.Title,
		PhaseTitle:   phaseTitle,
		Transcript:   sess.transcriptTail(8),
		QuestionText: text,
	})
	if err != nil {
		return nil, &GenerationFailure{Op: "coach response", Err: err}
	}

	msg, err := s.append(ctx, sess, dialogue.CoachResponse{Text: reply})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// AskProbe generates and appends an open-ended probing question for the
// active phase. The log rejects it if another question is still open.
func (s *Service) AskProbe(ctx context.Context, sess *Session) (*dialogue.Message, error) {
	if sess.Completed {
		return nil, &ErrSessionCompleted{SessionID: sess.ID}
	}

	active, ok := sess.Machine.Active()
	if !ok {
		return nil, &phase.InvalidStateError{Reason: "no active phase"}
	}

	p, err := s.generator.Probe(ctx, sess.genInput(active))
	if err != nil {
		return nil, &GenerationFailure{Op: "probe question", Err: err}
	}

	msg, err := s.append(ctx, sess, p.Body())
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// SubmitProbeResponse appends the learner's explanation and its graded
// evaluation. Phase counters are unaffected. The probe response stays
// in the log even when evaluation fails.
func (s *Service) SubmitProbeResponse(ctx context.Context, sess *Session, probeID, text string) (*dialogue.Message, error) {
	if sess.Completed {
		return nil, &ErrSessionCompleted{SessionID: sess.ID}
	}

	probeMsg, ok := sess.Log.Get(probeID)
	if !ok {
		return nil, &dialogue.ReferentialError{Kind: dialogue.KindProbeResponse, Ref: probeID, Reason: "no such message"}
	}
	probeBody, ok := probeMsg.Body.(dialogue.ProbeQuestion)
	if !ok {
		return nil, &dialogue.ReferentialError{Kind: dialogue.KindProbeResponse, Ref: probeID, Reason: "not a probe question"}
	}

	if _, err := s.append(ctx, sess, dialogue.ProbeResponse{ProbeID: probeID, Text: text}); err != nil {
		return nil, err
	}

	var phaseTitle string
	if ph, ok := sess.Machine.Get(probeBody.PhaseID); ok {
		phaseTitle = ph.Title
	}

	res, err := s.evaluator.EvaluateProbe(ctx, evaluation.ProbeInput{
		ProblemTitle: sess.Problem.Title,
		PhaseTitle:   phaseTitle,
		ProbePrompt:  probeBody.Prompt,
		ResponseText: text,
	})
	if err != nil {
		return nil, &GenerationFailure{Op: "probe evaluation", Err: err}
	}

	msg, err := s.append(ctx, sess, dialogue.ProbeEvaluation{
		ProbeID:    probeID,
		Level:      res.Level,
		Commentary: res.Commentary,
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// FlagMessage marks a message for moderation review. Idempotent.
func (s *Service) FlagMessage(ctx context.Context, sess *Session, messageID string) error {
	if err := sess.Log.Flag(messageID); err != nil {
		return err
	}
	return s.messages.SetFlagged(ctx, sess.ID, messageID, true)
}

// RecordElapsed accumulates wall-clock time spent in the session.
func (s *Service) RecordElapsed(ctx context.Context, sess *Session, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	return s.sessions.AddElapsed(ctx, sess.ID, d)
}

// append validates and appends a message to the log, then persists it.
func (s *Service) append(ctx context.Context, sess *Session, body dialogue.Body) (dialogue.Message, error) {
	msg, err := sess.Log.Append(body)
	if err != nil {
		return dialogue.Message{}, err
	}
	if err := s.messages.Append(ctx, sess.ID, msg); err != nil {
		return dialogue.Message{}, err
	}
	return msg, nil
}

// warmNext schedules background pre-generation of the next anticipated
// question. Best effort: failures are logged inside the warmer and
// never surface here.
func (s *Service) warmNext(sess *Session) {
	if s.warmer == nil {
		return
	}
	active, ok := sess.Machine.Active()
	if !ok {
		return
	}

	// While a question is pending, answering it moves the counter to
	// QuestionsCompleted+1. Another in-phase question is only needed if
	// that still leaves room; otherwise the next phase's first question
	// is the anticipated one.
	if active.QuestionsCompleted+1 < active.QuestionsTotal {
		input := sess.genInput(active)
		s.warmer.Warm(prefetch.NextKey(sess.ID), func(ctx context.Context) (*questiongen.Question, error) {
			return s.generator.Question(ctx, input)
		})
		return
	}

	nextID := sess.nextPhaseID(active.ID)
	if nextID == "" {
		return
	}
	s.warmTransition(sess, phase.Transition{Previous: active.ID, Next: nextID})
}

// warmTransition pre-generates the first question of the next phase.
func (s *Service) warmTransition(sess *Session, t phase.Transition) {
	if s.warmer == nil || t.Final() {
		return
	}
	next, ok := sess.Machine.Get(t.Next)
	if !ok {
		return
	}
	input := sess.genInput(next)
	s.warmer.Warm(prefetch.TransitionKey(sess.ID, t.Previous, t.Next), func(ctx context.Context) (*questiongen.Question, error) {
		return s.generator.Question(ctx, input)
	})
}

package coaching

import (
	"github.com/algority/algority/internal/catalog"
	"github.com/algority/algority/internal/dialogue"
	"github.com/algority/algority/internal/phase"
	"github.com/algority/algority/internal/questiongen"
)

// Session is the in-memory aggregate for one coaching session: the
// problem being coached, the phase machine, and the replayed message
// log. All mutations go through the Service, which keeps the store in
// step.
type Session struct {
	ID          string
	Problem     catalog.Problem
	Machine     *phase.Machine
	Log         *dialogue.Log
	Initialized bool
	Completed   bool
}

// PendingTransition returns the phase handoff awaiting explicit
// commitment: the active phase has all questions answered but has not
// been completed yet. Next is empty when it is the final phase.
func (s *Session) PendingTransition() (phase.Transition, bool) {
	active, ok := s.Machine.Active()
	if !ok || active.QuestionsCompleted != active.QuestionsTotal {
		return phase.Transition{}, false
	}
	return phase.Transition{Previous: active.ID, Next: s.nextPhaseID(active.ID)}, true
}

// nextPhaseID returns the ID of the phase positioned after the given
// one, or empty for the last phase.
func (s *Session) nextPhaseID(id string) string {
	phases := s.Machine.Phases()
	for i, p := range phases {
		if p.ID == id && i+1 < len(phases) {
			return phases[i+1].ID
		}
	}
	return ""
}

// genInput assembles the generator context for the given phase from the
// session's problem and transcript.
func (s *Session) genInput(ph phase.Phase) questiongen.Input {
	var prompts, mistakes []string
	promptByID := make(map[string]string)

	for _, m := range s.Log.Messages() {
		switch b := m.Body.(type) {
		case dialogue.Question:
			prompts = append(prompts, b.Prompt)
			promptByID[m.ID] = b.Prompt
		case dialogue.ProbeQuestion:
			prompts = append(prompts, b.Prompt)
			promptByID[m.ID] = b.Prompt
		case dialogue.Feedback:
			if !b.Correct {
				if p, ok := promptByID[b.QuestionID]; ok {
					mistakes = append(mistakes, p)
				}
			}
		case dialogue.ProbeEvaluation:
			if b.Level == dialogue.UnderstandingIncorrect || b.Level == dialogue.UnderstandingUnclear {
				if p, ok := promptByID[b.ProbeID]; ok {
					mistakes = append(mistakes, p)
				}
			}
		}
	}

	return questiongen.Input{
		Problem:        s.Problem,
		Phase:          ph,
		PriorPrompts:   prompts,
		RecentMistakes: mistakes,
	}
}

// transcriptTail renders the last n messages as plain text for model
// context.
func (s *Session) transcriptTail(n int) string {
	msgs := s.Log.Messages()
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}

	out := ""
	for _, m := range msgs {
		var who, text string
		switch b := m.Body.(type) {
		case dialogue.CoachRemark:
			who, text = "Coach", b.Text
		case dialogue.Question:
			who, text = "Coach", b.Prompt
		case dialogue.Feedback:
			who, text = "Coach", b.Explanation
		case dialogue.CoachResponse:
			who, text = "Coach", b.Text
		case dialogue.ProbeQuestion:
			who, text = "Coach", b.Prompt
		case dialogue.ProbeEvaluation:
			who, text = "Coach", b.Commentary
		case dialogue.UserQuestion:
			who, text = "Learner", b.Text
		case dialogue.ProbeResponse:
			who, text = "Learner", b.Text
		case dialogue.UserAnswer:
			continue
		default:
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += who + ": " + text
	}
	return out
}

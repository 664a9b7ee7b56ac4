package mastery

import (
	"github.com/algority/algority/internal/dialogue"
)

// SessionResult summarizes one completed session for mastery purposes.
type SessionResult struct {
	PatternIDs       []string
	QuestionsSeen    int
	QuestionsCorrect int
}

// ResultFromMessages derives a SessionResult from a session transcript.
// Every feedback message counts as one graded question.
func ResultFromMessages(patternIDs []string, msgs []dialogue.Message) SessionResult {
	res := SessionResult{PatternIDs: patternIDs}
	for _, m := range msgs {
		fb, ok := m.Body.(dialogue.Feedback)
		if !ok {
			continue
		}
		res.QuestionsSeen++
		if fb.Correct {
			res.QuestionsCorrect++
		}
	}
	return res
}

// PatternMastery accumulates a learner's history with one pattern.
type PatternMastery struct {
	PatternID        string
	Sessions         int
	QuestionsSeen    int
	QuestionsCorrect int
}

// Accuracy returns the fraction of graded questions answered correctly,
// or 0 with no data.
func (pm *PatternMastery) Accuracy() float64 {
	if pm.QuestionsSeen == 0 {
		return 0
	}
	return float64(pm.QuestionsCorrect) / float64(pm.QuestionsSeen)
}

// State maps accumulated history onto a mastery state.
func (pm *PatternMastery) State() State {
	switch {
	case pm.Sessions == 0:
		return StateNew
	case pm.Sessions >= masteredSessions && pm.Accuracy() >= masteredAccuracy:
		return StateMastered
	case pm.Sessions >= proficientSessions && pm.Accuracy() >= proficientAccuracy:
		return StateProficient
	default:
		return StateLearning
	}
}

// Aggregate folds session results into per-pattern mastery records. A
// session touching several patterns counts toward each of them.
func Aggregate(results []SessionResult) map[string]*PatternMastery {
	out := make(map[string]*PatternMastery)
	for _, res := range results {
		for _, pid := range res.PatternIDs {
			pm := out[pid]
			if pm == nil {
				pm = &PatternMastery{PatternID: pid}
				out[pid] = pm
			}
			pm.Sessions++
			pm.QuestionsSeen += res.QuestionsSeen
			pm.QuestionsCorrect += res.QuestionsCorrect
		}
	}
	return out
}

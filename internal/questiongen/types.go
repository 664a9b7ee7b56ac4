package questiongen

import (
	"github.com/algority/algority/internal/catalog"
	"github.com/algority/algority/internal/dialogue"
	"github.com/algority/algority/internal/phase"
)

// Question is a validated multiple-choice coaching question.
type Question struct {
	PhaseID          string
	Prompt           string
	Options          []dialogue.Option
	CorrectOptionIDs []string
	Difficulty       int // self-assessed, 1-5
	Explanation      string
}

// Body converts the question into a dialogue message body.
func (q *Question) Body() dialogue.Question {
	return dialogue.Question{
		PhaseID:          q.PhaseID,
		Prompt:           q.Prompt,
		Options:          q.Options,
		CorrectOptionIDs: q.CorrectOptionIDs,
	}
}

// Probe is a free-form probing question that checks whether the
// learner can explain a concept in their own words.
type Probe struct {
	PhaseID string
	Prompt  string
}

// Body converts the probe into a dialogue message body.
func (p *Probe) Body() dialogue.ProbeQuestion {
	return dialogue.ProbeQuestion{
		PhaseID: p.PhaseID,
		Prompt:  p.Prompt,
	}
}

// Input carries everything the generator needs to produce the next
// question for a session.
type Input struct {
	// Problem is the catalog problem the session is coaching.
	Problem catalog.Problem

	// Phase is the phase the question belongs to. For a
	// phase-transition question this is the incoming phase.
	Phase phase.Phase

	// PriorPrompts are the prompts already asked in this session,
	// oldest first. Used for deduplication.
	PriorPrompts []string

	// RecentMistakes are short descriptions of the learner's recent
	// wrong answers, oldest first.
	RecentMistakes []string
}

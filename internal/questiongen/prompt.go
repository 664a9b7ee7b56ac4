package questiongen

import (
	"fmt"
	"strings"
)

const questionSystemPrompt = `You are a Socratic coding-interview coach. You never hand out solutions. Instead you ask multiple-choice questions that lead the learner to discover the approach themselves.

Rules:
- Generate a single multiple-choice question for the given problem and coaching phase.
- Use plain ASCII text. Inline code goes in backticks. No markdown headings.
- The question must fit the phase: clarification questions probe the problem statement, pattern questions probe which technique applies, complexity questions probe time and space bounds, implementation questions probe concrete coding decisions.
- Provide exactly 4 options with ids a, b, c, d. Mark every correct option; most questions have exactly one correct option, some have two.
- Distractors should reflect plausible misconceptions, not random noise.
- Never reveal which option is correct inside the prompt or option text.
- The explanation is shown only after the learner answers. Explain why the correct options are right and each distractor is wrong.
- Do not repeat any question from the "already asked" list.
- If the learner has recent mistakes, steer the question toward the misunderstood concept.`

const probeSystemPrompt = `You are a Socratic coding-interview coach checking for real understanding. Generate one short open-ended question that asks the learner to explain, in their own words, a key idea from the current coaching phase of the given problem.

Rules:
- Use plain ASCII text.
- The question should be answerable in two or three sentences.
- Ask about reasoning ("why does...", "what breaks if..."), not recall.
- Do not repeat any question from the "already asked" list.`

// buildQuestionMessage constructs the user message from Input and
// Config limits.
func buildQuestionMessage(input Input, cfg Config) string {
	var b strings.Builder

	writeProblem(&b, input)
	writePhase(&b, input)

	fmt.Fprintf(&b, "Question number: %d of %d in this phase\n",
		input.Phase.QuestionsCompleted+1, input.Phase.QuestionsTotal)

	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(buildPriorList(input.PriorPrompts, cfg.MaxPriorPrompts))

	b.WriteString("\nRecent mistakes by this learner:\n")
	b.WriteString(buildMistakes(input.RecentMistakes, cfg.MaxRecentMistakes))

	return b.String()
}

// buildProbeMessage constructs the user message for probe generation.
func buildProbeMessage(input Input, cfg Config) string {
	var b strings.Builder

	writeProblem(&b, input)
	writePhase(&b, input)

	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(buildPriorList(input.PriorPrompts, cfg.MaxPriorPrompts))

	return b.String()
}

func writeProblem(b *strings.Builder, input Input) {
	fmt.Fprintf(b, "Problem: %s\n", input.Problem.Title)
	fmt.Fprintf(b, "Difficulty: %s\n", input.Problem.Difficulty)
	fmt.Fprintf(b, "Description: %s\n", input.Problem.Description)

	patterns := input.Problem.Patterns()
	if len(patterns) > 0 {
		names := make([]string, len(patterns))
		for i, p := range patterns {
			names[i] = p.Name
		}
		fmt.Fprintf(b, "Patterns: %s\n", strings.Join(names, ", "))
	}
}

func writePhase(b *strings.Builder, input Input) {
	fmt.Fprintf(b, "Phase: %s\n", input.Phase.Title)
}

// buildPriorList formats prior prompts for deduplication, keeping only
// the most recent max entries.
func buildPriorList(prompts []string, max int) string {
	if len(prompts) == 0 {
		return "None"
	}

	if max > 0 && len(prompts) > max {
		prompts = prompts[len(prompts)-max:]
	}

	var b strings.Builder
	for i, p := range prompts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildMistakes formats recent mistakes, keeping only the most recent
// max entries.
func buildMistakes(mistakes []string, max int) string {
	if len(mistakes) == 0 {
		return "None"
	}

	if max > 0 && len(mistakes) > max {
		mistakes = mistakes[len(mistakes)-max:]
	}

	var b strings.Builder
	for i, m := range mistakes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, m)
	}
	return strings.TrimRight(b.String(), "\n")
}

package evaluation

import (
	"bytes"
	"strings"
	"text/template"
)

var promptFuncs = template.FuncMap{
	"join": func(ss []string) string { return strings.Join(ss, ", ") },
}

const probeEvalSystemPrompt = `You are a Socratic coding-interview coach grading a learner's free-form explanation.

Instructions:
- Grade only what the explanation demonstrates, not what the learner might know.
- "strong": the explanation is correct and captures the key idea.
- "partial": on the right track but missing a key point or imprecise.
- "unclear": too vague or confused to judge.
- "incorrect": the explanation contains a real misconception.
- Keep the commentary to two sentences, addressed directly to the learner. Point at what to refine, never hand out the full answer.`

var probeEvalUserTemplate = template.Must(template.New("probe-eval").Parse(`Problem: {{.ProblemTitle}}
Phase: {{.PhaseTitle}}
Question asked: {{.ProbePrompt}}
Learner's explanation: {{.ResponseText}}`))

const explainSystemPrompt = `You are a Socratic coding-interview coach giving feedback on a graded multiple-choice answer.

Instructions:
- The grading is already done; never contradict the given verdict.
- For a correct answer, reinforce the key idea in one or two sentences.
- For a wrong answer, explain the misconception behind the chosen options and why the correct ones hold, without solving the overall problem.
- Plain ASCII text, inline code in backticks, three sentences at most.`

var explainUserTemplate = template.Must(template.New("explain").Funcs(promptFuncs).Parse(`Problem: {{.ProblemTitle}}
Phase: {{.PhaseTitle}}
Question: {{.Prompt}}
Options:
{{range .Options}}- {{.ID}}: {{.Text}}
{{end}}Correct options: {{join .CorrectOptionIDs}}
Learner selected: {{join .SelectedOptionIDs}}
Verdict: {{if .Correct}}correct{{else}}incorrect{{end}}`))

const respondSystemPrompt = `You are a Socratic coding-interview coach. The learner has asked you a question mid-session.

Instructions:
- Answer helpfully but never give away the solution to the problem being coached. Redirect solution-fishing questions with a guiding counter-question.
- Plain ASCII text, inline code in backticks.
- Keep the reply short: three or four sentences at most.`

var respondUserTemplate = template.Must(template.New("respond").Parse(`Problem: {{.ProblemTitle}}
Phase: {{.PhaseTitle}}
{{if .Transcript}}Recent conversation:
{{.Transcript}}
{{end}}Learner's question: {{.QuestionText}}`))

const summarySystemPrompt = `You are a Socratic coding-interview coach. The learner has just finished a coaching phase.

Instructions:
- Write a short remark recapping what the phase established and framing what the next phase will explore.
- If this was the final phase, congratulate the learner and recap the whole approach instead.
- Plain ASCII text, two or three sentences, warm but not gushing.`

var summaryUserTemplate = template.Must(template.New("summary").Parse(`Problem: {{.ProblemTitle}}
Completed phase: {{.CompletedTitle}}
Questions answered correctly: {{.CorrectCount}} of {{.QuestionCount}}
{{if .NextTitle}}Next phase: {{.NextTitle}}{{else}}This was the final phase.{{end}}`))

func execTemplate(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package service

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// detailedFeedbackTemplate renders the narrative summary from the graded
// result. Tiers follow the overall score.
const detailedFeedbackTemplate = `{{- if ge .OverallScore 80 -}}
Excellent response! You demonstrated strong communication skills and provided relevant content.
{{- else if ge .OverallScore 60 -}}
Good response with room for improvement. Consider adding more specific examples and improving organization.
{{- else -}}
Your response shows effort, but could benefit from better structure and more detailed content.
{{- end -}}
{{- if .Strengths }} Strengths noted: {{ join "; " .Strengths }}.{{ end -}}
{{- if .Weaknesses }} Areas to work on: {{ join "; " .Weaknesses }}.{{ end -}}`

type FeedbackGenerator struct {
	detailed *template.Template
}

func NewFeedbackGenerator() (*FeedbackGenerator, error) {
	tmpl, err := template.New("detailed_feedback").
		Funcs(sprig.TxtFuncMap()).
		Parse(detailedFeedbackTemplate)
	if err != nil {
		return nil, err
	}
	return &FeedbackGenerator{detailed: tmpl}, nil
}

// DetailedFeedback renders the narrative for a graded response.
func (g *FeedbackGenerator) DetailedFeedback(result *ScoreResult) string {
	var sb strings.Builder
	if err := g.detailed.Execute(&sb, result); err != nil {
		// template data is fully under our control, failure means a bug
		return "Your response has been scored."
	}
	return sb.String()
}

// ImprovementTips derives targeted advice from the graded metrics.
func (g *FeedbackGenerator) ImprovementTips(result *ScoreResult) string {
	var tips []string

	if result.CommunicationClarity < 70 {
		tips = append(tips, "Practice speaking more clearly and reduce filler words")
	}
	if result.StructureOrganization < 70 {
		tips = append(tips, "Use the STAR method (Situation, Task, Action, Result) to structure your responses")
	}
	if result.WordCount < 50 {
		tips = append(tips, "Provide more detailed responses with specific examples")
	}
	if result.FillerWordsCount > 5 {
		tips = append(tips, "Practice reducing filler words like 'um', 'uh', and 'like'")
	}

	if len(tips) == 0 {
		tips = append(tips, "Continue practicing to maintain your strong performance")
	}

	return strings.Join(tips, "; ")
}

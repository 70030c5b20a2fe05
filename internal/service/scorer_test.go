package service

import (
	"context"
	"testing"

	"github.com/hireloop/interview-api/config"
	"github.com/hireloop/interview-api/internal/constants"
)

func TestAnalyzeTextBasicMetrics(t *testing.T) {
	metrics := AnalyzeText("First I gathered the requirements. Then I built a prototype. Finally I shipped it.")

	if metrics.WordCount != 14 {
		t.Errorf("expected 14 words, got %d", metrics.WordCount)
	}
	if metrics.SentenceCount != 3 {
		t.Errorf("expected 3 sentences, got %d", metrics.SentenceCount)
	}
	if !metrics.HasIntroduction {
		t.Error("expected introduction marker to be detected")
	}
	if !metrics.HasBody {
		t.Error("expected body marker to be detected")
	}
	if !metrics.HasConclusion {
		t.Error("expected conclusion marker to be detected")
	}
	// 30 + 40 + 30 + 10 bonus, capped at 100
	if metrics.StructureScore != 100 {
		t.Errorf("expected structure score 100, got %d", metrics.StructureScore)
	}
}

func TestAnalyzeTextFillerWords(t *testing.T) {
	metrics := AnalyzeText("Um I think like the answer is um maybe correct.")

	// um x2, like x1
	if metrics.FillerWordsCount != 3 {
		t.Errorf("expected 3 filler words, got %d", metrics.FillerWordsCount)
	}
	if metrics.FillerWordsRatio <= 0 {
		t.Error("expected positive filler ratio")
	}
	if metrics.NegativeConfidence == 0 {
		t.Error("expected maybe to register as a negative confidence indicator")
	}
}

func TestAnalyzeTextConfidenceIndicators(t *testing.T) {
	metrics := AnalyzeText("I am confident and absolutely certain this approach works.")

	if metrics.PositiveConfidence < 3 {
		t.Errorf("expected at least 3 positive indicators, got %d", metrics.PositiveConfidence)
	}
	if metrics.NegativeConfidence != 0 {
		t.Errorf("expected no negative indicators, got %d", metrics.NegativeConfidence)
	}
}

func TestAnalyzeTextEmptyInput(t *testing.T) {
	metrics := AnalyzeText("")

	if metrics.WordCount != 0 {
		t.Errorf("expected 0 words, got %d", metrics.WordCount)
	}
	if metrics.ReadabilityScore != 50.0 {
		t.Errorf("expected neutral readability 50, got %f", metrics.ReadabilityScore)
	}
}

func TestFleschReadingEase(t *testing.T) {
	tests := []struct {
		name      string
		words     int
		sentences int
		want      float64
	}{
		{"empty", 0, 0, 50.0},
		{"short sentences", 10, 5, 206.835 - 1.015*2},
		{"very long sentence", 500, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fleschReadingEase(tt.words, tt.sentences)
			if got != tt.want {
				t.Errorf("fleschReadingEase(%d, %d) = %f, want %f", tt.words, tt.sentences, got, tt.want)
			}
		})
	}
}

func TestFallbackScoresLengthHeuristic(t *testing.T) {
	tests := []struct {
		name     string
		words    int
		wantBase int
	}{
		{"very short", 5, 40},
		{"medium", 30, 60},
		{"long", 100, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := ""
			for i := 0; i < tt.words; i++ {
				text += "word "
			}

			scores := fallbackScores(text, constants.QuestionTypeBehavioral)
			if scores.ContentRelevance != tt.wantBase {
				t.Errorf("expected content relevance %d, got %d", tt.wantBase, scores.ContentRelevance)
			}
			if scores.CommunicationClarity != tt.wantBase-5 {
				t.Errorf("expected clarity %d, got %d", tt.wantBase-5, scores.CommunicationClarity)
			}
			if scores.StructureOrganization != tt.wantBase-10 {
				t.Errorf("expected structure %d, got %d", tt.wantBase-10, scores.StructureOrganization)
			}
			if scores.TechnicalAccuracy != nil {
				t.Error("expected no technical score for behavioral question")
			}
		})
	}
}

func TestFallbackScoresTechnicalQuestion(t *testing.T) {
	scores := fallbackScores("a reasonably sized answer about database indexes and query planning", constants.QuestionTypeTechnical)
	if scores.TechnicalAccuracy == nil {
		t.Fatal("expected technical score for technical question")
	}
	if *scores.TechnicalAccuracy != scores.ContentRelevance {
		t.Errorf("expected technical score %d to match base, got %d", scores.ContentRelevance, *scores.TechnicalAccuracy)
	}
}

func TestScoringServiceFallbackPath(t *testing.T) {
	// no endpoint configured, so only the local heuristic runs
	svc := NewScoringService(config.ScoringConfig{ModelVersion: "lexical-1.0"})

	text := "First I profiled the service to find the slow query. " +
		"Then I added a covering index and rewrote the join. " +
		"Finally the endpoint latency dropped by ninety percent overall."

	result := svc.Score(context.Background(), text, "Describe a performance problem you solved.", constants.QuestionTypeBehavioral)

	if result.OverallScore <= 0 || result.OverallScore > 100 {
		t.Errorf("overall score out of range: %d", result.OverallScore)
	}
	if result.WordCount == 0 {
		t.Error("expected word count to be recorded")
	}
	if result.ModelVersion != "lexical-1.0" {
		t.Errorf("unexpected model version %q", result.ModelVersion)
	}
	if len(result.Strengths) == 0 || len(result.Suggestions) == 0 {
		t.Error("expected fallback advice lists to be populated")
	}
	if result.TechnicalAccuracyScore != nil {
		t.Error("behavioral question must not carry a technical score")
	}
}

func TestScoringServiceEmptyText(t *testing.T) {
	svc := NewScoringService(config.ScoringConfig{ModelVersion: "lexical-1.0"})

	result := svc.Score(context.Background(), "   ", "Any question", constants.QuestionTypeBehavioral)

	if result.OverallScore != 0 {
		t.Errorf("expected zero overall score for empty text, got %d", result.OverallScore)
	}
	if result.WordCount != 0 {
		t.Errorf("expected zero word count, got %d", result.WordCount)
	}
}

func TestBlendFillerPenaltyAndStructureBonus(t *testing.T) {
	svc := NewScoringService(config.ScoringConfig{ModelVersion: "lexical-1.0"})

	rubric := &RubricScores{
		ContentRelevance:      80,
		CommunicationClarity:  80,
		StructureOrganization: 80,
	}
	metrics := TextMetrics{
		FillerWordsRatio: 0.5, // capped at a 20 point penalty
		StructureScore:   100, // (100-70)*0.3 = +9
	}

	result := svc.blend(rubric, metrics, constants.QuestionTypeBehavioral)

	if result.CommunicationClarity != 60 {
		t.Errorf("expected clarity 60 after capped penalty, got %d", result.CommunicationClarity)
	}
	if result.StructureOrganization != 89 {
		t.Errorf("expected structure 89 after bonus, got %d", result.StructureOrganization)
	}
	want := (80 + 60 + 89) / 3
	if result.OverallScore != want {
		t.Errorf("expected overall %d, got %d", want, result.OverallScore)
	}
}

func TestBlendTechnicalScoreOnlyForTechnical(t *testing.T) {
	svc := NewScoringService(config.ScoringConfig{ModelVersion: "lexical-1.0"})

	technical := 90
	rubric := &RubricScores{
		ContentRelevance:      70,
		CommunicationClarity:  70,
		StructureOrganization: 70,
		TechnicalAccuracy:     &technical,
	}

	behavioral := svc.blend(rubric, TextMetrics{StructureScore: 70}, constants.QuestionTypeBehavioral)
	if behavioral.TechnicalAccuracyScore != nil {
		t.Error("technical score must be dropped for non-technical questions")
	}

	tech := svc.blend(rubric, TextMetrics{StructureScore: 70}, constants.QuestionTypeTechnical)
	if tech.TechnicalAccuracyScore == nil {
		t.Fatal("expected technical score to be kept")
	}
	want := (70 + 70 + 70 + 90) / 4
	if tech.OverallScore != want {
		t.Errorf("expected overall %d including technical, got %d", want, tech.OverallScore)
	}
}

package service

import (
	"strings"
	"testing"
)

func newTestFeedbackGenerator(t *testing.T) *FeedbackGenerator {
	t.Helper()
	gen, err := NewFeedbackGenerator()
	if err != nil {
		t.Fatalf("NewFeedbackGenerator returned error: %v", err)
	}
	return gen
}

func TestDetailedFeedbackTiers(t *testing.T) {
	gen := newTestFeedbackGenerator(t)

	tests := []struct {
		name  string
		score int
		want  string
	}{
		{"excellent", 85, "Excellent response"},
		{"good", 65, "Good response with room for improvement"},
		{"needs work", 45, "could benefit from better structure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feedback := gen.DetailedFeedback(&ScoreResult{OverallScore: tt.score})
			if !strings.Contains(feedback, tt.want) {
				t.Errorf("feedback %q does not contain %q", feedback, tt.want)
			}
		})
	}
}

func TestDetailedFeedbackIncludesAdvice(t *testing.T) {
	gen := newTestFeedbackGenerator(t)

	feedback := gen.DetailedFeedback(&ScoreResult{
		OverallScore: 85,
		Strengths:    []string{"Clear delivery", "Good examples"},
		Weaknesses:   []string{"Weak conclusion"},
	})

	if !strings.Contains(feedback, "Clear delivery; Good examples") {
		t.Errorf("expected joined strengths in feedback, got %q", feedback)
	}
	if !strings.Contains(feedback, "Weak conclusion") {
		t.Errorf("expected weaknesses in feedback, got %q", feedback)
	}
}

func TestImprovementTipsRules(t *testing.T) {
	gen := newTestFeedbackGenerator(t)

	tests := []struct {
		name   string
		result ScoreResult
		want   []string
	}{
		{
			name:   "low clarity",
			result: ScoreResult{CommunicationClarity: 60, StructureOrganization: 80, WordCount: 100},
			want:   []string{"reduce filler words"},
		},
		{
			name:   "low structure",
			result: ScoreResult{CommunicationClarity: 80, StructureOrganization: 60, WordCount: 100},
			want:   []string{"STAR method"},
		},
		{
			name:   "short answer",
			result: ScoreResult{CommunicationClarity: 80, StructureOrganization: 80, WordCount: 20},
			want:   []string{"more detailed responses"},
		},
		{
			name:   "many fillers",
			result: ScoreResult{CommunicationClarity: 80, StructureOrganization: 80, WordCount: 100, FillerWordsCount: 8},
			want:   []string{"'um', 'uh', and 'like'"},
		},
		{
			name:   "strong answer",
			result: ScoreResult{CommunicationClarity: 90, StructureOrganization: 90, WordCount: 200},
			want:   []string{"maintain your strong performance"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tips := gen.ImprovementTips(&tt.result)
			for _, want := range tt.want {
				if !strings.Contains(tips, want) {
					t.Errorf("tips %q missing %q", tips, want)
				}
			}
		})
	}
}

func TestImprovementTipsCombineMultipleRules(t *testing.T) {
	gen := newTestFeedbackGenerator(t)

	tips := gen.ImprovementTips(&ScoreResult{
		CommunicationClarity:  50,
		StructureOrganization: 50,
		WordCount:             10,
		FillerWordsCount:      9,
	})

	if got := strings.Count(tips, ";"); got != 3 {
		t.Errorf("expected 4 tips joined by 3 separators, got %d in %q", got, tips)
	}
}

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/hireloop/interview-api/internal/dto"
)

// Import rows that fail validation never reach the database, so the parse
// and per-row error reporting can be tested without one.
func TestImportCSVRowValidation(t *testing.T) {
	svc := &QuestionService{}

	csvData := strings.Join([]string{
		"id,title,content,difficulty_level,question_type,expected_duration_minutes",
		",,Tell me about a difficult project you led.,medium,behavioral,5",
		",Describe your biggest technical challenge.,,medium,technical,5",
		",Describe your biggest technical challenge.,Walk through the hardest bug you have fixed.,extreme,technical,5",
		",Describe your biggest technical challenge.,Walk through the hardest bug you have fixed.,hard,quiz,5",
		",Describe your biggest technical challenge.,Walk through the hardest bug you have fixed.,hard,technical,soon",
	}, "\n")

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData), 1)
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}

	if result.TotalRows != 5 {
		t.Errorf("TotalRows = %d, want 5", result.TotalRows)
	}
	if result.ImportedCount != 0 {
		t.Errorf("ImportedCount = %d, want 0", result.ImportedCount)
	}
	if len(result.Errors) != 5 {
		t.Fatalf("got %d errors, want 5: %v", len(result.Errors), result.Errors)
	}

	wantFragments := []string{
		"Row 2: missing required field: title",
		"Row 3: missing required field: content",
		"Row 4: invalid difficulty_level: extreme",
		"Row 5: invalid question_type: quiz",
		"Row 6: invalid expected_duration_minutes: soon",
	}
	for i, want := range wantFragments {
		if result.Errors[i] != want {
			t.Errorf("Errors[%d] = %q, want %q", i, result.Errors[i], want)
		}
	}
}

func TestImportCSVEmptyInput(t *testing.T) {
	svc := &QuestionService{}

	if _, err := svc.ImportCSV(context.Background(), strings.NewReader(""), 1); err == nil {
		t.Error("ImportCSV() with no header should fail")
	}
}

func TestImportCSVHeaderCaseInsensitive(t *testing.T) {
	svc := &QuestionService{}

	csvData := "ID,Title,Content,DIFFICULTY_LEVEL,Question_Type\n" +
		",,Some long enough question content here.,medium,behavioral\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData), 1)
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}

	// The row fails on its empty title, not on unrecognized columns.
	if len(result.Errors) != 1 || result.Errors[0] != "Row 2: missing required field: title" {
		t.Errorf("Errors = %v, want a single missing-title error", result.Errors)
	}
}

func TestQuestionListCacheKey(t *testing.T) {
	active := true
	categoryID := uint(7)

	keyA := questionListCacheKey(dto.QuestionFilters{
		CategoryID:      &categoryID,
		DifficultyLevel: "medium",
		IsActive:        &active,
	}, 1, 20)
	keyB := questionListCacheKey(dto.QuestionFilters{
		CategoryID:      &categoryID,
		DifficultyLevel: "medium",
		IsActive:        &active,
	}, 2, 20)
	keyC := questionListCacheKey(dto.QuestionFilters{
		DifficultyLevel: "medium",
		IsActive:        &active,
	}, 1, 20)

	if keyA == keyB {
		t.Error("different pages must produce different cache keys")
	}
	if keyA == keyC {
		t.Error("different filters must produce different cache keys")
	}
}

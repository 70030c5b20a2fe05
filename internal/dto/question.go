package dto

import "time"

type CategoryCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
}

type CategoryUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
	IsActive    *bool   `json:"is_active"`
}

type CategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type QuestionCreateRequest struct {
	Title                   string `json:"title" binding:"required,min=10,max=255"`
	Content                 string `json:"content" binding:"required,min=20"`
	DifficultyLevel         string `json:"difficulty_level" binding:"required,oneof=easy medium hard"`
	QuestionType            string `json:"question_type" binding:"required,oneof=behavioral technical situational"`
	ExpectedDurationMinutes int    `json:"expected_duration_minutes" binding:"omitempty,min=1,max=60"`
	ScoringCriteria         string `json:"scoring_criteria"`
	SampleAnswer            string `json:"sample_answer"`
	Keywords                string `json:"keywords"`
	CategoryIDs             []uint `json:"category_ids"`
}

type QuestionUpdateRequest struct {
	Title                   *string `json:"title" binding:"omitempty,min=10,max=255"`
	Content                 *string `json:"content" binding:"omitempty,min=20"`
	DifficultyLevel         *string `json:"difficulty_level" binding:"omitempty,oneof=easy medium hard"`
	QuestionType            *string `json:"question_type" binding:"omitempty,oneof=behavioral technical situational"`
	ExpectedDurationMinutes *int    `json:"expected_duration_minutes" binding:"omitempty,min=1,max=60"`
	ScoringCriteria         *string `json:"scoring_criteria"`
	SampleAnswer            *string `json:"sample_answer"`
	Keywords                *string `json:"keywords"`
	IsActive                *bool   `json:"is_active"`
	CategoryIDs             []uint  `json:"category_ids"`
}

type QuestionResponse struct {
	ID                      uint               `json:"id"`
	Title                   string             `json:"title"`
	Content                 string             `json:"content"`
	DifficultyLevel         string             `json:"difficulty_level"`
	QuestionType            string             `json:"question_type"`
	ExpectedDurationMinutes int                `json:"expected_duration_minutes"`
	ScoringCriteria         string             `json:"scoring_criteria,omitempty"`
	SampleAnswer            string             `json:"sample_answer,omitempty"`
	Keywords                string             `json:"keywords,omitempty"`
	IsActive                bool               `json:"is_active"`
	UsageCount              int                `json:"usage_count"`
	AverageScore            *int               `json:"average_score,omitempty"`
	CreatedAt               time.Time          `json:"created_at"`
	Categories              []CategoryResponse `json:"categories"`
}

type QuestionListResponse struct {
	Questions  []QuestionResponse `json:"questions"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	TotalPages int                `json:"total_pages"`
}

// QuestionFilters narrows list queries; nil/zero values mean no filter.
type QuestionFilters struct {
	CategoryID      *uint
	DifficultyLevel string
	QuestionType    string
	IsActive        *bool
	Search          string
}

type ImportResult struct {
	ImportedCount int      `json:"imported_count"`
	TotalRows     int      `json:"total_rows"`
	Errors        []string `json:"errors"`
}

type QuestionStatistics struct {
	TotalQuestions         int64            `json:"total_questions"`
	ActiveQuestions        int64            `json:"active_questions"`
	InactiveQuestions      int64            `json:"inactive_questions"`
	DifficultyDistribution map[string]int64 `json:"difficulty_distribution"`
	TypeDistribution       map[string]int64 `json:"type_distribution"`
	PopularQuestions       []PopularQuestion `json:"popular_questions"`
	TotalCategories        int64            `json:"total_categories"`
}

type PopularQuestion struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	UsageCount int    `json:"usage_count"`
}

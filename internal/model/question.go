package model

import (
	"gorm.io/gorm"
)

// Category groups questions for filtering and reporting.
type Category struct {
	gorm.Model
	Name        string `gorm:"column:name;size:100;unique;not null"`
	Description string `gorm:"column:description;type:text"`
	Color       string `gorm:"column:color;size:7;default:#007bff"`
	IsActive    bool   `gorm:"column:is_active;default:true;not null"`

	Questions []Question `gorm:"many2many:question_categories;"`
}

type Question struct {
	gorm.Model
	Title                   string `gorm:"column:title;size:255;not null"`
	Content                 string `gorm:"column:content;type:text;not null"`
	DifficultyLevel         string `gorm:"column:difficulty_level;size:20;not null"`
	QuestionType            string `gorm:"column:question_type;size:50;not null"`
	ExpectedDurationMinutes int    `gorm:"column:expected_duration_minutes;default:5"`

	// Scoring guidance
	ScoringCriteria string `gorm:"column:scoring_criteria;type:text"`
	SampleAnswer    string `gorm:"column:sample_answer;type:text"`
	Keywords        string `gorm:"column:keywords;type:text"` // comma-separated

	IsActive     bool `gorm:"column:is_active;default:true;not null"`
	UsageCount   int  `gorm:"column:usage_count;default:0;not null"`
	AverageScore *int `gorm:"column:average_score"`

	CreatedBy *uint `gorm:"column:created_by"`

	Categories []Category `gorm:"many2many:question_categories;"`
}

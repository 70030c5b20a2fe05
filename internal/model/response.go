package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Response stores one submitted answer, text or audio, and its processing state.
type Response struct {
	gorm.Model
	UserID     uint `gorm:"column:user_id;not null;index"`
	QuestionID uint `gorm:"column:question_id;not null;index"`

	OriginalText    string  `gorm:"column:original_text;type:text"`
	ProcessedText   string  `gorm:"column:processed_text;type:text"`
	AudioFilePath   string  `gorm:"column:audio_file_path;size:500"`
	DurationSeconds float64 `gorm:"column:response_duration_seconds"`

	TranscriptionConfidence float64 `gorm:"column:transcription_confidence"`
	ProcessingTimeMs        int64   `gorm:"column:processing_time_ms"`

	Status       string     `gorm:"column:status;size:20;default:pending;not null"`
	ErrorMessage string     `gorm:"column:error_message;type:text"`
	ProcessedAt  *time.Time `gorm:"column:processed_at"`

	User     User     `gorm:"foreignKey:UserID"`
	Question Question `gorm:"foreignKey:QuestionID"`
	Score    *Score   `gorm:"foreignKey:ResponseID"`
}

// Score holds the full grading of a response. Advice lists live in JSON
// columns since they are read back as documents, never queried by element.
type Score struct {
	gorm.Model
	ResponseID uint `gorm:"column:response_id;not null;index"`

	// 0-100 rubric scores; technical only applies to technical questions
	OverallScore           int  `gorm:"column:overall_score;not null"`
	ContentRelevanceScore  int  `gorm:"column:content_relevance_score;not null"`
	CommunicationClarity   int  `gorm:"column:communication_clarity_score;not null"`
	StructureOrganization  int  `gorm:"column:structure_organization_score;not null"`
	TechnicalAccuracyScore *int `gorm:"column:technical_accuracy_score"`

	SentimentScore       float64 `gorm:"column:sentiment_score"`
	ConfidenceIndicators int     `gorm:"column:confidence_indicators;default:0"`
	FillerWordsCount     int     `gorm:"column:filler_words_count;default:0"`
	WordCount            int     `gorm:"column:word_count"`
	UniqueWordsCount     int     `gorm:"column:unique_words_count"`

	Strengths   datatypes.JSON `gorm:"column:strengths"`
	Weaknesses  datatypes.JSON `gorm:"column:weaknesses"`
	Suggestions datatypes.JSON `gorm:"column:suggestions"`

	DetailedFeedback string `gorm:"column:detailed_feedback;type:text"`
	ImprovementTips  string `gorm:"column:improvement_tips;type:text"`

	ModelVersion string `gorm:"column:scoring_model_version;size:50"`
}

package dto

import "time"

type SubmitTextRequest struct {
	QuestionID   uint   `json:"question_id" binding:"required"`
	TextResponse string `json:"text_response" binding:"required"`
}

type ScoreBreakdown struct {
	OverallScore           int     `json:"overall_score"`
	ContentRelevanceScore  int     `json:"content_relevance_score"`
	CommunicationClarity   int     `json:"communication_clarity_score"`
	StructureOrganization  int     `json:"structure_organization_score"`
	TechnicalAccuracyScore *int    `json:"technical_accuracy_score"`
	SentimentScore         float64 `json:"sentiment_score"`
	ConfidenceIndicators   int     `json:"confidence_indicators"`
	FillerWordsCount       int     `json:"filler_words_count"`
	WordCount              int     `json:"word_count"`
	UniqueWordsCount       int     `json:"unique_words_count"`
}

type FeedbackDetail struct {
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Suggestions      []string `json:"suggestions"`
	DetailedFeedback string   `json:"detailed_feedback,omitempty"`
	ImprovementTips  string   `json:"improvement_tips,omitempty"`
}

type ResponseAnalysis struct {
	ResponseID              uint           `json:"response_id"`
	QuestionID              uint           `json:"question_id"`
	QuestionTitle           string         `json:"question_title"`
	OriginalText            string         `json:"original_text,omitempty"`
	ProcessedText           string         `json:"processed_text,omitempty"`
	DurationSeconds         float64        `json:"response_duration_seconds,omitempty"`
	TranscriptionConfidence float64        `json:"transcription_confidence,omitempty"`
	Status                  string         `json:"status"`
	ProcessedAt             *time.Time     `json:"processed_at,omitempty"`
	ModelVersion            string         `json:"scoring_model_version,omitempty"`
	Scores                  ScoreBreakdown `json:"scores"`
	Feedback                FeedbackDetail `json:"feedback"`
}

type ResponseHistory struct {
	Responses           []ResponseAnalysis `json:"responses"`
	TotalResponses      int64              `json:"total_responses"`
	AverageOverallScore *float64           `json:"average_overall_score,omitempty"`
	ImprovementTrend    string             `json:"improvement_trend,omitempty"` // improving, declining, stable
	Page                int                `json:"page"`
	PerPage             int                `json:"per_page"`
}

// PlatformStatistics is the admin dashboard aggregate.
type PlatformStatistics struct {
	Questions QuestionStatistics `json:"questions"`
	Users     UserStatistics     `json:"users"`
	Responses ResponseStatistics `json:"responses"`
}

type UserStatistics struct {
	TotalUsers       int64 `json:"total_users"`
	ActiveUsers      int64 `json:"active_users"`
	AdminUsers       int64 `json:"admin_users"`
	NewUsersThisWeek int64 `json:"new_users_this_week"`
}

// PerformanceAnalytics tracks scoring outcomes over a trailing day window.
type PerformanceAnalytics struct {
	DateRange               AnalyticsDateRange        `json:"date_range"`
	DailyResponses          []DailyResponseCount      `json:"daily_responses"`
	DailyAverageScores      []DailyAverageScore       `json:"daily_average_scores"`
	QuestionTypePerformance []QuestionTypePerformance `json:"question_type_performance"`
	DifficultyPerformance   []DifficultyPerformance   `json:"difficulty_performance"`
}

type AnalyticsDateRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Days      int       `json:"days"`
}

type DailyResponseCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type DailyAverageScore struct {
	Date     string  `json:"date"`
	AvgScore float64 `json:"avg_score"`
}

type QuestionTypePerformance struct {
	QuestionType  string  `json:"question_type"`
	AvgScore      float64 `json:"avg_score"`
	ResponseCount int64   `json:"response_count"`
}

type DifficultyPerformance struct {
	DifficultyLevel string  `json:"difficulty_level"`
	AvgScore        float64 `json:"avg_score"`
	ResponseCount   int64   `json:"response_count"`
}

type ResponseStatistics struct {
	TotalResponses     int64   `json:"total_responses"`
	CompletedResponses int64   `json:"completed_responses"`
	PendingResponses   int64   `json:"pending_responses"`
	ResponsesThisWeek  int64   `json:"responses_this_week"`
	AverageScore       float64 `json:"average_score"`
}

package repository

import (
	"context"
	"math"
	"time"

	"github.com/hireloop/interview-api/internal/constants"
	"github.com/hireloop/interview-api/internal/dto"
	"github.com/hireloop/interview-api/internal/model"
	ctxutil "github.com/hireloop/interview-api/pkg/context"
	"github.com/hireloop/interview-api/pkg/logger"
	"gorm.io/gorm"
)

type ResponseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

func (r *ResponseRepository) Create(ctx context.Context, response *model.Response) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	start := time.Now()
	if err := r.db.WithContext(ctx).Create(response).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create response").
			Uint("question_id", response.QuestionID).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Response created").
		Uint("response_id", response.ID).
		Uint("question_id", response.QuestionID).
		String("status", response.Status).
		Log()

	return nil
}

// GetByIDForUser loads a response with its score only when it belongs to userID.
func (r *ResponseRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*model.Response, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByIDForUser")

	var response model.Response
	result := r.db.WithContext(ctx).
		Preload("Score").
		Preload("Question").
		Where("id = ? AND user_id = ?", id, userID).
		First(&response)
	if result.Error != nil {
		return nil, result.Error
	}
	return &response, nil
}

func (r *ResponseRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]model.Response, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "ListByUser")

	var responses []model.Response
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Response{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Score").
		Preload("Question").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&responses).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list responses").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, 0, err
	}

	return responses, total, nil
}

// RecentScoresByUser returns the newest completed overall scores, newest first.
func (r *ResponseRepository) RecentScoresByUser(ctx context.Context, userID uint, limit int) ([]int, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "RecentScoresByUser")

	var scores []int
	err := r.db.WithContext(ctx).Model(&model.Score{}).
		Joins("JOIN responses ON responses.id = scores.response_id").
		Where("responses.user_id = ? AND responses.status = ?", userID, constants.ResponseStatusCompleted).
		Order("scores.created_at DESC").
		Limit(limit).
		Pluck("scores.overall_score", &scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// SaveTranscription stores the audio transcription outcome on the response.
func (r *ResponseRepository) SaveTranscription(ctx context.Context, id uint, originalText, processedText string, confidence, durationSeconds float64) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "SaveTranscription")

	return r.db.WithContext(ctx).Model(&model.Response{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"original_text":             originalText,
			"processed_text":            processedText,
			"transcription_confidence":  confidence,
			"response_duration_seconds": durationSeconds,
		}).Error
}

func (r *ResponseRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdateStatus")

	return r.db.WithContext(ctx).Model(&model.Response{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *ResponseRepository) MarkCompleted(ctx context.Context, id uint, processedText string, processingTime time.Duration) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "MarkCompleted")

	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.Response{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":             constants.ResponseStatusCompleted,
			"processed_text":     processedText,
			"processing_time_ms": processingTime.Milliseconds(),
			"processed_at":       &now,
		}).Error
}

func (r *ResponseRepository) MarkFailed(ctx context.Context, id uint, reason string) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "MarkFailed")

	logger.WarnWithContext(ctx, "Response processing failed").
		Uint("response_id", id).
		String("reason", reason).
		Log()

	return r.db.WithContext(ctx).Model(&model.Response{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        constants.ResponseStatusFailed,
			"error_message": reason,
		}).Error
}

func (r *ResponseRepository) CreateScore(ctx context.Context, score *model.Score) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "CreateScore")

	if err := r.db.WithContext(ctx).Create(score).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to store score").
			Uint("response_id", score.ResponseID).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Score stored").
		Uint("response_id", score.ResponseID).
		Int("overall_score", score.OverallScore).
		Log()

	return nil
}

// CountCompletedForQuestion supports the running average on questions.
func (r *ResponseRepository) CountCompletedForQuestion(ctx context.Context, questionID uint) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "CountCompletedForQuestion")

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Response{}).
		Where("question_id = ? AND status = ?", questionID, constants.ResponseStatusCompleted).
		Count(&count).Error
	return count, err
}

// Statistics aggregates response counters for the admin dashboard.
func (r *ResponseRepository) Statistics(ctx context.Context, since time.Time) (*dto.ResponseStatistics, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "Statistics")

	stats := &dto.ResponseStatistics{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Response{}).Count(&stats.TotalResponses).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Response{}).
		Where("status = ?", constants.ResponseStatusCompleted).
		Count(&stats.CompletedResponses).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Response{}).
		Where("status IN ?", []string{constants.ResponseStatusPending, constants.ResponseStatusProcessing}).
		Count(&stats.PendingResponses).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Response{}).
		Where("created_at >= ?", since).
		Count(&stats.ResponsesThisWeek).Error; err != nil {
		return nil, err
	}

	var average *float64
	err := db.Model(&model.Score{}).
		Select("AVG(overall_score)").
		Scan(&average).Error
	if err != nil {
		return nil, err
	}
	if average != nil {
		stats.AverageScore = *average
	}

	return stats, nil
}

type dailyCountRow struct {
	Date  time.Time
	Count int64
}

type dailyScoreRow struct {
	Date     time.Time
	AvgScore float64
}

type groupScoreRow struct {
	Key           string
	AvgScore      float64
	ResponseCount int64
}

// Performance aggregates date-bucketed counts and averages since the given
// time, for the admin analytics view. Only scored responses feed the
// average buckets.
func (r *ResponseRepository) Performance(ctx context.Context, since time.Time) (*dto.PerformanceAnalytics, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "Performance")
	db := r.db.WithContext(ctx)

	var dailyCounts []dailyCountRow
	err := db.Model(&model.Response{}).
		Select("DATE(created_at) AS date, COUNT(id) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date").
		Scan(&dailyCounts).Error
	if err != nil {
		return nil, err
	}

	var dailyScores []dailyScoreRow
	err = db.Model(&model.Score{}).
		Select("DATE(responses.created_at) AS date, AVG(scores.overall_score) AS avg_score").
		Joins("JOIN responses ON responses.id = scores.response_id").
		Where("responses.created_at >= ?", since).
		Group("DATE(responses.created_at)").
		Order("date").
		Scan(&dailyScores).Error
	if err != nil {
		return nil, err
	}

	var typeRows []groupScoreRow
	err = db.Model(&model.Score{}).
		Select("questions.question_type AS key, AVG(scores.overall_score) AS avg_score, COUNT(scores.id) AS response_count").
		Joins("JOIN responses ON responses.id = scores.response_id").
		Joins("JOIN questions ON questions.id = responses.question_id").
		Where("responses.created_at >= ?", since).
		Group("questions.question_type").
		Scan(&typeRows).Error
	if err != nil {
		return nil, err
	}

	var difficultyRows []groupScoreRow
	err = db.Model(&model.Score{}).
		Select("questions.difficulty_level AS key, AVG(scores.overall_score) AS avg_score, COUNT(scores.id) AS response_count").
		Joins("JOIN responses ON responses.id = scores.response_id").
		Joins("JOIN questions ON questions.id = responses.question_id").
		Where("responses.created_at >= ?", since).
		Group("questions.difficulty_level").
		Scan(&difficultyRows).Error
	if err != nil {
		return nil, err
	}

	analytics := &dto.PerformanceAnalytics{
		DailyResponses:          make([]dto.DailyResponseCount, 0, len(dailyCounts)),
		DailyAverageScores:      make([]dto.DailyAverageScore, 0, len(dailyScores)),
		QuestionTypePerformance: make([]dto.QuestionTypePerformance, 0, len(typeRows)),
		DifficultyPerformance:   make([]dto.DifficultyPerformance, 0, len(difficultyRows)),
	}
	for _, row := range dailyCounts {
		analytics.DailyResponses = append(analytics.DailyResponses, dto.DailyResponseCount{
			Date:  row.Date.Format("2006-01-02"),
			Count: row.Count,
		})
	}
	for _, row := range dailyScores {
		analytics.DailyAverageScores = append(analytics.DailyAverageScores, dto.DailyAverageScore{
			Date:     row.Date.Format("2006-01-02"),
			AvgScore: roundScore(row.AvgScore),
		})
	}
	for _, row := range typeRows {
		analytics.QuestionTypePerformance = append(analytics.QuestionTypePerformance, dto.QuestionTypePerformance{
			QuestionType:  row.Key,
			AvgScore:      roundScore(row.AvgScore),
			ResponseCount: row.ResponseCount,
		})
	}
	for _, row := range difficultyRows {
		analytics.DifficultyPerformance = append(analytics.DifficultyPerformance, dto.DifficultyPerformance{
			DifficultyLevel: row.Key,
			AvgScore:        roundScore(row.AvgScore),
			ResponseCount:   row.ResponseCount,
		})
	}

	return analytics, nil
}

// roundScore keeps reported averages at two decimal places.
func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}

package repository

import (
	"context"
	"time"

	"github.com/hireloop/interview-api/internal/dto"
	"github.com/hireloop/interview-api/internal/model"
	ctxutil "github.com/hireloop/interview-api/pkg/context"
	"github.com/hireloop/interview-api/pkg/logger"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) GetByID(ctx context.Context, id uint) (*model.Question, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByID")

	var question model.Question
	result := r.db.WithContext(ctx).Preload("Categories").Where("id = ?", id).First(&question)
	if result.Error != nil {
		return nil, result.Error
	}
	return &question, nil
}

func (r *QuestionRepository) Create(ctx context.Context, question *model.Question) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	start := time.Now()
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create question").
			String("title", question.Title).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Question created").
		Uint("question_id", question.ID).
		String("difficulty", question.DifficultyLevel).
		String("type", question.QuestionType).
		Log()

	return nil
}

func (r *QuestionRepository) Update(ctx context.Context, question *model.Question) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Update")

	if err := r.db.WithContext(ctx).Save(question).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to update question").
			Uint("question_id", question.ID).
			Err(err).
			Log()
		return err
	}
	return nil
}

// ReplaceCategories swaps the category association set.
func (r *QuestionRepository) ReplaceCategories(ctx context.Context, question *model.Question, categories []model.Category) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "ReplaceCategories")

	return r.db.WithContext(ctx).Model(question).Association("Categories").Replace(categories)
}

// SoftDelete marks the question inactive; rows stay for response history.
func (r *QuestionRepository) SoftDelete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "SoftDelete")

	result := r.db.WithContext(ctx).Model(&model.Question{}).Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *QuestionRepository) applyFilters(query *gorm.DB, filters dto.QuestionFilters) *gorm.DB {
	if filters.CategoryID != nil {
		query = query.
			Joins("JOIN question_categories qc ON qc.question_id = questions.id").
			Where("qc.category_id = ?", *filters.CategoryID)
	}
	if filters.DifficultyLevel != "" {
		query = query.Where("difficulty_level = ?", filters.DifficultyLevel)
	}
	if filters.QuestionType != "" {
		query = query.Where("question_type = ?", filters.QuestionType)
	}
	if filters.IsActive != nil {
		query = query.Where("questions.is_active = ?", *filters.IsActive)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}
	return query
}

func (r *QuestionRepository) List(ctx context.Context, filters dto.QuestionFilters, limit, offset int) ([]model.Question, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "List")

	var questions []model.Question
	var total int64

	query := r.applyFilters(r.db.WithContext(ctx).Model(&model.Question{}), filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Categories").
		Order("questions.id").
		Limit(limit).Offset(offset).
		Find(&questions).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list questions").
			Int("limit", limit).
			Int("offset", offset).
			Err(err).
			Log()
		return nil, 0, err
	}

	return questions, total, nil
}

// Random returns up to count active questions in random order.
func (r *QuestionRepository) Random(ctx context.Context, count int, difficulty, questionType string) ([]model.Question, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "Random")

	var questions []model.Question
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if difficulty != "" {
		query = query.Where("difficulty_level = ?", difficulty)
	}
	if questionType != "" {
		query = query.Where("question_type = ?", questionType)
	}

	err := query.Preload("Categories").
		Order("RANDOM()").
		Limit(count).
		Find(&questions).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to pick random questions").
			Int("count", count).
			Err(err).
			Log()
		return nil, err
	}

	return questions, nil
}

// IncrementUsage bumps the usage counter atomically.
func (r *QuestionRepository) IncrementUsage(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "IncrementUsage")

	return r.db.WithContext(ctx).Model(&model.Question{}).Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}

// UpdateAverageScore folds a new overall score into the running mean.
// completedCount is the number of completed scores including the new one.
func (r *QuestionRepository) UpdateAverageScore(ctx context.Context, id uint, newScore, completedCount int) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdateAverageScore")

	var question model.Question
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&question).Error; err != nil {
		return err
	}

	average := newScore
	if question.AverageScore != nil && completedCount > 1 {
		average = (*question.AverageScore*(completedCount-1) + newScore) / completedCount
	}

	return r.db.WithContext(ctx).Model(&model.Question{}).Where("id = ?", id).
		Update("average_score", average).Error
}

// Statistics aggregates the question-bank counters for the admin dashboard.
func (r *QuestionRepository) Statistics(ctx context.Context) (*dto.QuestionStatistics, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "Statistics")

	stats := &dto.QuestionStatistics{
		DifficultyDistribution: make(map[string]int64),
		TypeDistribution:       make(map[string]int64),
	}

	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Question{}).Count(&stats.TotalQuestions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Question{}).Where("is_active = ?", true).Count(&stats.ActiveQuestions).Error; err != nil {
		return nil, err
	}
	stats.InactiveQuestions = stats.TotalQuestions - stats.ActiveQuestions

	type bucket struct {
		Key   string
		Count int64
	}

	var difficulties []bucket
	err := db.Model(&model.Question{}).
		Select("difficulty_level AS key, COUNT(id) AS count").
		Where("is_active = ?", true).
		Group("difficulty_level").
		Scan(&difficulties).Error
	if err != nil {
		return nil, err
	}
	for _, b := range difficulties {
		stats.DifficultyDistribution[b.Key] = b.Count
	}

	var types []bucket
	err = db.Model(&model.Question{}).
		Select("question_type AS key, COUNT(id) AS count").
		Where("is_active = ?", true).
		Group("question_type").
		Scan(&types).Error
	if err != nil {
		return nil, err
	}
	for _, b := range types {
		stats.TypeDistribution[b.Key] = b.Count
	}

	var popular []model.Question
	err = db.Where("is_active = ?", true).
		Order("usage_count DESC").
		Limit(5).
		Find(&popular).Error
	if err != nil {
		return nil, err
	}
	for _, q := range popular {
		stats.PopularQuestions = append(stats.PopularQuestions, dto.PopularQuestion{
			ID:         q.ID,
			Title:      q.Title,
			UsageCount: q.UsageCount,
		})
	}

	return stats, nil
}

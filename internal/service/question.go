package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hireloop/interview-api/internal/constants"
	"github.com/hireloop/interview-api/internal/dto"
	domerr "github.com/hireloop/interview-api/internal/errors"
	"github.com/hireloop/interview-api/internal/model"
	"github.com/hireloop/interview-api/internal/repository"
	ctxutil "github.com/hireloop/interview-api/pkg/context"
	"github.com/hireloop/interview-api/pkg/logger"
	"gorm.io/gorm"
)

type QuestionService struct {
	questionRepo *repository.QuestionRepository
	categoryRepo *repository.CategoryRepository
	cache        *CacheService
}

func NewQuestionService(questionRepo *repository.QuestionRepository, categoryRepo *repository.CategoryRepository, cache *CacheService) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

func (s *QuestionService) GetQuestion(ctx context.Context, id uint) (*dto.QuestionResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "GetQuestion")

	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domerr.ErrQuestionNotFound
		}
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	response := toQuestionResponse(question)
	return &response, nil
}

func (s *QuestionService) ListQuestions(ctx context.Context, filters dto.QuestionFilters, page, perPage int) (*dto.QuestionListResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ListQuestions")

	cacheKey := questionListCacheKey(filters, page, perPage)
	var cached dto.QuestionListResponse
	if s.cache.GetQuestionList(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	offset := (page - 1) * perPage
	questions, total, err := s.questionRepo.List(ctx, filters, perPage, offset)
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	out := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		out = append(out, toQuestionResponse(&questions[i]))
	}

	result := &dto.QuestionListResponse{
		Questions:  out,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}

	s.cache.SetQuestionList(ctx, cacheKey, result)
	return result, nil
}

// RandomQuestions picks practice questions and counts each pick as a usage.
func (s *QuestionService) RandomQuestions(ctx context.Context, count int, difficulty, questionType string) ([]dto.QuestionResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "RandomQuestions")

	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}

	questions, err := s.questionRepo.Random(ctx, count, difficulty, questionType)
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	out := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		if err := s.questionRepo.IncrementUsage(ctx, questions[i].ID); err != nil {
			logger.WarnWithContext(ctx, "Failed to count question usage").
				Uint("question_id", questions[i].ID).
				Err(err).
				Log()
		}
		out = append(out, toQuestionResponse(&questions[i]))
	}

	return out, nil
}

func (s *QuestionService) CreateQuestion(ctx context.Context, req *dto.QuestionCreateRequest, creatorID uint) (*dto.QuestionResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CreateQuestion")

	categories, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	duration := req.ExpectedDurationMinutes
	if duration == 0 {
		duration = 5
	}

	question := &model.Question{
		Title:                   req.Title,
		Content:                 req.Content,
		DifficultyLevel:         req.DifficultyLevel,
		QuestionType:            req.QuestionType,
		ExpectedDurationMinutes: duration,
		ScoringCriteria:         req.ScoringCriteria,
		SampleAnswer:            req.SampleAnswer,
		Keywords:                req.Keywords,
		IsActive:                true,
		CreatedBy:               &creatorID,
		Categories:              categories,
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	s.cache.InvalidateQuestions(ctx)

	response := toQuestionResponse(question)
	return &response, nil
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, id uint, req *dto.QuestionUpdateRequest) (*dto.QuestionResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdateQuestion")

	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domerr.ErrQuestionNotFound
		}
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	if req.Title != nil {
		question.Title = *req.Title
	}
	if req.Content != nil {
		question.Content = *req.Content
	}
	if req.DifficultyLevel != nil {
		question.DifficultyLevel = *req.DifficultyLevel
	}
	if req.QuestionType != nil {
		question.QuestionType = *req.QuestionType
	}
	if req.ExpectedDurationMinutes != nil {
		question.ExpectedDurationMinutes = *req.ExpectedDurationMinutes
	}
	if req.ScoringCriteria != nil {
		question.ScoringCriteria = *req.ScoringCriteria
	}
	if req.SampleAnswer != nil {
		question.SampleAnswer = *req.SampleAnswer
	}
	if req.Keywords != nil {
		question.Keywords = *req.Keywords
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	if req.CategoryIDs != nil {
		categories, err := s.resolveCategories(ctx, req.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if err := s.questionRepo.ReplaceCategories(ctx, question, categories); err != nil {
			return nil, domerr.WrapError(domerr.ErrInternal, err)
		}
		question.Categories = categories
	}

	s.cache.InvalidateQuestions(ctx)

	response := toQuestionResponse(question)
	return &response, nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "service", "DeleteQuestion")

	if err := s.questionRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domerr.ErrQuestionNotFound
		}
		return domerr.WrapError(domerr.ErrInternal, err)
	}

	s.cache.InvalidateQuestions(ctx)

	logger.InfoWithContext(ctx, "Question deactivated").
		Uint("question_id", id).
		Log()

	return nil
}

func (s *QuestionService) resolveCategories(ctx context.Context, ids []uint) ([]model.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	categories, err := s.categoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}
	if len(categories) != len(ids) {
		return nil, domerr.ErrCategoryNotFound
	}
	return categories, nil
}

func (s *QuestionService) CreateCategory(ctx context.Context, req *dto.CategoryCreateRequest) (*dto.CategoryResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CreateCategory")

	if _, err := s.categoryRepo.GetByName(ctx, req.Name); err == nil {
		return nil, domerr.ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	color := req.Color
	if color == "" {
		color = constants.DefaultCategoryColor
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       color,
		IsActive:    true,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	s.cache.InvalidateCategories(ctx)

	response := toCategoryResponse(category)
	return &response, nil
}

func (s *QuestionService) ListCategories(ctx context.Context, activeOnly bool) ([]dto.CategoryResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ListCategories")

	cacheKey := fmt.Sprintf("list:%t", activeOnly)
	var cached []dto.CategoryResponse
	if s.cache.GetCategories(ctx, cacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.categoryRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryResponse(&categories[i]))
	}

	s.cache.SetCategories(ctx, cacheKey, out)
	return out, nil
}

func (s *QuestionService) UpdateCategory(ctx context.Context, id uint, req *dto.CategoryUpdateRequest) (*dto.CategoryResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdateCategory")

	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domerr.ErrCategoryNotFound
		}
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	fields := make(map[string]interface{})
	if req.Name != nil {
		if existing, err := s.categoryRepo.GetByName(ctx, *req.Name); err == nil && existing.ID != id {
			return nil, domerr.ErrCategoryExists
		}
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Color != nil {
		fields["color"] = *req.Color
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	if len(fields) > 0 {
		if err := s.categoryRepo.Update(ctx, id, fields); err != nil {
			return nil, domerr.WrapError(domerr.ErrInternal, err)
		}
	}

	s.cache.InvalidateCategories(ctx)

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	response := toCategoryResponse(category)
	return &response, nil
}

func (s *QuestionService) DeleteCategory(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "service", "DeleteCategory")

	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domerr.ErrCategoryNotFound
		}
		return domerr.WrapError(domerr.ErrInternal, err)
	}

	if err := s.categoryRepo.SoftDelete(ctx, id); err != nil {
		return domerr.WrapError(domerr.ErrInternal, err)
	}

	s.cache.InvalidateCategories(ctx)
	return nil
}

// csvHeader is the column layout for both import and export.
var csvHeader = []string{
	"id", "title", "content", "difficulty_level", "question_type",
	"expected_duration_minutes", "scoring_criteria", "sample_answer",
	"keywords", "categories", "usage_count", "average_score",
	"is_active", "created_at",
}

// ImportCSV reads questions from CSV, creating missing categories by name.
// Bad rows are reported individually and do not stop the import.
func (s *QuestionService) ImportCSV(ctx context.Context, r io.Reader, creatorID uint) (*dto.ImportResult, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ImportCSV")

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInvalidInput, fmt.Errorf("cannot read CSV header: %w", err))
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}

	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	result := &dto.ImportResult{Errors: []string{}}

	// header is row 1
	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.TotalRows++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		result.TotalRows++

		if err := s.importRow(ctx, field, record, creatorID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		result.ImportedCount++
	}

	if result.ImportedCount > 0 {
		s.cache.InvalidateQuestions(ctx)
	}

	logger.InfoWithContext(ctx, "CSV import finished").
		Int("imported", result.ImportedCount).
		Int("total_rows", result.TotalRows).
		Int("errors", len(result.Errors)).
		Log()

	return result, nil
}

func (s *QuestionService) importRow(ctx context.Context, field func([]string, string) string, record []string, creatorID uint) error {
	title := field(record, "title")
	content := field(record, "content")
	difficulty := strings.ToLower(field(record, "difficulty_level"))
	questionType := strings.ToLower(field(record, "question_type"))

	for name, value := range map[string]string{
		"title":            title,
		"content":          content,
		"difficulty_level": difficulty,
		"question_type":    questionType,
	} {
		if value == "" {
			return fmt.Errorf("missing required field: %s", name)
		}
	}

	switch difficulty {
	case constants.DifficultyEasy, constants.DifficultyMedium, constants.DifficultyHard:
	default:
		return fmt.Errorf("invalid difficulty_level: %s", difficulty)
	}
	switch questionType {
	case constants.QuestionTypeBehavioral, constants.QuestionTypeTechnical, constants.QuestionTypeSituational:
	default:
		return fmt.Errorf("invalid question_type: %s", questionType)
	}

	duration := 5
	if raw := field(record, "expected_duration_minutes"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid expected_duration_minutes: %s", raw)
		}
		duration = parsed
	}

	var categoryIDs []uint
	if raw := field(record, "categories"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			category, err := s.ensureCategory(ctx, name)
			if err != nil {
				return err
			}
			categoryIDs = append(categoryIDs, category.ID)
		}
	}

	_, err := s.CreateQuestion(ctx, &dto.QuestionCreateRequest{
		Title:                   title,
		Content:                 content,
		DifficultyLevel:         difficulty,
		QuestionType:            questionType,
		ExpectedDurationMinutes: duration,
		ScoringCriteria:         field(record, "scoring_criteria"),
		SampleAnswer:            field(record, "sample_answer"),
		Keywords:                field(record, "keywords"),
		CategoryIDs:             categoryIDs,
	}, creatorID)
	return err
}

func (s *QuestionService) ensureCategory(ctx context.Context, name string) (*model.Category, error) {
	category, err := s.categoryRepo.GetByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	category = &model.Category{
		Name:     name,
		Color:    constants.DefaultCategoryColor,
		IsActive: true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}
	return category, nil
}

// ExportCSV writes the filtered question bank to w.
func (s *QuestionService) ExportCSV(ctx context.Context, w io.Writer, filters dto.QuestionFilters) error {
	ctx = ctxutil.WithOperation(ctx, "service", "ExportCSV")

	questions, _, err := s.questionRepo.List(ctx, filters, 10000, 0)
	if err != nil {
		return domerr.WrapError(domerr.ErrInternal, err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return domerr.WrapError(domerr.ErrInternal, err)
	}

	for i := range questions {
		q := &questions[i]

		names := make([]string, 0, len(q.Categories))
		for _, c := range q.Categories {
			names = append(names, c.Name)
		}

		average := ""
		if q.AverageScore != nil {
			average = strconv.Itoa(*q.AverageScore)
		}

		record := []string{
			strconv.FormatUint(uint64(q.ID), 10),
			q.Title,
			q.Content,
			q.DifficultyLevel,
			q.QuestionType,
			strconv.Itoa(q.ExpectedDurationMinutes),
			q.ScoringCriteria,
			q.SampleAnswer,
			q.Keywords,
			strings.Join(names, ","),
			strconv.Itoa(q.UsageCount),
			average,
			strconv.FormatBool(q.IsActive),
			q.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := writer.Write(record); err != nil {
			return domerr.WrapError(domerr.ErrInternal, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return domerr.WrapError(domerr.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "CSV export finished").
		Int("questions", len(questions)).
		Log()

	return nil
}

// Statistics builds the question bank counters, cached briefly.
func (s *QuestionService) Statistics(ctx context.Context) (*dto.QuestionStatistics, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Statistics")

	var cached dto.QuestionStatistics
	if s.cache.GetStats(ctx, "questions", &cached) {
		return &cached, nil
	}

	stats, err := s.questionRepo.Statistics(ctx)
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	categories, err := s.categoryRepo.CountActive(ctx)
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}
	stats.TotalCategories = categories

	s.cache.SetStats(ctx, "questions", stats)
	return stats, nil
}

func questionListCacheKey(filters dto.QuestionFilters, page, perPage int) string {
	category := "any"
	if filters.CategoryID != nil {
		category = strconv.FormatUint(uint64(*filters.CategoryID), 10)
	}
	active := "any"
	if filters.IsActive != nil {
		active = strconv.FormatBool(*filters.IsActive)
	}
	return fmt.Sprintf("list:%s:%s:%s:%s:%s:%d:%d",
		category, filters.DifficultyLevel, filters.QuestionType, active, filters.Search, page, perPage)
}

func toQuestionResponse(question *model.Question) dto.QuestionResponse {
	categories := make([]dto.CategoryResponse, 0, len(question.Categories))
	for i := range question.Categories {
		categories = append(categories, toCategoryResponse(&question.Categories[i]))
	}

	return dto.QuestionResponse{
		ID:                      question.ID,
		Title:                   question.Title,
		Content:                 question.Content,
		DifficultyLevel:         question.DifficultyLevel,
		QuestionType:            question.QuestionType,
		ExpectedDurationMinutes: question.ExpectedDurationMinutes,
		ScoringCriteria:         question.ScoringCriteria,
		SampleAnswer:            question.SampleAnswer,
		Keywords:                question.Keywords,
		IsActive:                question.IsActive,
		UsageCount:              question.UsageCount,
		AverageScore:            question.AverageScore,
		CreatedAt:               question.CreatedAt,
		Categories:              categories,
	}
}

func toCategoryResponse(category *model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Color:       category.Color,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
	}
}

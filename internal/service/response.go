package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hireloop/interview-api/config"
	"github.com/hireloop/interview-api/internal/constants"
	"github.com/hireloop/interview-api/internal/dto"
	domerr "github.com/hireloop/interview-api/internal/errors"
	"github.com/hireloop/interview-api/internal/model"
	"github.com/hireloop/interview-api/internal/repository"
	ctxutil "github.com/hireloop/interview-api/pkg/context"
	"github.com/hireloop/interview-api/pkg/logger"
	"github.com/hireloop/interview-api/pkg/pool"
	"github.com/hireloop/interview-api/pkg/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Transcriber converts a stored audio file to text. Implementations return
// the transcript, a 0-1 confidence, and the clip duration in seconds.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (text string, confidence float64, durationSeconds float64, err error)
}

type ResponseService struct {
	responseRepo *repository.ResponseRepository
	questionRepo *repository.QuestionRepository
	scorer       *ScoringService
	feedback     *FeedbackGenerator
	workers      *pool.WorkerPool
	cache        *CacheService
	transcriber  Transcriber
	uploadCfg    config.UploadConfig
}

func NewResponseService(
	responseRepo *repository.ResponseRepository,
	questionRepo *repository.QuestionRepository,
	scorer *ScoringService,
	feedback *FeedbackGenerator,
	workers *pool.WorkerPool,
	cache *CacheService,
	transcriber Transcriber,
	uploadCfg config.UploadConfig,
) *ResponseService {
	return &ResponseService{
		responseRepo: responseRepo,
		questionRepo: questionRepo,
		scorer:       scorer,
		feedback:     feedback,
		workers:      workers,
		cache:        cache,
		transcriber:  transcriber,
		uploadCfg:    uploadCfg,
	}
}

// SubmitText accepts a typed answer and queues it for scoring. The caller
// gets a processing placeholder immediately.
func (s *ResponseService) SubmitText(ctx context.Context, userID uint, req *dto.SubmitTextRequest) (*dto.ResponseAnalysis, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "SubmitText")

	if err := validateResponseLength(req.TextResponse); err != nil {
		return nil, err
	}

	question, err := s.activeQuestion(ctx, req.QuestionID)
	if err != nil {
		return nil, err
	}

	cleaned := validation.CleanText(req.TextResponse)

	response := &model.Response{
		UserID:        userID,
		QuestionID:    question.ID,
		OriginalText:  req.TextResponse,
		ProcessedText: cleaned,
		Status:        constants.ResponseStatusProcessing,
	}
	if err := s.responseRepo.Create(ctx, response); err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	s.enqueueScoring(ctx, response.ID, cleaned, question)

	if err := s.questionRepo.IncrementUsage(ctx, question.ID); err != nil {
		logger.WarnWithContext(ctx, "Failed to count question usage").
			Uint("question_id", question.ID).
			Err(err).
			Log()
	}

	return s.processingPlaceholder(response, question, cleaned), nil
}

// validateResponseLength bounds the trimmed answer in characters, not
// bytes, so multibyte answers are measured the way users count them.
func validateResponseLength(text string) error {
	runes := utf8.RuneCountInString(strings.TrimSpace(text))
	if runes < constants.MinResponseLength {
		return domerr.WrapError(domerr.ErrInvalidInput,
			fmt.Errorf("response must be at least %d characters", constants.MinResponseLength))
	}
	if runes > constants.MaxResponseLength {
		return domerr.WrapError(domerr.ErrInvalidInput,
			fmt.Errorf("response must be at most %d characters", constants.MaxResponseLength))
	}
	return nil
}

// SubmitAudio stores the uploaded clip and queues transcription plus
// scoring.
func (s *ResponseService) SubmitAudio(ctx context.Context, userID, questionID uint, filename string, size int64, file io.Reader) (*dto.ResponseAnalysis, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "SubmitAudio")

	if filename == "" {
		return nil, domerr.WrapError(domerr.ErrInvalidInput, errors.New("no filename provided"))
	}

	ext := validation.FileExtension(filename)
	allowed := false
	for _, a := range s.uploadCfg.AllowedAudioExt {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, domerr.WrapError(domerr.ErrInvalidInput,
			fmt.Errorf("file format not supported, allowed formats: %s", strings.Join(s.uploadCfg.AllowedAudioExt, ", ")))
	}

	maxBytes := int64(s.uploadCfg.MaxFileSizeMB) * 1024 * 1024
	if size > maxBytes {
		return nil, domerr.WrapError(domerr.ErrInvalidInput,
			fmt.Errorf("file too large, maximum size is %dMB", s.uploadCfg.MaxFileSizeMB))
	}

	question, err := s.activeQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	response := &model.Response{
		UserID:     userID,
		QuestionID: question.ID,
		Status:     constants.ResponseStatusProcessing,
	}
	if err := s.responseRepo.Create(ctx, response); err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	audioPath, err := s.saveAudioFile(userID, response.ID, filename, file, maxBytes)
	if err != nil {
		_ = s.responseRepo.MarkFailed(ctx, response.ID, "failed to store audio file")
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	s.enqueueTranscription(ctx, response.ID, audioPath, question)

	if err := s.questionRepo.IncrementUsage(ctx, question.ID); err != nil {
		logger.WarnWithContext(ctx, "Failed to count question usage").
			Uint("question_id", question.ID).
			Err(err).
			Log()
	}

	return s.processingPlaceholder(response, question, ""), nil
}

func (s *ResponseService) activeQuestion(ctx context.Context, id uint) (*model.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domerr.ErrQuestionNotFound
		}
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}
	if !question.IsActive {
		return nil, domerr.ErrQuestionNotFound
	}
	return question, nil
}

func (s *ResponseService) saveAudioFile(userID, responseID uint, filename string, file io.Reader, maxBytes int64) (string, error) {
	dir := filepath.Join(s.uploadCfg.Dir, fmt.Sprintf("%d", userID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	sanitized := validation.SanitizeFilename(filename)
	path := filepath.Join(dir, fmt.Sprintf("%d_%s", responseID, sanitized))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer out.Close()

	// size from the request can lie, enforce the cap while copying
	written, err := io.Copy(out, io.LimitReader(file, maxBytes+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	if written > maxBytes {
		os.Remove(path)
		return "", fmt.Errorf("file exceeds maximum size of %dMB", s.uploadCfg.MaxFileSizeMB)
	}

	return path, nil
}

// enqueueScoring schedules the scoring job. A full queue fails the
// response instead of blocking the request.
func (s *ResponseService) enqueueScoring(ctx context.Context, responseID uint, text string, question *model.Question) {
	job := func(jobCtx context.Context) {
		s.scoreResponse(jobCtx, responseID, text, question.Content, question.QuestionType, question.ID)
	}
	if err := s.workers.Submit(job); err != nil {
		logger.ErrorWithContext(ctx, "Failed to enqueue scoring job").
			Uint("response_id", responseID).
			Err(err).
			Log()
		_ = s.responseRepo.MarkFailed(ctx, responseID, "scoring queue unavailable")
	}
}

func (s *ResponseService) enqueueTranscription(ctx context.Context, responseID uint, audioPath string, question *model.Question) {
	job := func(jobCtx context.Context) {
		s.transcribeAndScore(jobCtx, responseID, audioPath, question)
	}
	if err := s.workers.Submit(job); err != nil {
		logger.ErrorWithContext(ctx, "Failed to enqueue transcription job").
			Uint("response_id", responseID).
			Err(err).
			Log()
		_ = s.responseRepo.MarkFailed(ctx, responseID, "processing queue unavailable")
	}
}

// scoreResponse is the background scoring pipeline for text answers.
func (s *ResponseService) scoreResponse(ctx context.Context, responseID uint, text, questionContent, questionType string, questionID uint) {
	ctx = ctxutil.WithOperation(ctx, "service", "scoreResponse")
	start := time.Now()

	result := s.scorer.Score(ctx, text, questionContent, questionType)

	score := s.toScoreModel(responseID, result)
	if err := s.responseRepo.CreateScore(ctx, score); err != nil {
		_ = s.responseRepo.MarkFailed(ctx, responseID, "failed to store score")
		return
	}

	if err := s.responseRepo.MarkCompleted(ctx, responseID, text, time.Since(start)); err != nil {
		logger.ErrorWithContext(ctx, "Failed to complete response").
			Uint("response_id", responseID).
			Err(err).
			Log()
		return
	}

	s.updateQuestionAverage(ctx, questionID, result.OverallScore)
	s.cache.InvalidateStats(ctx)

	logger.InfoWithContext(ctx, "Response scored").
		Uint("response_id", responseID).
		Int("overall_score", result.OverallScore).
		Duration(time.Since(start)).
		Log()
}

// transcribeAndScore is the background pipeline for audio answers.
func (s *ResponseService) transcribeAndScore(ctx context.Context, responseID uint, audioPath string, question *model.Question) {
	ctx = ctxutil.WithOperation(ctx, "service", "transcribeAndScore")

	if s.transcriber == nil {
		_ = s.responseRepo.MarkFailed(ctx, responseID, "transcription service not configured")
		return
	}

	text, confidence, duration, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		logger.ErrorWithContext(ctx, "Transcription failed").
			Uint("response_id", responseID).
			Err(err).
			Log()
		_ = s.responseRepo.MarkFailed(ctx, responseID, fmt.Sprintf("transcription failed: %v", err))
		return
	}

	cleaned := validation.CleanText(text)
	if err := s.responseRepo.SaveTranscription(ctx, responseID, text, cleaned, confidence, duration); err != nil {
		_ = s.responseRepo.MarkFailed(ctx, responseID, "failed to store transcription")
		return
	}

	s.scoreResponse(ctx, responseID, cleaned, question.Content, question.QuestionType, question.ID)
}

func (s *ResponseService) updateQuestionAverage(ctx context.Context, questionID uint, overallScore int) {
	completed, err := s.responseRepo.CountCompletedForQuestion(ctx, questionID)
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to count completed responses").
			Uint("question_id", questionID).
			Err(err).
			Log()
		return
	}
	if err := s.questionRepo.UpdateAverageScore(ctx, questionID, overallScore, int(completed)); err != nil {
		logger.WarnWithContext(ctx, "Failed to update question average").
			Uint("question_id", questionID).
			Err(err).
			Log()
	}
}

func (s *ResponseService) toScoreModel(responseID uint, result *ScoreResult) *model.Score {
	return &model.Score{
		ResponseID:             responseID,
		OverallScore:           result.OverallScore,
		ContentRelevanceScore:  result.ContentRelevanceScore,
		CommunicationClarity:   result.CommunicationClarity,
		StructureOrganization:  result.StructureOrganization,
		TechnicalAccuracyScore: result.TechnicalAccuracyScore,
		SentimentScore:         result.SentimentScore,
		ConfidenceIndicators:   result.ConfidenceIndicators,
		FillerWordsCount:       result.FillerWordsCount,
		WordCount:              result.WordCount,
		UniqueWordsCount:       result.UniqueWordsCount,
		Strengths:              toJSONList(result.Strengths),
		Weaknesses:             toJSONList(result.Weaknesses),
		Suggestions:            toJSONList(result.Suggestions),
		DetailedFeedback:       s.feedback.DetailedFeedback(result),
		ImprovementTips:        s.feedback.ImprovementTips(result),
		ModelVersion:           result.ModelVersion,
	}
}

// GetAnalysis returns the graded response, scoped to its owner.
func (s *ResponseService) GetAnalysis(ctx context.Context, userID, responseID uint) (*dto.ResponseAnalysis, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "GetAnalysis")

	response, err := s.responseRepo.GetByIDForUser(ctx, responseID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domerr.ErrResponseNotFound
		}
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	analysis := toResponseAnalysis(response)
	return &analysis, nil
}

// History lists the user's responses newest first, with the running
// average and an improvement trend over the latest completed scores.
func (s *ResponseService) History(ctx context.Context, userID uint, page, perPage int) (*dto.ResponseHistory, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "History")

	offset := (page - 1) * perPage
	responses, total, err := s.responseRepo.ListByUser(ctx, userID, perPage, offset)
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	out := make([]dto.ResponseAnalysis, 0, len(responses))
	for i := range responses {
		out = append(out, toResponseAnalysis(&responses[i]))
	}

	history := &dto.ResponseHistory{
		Responses:      out,
		TotalResponses: total,
		Page:           page,
		PerPage:        perPage,
	}

	scores, err := s.responseRepo.RecentScoresByUser(ctx, userID, 10)
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to load recent scores").
			Uint("user_id", userID).
			Err(err).
			Log()
		return history, nil
	}

	if len(scores) > 0 {
		sum := 0
		for _, v := range scores {
			sum += v
		}
		average := float64(sum) / float64(len(scores))
		history.AverageOverallScore = &average
		history.ImprovementTrend = improvementTrend(scores)
	}

	return history, nil
}

// improvementTrend compares the newer half of recent scores against the
// older half. Scores arrive newest first.
func improvementTrend(scores []int) string {
	if len(scores) < 4 {
		return "stable"
	}

	half := len(scores) / 2
	newer, older := 0, 0
	for _, v := range scores[:half] {
		newer += v
	}
	for _, v := range scores[half:] {
		older += v
	}

	newerAvg := float64(newer) / float64(half)
	olderAvg := float64(older) / float64(len(scores)-half)

	switch {
	case newerAvg > olderAvg+5:
		return "improving"
	case newerAvg < olderAvg-5:
		return "declining"
	default:
		return "stable"
	}
}

// Statistics aggregates response counters for the admin dashboard.
func (s *ResponseService) Statistics(ctx context.Context) (*dto.ResponseStatistics, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Statistics")

	var cached dto.ResponseStatistics
	if s.cache.GetStats(ctx, "responses", &cached) {
		return &cached, nil
	}

	since := time.Now().AddDate(0, 0, -7)
	stats, err := s.responseRepo.Statistics(ctx, since)
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	s.cache.SetStats(ctx, "responses", stats)
	return stats, nil
}

const (
	defaultAnalyticsDays = 30
	maxAnalyticsDays     = 365
)

// clampAnalyticsDays normalizes the requested analytics window.
func clampAnalyticsDays(days int) int {
	if days <= 0 {
		return defaultAnalyticsDays
	}
	if days > maxAnalyticsDays {
		return maxAnalyticsDays
	}
	return days
}

// PerformanceAnalytics reports date-bucketed response volume and score
// averages over a trailing window for the admin dashboard.
func (s *ResponseService) PerformanceAnalytics(ctx context.Context, days int) (*dto.PerformanceAnalytics, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "PerformanceAnalytics")

	days = clampAnalyticsDays(days)

	cacheKey := fmt.Sprintf("analytics:%d", days)
	var cached dto.PerformanceAnalytics
	if s.cache.GetStats(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	analytics, err := s.responseRepo.Performance(ctx, start)
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}
	analytics.DateRange = dto.AnalyticsDateRange{
		StartDate: start,
		EndDate:   end,
		Days:      days,
	}

	s.cache.SetStats(ctx, cacheKey, analytics)
	return analytics, nil
}

func (s *ResponseService) processingPlaceholder(response *model.Response, question *model.Question, cleaned string) *dto.ResponseAnalysis {
	metrics := AnalyzeText(cleaned)

	detail := "Processing your response..."
	tips := "Please wait while we analyze your response."
	if cleaned == "" {
		detail = "Processing your audio response..."
		tips = "Please wait while we transcribe and analyze your response."
	}

	return &dto.ResponseAnalysis{
		ResponseID:    response.ID,
		QuestionID:    question.ID,
		QuestionTitle: question.Title,
		OriginalText:  response.OriginalText,
		ProcessedText: response.ProcessedText,
		Status:        constants.ResponseStatusProcessing,
		Scores: dto.ScoreBreakdown{
			WordCount:        metrics.WordCount,
			UniqueWordsCount: metrics.UniqueWords,
		},
		Feedback: dto.FeedbackDetail{
			Strengths:        []string{},
			Weaknesses:       []string{},
			Suggestions:      []string{},
			DetailedFeedback: detail,
			ImprovementTips:  tips,
		},
	}
}

func toResponseAnalysis(response *model.Response) dto.ResponseAnalysis {
	analysis := dto.ResponseAnalysis{
		ResponseID:              response.ID,
		QuestionID:              response.QuestionID,
		OriginalText:            response.OriginalText,
		ProcessedText:           response.ProcessedText,
		DurationSeconds:         response.DurationSeconds,
		TranscriptionConfidence: response.TranscriptionConfidence,
		Status:                  response.Status,
		ProcessedAt:             response.ProcessedAt,
		Feedback: dto.FeedbackDetail{
			Strengths:   []string{},
			Weaknesses:  []string{},
			Suggestions: []string{},
		},
	}

	if response.Question.ID != 0 {
		analysis.QuestionTitle = response.Question.Title
	}

	if response.Score != nil {
		score := response.Score
		analysis.ModelVersion = score.ModelVersion
		analysis.Scores = dto.ScoreBreakdown{
			OverallScore:           score.OverallScore,
			ContentRelevanceScore:  score.ContentRelevanceScore,
			CommunicationClarity:   score.CommunicationClarity,
			StructureOrganization:  score.StructureOrganization,
			TechnicalAccuracyScore: score.TechnicalAccuracyScore,
			SentimentScore:         score.SentimentScore,
			ConfidenceIndicators:   score.ConfidenceIndicators,
			FillerWordsCount:       score.FillerWordsCount,
			WordCount:              score.WordCount,
			UniqueWordsCount:       score.UniqueWordsCount,
		}
		analysis.Feedback = dto.FeedbackDetail{
			Strengths:        fromJSONList(score.Strengths),
			Weaknesses:       fromJSONList(score.Weaknesses),
			Suggestions:      fromJSONList(score.Suggestions),
			DetailedFeedback: score.DetailedFeedback,
			ImprovementTips:  score.ImprovementTips,
		}
	}

	return analysis
}

func toJSONList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

func fromJSONList(data datatypes.JSON) []string {
	if len(data) == 0 {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return []string{}
	}
	return items
}

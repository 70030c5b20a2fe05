package handler

import (
	"net/http"
	"strconv"

	"github.com/hireloop/interview-api/internal/constants"
	"github.com/hireloop/interview-api/internal/dto"
	"github.com/hireloop/interview-api/internal/middleware"
	"github.com/hireloop/interview-api/internal/service"
	ctxutil "github.com/hireloop/interview-api/pkg/context"
	"github.com/hireloop/interview-api/pkg/logger"
	"github.com/gin-gonic/gin"
)

// InterviewHandler serves the candidate-facing question and response endpoints.
type InterviewHandler struct {
	questionService *service.QuestionService
	responseService *service.ResponseService
}

func NewInterviewHandler(questionService *service.QuestionService, responseService *service.ResponseService) *InterviewHandler {
	return &InterviewHandler{
		questionService: questionService,
		responseService: responseService,
	}
}

// questionFilters reads the optional list filters from the query string.
// Candidates only ever see active questions; admins may pass is_active.
func questionFilters(c *gin.Context, adminView bool) dto.QuestionFilters {
	filters := dto.QuestionFilters{
		DifficultyLevel: c.Query("difficulty"),
		QuestionType:    c.Query("type"),
		Search:          c.Query(constants.QueryParamSearch),
	}

	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
			categoryID := uint(id)
			filters.CategoryID = &categoryID
		}
	}

	if adminView {
		if raw := c.Query("is_active"); raw != "" {
			if active, err := strconv.ParseBool(raw); err == nil {
				filters.IsActive = &active
			}
		}
	} else {
		active := true
		filters.IsActive = &active
	}

	return filters
}

// ListQuestions returns a filtered page of active questions.
func (h *InterviewHandler) ListQuestions(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListQuestions")

	params := constants.ParsePaginationParams(c)
	filters := questionFilters(c, false)

	list, err := h.questionService.ListQuestions(ctx, filters, params.Page, params.Limit)
	if err != nil {
		respondError(c, "Question listing failed", err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetQuestion returns a single question by id.
func (h *InterviewHandler) GetQuestion(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetQuestion")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	question, err := h.questionService.GetQuestion(ctx, id)
	if err != nil {
		respondError(c, "Question lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// RandomQuestions returns up to 10 random active questions for practice.
func (h *InterviewHandler) RandomQuestions(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "RandomQuestions")

	count, _ := strconv.Atoi(c.DefaultQuery("count", "1"))

	questions, err := h.questionService.RandomQuestions(ctx, count, c.Query("difficulty"), c.Query("type"))
	if err != nil {
		respondError(c, "Question selection failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// ListCategories returns the active question categories.
func (h *InterviewHandler) ListCategories(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListCategories")

	categories, err := h.questionService.ListCategories(ctx, true)
	if err != nil {
		respondError(c, "Category listing failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// SubmitText accepts a typed answer and queues it for scoring.
func (h *InterviewHandler) SubmitText(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SubmitText")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, "Response submission failed", err)
		return
	}

	var req dto.SubmitTextRequest
	if !bindJSON(c, &req) {
		return
	}

	analysis, err := h.responseService.SubmitText(ctx, user.ID, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Text submission rejected").
			Uint("user_id", user.ID).
			Uint("question_id", req.QuestionID).
			Err(err).
			Log()
		respondError(c, "Response submission failed", err)
		return
	}

	logger.InfoWithContext(ctx, "Text response submitted").
		Uint("user_id", user.ID).
		Uint("response_id", analysis.ResponseID).
		Log()

	c.JSON(http.StatusCreated, analysis)
}

// SubmitAudio accepts an uploaded recording and queues it for
// transcription and scoring. The question id arrives as a form field
// alongside the file.
func (h *InterviewHandler) SubmitAudio(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SubmitAudio")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, "Response submission failed", err)
		return
	}

	questionID, err := strconv.ParseUint(c.PostForm("question_id"), 10, 32)
	if err != nil || questionID == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", "question_id must be a positive integer"))
		return
	}

	fileHeader, err := c.FormFile("audio_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", "audio_file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, "Response submission failed", err)
		return
	}
	defer file.Close()

	analysis, err := h.responseService.SubmitAudio(ctx, user.ID, uint(questionID), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		logger.WarnWithContext(ctx, "Audio submission rejected").
			Uint("user_id", user.ID).
			Uint("question_id", uint(questionID)).
			String("filename", fileHeader.Filename).
			Int64("size_bytes", fileHeader.Size).
			Err(err).
			Log()
		respondError(c, "Response submission failed", err)
		return
	}

	logger.InfoWithContext(ctx, "Audio response submitted").
		Uint("user_id", user.ID).
		Uint("response_id", analysis.ResponseID).
		Int64("size_bytes", fileHeader.Size).
		Log()

	c.JSON(http.StatusCreated, analysis)
}

// GetResponse returns the analysis for one of the caller's responses.
func (h *InterviewHandler) GetResponse(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetResponse")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, "Response lookup failed", err)
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	analysis, err := h.responseService.GetAnalysis(ctx, user.ID, id)
	if err != nil {
		respondError(c, "Response lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// History returns the caller's paginated response history with score trends.
func (h *InterviewHandler) History(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "History")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, "History lookup failed", err)
		return
	}

	params := constants.ParsePaginationParams(c)

	history, err := h.responseService.History(ctx, user.ID, params.Page, params.Limit)
	if err != nil {
		respondError(c, "History lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, history)
}

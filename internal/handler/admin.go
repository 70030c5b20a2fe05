package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/hireloop/interview-api/internal/constants"
	"github.com/hireloop/interview-api/internal/dto"
	"github.com/hireloop/interview-api/internal/middleware"
	"github.com/hireloop/interview-api/internal/service"
	ctxutil "github.com/hireloop/interview-api/pkg/context"
	"github.com/hireloop/interview-api/pkg/logger"
	"github.com/hireloop/interview-api/pkg/validation"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin-only management endpoints. Every route is
// behind RequireAuth plus RequireAdmin.
type AdminHandler struct {
	questionService *service.QuestionService
	responseService *service.ResponseService
	userService     *service.UserService
}

func NewAdminHandler(questionService *service.QuestionService, responseService *service.ResponseService, userService *service.UserService) *AdminHandler {
	return &AdminHandler{
		questionService: questionService,
		responseService: responseService,
		userService:     userService,
	}
}

// ListQuestions returns questions without the active-only restriction.
func (h *AdminHandler) ListQuestions(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListQuestions")

	params := constants.ParsePaginationParams(c)
	filters := questionFilters(c, true)

	list, err := h.questionService.ListQuestions(ctx, filters, params.Page, params.Limit)
	if err != nil {
		respondError(c, "Question listing failed", err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// CreateQuestion adds a question to the bank.
func (h *AdminHandler) CreateQuestion(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateQuestion")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, "Question creation failed", err)
		return
	}

	var req dto.QuestionCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.questionService.CreateQuestion(ctx, &req, user.ID)
	if err != nil {
		respondError(c, "Question creation failed", err)
		return
	}

	logger.InfoWithContext(ctx, "Question created").
		Uint("question_id", question.ID).
		Uint("created_by", user.ID).
		Log()

	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion applies partial changes to a question.
func (h *AdminHandler) UpdateQuestion(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateQuestion")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.QuestionUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.questionService.UpdateQuestion(ctx, id, &req)
	if err != nil {
		respondError(c, "Question update failed", err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// DeleteQuestion deactivates a question, keeping responses intact.
func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteQuestion")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.questionService.DeleteQuestion(ctx, id); err != nil {
		respondError(c, "Question deletion failed", err)
		return
	}

	logger.InfoWithContext(ctx, "Question deactivated").
		Uint("question_id", id).
		Log()

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Question deactivated successfully"))
}

// BulkImport ingests a CSV file of questions, reporting per-row errors.
func (h *AdminHandler) BulkImport(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "BulkImport")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, "Question import failed", err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", "file is required"))
		return
	}

	if validation.FileExtension(fileHeader.Filename) != "csv" {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", "file must be a CSV"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, "Question import failed", err)
		return
	}
	defer file.Close()

	result, err := h.questionService.ImportCSV(ctx, file, user.ID)
	if err != nil {
		respondError(c, "Question import failed", err)
		return
	}

	logger.InfoWithContext(ctx, "Question import finished").
		Uint("imported_by", user.ID).
		Int("imported", result.ImportedCount).
		Int("rows", result.TotalRows).
		Int("errors", len(result.Errors)).
		Log()

	c.JSON(http.StatusOK, result)
}

// Export streams the question bank as a CSV download.
func (h *AdminHandler) Export(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Export")

	filename := fmt.Sprintf("questions_export_%s.csv", time.Now().UTC().Format("20060102_150405"))
	c.Header(constants.HeaderContentType, constants.ContentTypeCSV)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.questionService.ExportCSV(ctx, c.Writer, questionFilters(c, true)); err != nil {
		logger.ErrorWithContext(ctx, "Question export failed").
			Err(err).
			Log()
		return
	}
}

// CreateCategory adds a question category.
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateCategory")

	var req dto.CategoryCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.questionService.CreateCategory(ctx, &req)
	if err != nil {
		respondError(c, "Category creation failed", err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// ListCategories returns every category, inactive ones included.
func (h *AdminHandler) ListCategories(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListCategories")

	categories, err := h.questionService.ListCategories(ctx, false)
	if err != nil {
		respondError(c, "Category listing failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// UpdateCategory applies partial changes to a category.
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateCategory")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CategoryUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.questionService.UpdateCategory(ctx, id, &req)
	if err != nil {
		respondError(c, "Category update failed", err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory deactivates a category.
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteCategory")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.questionService.DeleteCategory(ctx, id); err != nil {
		respondError(c, "Category deletion failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Category deactivated successfully"))
}

// ListUsers returns a paginated user listing with optional search.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListUsers")

	params := constants.ParsePaginationParams(c)

	activeOnly := false
	if raw := c.Query("active_only"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			activeOnly = parsed
		}
	}

	list, err := h.userService.ListUsers(ctx, params.Page, params.Limit, activeOnly, c.Query(constants.QueryParamSearch))
	if err != nil {
		respondError(c, "User listing failed", err)
		return
	}

	c.JSON(http.StatusOK, list)
}

type setUserActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetUserActive activates or deactivates an account. Admins cannot
// deactivate themselves.
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SetUserActive")

	actor, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, "User update failed", err)
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req setUserActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.SetUserActive(ctx, actor.ID, id, *req.IsActive)
	if err != nil {
		respondError(c, "User update failed", err)
		return
	}

	logger.InfoWithContext(ctx, "User active flag changed").
		Uint("user_id", id).
		Uint("changed_by", actor.ID).
		Bool("is_active", *req.IsActive).
		Log()

	c.JSON(http.StatusOK, user)
}

// PerformanceAnalytics returns date-bucketed response volume and score
// averages over a trailing day window.
func (h *AdminHandler) PerformanceAnalytics(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "PerformanceAnalytics")

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	analytics, err := h.responseService.PerformanceAnalytics(ctx, days)
	if err != nil {
		respondError(c, "Analytics lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// Statistics returns the combined platform dashboard numbers.
func (h *AdminHandler) Statistics(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Statistics")

	questionStats, err := h.questionService.Statistics(ctx)
	if err != nil {
		respondError(c, "Statistics lookup failed", err)
		return
	}

	userStats, err := h.userService.Statistics(ctx)
	if err != nil {
		respondError(c, "Statistics lookup failed", err)
		return
	}

	responseStats, err := h.responseService.Statistics(ctx)
	if err != nil {
		respondError(c, "Statistics lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.PlatformStatistics{
		Questions: *questionStats,
		Users:     *userStats,
		Responses: *responseStats,
	})
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hireloop/interview-api/internal/constants"
	apperrors "github.com/hireloop/interview-api/internal/errors"
	"github.com/hireloop/interview-api/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON decodes and validates a request body, replying 400 with the
// per-field message catalog when validation fails. Returns false when the
// request has already been answered.
func bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			details := make([]string, 0, len(validationErrs))
			for _, e := range validationErrs {
				details = append(details, validation.Message(e.Field(), e.Tag()))
			}
			c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Validation failed", details))
			return false
		}
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return false
	}
	return true
}

// respondError maps a service error onto the wire.
func respondError(c *gin.Context, message string, err error) {
	status := apperrors.ToHTTPStatus(err)
	c.JSON(status, constants.BuildErrorResponse(message, apperrors.GetErrorMessage(err)))
}

// pathID parses a uint path parameter, replying 400 on garbage.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid identifier", name+" must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

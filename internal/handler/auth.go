package handler

import (
	"net/http"

	"github.com/hireloop/interview-api/internal/constants"
	"github.com/hireloop/interview-api/internal/dto"
	"github.com/hireloop/interview-api/internal/middleware"
	"github.com/hireloop/interview-api/internal/service"
	ctxutil "github.com/hireloop/interview-api/pkg/context"
	"github.com/hireloop/interview-api/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and profile endpoints.
type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Register")

	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Registration rejected").
			String("email", req.Email).
			String("username", req.Username).
			Err(err).
			Log()
		respondError(c, "Registration failed", err)
		return
	}

	logger.InfoWithContext(ctx, "User registered").
		Uint("user_id", user.ID).
		String("username", user.Username).
		Log()

	c.JSON(http.StatusCreated, user)
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.userService.Login(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Login failed").
			String("identifier", req.Username).
			Err(err).
			Log()
		respondError(c, "Login failed", err)
		return
	}

	logger.InfoWithContext(ctx, "User logged in").
		Uint("user_id", token.User.ID).
		String("username", token.User.Username).
		Log()

	c.JSON(http.StatusOK, token)
}

// Refresh issues a fresh token for the authenticated user.
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Refresh")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, "Token refresh failed", err)
		return
	}

	token, err := h.userService.RefreshToken(ctx, user)
	if err != nil {
		respondError(c, "Token refresh failed", err)
		return
	}

	c.JSON(http.StatusOK, token)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Me")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, "Profile lookup failed", err)
		return
	}

	profile, err := h.userService.GetProfile(ctx, user.ID)
	if err != nil {
		respondError(c, "Profile lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateMe applies partial profile changes to the authenticated user.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateMe")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, "Profile update failed", err)
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.userService.UpdateProfile(ctx, user.ID, &req)
	if err != nil {
		respondError(c, "Profile update failed", err)
		return
	}

	logger.InfoWithContext(ctx, "Profile updated").
		Uint("user_id", user.ID).
		Log()

	c.JSON(http.StatusOK, profile)
}

// ChangePassword rotates the authenticated user's password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ChangePassword")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, "Password change failed", err)
		return
	}

	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(ctx, user.ID, &req); err != nil {
		logger.WarnWithContext(ctx, "Password change rejected").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		respondError(c, "Password change failed", err)
		return
	}

	logger.InfoWithContext(ctx, "Password changed").
		Uint("user_id", user.ID).
		Log()

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Password updated successfully"))
}

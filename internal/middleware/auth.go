package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hireloop/interview-api/internal/constants"
	domerr "github.com/hireloop/interview-api/internal/errors"
	"github.com/hireloop/interview-api/internal/model"
	"github.com/hireloop/interview-api/internal/service"
	"github.com/hireloop/interview-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserResolver resolves a verified token subject to the live user row.
type UserResolver interface {
	ResolveByUsername(ctx context.Context, username string) (*model.User, error)
}

type AuthMiddleware struct {
	jwtService *service.JWTService
	users      UserResolver
}

func NewAuthMiddleware(jwtService *service.JWTService, users UserResolver) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// RequireAuth validates the bearer token and loads the current user from
// the database on every request, so a deactivated account loses access
// immediately even with a live token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			m.unauthorized(c, "Missing or malformed Authorization header")
			return
		}

		claims, err := m.jwtService.VerifyToken(tokenString)
		if err != nil {
			m.unauthorized(c, "Invalid or expired token")
			return
		}

		user, err := m.users.ResolveByUsername(c.Request.Context(), claims.Subject)
		if err != nil {
			m.unauthorized(c, "Token subject no longer exists")
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInactiveAccount, nil))
			c.Abort()
			return
		}

		c.Set(constants.GinKeyCurrentUser, user)
		c.Set(constants.GinKeyUserID, user.ID)
		c.Set(constants.GinKeyUsername, user.Username)
		c.Set(constants.GinKeyIsAdmin, user.IsAdmin)

		c.Next()
	}
}

// RequireAdmin gates admin-only routes. It must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin := c.GetBool(constants.GinKeyIsAdmin)
		if !isAdmin {
			logger.GetLogger().Warn("Admin route denied",
				zap.String("path", c.Request.URL.Path),
				zap.String("username", c.GetString(constants.GinKeyUsername)),
			)
			c.JSON(http.StatusForbidden, constants.BuildErrorResponse(constants.MsgForbidden, nil))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) unauthorized(c *gin.Context, reason string) {
	logger.GetLogger().Warn("Request rejected",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("reason", reason),
	)
	c.Header(constants.HeaderWWWAuthenticate, constants.ChallengeBearer)
	c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
	c.Abort()
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// CurrentUser pulls the authenticated user set by RequireAuth.
func CurrentUser(c *gin.Context) (*model.User, error) {
	value, exists := c.Get(constants.GinKeyCurrentUser)
	if !exists {
		return nil, domerr.ErrUnauthorized
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil, domerr.ErrUnauthorized
	}
	return user, nil
}

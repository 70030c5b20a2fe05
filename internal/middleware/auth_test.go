package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hireloop/interview-api/internal/constants"
	domerr "github.com/hireloop/interview-api/internal/errors"
	"github.com/hireloop/interview-api/internal/model"
	"github.com/hireloop/interview-api/internal/service"
	"github.com/gin-gonic/gin"
)

type stubResolver struct {
	users map[string]*model.User
}

func (s *stubResolver) ResolveByUsername(ctx context.Context, username string) (*model.User, error) {
	if user, ok := s.users[username]; ok {
		return user, nil
	}
	return nil, domerr.ErrInvalidToken
}

func newAuthTestRouter(t *testing.T, users map[string]*model.User) (*gin.Engine, *service.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := service.NewJWTService("test-secret", 30*time.Minute)
	authMw := NewAuthMiddleware(jwtSvc, &stubResolver{users: users})

	router := gin.New()
	protected := router.Group("/", authMw.RequireAuth())
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString(constants.GinKeyUsername)})
	})
	protected.GET("/admin", authMw.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, jwtSvc
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuthValidToken(t *testing.T) {
	users := map[string]*model.User{
		"alice": {Username: "alice", IsActive: true},
	}
	router, jwtSvc := newAuthTestRouter(t, users)

	token, err := jwtSvc.IssueToken("alice", 0)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	w := doRequest(router, "/me", token)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	router, _ := newAuthTestRouter(t, nil)

	w := doRequest(router, "/me", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if got := w.Header().Get(constants.HeaderWWWAuthenticate); got != constants.ChallengeBearer {
		t.Errorf("expected WWW-Authenticate %q, got %q", constants.ChallengeBearer, got)
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	router, _ := newAuthTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(constants.HeaderAuthorization, "Token abc123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	router, _ := newAuthTestRouter(t, nil)

	w := doRequest(router, "/me", "not.a.valid.token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if got := w.Header().Get(constants.HeaderWWWAuthenticate); got != constants.ChallengeBearer {
		t.Errorf("expected WWW-Authenticate %q, got %q", constants.ChallengeBearer, got)
	}
}

func TestRequireAuthUnknownSubject(t *testing.T) {
	router, jwtSvc := newAuthTestRouter(t, map[string]*model.User{})

	token, err := jwtSvc.IssueToken("ghost", 0)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	w := doRequest(router, "/me", token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for deleted user, got %d", w.Code)
	}
}

func TestRequireAuthInactiveUser(t *testing.T) {
	users := map[string]*model.User{
		"bob": {Username: "bob", IsActive: false},
	}
	router, jwtSvc := newAuthTestRouter(t, users)

	token, err := jwtSvc.IssueToken("bob", 0)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	w := doRequest(router, "/me", token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for inactive user, got %d", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	users := map[string]*model.User{
		"admin": {Username: "admin", IsActive: true, IsAdmin: true},
		"user":  {Username: "user", IsActive: true},
	}
	router, jwtSvc := newAuthTestRouter(t, users)

	adminToken, _ := jwtSvc.IssueToken("admin", 0)
	userToken, _ := jwtSvc.IssueToken("user", 0)

	if w := doRequest(router, "/admin", adminToken); w.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d", w.Code)
	}
	if w := doRequest(router, "/admin", userToken); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin, got %d", w.Code)
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	users := map[string]*model.User{
		"alice": {Username: "alice", IsActive: true},
	}
	router, jwtSvc := newAuthTestRouter(t, users)

	token, err := jwtSvc.IssueToken("alice", -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	w := doRequest(router, "/me", token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %d", w.Code)
	}
}

package ctxutil

import (
	"context"
	"net/http"
	"time"

	"github.com/hireloop/interview-api/internal/constants"
)

// Re-export ContextKey type
type ContextKey = constants.ContextKey

// Re-export context keys
const (
	RequestIDKey = constants.CtxKeyRequestID
	UserIDKey    = constants.CtxKeyUserID
	UsernameKey  = constants.CtxKeyUsername
	ClientIPKey  = constants.CtxKeyClientIP
	UserAgentKey = constants.CtxKeyUserAgent
	StartTimeKey = constants.CtxKeyStartTime
	ModuleKey    = constants.CtxKeyModule
	FunctionKey  = constants.CtxKeyFunction
)

// NewContextWithRequest seeds a context with request metadata plus the
// module/function pair used by the context logger.
func NewContextWithRequest(ctx context.Context, r *http.Request, module, function string) context.Context {
	ctx = context.WithValue(ctx, ClientIPKey, clientIP(r))
	ctx = context.WithValue(ctx, UserAgentKey, r.UserAgent())
	ctx = context.WithValue(ctx, StartTimeKey, time.Now())
	ctx = context.WithValue(ctx, ModuleKey, module)
	ctx = context.WithValue(ctx, FunctionKey, function)
	return ctx
}

// WithOperation tags a context with the module/function performing the work.
func WithOperation(ctx context.Context, module, function string) context.Context {
	ctx = context.WithValue(ctx, ModuleKey, module)
	ctx = context.WithValue(ctx, FunctionKey, function)
	return ctx
}

// WithUserID adds user ID to context
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// WithUsername adds the authenticated username to context
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameKey, username)
}

func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, RequestIDKey)
}

func GetClientIP(ctx context.Context) string {
	return stringValue(ctx, ClientIPKey)
}

func GetUserAgent(ctx context.Context) string {
	return stringValue(ctx, UserAgentKey)
}

func GetUsername(ctx context.Context) string {
	return stringValue(ctx, UsernameKey)
}

func GetModule(ctx context.Context) string {
	return stringValue(ctx, ModuleKey)
}

func GetFunction(ctx context.Context) string {
	return stringValue(ctx, FunctionKey)
}

// GetUserID returns the user ID or nil when unset.
func GetUserID(ctx context.Context) interface{} {
	return ctx.Value(UserIDKey)
}

// GetDuration returns the elapsed time since the request start, or zero.
func GetDuration(ctx context.Context) time.Duration {
	if start, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return time.Since(start)
	}
	return 0
}

func stringValue(ctx context.Context, key ContextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}
	if ip := r.Header.Get(constants.HeaderXForwardedFor); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

package constants

// HTTP Header Names
const (
	HeaderContentType     = "Content-Type"
	HeaderAuthorization   = "Authorization"
	HeaderUserAgent       = "User-Agent"
	HeaderWWWAuthenticate = "WWW-Authenticate"
	HeaderXRequestID      = "X-Request-ID"
	HeaderXForwardedFor   = "X-Forwarded-For"
	HeaderXRealIP         = "X-Real-IP"
)

// Bearer challenge sent alongside 401 responses
const ChallengeBearer = "Bearer"

// HTTP Content Types
const (
	ContentTypeJSON      = "application/json"
	ContentTypeCSV       = "text/csv"
	ContentTypeMultipart = "multipart/form-data"
)

// Common HTTP Error Messages
const (
	MsgUnauthorized    = "Unauthorized"
	MsgForbidden       = "Not enough permissions"
	MsgNotFound        = "Resource not found"
	MsgBadRequest      = "Invalid request"
	MsgInternalError   = "Internal server error"
	MsgInactiveAccount = "Inactive user"
	MsgBadCredentials  = "Incorrect username or password"
)

// HTTP Success Messages
const (
	MsgCreated = "Resource created successfully"
	MsgUpdated = "Resource updated successfully"
	MsgDeleted = "Resource deleted successfully"
	MsgSuccess = "Operation completed successfully"
)

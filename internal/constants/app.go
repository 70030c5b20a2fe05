package constants

// Application Information
const (
	AppName    = "Interview Assessment API"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Cache Key Prefixes
const (
	CacheKeyPrefix    = "interview:"
	CacheKeyQuestions = CacheKeyPrefix + "questions:"
	CacheKeyCategory  = CacheKeyPrefix + "categories:"
	CacheKeyStats     = CacheKeyPrefix + "stats:"
)

// Response processing states
const (
	ResponseStatusPending    = "pending"
	ResponseStatusProcessing = "processing"
	ResponseStatusCompleted  = "completed"
	ResponseStatusFailed     = "failed"
)

package constants

// Field Length Limits
const (
	MinPasswordLength = 8
	MaxPasswordLength = 100
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MaxEmailLength    = 255
	MinTitleLength    = 10
	MaxTitleLength    = 255
	MinContentLength  = 20
	MinResponseLength = 10
	MaxResponseLength = 5000
	MaxCategoryName   = 100
	MaxFilenameLength = 255
)

// Question Attribute Values
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	QuestionTypeBehavioral  = "behavioral"
	QuestionTypeTechnical   = "technical"
	QuestionTypeSituational = "situational"
)

// User Experience Levels
const (
	ExperienceJunior = "junior"
	ExperienceMid    = "mid"
	ExperienceSenior = "senior"
)

// Validation Patterns
const (
	EmailPattern    = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	HexColorPattern = `^#[0-9A-Fa-f]{6}$`
)

// Default category color used when none is supplied
const DefaultCategoryColor = "#007bff"

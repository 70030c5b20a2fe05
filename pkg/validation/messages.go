package validation

import (
	"fmt"
	"strings"
)

// fieldMessages maps struct field names to per-tag messages for the
// request DTOs.
var fieldMessages = map[string]map[string]string{
	"Email": {
		"required": "Email is required",
		"email":    "Email format is invalid",
		"max":      "Email may be at most 255 characters",
	},
	"Username": {
		"required": "Username is required",
		"min":      "Username must be at least 3 characters",
		"max":      "Username may be at most 50 characters",
	},
	"Password": {
		"required": "Password is required",
		"min":      "Password must be at least 8 characters",
		"max":      "Password may be at most 100 characters",
	},
	"NewPassword": {
		"required": "New password is required",
		"min":      "New password must be at least 8 characters",
		"max":      "New password may be at most 100 characters",
	},
	"ExperienceLevel": {
		"oneof": "Experience level must be one of: junior, mid, senior",
	},
	"Title": {
		"required": "Title is required",
		"min":      "Title must be at least 10 characters",
		"max":      "Title may be at most 255 characters",
	},
	"Content": {
		"required": "Content is required",
		"min":      "Content must be at least 20 characters",
	},
	"DifficultyLevel": {
		"required": "Difficulty level is required",
		"oneof":    "Difficulty level must be one of: easy, medium, hard",
	},
	"QuestionType": {
		"required": "Question type is required",
		"oneof":    "Question type must be one of: behavioral, technical, situational",
	},
	"Color": {
		"hexcolor": "Color must be a hex value like #007bff",
	},
	"TextResponse": {
		"required": "Text response is required",
	},
	"QuestionID": {
		"required": "Question ID is required",
	},
}

// CustomMessage returns the per-tag messages for a field, or nil.
func CustomMessage(field string) map[string]string {
	return fieldMessages[field]
}

// DefaultMessage builds a generic message for tags without a custom entry.
func DefaultMessage(field, tag string) string {
	name := strings.ToLower(field)
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "min":
		return fmt.Sprintf("%s is too short", name)
	case "max":
		return fmt.Sprintf("%s is too long", name)
	case "oneof":
		return fmt.Sprintf("%s has an invalid value", name)
	default:
		return fmt.Sprintf("%s is invalid: %s", name, tag)
	}
}

// Message resolves the custom message for a field/tag pair, falling back
// to the generic one.
func Message(field, tag string) string {
	if messages := CustomMessage(field); messages != nil {
		if msg, ok := messages[tag]; ok {
			return msg
		}
	}
	return DefaultMessage(field, tag)
}

package validation

import "testing"

func TestMessageCustomCatalog(t *testing.T) {
	tests := []struct {
		field string
		tag   string
		want  string
	}{
		{"Email", "required", "Email is required"},
		{"Email", "email", "Email format is invalid"},
		{"Username", "min", "Username must be at least 3 characters"},
		{"Password", "min", "Password must be at least 8 characters"},
		{"ExperienceLevel", "oneof", "Experience level must be one of: junior, mid, senior"},
		{"DifficultyLevel", "oneof", "Difficulty level must be one of: easy, medium, hard"},
		{"QuestionType", "oneof", "Question type must be one of: behavioral, technical, situational"},
		{"Color", "hexcolor", "Color must be a hex value like #007bff"},
	}

	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.tag, func(t *testing.T) {
			if got := Message(tt.field, tt.tag); got != tt.want {
				t.Errorf("Message(%q, %q) = %q, want %q", tt.field, tt.tag, got, tt.want)
			}
		})
	}
}

func TestMessageFallsBackToGeneric(t *testing.T) {
	tests := []struct {
		field string
		tag   string
		want  string
	}{
		{"Bio", "max", "bio is too long"},
		{"FullName", "required", "fullname is required"},
		{"PreferredRole", "max", "preferredrole is too long"},
		{"Keywords", "weird", "keywords is invalid: weird"},
	}

	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.tag, func(t *testing.T) {
			if got := Message(tt.field, tt.tag); got != tt.want {
				t.Errorf("Message(%q, %q) = %q, want %q", tt.field, tt.tag, got, tt.want)
			}
		})
	}
}

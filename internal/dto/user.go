package dto

import "time"

type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email,max=255"`
	Username        string `json:"username" binding:"required,min=3,max=50"`
	Password        string `json:"password" binding:"required,min=8,max=100"`
	FullName        string `json:"full_name" binding:"omitempty,max=255"`
	Bio             string `json:"bio" binding:"omitempty,max=2000"`
	ExperienceLevel string `json:"experience_level" binding:"omitempty,oneof=junior mid senior"`
	PreferredRole   string `json:"preferred_role" binding:"omitempty,max=255"`
}

type UpdateProfileRequest struct {
	FullName        *string `json:"full_name" binding:"omitempty,max=255"`
	Bio             *string `json:"bio" binding:"omitempty,max=2000"`
	ExperienceLevel *string `json:"experience_level" binding:"omitempty,oneof=junior mid senior"`
	PreferredRole   *string `json:"preferred_role" binding:"omitempty,max=255"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type UserResponse struct {
	ID              uint       `json:"id"`
	Email           string     `json:"email"`
	Username        string     `json:"username"`
	FullName        string     `json:"full_name,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	ExperienceLevel string     `json:"experience_level,omitempty"`
	PreferredRole   string     `json:"preferred_role,omitempty"`
	IsActive        bool       `json:"is_active"`
	IsAdmin         bool       `json:"is_admin"`
	CreatedAt       time.Time  `json:"created_at"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
}

// LoginRequest accepts a username or an email in the username field.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // seconds
	User        UserResponse `json:"user"`
}

type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
}

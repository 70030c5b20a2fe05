package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email           string `gorm:"column:email;unique;not null"`
	Username        string `gorm:"column:username;size:50;unique;not null"`
	HashedPassword  string `gorm:"column:hashed_password;not null"`
	FullName        string `gorm:"column:full_name"`
	Bio             string `gorm:"column:bio;type:text"`
	ExperienceLevel string `gorm:"column:experience_level;size:20"`
	PreferredRole   string `gorm:"column:preferred_role"`
	IsActive        bool   `gorm:"column:is_active;default:true;not null"`
	IsAdmin         bool   `gorm:"column:is_admin;default:false;not null"`
	LastLogin       *time.Time `gorm:"column:last_login"`
}

package database

import (
	"errors"
	"fmt"

	"github.com/hireloop/interview-api/config"
	"github.com/hireloop/interview-api/internal/model"
	"github.com/hireloop/interview-api/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// adminStore abstracts the lookup and writes the seeder needs, so the
// bootstrap contract can be tested without a database.
type adminStore interface {
	findByEmail(email string) (*model.User, error)
	create(user *model.User) error
	restoreFlags(user *model.User) error
}

type gormAdminStore struct {
	db *gorm.DB
}

func (s gormAdminStore) findByEmail(email string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s gormAdminStore) create(user *model.User) error {
	return s.db.Create(user).Error
}

func (s gormAdminStore) restoreFlags(user *model.User) error {
	return s.db.Model(user).Updates(map[string]interface{}{
		"is_admin":  true,
		"is_active": true,
	}).Error
}

// SeedAdminUser makes sure the bootstrap admin account exists. The seed is
// idempotent: an existing account keeps its password and profile, only the
// admin and active flags are repaired if something cleared them.
func SeedAdminUser(db *gorm.DB, cfg config.AdminConfig) error {
	return seedAdminUser(gormAdminStore{db: db}, cfg)
}

func seedAdminUser(store adminStore, cfg config.AdminConfig) error {
	existing, err := store.findByEmail(cfg.Email)
	if err == nil {
		if existing.IsAdmin && existing.IsActive {
			return nil
		}
		if err := store.restoreFlags(existing); err != nil {
			return fmt.Errorf("failed to restore admin flags: %w", err)
		}
		logger.GetLogger().Info("Restored admin flags on existing account",
			zap.String("email", cfg.Email),
		)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.User{
		Email:          cfg.Email,
		Username:       "admin",
		HashedPassword: string(hashed),
		FullName:       "System Administrator",
		IsActive:       true,
		IsAdmin:        true,
	}

	if err := store.create(admin); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.GetLogger().Info("Admin account created",
		zap.String("email", cfg.Email),
		zap.Uint("user_id", admin.ID),
	)

	return nil
}

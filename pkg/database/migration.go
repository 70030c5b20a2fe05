package database

import (
	"fmt"

	"github.com/hireloop/interview-api/internal/model"
	"github.com/hireloop/interview-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all domain models.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&model.User{},
		&model.Category{},
		&model.Question{},
		&model.Response{},
		&model.Score{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.GetLogger().Info("Database migrations completed",
		zap.Int("models", len(models)),
	)

	return nil
}

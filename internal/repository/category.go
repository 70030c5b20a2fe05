package repository

import (
	"context"

	"github.com/hireloop/interview-api/internal/model"
	ctxutil "github.com/hireloop/interview-api/pkg/context"
	"github.com/hireloop/interview-api/pkg/logger"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByID")

	var category model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByName")

	var category model.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) GetByIDs(ctx context.Context, ids []uint) ([]model.Category, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByIDs")

	var categories []model.Category
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]model.Category, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "List")

	var categories []model.Category
	query := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&categories).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to list categories").
			Err(err).
			Log()
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create category").
			String("name", category.Name).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Category created").
		String("name", category.Name).
		Uint("category_id", category.ID).
		Log()

	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Update")

	result := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete flips is_active; categories are never hard-deleted.
func (r *CategoryRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": false})
}

func (r *CategoryRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("is_active = ?", true).Count(&count).Error
	return count, err
}

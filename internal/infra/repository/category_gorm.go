package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.ProductCategory, error) {
	categories := []model.ProductCategory{}
	if err := r.db.WithContext(ctx).Order("id asc").Find(&categories).Error; err != nil {
		return []model.ProductCategory{}, err
	}
	return categories, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.ProductCategory, error) {
	var c model.ProductCategory
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductCategory{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductCategory{}, err
	}
	return c, nil
}

// 同名カテゴリはErrDuplicate
func (r *CategoryGormRepository) Create(ctx context.Context, c model.ProductCategory) (model.ProductCategory, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.ProductCategory{}, repo.ErrDuplicate
		}
		return model.ProductCategory{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) FirstOrCreate(ctx context.Context, name string) (model.ProductCategory, error) {
	var out model.ProductCategory
	if err := r.db.WithContext(ctx).Where(model.ProductCategory{Name: name}).FirstOrCreate(&out).Error; err != nil {
		return model.ProductCategory{}, err
	}
	return out, nil
}

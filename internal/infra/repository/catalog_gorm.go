package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

// カテゴリ・メーカー・商品名のGORM実装。

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var items []model.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return []model.Category{}, err
	}
	return items, nil
}

func (r *CategoryGormRepository) FindByName(ctx context.Context, name string) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, err
	}
	return c, nil
}

type ManufacturerGormRepository struct {
	db *gorm.DB
}

func NewManufacturerGormRepository(db *gorm.DB) *ManufacturerGormRepository {
	return &ManufacturerGormRepository{db: db}
}

func (r *ManufacturerGormRepository) List(ctx context.Context) ([]model.Manufacturer, error) {
	var items []model.Manufacturer
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return []model.Manufacturer{}, err
	}
	return items, nil
}

func (r *ManufacturerGormRepository) FindByName(ctx context.Context, name string) (model.Manufacturer, error) {
	var m model.Manufacturer
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Manufacturer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Manufacturer{}, err
	}
	return m, nil
}

func (r *ManufacturerGormRepository) Create(ctx context.Context, m model.Manufacturer) (model.Manufacturer, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.Manufacturer{}, err
	}
	return m, nil
}

type ProductTitleGormRepository struct {
	db *gorm.DB
}

func NewProductTitleGormRepository(db *gorm.DB) *ProductTitleGormRepository {
	return &ProductTitleGormRepository{db: db}
}

func (r *ProductTitleGormRepository) FindByID(ctx context.Context, id int64) (model.ProductTitle, error) {
	var t model.ProductTitle
	err := r.db.WithContext(ctx).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductTitle{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductTitle{}, err
	}
	return t, nil
}

func (r *ProductTitleGormRepository) FindByName(ctx context.Context, name string) (model.ProductTitle, error) {
	var t model.ProductTitle
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductTitle{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductTitle{}, err
	}
	return t, nil
}

func (r *ProductTitleGormRepository) Create(ctx context.Context, t model.ProductTitle) (model.ProductTitle, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return model.ProductTitle{}, err
	}
	return t, nil
}

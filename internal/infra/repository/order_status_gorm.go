package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderStatusGormRepository struct {
	db *gorm.DB
}

func NewOrderStatusGormRepository(db *gorm.DB) *OrderStatusGormRepository {
	return &OrderStatusGormRepository{db: db}
}

func (r *OrderStatusGormRepository) GetAll(ctx context.Context) ([]model.OrderStatus, error) {
	var statuses []model.OrderStatus
	if err := r.db.WithContext(ctx).Order("id asc").Find(&statuses).Error; err != nil {
		return []model.OrderStatus{}, err
	}
	return statuses, nil
}

func (r *OrderStatusGormRepository) FindByID(ctx context.Context, id int64) (model.OrderStatus, error) {
	var s model.OrderStatus
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderStatus{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderStatus{}, err
	}
	return s, nil
}

// FindByName は大文字小文字を区別せずに探す。
func (r *OrderStatusGormRepository) FindByName(ctx context.Context, name string) (model.OrderStatus, error) {
	var s model.OrderStatus
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderStatus{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderStatus{}, err
	}
	return s, nil
}

func (r *OrderStatusGormRepository) Create(ctx context.Context, s model.OrderStatus) (model.OrderStatus, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.OrderStatus{}, err
	}
	return s, nil
}

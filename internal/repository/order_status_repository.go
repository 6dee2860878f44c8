package repository

import (
	"context"

	"app/internal/domain/model"
)

// ステータス参照テーブルの約束。シード以外の書き込みは管理画面のCRUDだけ。
type OrderStatusRepository interface {
	GetAll(ctx context.Context) ([]model.OrderStatus, error)
	FindByID(ctx context.Context, id int64) (model.OrderStatus, error)
	//名前の大文字小文字は区別しない
	FindByName(ctx context.Context, name string) (model.OrderStatus, error)
	Create(ctx context.Context, s model.OrderStatus) (model.OrderStatus, error)
}

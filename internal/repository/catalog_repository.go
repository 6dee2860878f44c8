package repository

import (
	"context"

	"app/internal/domain/model"
)

// カテゴリ・メーカー・商品名は「名前で探して無ければ作る」だけの参照データ。

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByName(ctx context.Context, name string) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
}

type ManufacturerRepository interface {
	List(ctx context.Context) ([]model.Manufacturer, error)
	FindByName(ctx context.Context, name string) (model.Manufacturer, error)
	Create(ctx context.Context, m model.Manufacturer) (model.Manufacturer, error)
}

type ProductTitleRepository interface {
	FindByID(ctx context.Context, id int64) (model.ProductTitle, error)
	FindByName(ctx context.Context, name string) (model.ProductTitle, error)
	Create(ctx context.Context, t model.ProductTitle) (model.ProductTitle, error)
}

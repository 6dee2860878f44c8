package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders        repo.OrderRepository
	orderLines    repo.OrderLineRepository
	orderStatuses repo.OrderStatusRepository
	products      repo.ProductRepository
	productTitles repo.ProductTitleRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository               { return r.orders }
func (r *txReposGorm) OrderLines() repo.OrderLineRepository       { return r.orderLines }
func (r *txReposGorm) OrderStatuses() repo.OrderStatusRepository  { return r.orderStatuses }
func (r *txReposGorm) Products() repo.ProductRepository           { return r.products }
func (r *txReposGorm) ProductTitles() repo.ProductTitleRepository { return r.productTitles }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:        NewOrderGormRepository(tx),
			orderLines:    NewOrderLineGormRepository(tx),
			orderStatuses: NewOrderStatusGormRepository(tx),
			products:      NewProductGormRepository(tx),
			productTitles: NewProductTitleGormRepository(tx),
		}
		return fn(r)
	})
}

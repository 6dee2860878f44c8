package model

import "time"

// 注文明細。価格は注文時点のスナップショットで、作成後は変更しない。
type OrderLine struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64     `gorm:"not null;index" json:"order_id"`
	ProductID           int64     `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string    `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	UnitPriceSnapshot   int64     `gorm:"not null" json:"unit_price_snapshot"`
	Quantity            int64     `gorm:"not null" json:"quantity"`
	CreatedAt           time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// LineTotal は明細合計（スナップショット価格×数量）。
func (l OrderLine) LineTotal() int64 {
	return l.UnitPriceSnapshot * l.Quantity
}

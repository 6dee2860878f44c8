package model

import "time"

// カタログの参照データ。名前で解決し、無ければ作る。

type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

type Manufacturer struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// 商品名はカテゴリに属する。
type ProductTitle struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CategoryID int64     `gorm:"not null;index" json:"category_id"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

package model

import "time"

// 注文ヘッダ。ステータスは参照テーブル（OrderStatus）へのFK。
type Order struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64     `gorm:"not null;index" json:"user_id"`
	StatusID       int64     `gorm:"not null;index" json:"status_id"`
	TotalPrice     int64     `gorm:"not null" json:"total_price"`
	IdempotencyKey string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TitleID        int64          `gorm:"not null;index" json:"title_id"`
	ManufacturerID *int64         `gorm:"index" json:"manufacturer_id,omitempty"`
	Description    string         `gorm:"type:text" json:"description"`
	UnitPrice      int64          `gorm:"not null" json:"unit_price"`
	IsActive       bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt      time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

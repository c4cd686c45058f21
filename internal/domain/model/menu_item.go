package model

import (
	"time"

	"gorm.io/gorm"
)

// メニュー1品。注文側は価格スナップショットを持つので、ここの価格変更は過去の注文に影響しない。
type MenuItem struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"type:varchar(50);not null" json:"name"`
	Description string         `gorm:"type:varchar(500);not null" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Category    string         `gorm:"type:varchar(50);not null;index" json:"category"`
	ImageURL    string         `gorm:"type:varchar(255);not null" json:"image_url"`
	IsFeatured  bool           `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

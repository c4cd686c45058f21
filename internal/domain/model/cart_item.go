package model

import "time"

// カートの明細。同じmenu_item_idの明細は1行だけ（追加は数量加算）。
type CartItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID     int64     `gorm:"not null;index" json:"cart_id"`
	MenuItemID int64     `gorm:"not null;index" json:"menu_item_id"`
	Quantity   int64     `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

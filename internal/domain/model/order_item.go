package model

import "time"

// 注文明細。unit_priceは注文時点の価格スナップショット。
// menu_item_idは表示用の弱い参照（メニューが消えても注文は壊れない）。
type OrderItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64     `gorm:"not null;index" json:"order_id"`
	MenuItemID int64     `gorm:"not null;index" json:"menu_item_id"`
	UnitPrice  float64   `gorm:"not null" json:"unit_price"`
	Quantity   int64     `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

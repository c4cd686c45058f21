package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid は定義済みステータスかどうかを返す。
// 遷移の隣接制限は仕様上なし（どのステータスからどのステータスへも可）。
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentMethodCash || p == PaymentMethodCard
}

// 注文。明細は作成後は変更されず、Statusだけが動く。
// TotalPriceは作成時に明細から計算して保存する。
type Order struct {
	ID              int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64         `gorm:"not null;index" json:"user_id"`
	Status          OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalPrice      float64       `gorm:"not null" json:"total_price"`
	DeliveryAddress string        `gorm:"type:varchar(255);not null" json:"delivery_address"`
	Phone           string        `gorm:"type:varchar(30);not null" json:"phone"`
	PaymentMethod   PaymentMethod `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	CreatedAt       time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

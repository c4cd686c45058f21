package model

import "time"

// メニュー更新、注文ステータス更新など。
type AuditAction string

const (
	AuditActionCreateMenuItem    AuditAction = "CREATE_MENU_ITEM"
	AuditActionUpdateMenuItem    AuditAction = "UPDATE_MENU_ITEM"
	AuditActionDeleteMenuItem    AuditAction = "DELETE_MENU_ITEM"
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
)

func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionCreateMenuItem, AuditActionUpdateMenuItem, AuditActionDeleteMenuItem, AuditActionUpdateOrderStatus:
		return true
	default:
		return false
	}
}

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceMenuItem AuditResourceType = "menu_item"
	AuditResourceOrder    AuditResourceType = "order"
)

func (t AuditResourceType) Valid() bool {
	return t == AuditResourceMenuItem || t == AuditResourceOrder
}

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64             `gorm:"not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`

	//変更前後のスナップショットをJSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

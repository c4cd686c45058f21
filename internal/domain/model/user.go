package model

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// password_hashはjson:"-"でレスポンスに絶対出さない
type User struct {
	ID                int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string     `gorm:"type:varchar(100);not null" json:"name"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"column:password_hash;not null" json:"-"`
	Role              Role       `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	PasswordChangedAt *time.Time `json:"-"`
	CreatedAt         time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// ChangedPasswordAfter はissuedAtより後にパスワード変更されたかを返す。
// JWTのiatは秒単位なので秒で比較する。
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() > issuedAt.Unix()
}

package models

import (
	"time"

	"github.com/phamdangkhoamet/dkstory/pkg/types"
)

// User is the account record. The entitlement fields (IsVip, VipUntil) are
// written only by the entitlement store; IsVip is never cleared on expiry.
type User struct {
	ID           string           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string           `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Email        string           `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string           `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Avatar       string           `gorm:"column:avatar;type:text" json:"avatar"`
	Role         types.UserRole   `gorm:"column:role;type:varchar(32);not null;default:user" json:"role"`
	Status       types.UserStatus `gorm:"column:status;type:varchar(32);not null;default:active" json:"status"`
	IsVip        bool             `gorm:"column:is_vip;not null;default:false" json:"isVip"`
	// VipUntil is the instant VIP access lapses.
	VipUntil  *time.Time `gorm:"column:vip_until" json:"vipUntil"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// VipActive reports whether the entitlement window is still open at now.
func (u *User) VipActive(now time.Time) bool {
	return u != nil && u.IsVip && u.VipUntil != nil && u.VipUntil.After(now)
}

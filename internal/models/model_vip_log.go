package models

import (
	"time"

	"github.com/phamdangkhoamet/dkstory/pkg/types"
	"gorm.io/datatypes"
)

// VipEntitlementSnapshot is the entitlement part of a user at one instant.
type VipEntitlementSnapshot struct {
	IsVip    bool       `json:"isVip"`
	VipUntil *time.Time `json:"vipUntil"`
}

// VipLog records entitlement changes.
// Use case: troubleshooting and purchase history. It is not an order ledger.
type VipLog struct {
	ID      string                `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID  string                `gorm:"column:user_id;type:uuid;not null;index:idx_vip_log_user_created,priority:1" json:"userId"`
	OrderID string                `gorm:"column:order_id;type:varchar(64)" json:"orderId"`
	Plan    string                `gorm:"column:plan;type:varchar(32);not null" json:"plan"`
	Reason  types.VipChangeReason `gorm:"column:reason;type:varchar(32);not null" json:"reason"`
	// OperatorID is set for admin grants.
	OperatorID string                                     `gorm:"column:operator_id;type:varchar(64)" json:"operatorId,omitempty"`
	Before     datatypes.JSONType[VipEntitlementSnapshot] `gorm:"column:before;type:jsonb" json:"before"`
	After      datatypes.JSONType[VipEntitlementSnapshot] `gorm:"column:after;type:jsonb" json:"after"`
	CreatedAt  time.Time                                  `gorm:"index:idx_vip_log_user_created,priority:2" json:"createdAt"`
}

func (VipLog) TableName() string {
	return "vip_log"
}

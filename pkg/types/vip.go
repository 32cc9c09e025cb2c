package types

// VipChangeReason explains why a user's entitlement window moved.
type VipChangeReason string

const (
	VipChangeReasonPurchase VipChangeReason = "purchase"
	VipChangeReasonGift     VipChangeReason = "gift"
)

package entitlement

import "time"

// Viewer is the entitlement snapshot of whoever is reading. The zero value
// is an anonymous, non-VIP viewer.
type Viewer struct {
	IsVip    bool       `json:"isVip"`
	VipUntil *time.Time `json:"vipUntil"`
}

// IsLocked reports whether chapterNo must be shown as a locked placeholder.
// Only the latest chapter of a novel is ever gated, and only for viewers
// whose stored VIP flag is false.
func IsLocked(viewer Viewer, chapterNo, maxChapterNo int) bool {
	if chapterNo != maxChapterNo {
		return false
	}
	return !viewer.IsVip
}

// Gate applies IsLocked with an optional expiry check.
type Gate struct {
	// CheckExpiry treats a viewer whose VipUntil has passed as non-VIP even
	// when the stored flag is still set.
	CheckExpiry bool
	Now         func() time.Time
}

func NewGate(checkExpiry bool) *Gate {
	return &Gate{CheckExpiry: checkExpiry, Now: time.Now}
}

// Effective returns the viewer as the gate sees it.
func (g *Gate) Effective(v Viewer) Viewer {
	if g == nil || !g.CheckExpiry || !v.IsVip {
		return v
	}
	now := time.Now()
	if g.Now != nil {
		now = g.Now()
	}
	if v.VipUntil == nil || !v.VipUntil.After(now) {
		v.IsVip = false
	}
	return v
}

func (g *Gate) IsLocked(v Viewer, chapterNo, maxChapterNo int) bool {
	return IsLocked(g.Effective(v), chapterNo, maxChapterNo)
}

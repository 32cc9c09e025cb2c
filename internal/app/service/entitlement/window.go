package entitlement

import (
	"fmt"
	"time"
)

// Extend computes the new VIP expiry after buying plan at now.
//
// The extension stacks on the remaining window when current is still in the
// future, and starts from now otherwise. Days are calendar days in
// now.Location(), so "1 day" keeps the wall-clock time across DST changes.
func Extend(current *time.Time, plan Plan, now time.Time) (time.Time, error) {
	days := plan.Days()
	if days == 0 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPlan, string(plan))
	}

	base := now
	if current != nil && current.After(now) {
		base = current.In(now.Location())
	}
	return base.AddDate(0, 0, days), nil
}

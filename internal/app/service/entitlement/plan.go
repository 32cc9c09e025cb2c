package entitlement

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPlan is returned for plan codes outside the closed catalog.
var ErrInvalidPlan = errors.New("invalid plan")

// Plan is a purchasable entitlement extension.
type Plan string

const (
	PlanVip1Day   Plan = "vip1d"
	PlanVip1Month Plan = "vip1m"
)

// PlanInfo is the display data for a plan.
type PlanInfo struct {
	Code     Plan   `json:"code"`
	Title    string `json:"title"`
	Days     int    `json:"days"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
}

var catalog = []PlanInfo{
	{Code: PlanVip1Day, Title: "VIP 1 ngày", Days: 1, Price: 5000, Currency: "VND"},
	{Code: PlanVip1Month, Title: "VIP 1 tháng", Days: 30, Price: 20000, Currency: "VND"},
}

// Catalog returns a copy of all purchasable plans.
func Catalog() []PlanInfo {
	out := make([]PlanInfo, len(catalog))
	copy(out, catalog)
	return out
}

// ParsePlan validates a raw plan code. Codes are matched exactly.
func ParsePlan(raw string) (Plan, error) {
	p := Plan(raw)
	if _, ok := p.info(); !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlan, strings.TrimSpace(raw))
	}
	return p, nil
}

// Days is the number of calendar days the plan adds, or 0 for unknown plans.
func (p Plan) Days() int {
	info, _ := p.info()
	return info.Days
}

func (p Plan) Valid() bool {
	_, ok := p.info()
	return ok
}

func (p Plan) info() (PlanInfo, bool) {
	for _, it := range catalog {
		if it.Code == p {
			return it, true
		}
	}
	return PlanInfo{}, false
}

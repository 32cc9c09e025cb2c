package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/phamdangkhoamet/dkstory/internal/models"
)

type StatisticType string

const (
	StatisticTypeActiveVipCount     StatisticType = "active_vip_count"
	StatisticTypeDailyVipPurchases  StatisticType = "daily_vip_purchases"
	StatisticTypePlanBreakdown      StatisticType = "plan_breakdown"
	StatisticTypeDailyVipNewMembers StatisticType = "daily_vip_new_members"
)

var AllStatisticTypes = []StatisticType{
	StatisticTypeActiveVipCount,
	StatisticTypeDailyVipPurchases,
	StatisticTypePlanBreakdown,
	StatisticTypeDailyVipNewMembers,
}

const (
	defaultDays = 30
	maxDays     = 365
)

type VipStatisticRequest struct {
	Days      int             `json:"days"`
	DataItems []StatisticType `json:"data_items"`
}

type VipStatisticDataItem struct {
	Date  string `json:"date,omitempty"`
	Label string `json:"label,omitempty"`
	Value int64  `json:"value"`
}

type VipStatisticResponse struct {
	Days      int                                      `json:"days"`
	DataItems map[StatisticType][]VipStatisticDataItem `json:"data_items"`
}

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Service { return &Service{db: db, now: time.Now} }

func (s *Service) getActiveVipCount(ctx context.Context, _ time.Time) ([]VipStatisticDataItem, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("is_vip = ?", true).
		Where("vip_until > ?", s.now()).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	return []VipStatisticDataItem{{Value: count}}, nil
}

func (s *Service) getDailyVipPurchases(ctx context.Context, since time.Time) ([]VipStatisticDataItem, error) {
	results := make([]VipStatisticDataItem, 0)
	err := s.db.WithContext(ctx).Table(models.VipLog{}.TableName()).
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') as date, reason as label, count(*) as value").
		Where("created_at >= ?", since).
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Group("reason").
		Order("date DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getPlanBreakdown(ctx context.Context, since time.Time) ([]VipStatisticDataItem, error) {
	results := make([]VipStatisticDataItem, 0)
	err := s.db.WithContext(ctx).Table(models.VipLog{}.TableName()).
		Select("plan as label, count(*) as value").
		Where("created_at >= ?", since).
		Group("plan").
		Order("value DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// getDailyVipNewMembers counts users whose first entitlement change falls on each day.
func (s *Service) getDailyVipNewMembers(ctx context.Context, since time.Time) ([]VipStatisticDataItem, error) {
	results := make([]VipStatisticDataItem, 0)
	err := s.db.WithContext(ctx).Raw(`
WITH first_change AS (
    SELECT user_id, MIN(created_at) AS first_at FROM vip_log GROUP BY user_id
)
SELECT TO_CHAR(first_at, 'YYYY-MM-DD') AS date, COUNT(*) AS value
FROM first_change
WHERE first_at >= ?
GROUP BY TO_CHAR(first_at, 'YYYY-MM-DD')
ORDER BY date DESC
`, since).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getStatistic(ctx context.Context, id StatisticType, since time.Time) ([]VipStatisticDataItem, error) {
	switch id {
	case StatisticTypeActiveVipCount:
		return s.getActiveVipCount(ctx, since)
	case StatisticTypeDailyVipPurchases:
		return s.getDailyVipPurchases(ctx, since)
	case StatisticTypePlanBreakdown:
		return s.getPlanBreakdown(ctx, since)
	case StatisticTypeDailyVipNewMembers:
		return s.getDailyVipNewMembers(ctx, since)
	default:
		return nil, fmt.Errorf("invalid data item id: %s", id)
	}
}

// GetVipStatistic computes the requested data items concurrently. An empty
// DataItems list means all of them.
func (s *Service) GetVipStatistic(ctx context.Context, request *VipStatisticRequest) (*VipStatisticResponse, error) {
	days := request.Days
	if days <= 0 {
		days = defaultDays
	}
	if days > maxDays {
		days = maxDays
	}
	items := lo.Uniq(request.DataItems)
	if len(items) == 0 {
		items = AllStatisticTypes
	}
	since := s.now().AddDate(0, 0, -days)

	errChan := make(chan error, len(items))
	resChan := make(chan *lo.Entry[StatisticType, []VipStatisticDataItem], len(items))

	for _, item := range items {
		go func(id StatisticType) {
			res, err := s.getStatistic(ctx, id, since)
			if err != nil {
				errChan <- err
				return
			}
			resChan <- &lo.Entry[StatisticType, []VipStatisticDataItem]{Key: id, Value: res}
		}(item)
	}

	// every goroutine sends exactly once, so len(items) receives drain them
	results := make(map[StatisticType][]VipStatisticDataItem)
	for i := 0; i < len(items); i++ {
		select {
		case err := <-errChan:
			if err != nil {
				return nil, err
			}
		case entry := <-resChan:
			results[entry.Key] = entry.Value
		}
	}
	return &VipStatisticResponse{Days: days, DataItems: results}, nil
}

var Module = fx.Options(
	fx.Provide(New),
)

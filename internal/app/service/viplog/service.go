package viplog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/logctx"
	"github.com/phamdangkhoamet/dkstory/pkg/tool"
)

const defaultHistoryLimit = 50

type Service struct {
	db      *gorm.DB
	log     *zap.SugaredLogger
	pending sync.WaitGroup
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// Save asynchronously persists an entitlement change record. Nil input is ignored.
func (s *Service) Save(ctx context.Context, entry *models.VipLog) {
	if entry == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = tool.GenerateUUIDV7()
	}
	// the request context is usually cancelled before the write lands
	ctx = context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorw("failed to save vip log", "user_id", entry.UserID, "order_id", entry.OrderID, "err", err)
		}
	}()
}

// Wait blocks until every Save issued so far has finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

// ListByUser returns the newest entitlement changes of a user.
func (s *Service) ListByUser(ctx context.Context, userID string, limit int) ([]*models.VipLog, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultHistoryLimit
	}
	items := make([]*models.VipLog, 0)
	if !tool.IsUUID(userID) {
		return items, nil
	}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vip log: %w", err)
	}
	return items, nil
}

func registerFlush(lc fx.Lifecycle, s *Service) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			done := make(chan struct{})
			go func() { s.Wait(); close(done) }()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(registerFlush),
)

package community

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/tool"
)

const notificationLimit = 100

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService { return &NotificationService{db: db} }

func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) error {
	if n == nil {
		return nil
	}
	if n.ID == "" {
		n.ID = tool.GenerateUUIDV7()
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// List returns the newest notifications of userID.
func (s *NotificationService) List(ctx context.Context, userID string) ([]*models.Notification, error) {
	items := make([]*models.Notification, 0)
	if !tool.IsUUID(userID) {
		return items, nil
	}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(notificationLimit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return items, nil
}

// MarkRead flags one of userID's own notifications as read. Notifications of
// other users are reported as ErrNotFound.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	if !tool.IsUUID(userID) || !tool.IsUUID(id) {
		return ErrNotFound
	}
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead flags every unread notification of userID and returns how many
// changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if !tool.IsUUID(userID) {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

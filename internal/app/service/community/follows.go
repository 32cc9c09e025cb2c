package community

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/tool"
)

type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService { return &FollowService{db: db} }

// Follow is idempotent and returns the author's follower count afterwards.
func (s *FollowService) Follow(ctx context.Context, userID, authorID string) (int64, error) {
	return s.change(ctx, userID, authorID, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Follow{
			ID:       tool.GenerateUUIDV7(),
			UserID:   userID,
			AuthorID: authorID,
		}).Error
	})
}

// Unfollow is idempotent and returns the author's follower count afterwards.
func (s *FollowService) Unfollow(ctx context.Context, userID, authorID string) (int64, error) {
	return s.change(ctx, userID, authorID, func(tx *gorm.DB) error {
		return tx.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{}).Error
	})
}

// change applies mutate and recounts followers in one transaction so the
// stored counter always matches the follow rows.
func (s *FollowService) change(ctx context.Context, userID, authorID string, mutate func(tx *gorm.DB) error) (int64, error) {
	if !tool.IsUUID(userID) || !tool.IsUUID(authorID) {
		return 0, ErrNotFound
	}
	var followers int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var author models.Author
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").Where("id = ?", authorID).First(&author).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load author: %w", err)
		}

		if err := mutate(tx); err != nil {
			return fmt.Errorf("failed to update follow: %w", err)
		}
		if err := tx.Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&followers).Error; err != nil {
			return fmt.Errorf("failed to count followers: %w", err)
		}
		return tx.Model(&models.Author{}).Where("id = ?", authorID).Update("followers", followers).Error
	})
	if err != nil {
		return 0, err
	}
	return followers, nil
}

// ListFollowed returns the authors userID follows, most recent first.
func (s *FollowService) ListFollowed(ctx context.Context, userID string) ([]*models.Author, error) {
	items := make([]*models.Author, 0)
	if !tool.IsUUID(userID) {
		return items, nil
	}
	err := s.db.WithContext(ctx).
		Model(&models.Author{}).
		Joins("JOIN follows ON follows.author_id = authors.id").
		Where("follows.user_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list follows: %w", err)
	}
	return items, nil
}

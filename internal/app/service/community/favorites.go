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

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService { return &FavoriteService{db: db} }

func (s *FavoriteService) List(ctx context.Context, userID string) ([]*models.Novel, error) {
	items := make([]*models.Novel, 0)
	if !tool.IsUUID(userID) {
		return items, nil
	}
	err := s.db.WithContext(ctx).
		Model(&models.Novel{}).
		Joins("JOIN favorites ON favorites.novel_id = novels.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return items, nil
}

// Add is idempotent. It fails with ErrNotFound when the novel does not exist.
func (s *FavoriteService) Add(ctx context.Context, userID, novelID string) error {
	if !tool.IsUUID(userID) || !tool.IsUUID(novelID) {
		return ErrNotFound
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Novel{}).Where("id = ?", novelID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check novel: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Favorite{
		ID:      tool.GenerateUUIDV7(),
		UserID:  userID,
		NovelID: novelID,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove is idempotent; a malformed id matches nothing.
func (s *FavoriteService) Remove(ctx context.Context, userID, novelID string) error {
	if !tool.IsUUID(userID) || !tool.IsUUID(novelID) {
		return nil
	}
	err := s.db.WithContext(ctx).Where("user_id = ? AND novel_id = ?", userID, novelID).Delete(&models.Favorite{}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

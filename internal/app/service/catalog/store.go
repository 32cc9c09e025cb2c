package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/tool"
)

// ChapterRef is a chapter without its content.
type ChapterRef struct {
	No    int    `json:"no"`
	Title string `json:"title"`
}

// ContentStore is the read side used by the reader.
type ContentStore interface {
	GetNovel(ctx context.Context, id string) (*models.Novel, error)
	// ListChapterRefs returns the chapters of a novel ordered by number.
	ListChapterRefs(ctx context.Context, novelID string) ([]ChapterRef, error)
	GetChapter(ctx context.Context, novelID string, no int) (*models.Chapter, error)
}

type gormContentStore struct {
	db *gorm.DB
}

func NewContentStore(db *gorm.DB) ContentStore {
	return &gormContentStore{db: db}
}

func (s *gormContentStore) GetNovel(ctx context.Context, id string) (*models.Novel, error) {
	if !tool.IsUUID(id) {
		return nil, ErrNotFound
	}
	var n models.Novel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get novel: %w", err)
	}
	return &n, nil
}

func (s *gormContentStore) ListChapterRefs(ctx context.Context, novelID string) ([]ChapterRef, error) {
	if !tool.IsUUID(novelID) {
		return nil, ErrNotFound
	}
	refs := make([]ChapterRef, 0)
	err := s.db.WithContext(ctx).
		Model(&models.Chapter{}).
		Select("no", "title").
		Where("novel_id = ?", novelID).
		Order("no ASC").
		Scan(&refs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return refs, nil
}

func (s *gormContentStore) GetChapter(ctx context.Context, novelID string, no int) (*models.Chapter, error) {
	if !tool.IsUUID(novelID) {
		return nil, ErrNotFound
	}
	var ch models.Chapter
	err := s.db.WithContext(ctx).Where("novel_id = ? AND no = ?", novelID, no).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	return &ch, nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/tool"
	"github.com/phamdangkhoamet/dkstory/pkg/types"
)

const (
	defaultNovelLimit = 50
	maxNovelLimit     = 200
)

type ListNovelsRequest struct {
	Genre string
	Query string
	Limit int
}

type NovelInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Cover       string `json:"cover"`
}

// NovelPatch carries the fields of a partial update; nil means unchanged.
type NovelPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
	Cover       *string `json:"cover"`
}

type ChapterInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

// Caller is the authenticated user acting on the catalog.
type Caller struct {
	ID   string
	Name string
	Role types.UserRole
}

type NovelService struct {
	db *gorm.DB
}

func NewNovelService(db *gorm.DB) *NovelService { return &NovelService{db: db} }

// List returns novels newest first. Query matches title, author name and description.
func (s *NovelService) List(ctx context.Context, req ListNovelsRequest) ([]*models.Novel, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultNovelLimit
	}
	if limit > maxNovelLimit {
		limit = maxNovelLimit
	}

	q := s.db.WithContext(ctx).Model(&models.Novel{})
	if g := strings.TrimSpace(req.Genre); g != "" {
		q = q.Where("genre = ?", g)
	}
	if term := strings.TrimSpace(req.Query); term != "" {
		like := "%" + term + "%"
		q = q.Where("title ILIKE ? OR author_name ILIKE ? OR description ILIKE ?", like, like, like)
	}

	items := make([]*models.Novel, 0)
	if err := q.Order("created_at DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list novels: %w", err)
	}
	return items, nil
}

func (s *NovelService) Get(ctx context.Context, id string) (*models.Novel, error) {
	return NewContentStore(s.db).GetNovel(ctx, id)
}

// Genres returns the distinct non-empty genres in use, alphabetically.
func (s *NovelService) Genres(ctx context.Context) ([]string, error) {
	genres := make([]string, 0)
	err := s.db.WithContext(ctx).
		Model(&models.Novel{}).
		Where("genre <> ''").
		Distinct().
		Order("genre ASC").
		Pluck("genre", &genres).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (s *NovelService) Create(ctx context.Context, caller Caller, in NovelInput) (*models.Novel, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	novel := &models.Novel{
		ID:          tool.GenerateUUIDV7(),
		Title:       title,
		Description: in.Description,
		Genre:       strings.TrimSpace(in.Genre),
		Cover:       in.Cover,
		AuthorID:    &caller.ID,
		AuthorName:  caller.Name,
	}
	if err := s.db.WithContext(ctx).Create(novel).Error; err != nil {
		return nil, fmt.Errorf("failed to create novel: %w", err)
	}
	return novel, nil
}

// Update applies patch. Only the novel's author or an admin may edit it.
func (s *NovelService) Update(ctx context.Context, caller Caller, id string, patch NovelPatch) (*models.Novel, error) {
	novel, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canEdit(caller, novel) {
		return nil, ErrForbidden
	}

	updates := map[string]any{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
		}
		novel.Title = title
		updates["title"] = title
	}
	if patch.Description != nil {
		novel.Description = *patch.Description
		updates["description"] = novel.Description
	}
	if patch.Genre != nil {
		novel.Genre = strings.TrimSpace(*patch.Genre)
		updates["genre"] = novel.Genre
	}
	if patch.Cover != nil {
		novel.Cover = *patch.Cover
		updates["cover"] = novel.Cover
	}
	if len(updates) == 0 {
		return novel, nil
	}

	if err := s.db.WithContext(ctx).Model(&models.Novel{}).Where("id = ?", novel.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update novel: %w", err)
	}
	return novel, nil
}

// AddChapter appends a chapter numbered one past the current latest.
func (s *NovelService) AddChapter(ctx context.Context, caller Caller, novelID string, in ChapterInput) (*models.Chapter, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !tool.IsUUID(novelID) {
		return nil, ErrNotFound
	}

	var chapter *models.Chapter
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var novel models.Novel
		// the novel row lock serializes numbering
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", novelID).First(&novel).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load novel: %w", err)
		}
		if !canEdit(caller, &novel) {
			return ErrForbidden
		}

		var maxNo int
		if err := tx.Model(&models.Chapter{}).Where("novel_id = ?", novelID).Select("COALESCE(MAX(no), 0)").Scan(&maxNo).Error; err != nil {
			return fmt.Errorf("failed to read latest chapter: %w", err)
		}

		chapter = &models.Chapter{
			ID:      tool.GenerateUUIDV7(),
			NovelID: novelID,
			No:      maxNo + 1,
			Title:   title,
			Content: in.Content,
		}
		if err := tx.Create(chapter).Error; err != nil {
			return fmt.Errorf("failed to create chapter: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chapter, nil
}

func canEdit(caller Caller, novel *models.Novel) bool {
	if caller.Role == types.UserRoleAdmin {
		return true
	}
	return novel.AuthorID != nil && *novel.AuthorID == caller.ID
}

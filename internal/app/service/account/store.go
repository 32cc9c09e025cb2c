package account

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/tool"
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// Update writes the given columns and returns the fresh record.
	Update(ctx context.Context, id string, fields map[string]any) (*models.User, error)
}

type gormUserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) UserStore {
	return &gormUserStore{db: db}
}

func (s *gormUserStore) Create(ctx context.Context, u *models.User) error {
	err := s.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *gormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *gormUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	if !tool.IsUUID(id) {
		return nil, ErrUserNotFound
	}
	return s.first(ctx, "id = ?", id)
}

func (s *gormUserStore) Update(ctx context.Context, id string, fields map[string]any) (*models.User, error) {
	if !tool.IsUUID(id) {
		return nil, ErrUserNotFound
	}
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return s.first(ctx, "id = ?", id)
}

func (s *gormUserStore) first(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &u, nil
}

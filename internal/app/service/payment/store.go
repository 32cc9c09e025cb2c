package payment

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/tool"
)

// Store performs the read-compute-write of a user's entitlement as one
// atomic step. update receives the current record and mutates IsVip and
// VipUntil; only those two columns are written back.
type Store interface {
	UpdateEntitlement(ctx context.Context, userID string, update func(u *models.User) error) (*models.User, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) UpdateEntitlement(ctx context.Context, userID string, update func(u *models.User) error) (*models.User, error) {
	if !tool.IsUUID(userID) {
		return nil, ErrUserNotFound
	}
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// concurrent purchases by one user serialize on the row lock
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", userID).
			First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock user: %w", err)
		}

		if err := update(&user); err != nil {
			return err
		}

		err = tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]any{
				"is_vip":    user.IsVip,
				"vip_until": user.VipUntil,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to persist entitlement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

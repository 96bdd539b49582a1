package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goia/careers-os/internal/models"
)

// SubscribersRepository stores landing-page email signups.
// Backed by GORM; signups are idempotent on the email address.
type SubscribersRepository struct {
	db *gorm.DB
}

// NewSubscribersRepository creates a new subscribers repository
func NewSubscribersRepository(db *gorm.DB) *SubscribersRepository {
	return &SubscribersRepository{db: db}
}

// Subscribe records an email address. Re-subscribing an existing
// address is a no-op.
func (r *SubscribersRepository) Subscribe(ctx context.Context, email string) error {
	sub := models.Subscriber{Email: email}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(&sub).Error
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}

// Count returns the number of subscribers
func (r *SubscribersRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscriber{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return count, nil
}

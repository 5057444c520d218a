// Package apikeys provides database operations for API keys.
//
// Keys are generated and verified in internal/auth; this package only stores
// the public prefix and the bcrypt hash of the secret.
package apikeys

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/qotd/internal/entities"
)

// Repository handles all API key database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new API key repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, key *entities.APIKey) error {
	return r.db.WithContext(ctx).Create(key).Error
}

// FindActiveByPrefix returns gorm.ErrRecordNotFound for unknown or revoked keys.
func (r *Repository) FindActiveByPrefix(ctx context.Context, prefix string) (*entities.APIKey, error) {
	var key entities.APIKey
	err := r.db.WithContext(ctx).Where("prefix = ? AND revoked_at IS NULL", prefix).First(&key).Error
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// List returns all keys, revoked ones included, oldest first.
func (r *Repository) List(ctx context.Context) ([]entities.APIKey, error) {
	keys := []entities.APIKey{}
	err := r.db.WithContext(ctx).Order("id ASC").Find(&keys).Error
	return keys, err
}

// CountActive returns the number of keys that are not revoked.
func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.APIKey{}).Where("revoked_at IS NULL").Count(&count).Error
	return count, err
}

// Revoke marks a key as revoked. Returns gorm.ErrRecordNotFound for unknown or
// already revoked keys.
func (r *Repository) Revoke(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&entities.APIKey{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) TouchLastUsed(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.APIKey{}).
		Where("id = ?", id).
		UpdateColumn("last_used_at", at).Error
}

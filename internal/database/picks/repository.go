// Package picks stores the question-of-the-day history.
package picks

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/qotd/internal/entities"
)

// Repository handles all daily pick database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new daily pick repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByDay returns the pick for day with its question and categories loaded.
// Returns gorm.ErrRecordNotFound when the day has no pick.
func (r *Repository) GetByDay(ctx context.Context, day string) (*entities.DailyPick, error) {
	var pick entities.DailyPick
	err := r.db.WithContext(ctx).
		Preload("Question").
		Preload("Question.Categories").
		Where("day = ?", day).
		First(&pick).Error
	if err != nil {
		return nil, err
	}
	return &pick, nil
}

func (r *Repository) Create(ctx context.Context, pick *entities.DailyPick) error {
	return r.db.WithContext(ctx).Omit("Question").Create(pick).Error
}

// DeleteDay removes the pick for day, if any.
func (r *Repository) DeleteDay(ctx context.Context, day string) error {
	return r.db.WithContext(ctx).Where("day = ?", day).Delete(&entities.DailyPick{}).Error
}

// RecentQuestionIDs returns the question IDs of the latest limit picks, newest first.
func (r *Repository) RecentQuestionIDs(ctx context.Context, limit int) ([]uint, error) {
	ids := []uint{}
	if limit <= 0 {
		return ids, nil
	}
	err := r.db.WithContext(ctx).
		Model(&entities.DailyPick{}).
		Order("day DESC").
		Limit(limit).
		Pluck("question_id", &ids).Error
	return ids, err
}

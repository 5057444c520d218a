// Package questions provides database operations for the question bank.
//
// Every question carries a TextNorm column (normalize.Text of its text) so
// duplicate detection is a single indexed lookup. Create and Update keep it in
// sync; BackfillNorms repairs rows written without one.
//
// # Usage
//
//	repo := questions.NewRepository(db)
//	q := &entities.Question{Text: "What would you do with a free day?", SeriousnessLevel: 2}
//	err := repo.Create(ctx, q, []string{"fun"})
package questions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/qotd/internal/database/categories"
	"github.com/mrlokans/qotd/internal/entities"
	"github.com/mrlokans/qotd/internal/normalize"
)

// ErrUnknownCategory is returned by Update when a category ID does not exist.
var ErrUnknownCategory = errors.New("unknown category id")

// ListFilter narrows List results. Zero values mean "no constraint".
type ListFilter struct {
	Category         string
	SeriousnessLevel int
	Search           string
	Limit            int
}

// UpdateFields holds a partial update. Nil fields are left unchanged; a non-nil
// CategoryIDs replaces the whole category set.
type UpdateFields struct {
	Text             *string
	SeriousnessLevel *int
	CategoryIDs      *[]uint
}

// Repository handles all question database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new questions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func preloadCategories(db *gorm.DB) *gorm.DB {
	return db.Preload("Categories", func(db *gorm.DB) *gorm.DB {
		return db.Order("categories.name ASC")
	})
}

// Create stores q and links it to the named categories, creating unknown ones.
// TextNorm is always recomputed from Text.
func (r *Repository) Create(ctx context.Context, q *entities.Question, categoryNames []string) error {
	q.TextNorm = normalize.Text(q.Text)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cats, err := categories.NewRepository(tx).GetOrCreateMany(ctx, categoryNames)
		if err != nil {
			return err
		}
		q.Categories = cats

		if err := tx.Create(q).Error; err != nil {
			return fmt.Errorf("create question: %w", err)
		}
		return nil
	})
}

// List returns questions matching the filter, newest first.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]entities.Question, error) {
	query := preloadCategories(r.db.WithContext(ctx)).Model(&entities.Question{})

	if f.Category != "" {
		sub := r.db.Table("question_categories").
			Select("question_categories.question_id").
			Joins("JOIN categories ON categories.id = question_categories.category_id").
			Where("LOWER(categories.name) = LOWER(?)", strings.TrimSpace(f.Category))
		query = query.Where("questions.id IN (?)", sub)
	}
	if f.SeriousnessLevel != 0 {
		query = query.Where("seriousness_level = ?", f.SeriousnessLevel)
	}
	if f.Search != "" {
		query = query.Where("LOWER(text) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(f.Search))+"%")
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	qs := []entities.Question{}
	err := query.Order("created_at DESC, id DESC").Find(&qs).Error
	return qs, err
}

// GetByID returns gorm.ErrRecordNotFound when the question does not exist.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Question, error) {
	var q entities.Question
	err := preloadCategories(r.db.WithContext(ctx)).First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Update applies a partial update and returns the reloaded question.
func (r *Repository) Update(ctx context.Context, id uint, f UpdateFields) (*entities.Question, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var q entities.Question
		if err := tx.First(&q, id).Error; err != nil {
			return err
		}

		updates := map[string]any{}
		if f.Text != nil {
			updates["text"] = *f.Text
			updates["text_norm"] = normalize.Text(*f.Text)
		}
		if f.SeriousnessLevel != nil {
			updates["seriousness_level"] = *f.SeriousnessLevel
		}

		if f.CategoryIDs != nil {
			cats, err := categories.NewRepository(tx).GetByIDs(ctx, *f.CategoryIDs)
			if err != nil {
				return err
			}
			if len(cats) != countUnique(*f.CategoryIDs) {
				return ErrUnknownCategory
			}

			assoc := tx.Model(&q).Association("Categories")
			if len(cats) == 0 {
				err = assoc.Clear()
			} else {
				err = assoc.Replace(cats)
			}
			if err != nil {
				return fmt.Errorf("replace categories: %w", err)
			}
			updates["updated_at"] = time.Now()
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&q).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a question together with its category links and daily picks.
// Returns gorm.ErrRecordNotFound when the question does not exist.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var q entities.Question
		if err := tx.First(&q, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&q).Association("Categories").Clear(); err != nil {
			return fmt.Errorf("clear categories: %w", err)
		}
		if err := tx.Where("question_id = ?", id).Delete(&entities.DailyPick{}).Error; err != nil {
			return fmt.Errorf("delete daily picks: %w", err)
		}
		return tx.Delete(&q).Error
	})
}

// DeleteMany removes the questions with the given IDs, or every question when
// ids is nil. Unknown IDs are ignored; the result counts rows actually deleted.
func (r *Repository) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	if ids != nil && len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var result *gorm.DB
		if ids == nil {
			if err := tx.Exec("DELETE FROM question_categories").Error; err != nil {
				return err
			}
			global := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
			if err := global.Delete(&entities.DailyPick{}).Error; err != nil {
				return err
			}
			result = global.Delete(&entities.Question{})
		} else {
			if err := tx.Exec("DELETE FROM question_categories WHERE question_id IN ?", ids).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id IN ?", ids).Delete(&entities.DailyPick{}).Error; err != nil {
				return err
			}
			result = tx.Where("id IN ?", ids).Delete(&entities.Question{})
		}
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Question{}).Count(&count).Error
	return count, err
}

// AllTexts returns every question text in insertion order.
func (r *Repository) AllTexts(ctx context.Context) ([]string, error) {
	texts := []string{}
	err := r.db.WithContext(ctx).Model(&entities.Question{}).Order("id ASC").Pluck("text", &texts).Error
	return texts, err
}

// FindByNorm returns the oldest question whose normalised text equals norm.
// Rows still missing TextNorm are compared on the fly.
func (r *Repository) FindByNorm(ctx context.Context, norm string) (*entities.Question, error) {
	if norm == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var q entities.Question
	err := r.db.WithContext(ctx).Where("text_norm = ?", norm).Order("id ASC").First(&q).Error
	if err == nil {
		return &q, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var legacy []entities.Question
	if err := r.db.WithContext(ctx).Where("text_norm = '' OR text_norm IS NULL").Order("id ASC").Find(&legacy).Error; err != nil {
		return nil, err
	}
	for i := range legacy {
		if normalize.Text(legacy[i].Text) == norm {
			return &legacy[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// CountByLevel returns question counts grouped by seriousness level, ascending.
func (r *Repository) CountByLevel(ctx context.Context) ([]entities.LevelCount, error) {
	out := []entities.LevelCount{}
	err := r.db.WithContext(ctx).
		Model(&entities.Question{}).
		Select("seriousness_level, COUNT(*) AS count").
		Group("seriousness_level").
		Order("seriousness_level ASC").
		Scan(&out).Error
	return out, err
}

// Random returns a random question whose ID is not in exclude.
// Returns gorm.ErrRecordNotFound when no question qualifies.
func (r *Repository) Random(ctx context.Context, exclude []uint) (*entities.Question, error) {
	query := preloadCategories(r.db.WithContext(ctx))
	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}

	var q entities.Question
	if err := query.Order("RANDOM()").Take(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// BackfillNorms fills TextNorm for rows stored without one.
func (r *Repository) BackfillNorms(ctx context.Context) (int64, error) {
	var missing []entities.Question
	if err := r.db.WithContext(ctx).Where("text_norm = '' OR text_norm IS NULL").Find(&missing).Error; err != nil {
		return 0, err
	}

	var updated int64
	for _, q := range missing {
		norm := normalize.Text(q.Text)
		if norm == "" {
			continue
		}
		if err := r.db.WithContext(ctx).Model(&q).UpdateColumn("text_norm", norm).Error; err != nil {
			return updated, fmt.Errorf("backfill question %d: %w", q.ID, err)
		}
		updated++
	}
	return updated, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func countUnique(ids []uint) int {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}

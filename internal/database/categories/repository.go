// Package categories provides database operations for question categories.
//
// Category names are unique ignoring case: GetOrCreate("Science") returns the
// row created earlier as "science".
//
// # Usage
//
//	repo := categories.NewRepository(db)
//	cat, err := repo.GetOrCreate(ctx, "science")
package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/qotd/internal/entities"
	"github.com/mrlokans/qotd/internal/utils"
)

// ErrEmptyName is returned when a category name is blank.
var ErrEmptyName = errors.New("category name must not be empty")

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreate retrieves a category by name (case-insensitive) or creates it
// with a colour derived from the name.
func (r *Repository) GetOrCreate(ctx context.Context, name string) (*entities.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	var cat entities.Category
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cat = entities.Category{Name: name, Color: utils.CategoryColor(name)}
		if err := r.db.WithContext(ctx).Create(&cat).Error; err != nil {
			return nil, fmt.Errorf("create category %q: %w", name, err)
		}
		return &cat, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetOrCreateMany resolves every name, skipping case-insensitive repeats.
// The result keeps the order of first appearance.
func (r *Repository) GetOrCreateMany(ctx context.Context, names []string) ([]entities.Category, error) {
	seen := make(map[string]bool, len(names))
	cats := make([]entities.Category, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		cat, err := r.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		cats = append(cats, *cat)
	}
	return cats, nil
}

// GetByName finds a category ignoring case.
func (r *Repository) GetByName(ctx context.Context, name string) (*entities.Category, error) {
	var cat entities.Category
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetByIDs returns the categories with the given IDs, ordered by name.
func (r *Repository) GetByIDs(ctx context.Context, ids []uint) ([]entities.Category, error) {
	var cats []entities.Category
	if len(ids) == 0 {
		return cats, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&cats).Error
	return cats, err
}

// List returns all categories ordered by name.
func (r *Repository) List(ctx context.Context) ([]entities.Category, error) {
	cats := []entities.Category{}
	err := r.db.WithContext(ctx).Order("name ASC").Find(&cats).Error
	return cats, err
}

// ListWithCount returns all categories with the number of questions referencing each.
func (r *Repository) ListWithCount(ctx context.Context) ([]entities.CategoryWithCount, error) {
	out := []entities.CategoryWithCount{}
	err := r.db.WithContext(ctx).
		Model(&entities.Category{}).
		Select("categories.id, categories.name, categories.color, COUNT(question_categories.question_id) AS question_count").
		Joins("LEFT JOIN question_categories ON question_categories.category_id = categories.id").
		Group("categories.id").
		Order("categories.name ASC").
		Scan(&out).Error
	return out, err
}

// CountByCategory returns question counts for categories that have at least one question,
// largest first.
func (r *Repository) CountByCategory(ctx context.Context) ([]entities.CategoryCount, error) {
	out := []entities.CategoryCount{}
	err := r.db.WithContext(ctx).
		Table("categories").
		Select("categories.name AS name, categories.color AS color, COUNT(*) AS count").
		Joins("JOIN question_categories ON question_categories.category_id = categories.id").
		Group("categories.id").
		Order("count DESC, categories.name ASC").
		Scan(&out).Error
	return out, err
}

// DeleteOrphans removes categories no question references.
func (r *Repository) DeleteOrphans(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM categories
		WHERE id NOT IN (SELECT category_id FROM question_categories)
	`)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

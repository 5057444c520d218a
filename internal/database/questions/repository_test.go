package questions

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/qotd/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "questions.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.Category{},
		&entities.Question{},
		&entities.DailyPick{},
	))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return NewRepository(db), db
}

func mustCreate(t *testing.T, repo *Repository, text string, level int, cats ...string) *entities.Question {
	t.Helper()
	q := &entities.Question{Text: text, SeriousnessLevel: level}
	require.NoError(t, repo.Create(context.Background(), q, cats))
	return q
}

func TestRepository_Create(t *testing.T) {
	repo, _ := setupTestDB(t)

	q := mustCreate(t, repo, "What's the best book you read this year?", 2, "books", "fun")

	assert.NotZero(t, q.ID)
	assert.Equal(t, "whats the best book you read this year", q.TextNorm)
	assert.False(t, q.CreatedAt.IsZero())
	assert.ElementsMatch(t, []string{"books", "fun"}, q.CategoryNames())

	loaded, err := repo.GetByID(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Text, loaded.Text)
	assert.Equal(t, []string{"books", "fun"}, loaded.CategoryNames(), "categories sorted by name")
}

func TestRepository_Create_ReusesCategories(t *testing.T) {
	repo, db := setupTestDB(t)

	mustCreate(t, repo, "q1", 1, "Science")
	mustCreate(t, repo, "q2", 1, "science")

	var count int64
	require.NoError(t, db.Model(&entities.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestDB(t)

	mustCreate(t, repo, "Which planet is your favourite?", 1, "science")
	mustCreate(t, repo, "What would you ask a historian?", 3, "history")
	mustCreate(t, repo, "What is 100% true about you?", 3, "science", "deep")

	t.Run("empty filter returns everything newest first", func(t *testing.T) {
		qs, err := repo.List(ctx, ListFilter{})
		require.NoError(t, err)
		require.Len(t, qs, 3)
		assert.Equal(t, "What is 100% true about you?", qs[0].Text)
	})

	t.Run("by category ignores case", func(t *testing.T) {
		qs, err := repo.List(ctx, ListFilter{Category: "SCIENCE"})
		require.NoError(t, err)
		assert.Len(t, qs, 2)
		for _, q := range qs {
			assert.Contains(t, q.CategoryNames(), "science")
		}
	})

	t.Run("by level", func(t *testing.T) {
		qs, err := repo.List(ctx, ListFilter{SeriousnessLevel: 3})
		require.NoError(t, err)
		assert.Len(t, qs, 2)
	})

	t.Run("search is a case-insensitive substring", func(t *testing.T) {
		qs, err := repo.List(ctx, ListFilter{Search: "PLANET"})
		require.NoError(t, err)
		require.Len(t, qs, 1)
		assert.Equal(t, "Which planet is your favourite?", qs[0].Text)
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		qs, err := repo.List(ctx, ListFilter{Search: "100%"})
		require.NoError(t, err)
		assert.Len(t, qs, 1)

		qs, err = repo.List(ctx, ListFilter{Search: "%"})
		require.NoError(t, err)
		assert.Len(t, qs, 1)
	})

	t.Run("filters combine", func(t *testing.T) {
		qs, err := repo.List(ctx, ListFilter{Category: "science", SeriousnessLevel: 1})
		require.NoError(t, err)
		assert.Len(t, qs, 1)
	})

	t.Run("limit", func(t *testing.T) {
		qs, err := repo.List(ctx, ListFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, qs, 2)
	})

	t.Run("unknown category yields empty list", func(t *testing.T) {
		qs, err := repo.List(ctx, ListFilter{Category: "nope"})
		require.NoError(t, err)
		assert.NotNil(t, qs)
		assert.Empty(t, qs)
	})
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("text updates the normalised text", func(t *testing.T) {
		repo, _ := setupTestDB(t)
		q := mustCreate(t, repo, "Old text", 1, "fun")

		text := "Brand NEW text!"
		updated, err := repo.Update(ctx, q.ID, UpdateFields{Text: &text})
		require.NoError(t, err)
		assert.Equal(t, "Brand NEW text!", updated.Text)
		assert.Equal(t, "brand new text", updated.TextNorm)
		assert.Equal(t, 1, updated.SeriousnessLevel)
		assert.Equal(t, []string{"fun"}, updated.CategoryNames())
	})

	t.Run("level only", func(t *testing.T) {
		repo, _ := setupTestDB(t)
		q := mustCreate(t, repo, "Question", 1)

		level := 4
		updated, err := repo.Update(ctx, q.ID, UpdateFields{SeriousnessLevel: &level})
		require.NoError(t, err)
		assert.Equal(t, 4, updated.SeriousnessLevel)
		assert.Equal(t, "Question", updated.Text)
	})

	t.Run("categories are replaced", func(t *testing.T) {
		repo, db := setupTestDB(t)
		q := mustCreate(t, repo, "Question", 1, "a", "b")
		mustCreate(t, repo, "Other", 1, "c")

		var c entities.Category
		require.NoError(t, db.Where("name = ?", "c").First(&c).Error)

		ids := []uint{c.ID}
		updated, err := repo.Update(ctx, q.ID, UpdateFields{CategoryIDs: &ids})
		require.NoError(t, err)
		assert.Equal(t, []string{"c"}, updated.CategoryNames())
	})

	t.Run("empty category list clears", func(t *testing.T) {
		repo, _ := setupTestDB(t)
		q := mustCreate(t, repo, "Question", 1, "a")

		ids := []uint{}
		updated, err := repo.Update(ctx, q.ID, UpdateFields{CategoryIDs: &ids})
		require.NoError(t, err)
		assert.Empty(t, updated.Categories)
	})

	t.Run("unknown category id", func(t *testing.T) {
		repo, _ := setupTestDB(t)
		q := mustCreate(t, repo, "Question", 1, "a")

		ids := []uint{999}
		_, err := repo.Update(ctx, q.ID, UpdateFields{CategoryIDs: &ids})
		assert.ErrorIs(t, err, ErrUnknownCategory)

		unchanged, err := repo.GetByID(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, unchanged.CategoryNames())
	})

	t.Run("unknown question", func(t *testing.T) {
		repo, _ := setupTestDB(t)

		text := "x"
		_, err := repo.Update(ctx, 404, UpdateFields{Text: &text})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo, db := setupTestDB(t)

	q := mustCreate(t, repo, "Going away", 1, "a")
	require.NoError(t, db.Create(&entities.DailyPick{Day: "2026-01-01", QuestionID: q.ID}).Error)

	require.NoError(t, repo.Delete(ctx, q.ID))

	_, err := repo.GetByID(ctx, q.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var links, picks int64
	db.Table("question_categories").Count(&links)
	db.Model(&entities.DailyPick{}).Count(&picks)
	assert.Zero(t, links)
	assert.Zero(t, picks)

	assert.ErrorIs(t, repo.Delete(ctx, q.ID), gorm.ErrRecordNotFound)
}

func TestRepository_DeleteMany(t *testing.T) {
	ctx := context.Background()

	t.Run("selected ids", func(t *testing.T) {
		repo, _ := setupTestDB(t)
		q1 := mustCreate(t, repo, "one", 1, "a")
		q2 := mustCreate(t, repo, "two", 1)
		mustCreate(t, repo, "three", 1)

		deleted, err := repo.DeleteMany(ctx, []uint{q1.ID, q2.ID, 999})
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("nil deletes everything", func(t *testing.T) {
		repo, db := setupTestDB(t)
		mustCreate(t, repo, "one", 1, "a")
		mustCreate(t, repo, "two", 1, "b")

		deleted, err := repo.DeleteMany(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		var links int64
		db.Table("question_categories").Count(&links)
		assert.Zero(t, links)
	})

	t.Run("empty slice deletes nothing", func(t *testing.T) {
		repo, _ := setupTestDB(t)
		mustCreate(t, repo, "one", 1)

		deleted, err := repo.DeleteMany(ctx, []uint{})
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})
}

func TestRepository_AllTexts(t *testing.T) {
	repo, _ := setupTestDB(t)
	mustCreate(t, repo, "first", 1)
	mustCreate(t, repo, "second", 1)

	texts, err := repo.AllTexts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, texts)
}

func TestRepository_FindByNorm(t *testing.T) {
	ctx := context.Background()
	repo, db := setupTestDB(t)

	q := mustCreate(t, repo, "Where would you travel?", 1)

	found, err := repo.FindByNorm(ctx, "where would you travel")
	require.NoError(t, err)
	assert.Equal(t, q.ID, found.ID)

	_, err = repo.FindByNorm(ctx, "something else")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	t.Run("rows without a stored norm still match", func(t *testing.T) {
		legacy := &entities.Question{Text: "Legacy, imported text", SeriousnessLevel: 1}
		require.NoError(t, db.Create(legacy).Error)

		found, err := repo.FindByNorm(ctx, "legacy imported text")
		require.NoError(t, err)
		assert.Equal(t, legacy.ID, found.ID)
	})
}

func TestRepository_CountByLevel(t *testing.T) {
	repo, _ := setupTestDB(t)
	mustCreate(t, repo, "a", 3)
	mustCreate(t, repo, "b", 1)
	mustCreate(t, repo, "c", 3)

	counts, err := repo.CountByLevel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entities.LevelCount{
		{SeriousnessLevel: 1, Count: 1},
		{SeriousnessLevel: 3, Count: 2},
	}, counts)
}

func TestRepository_Random(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestDB(t)

	_, err := repo.Random(ctx, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	q1 := mustCreate(t, repo, "one", 1)
	q2 := mustCreate(t, repo, "two", 1)

	got, err := repo.Random(ctx, []uint{q1.ID})
	require.NoError(t, err)
	assert.Equal(t, q2.ID, got.ID)

	_, err = repo.Random(ctx, []uint{q1.ID, q2.ID})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_BackfillNorms(t *testing.T) {
	ctx := context.Background()
	repo, db := setupTestDB(t)

	require.NoError(t, db.Create(&entities.Question{Text: "Needs A Norm?", SeriousnessLevel: 1}).Error)
	mustCreate(t, repo, "Has one", 1)

	updated, err := repo.BackfillNorms(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	var q entities.Question
	require.NoError(t, db.Where("text = ?", "Needs A Norm?").First(&q).Error)
	assert.Equal(t, "needs a norm", q.TextNorm)

	updated, err = repo.BackfillNorms(ctx)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

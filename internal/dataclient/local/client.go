// Package local implements dataclient.DataClient directly against the SQLite database.
package local

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/qotd/internal/dailypick"
	"github.com/mrlokans/qotd/internal/database"
	"github.com/mrlokans/qotd/internal/database/categories"
	"github.com/mrlokans/qotd/internal/database/questions"
	"github.com/mrlokans/qotd/internal/dataclient"
	"github.com/mrlokans/qotd/internal/entities"
	"github.com/mrlokans/qotd/internal/normalize"
)

// DailyPickHistory is how many recent picks the local question of the day avoids.
const DailyPickHistory = 30

type Client struct {
	db         *database.Database
	owned      bool
	questions  *questions.Repository
	categories *categories.Repository
	picker     *dailypick.Picker

	afterDelete func(ctx context.Context)
}

type Option func(*Client)

// WithAfterDelete registers fn to run after questions are deleted.
func WithAfterDelete(fn func(ctx context.Context)) Option {
	return func(c *Client) {
		c.afterDelete = fn
	}
}

// New opens the database at dbPath. The returned client owns it and closes it on Close.
func New(dbPath string, opts ...Option) (*Client, error) {
	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	c := NewWithDatabase(db, opts...)
	c.owned = true
	return c, nil
}

// NewWithDatabase wraps an already opened database. Close leaves it open.
func NewWithDatabase(db *database.Database, opts ...Option) *Client {
	c := &Client{
		db:         db,
		questions:  questions.NewRepository(db.DB),
		categories: categories.NewRepository(db.DB),
		picker:     dailypick.NewPicker(db.DB, DailyPickHistory),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Close() error {
	if !c.owned {
		return nil
	}
	return c.db.Close()
}

func (c *Client) CreateQuestion(ctx context.Context, input dataclient.CreateQuestionInput) (*entities.Question, error) {
	if err := dataclient.ValidateCreate(input); err != nil {
		return nil, err
	}

	q := &entities.Question{
		Text:             strings.TrimSpace(input.Text),
		SeriousnessLevel: input.SeriousnessLevel,
	}
	if err := c.questions.Create(ctx, q, input.CategoryNames); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return q, nil
}

func (c *Client) CreateQuestionsBulk(ctx context.Context, inputs []dataclient.CreateQuestionInput) (*dataclient.BulkCreateResult, error) {
	result := &dataclient.BulkCreateResult{
		Created: []entities.Question{},
		Errors:  []dataclient.BulkCreateError{},
	}

	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		q, err := c.CreateQuestion(ctx, input)
		if err != nil {
			result.Errors = append(result.Errors, dataclient.BulkCreateError{
				Index: i,
				Text:  input.Text,
				Error: err.Error(),
			})
			continue
		}
		result.Created = append(result.Created, *q)
	}
	return result, nil
}

func (c *Client) ListQuestions(ctx context.Context, filter dataclient.ListQuestionsFilter) ([]entities.Question, error) {
	qs, err := c.questions.List(ctx, questions.ListFilter{
		Category:         filter.Category,
		SeriousnessLevel: filter.SeriousnessLevel,
		Search:           filter.Search,
		Limit:            filter.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return qs, nil
}

func (c *Client) GetQuestion(ctx context.Context, id uint) (*entities.Question, error) {
	q, err := c.questions.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}
	return q, nil
}

func (c *Client) UpdateQuestion(ctx context.Context, id uint, input dataclient.UpdateQuestionInput) (*entities.Question, error) {
	if err := dataclient.ValidateUpdate(input); err != nil {
		return nil, err
	}

	fields := questions.UpdateFields{
		SeriousnessLevel: input.SeriousnessLevel,
		CategoryIDs:      input.CategoryIDs,
	}
	if input.Text != nil {
		text := strings.TrimSpace(*input.Text)
		fields.Text = &text
	}

	q, err := c.questions.Update(ctx, id, fields)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, dataclient.ErrNotFound
	case errors.Is(err, questions.ErrUnknownCategory):
		return nil, &dataclient.ValidationError{Field: "categoryIds", Message: err.Error()}
	case err != nil:
		return nil, fmt.Errorf("failed to update question %d: %w", id, err)
	}
	return q, nil
}

func (c *Client) DeleteQuestion(ctx context.Context, id uint) error {
	err := c.questions.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dataclient.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	c.notifyDeleted(ctx)
	return nil
}

func (c *Client) DeleteQuestions(ctx context.Context, ids []uint) (int64, error) {
	deleted, err := c.questions.DeleteMany(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete questions: %w", err)
	}
	if deleted > 0 {
		c.notifyDeleted(ctx)
	}
	return deleted, nil
}

func (c *Client) notifyDeleted(ctx context.Context) {
	if c.afterDelete != nil {
		c.afterDelete(ctx)
	}
}

func (c *Client) GetQuestionCount(ctx context.Context) (int64, error) {
	return c.questions.Count(ctx)
}

func (c *Client) GetAllQuestionTexts(ctx context.Context) ([]string, error) {
	return c.questions.AllTexts(ctx)
}

func (c *Client) CheckDuplicate(ctx context.Context, text string) (*dataclient.DuplicateCheckResult, error) {
	existing, err := c.questions.FindByNorm(ctx, normalize.Text(text))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dataclient.DuplicateCheckResult{IsDuplicate: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicate: %w", err)
	}

	return &dataclient.DuplicateCheckResult{
		IsDuplicate:  true,
		ExistingID:   &existing.ID,
		ExistingText: &existing.Text,
	}, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]entities.Category, error) {
	return c.categories.List(ctx)
}

func (c *Client) ListCategoriesWithCount(ctx context.Context) ([]entities.CategoryWithCount, error) {
	return c.categories.ListWithCount(ctx)
}

func (c *Client) GetStats(ctx context.Context) (*entities.Stats, error) {
	total, err := c.questions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	byLevel, err := c.questions.CountByLevel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count by level: %w", err)
	}
	byCategory, err := c.categories.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count by category: %w", err)
	}

	return &entities.Stats{
		Total:      total,
		ByLevel:    byLevel,
		ByCategory: byCategory,
	}, nil
}

// DailyPick returns today's question of the day. It is not part of DataClient.
func (c *Client) DailyPick(ctx context.Context) (*entities.DailyPick, error) {
	return c.picker.Today(ctx)
}

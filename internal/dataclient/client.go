// Package dataclient defines the question bank operations shared by the local
// SQLite backend and the remote HTTP backend, and selects which one a command uses.
package dataclient

import (
	"context"

	"github.com/mrlokans/qotd/internal/entities"
)

// DataClient is the question bank as seen by the CLI. Every method is a single round trip.
type DataClient interface {
	CreateQuestion(ctx context.Context, input CreateQuestionInput) (*entities.Question, error)
	CreateQuestionsBulk(ctx context.Context, inputs []CreateQuestionInput) (*BulkCreateResult, error)
	ListQuestions(ctx context.Context, filter ListQuestionsFilter) ([]entities.Question, error)
	// GetQuestion returns nil, nil when the question does not exist.
	GetQuestion(ctx context.Context, id uint) (*entities.Question, error)
	UpdateQuestion(ctx context.Context, id uint, input UpdateQuestionInput) (*entities.Question, error)
	DeleteQuestion(ctx context.Context, id uint) error
	// DeleteQuestions deletes the given ids, or every question when ids is nil.
	DeleteQuestions(ctx context.Context, ids []uint) (int64, error)
	GetQuestionCount(ctx context.Context) (int64, error)
	GetAllQuestionTexts(ctx context.Context) ([]string, error)
	CheckDuplicate(ctx context.Context, text string) (*DuplicateCheckResult, error)
	ListCategories(ctx context.Context) ([]entities.Category, error)
	ListCategoriesWithCount(ctx context.Context) ([]entities.CategoryWithCount, error)
	GetStats(ctx context.Context) (*entities.Stats, error)
}

// CreateQuestionInput.TextNorm is accepted on the wire for older clients;
// backends store normalize.Text(Text) regardless.
type CreateQuestionInput struct {
	Text             string   `json:"text"`
	TextNorm         string   `json:"textNorm,omitempty"`
	SeriousnessLevel int      `json:"seriousnessLevel"`
	CategoryNames    []string `json:"categoryNames,omitempty"`
}

// UpdateQuestionInput is a partial update. Nil fields are left unchanged;
// a non-nil CategoryIDs replaces the whole category set.
type UpdateQuestionInput struct {
	Text             *string `json:"text,omitempty"`
	SeriousnessLevel *int    `json:"seriousnessLevel,omitempty"`
	CategoryIDs      *[]uint `json:"categoryIds,omitempty"`
}

// ListQuestionsFilter criteria are ANDed. Zero values mean "any".
type ListQuestionsFilter struct {
	Category         string
	SeriousnessLevel int
	Search           string
	Limit            int
}

type DuplicateCheckResult struct {
	IsDuplicate  bool    `json:"isDuplicate"`
	ExistingID   *uint   `json:"existingId"`
	ExistingText *string `json:"existingText"`
}

type BulkCreateError struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Error string `json:"error"`
}

type BulkCreateResult struct {
	Created []entities.Question `json:"created"`
	Errors  []BulkCreateError   `json:"errors"`
}

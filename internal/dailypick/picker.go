// Package dailypick chooses the question of the day.
//
// One question is drawn per calendar day and stored, so every caller sees the
// same question for the rest of the day. Questions picked during the last
// History days are skipped until the whole bank has been used.
package dailypick

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/qotd/internal/database/picks"
	"github.com/mrlokans/qotd/internal/database/questions"
	"github.com/mrlokans/qotd/internal/entities"
)

var ErrNoQuestions = errors.New("no questions to pick from")

type Picker struct {
	picks     *picks.Repository
	questions *questions.Repository
	history   int

	mu sync.Mutex
}

func NewPicker(db *gorm.DB, history int) *Picker {
	return &Picker{
		picks:     picks.NewRepository(db),
		questions: questions.NewRepository(db),
		history:   history,
	}
}

// PickForDay returns the pick for day, drawing and storing one if the day has none yet.
func (p *Picker) PickForDay(ctx context.Context, day time.Time) (*entities.DailyPick, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := entities.DayOf(day)

	existing, err := p.picks.GetByDay(ctx, key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load pick for %s: %w", key, err)
	}

	exclude, err := p.picks.RecentQuestionIDs(ctx, p.history)
	if err != nil {
		return nil, fmt.Errorf("failed to load pick history: %w", err)
	}

	q, err := p.questions.Random(ctx, exclude)
	if errors.Is(err, gorm.ErrRecordNotFound) && len(exclude) > 0 {
		// Every question was used recently; start over.
		q, err = p.questions.Random(ctx, nil)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoQuestions
	}
	if err != nil {
		return nil, fmt.Errorf("failed to draw question: %w", err)
	}

	if err := p.picks.Create(ctx, &entities.DailyPick{Day: key, QuestionID: q.ID}); err != nil {
		return nil, fmt.Errorf("failed to store pick for %s: %w", key, err)
	}
	log.Printf("Question of the day for %s: #%d", key, q.ID)

	return p.picks.GetByDay(ctx, key)
}

// Today is PickForDay for the current local date.
func (p *Picker) Today(ctx context.Context) (*entities.DailyPick, error) {
	return p.PickForDay(ctx, time.Now())
}

// Repick discards the stored pick for day and draws a new one.
func (p *Picker) Repick(ctx context.Context, day time.Time) (*entities.DailyPick, error) {
	if err := p.picks.DeleteDay(ctx, entities.DayOf(day)); err != nil {
		return nil, fmt.Errorf("failed to discard pick: %w", err)
	}
	return p.PickForDay(ctx, day)
}

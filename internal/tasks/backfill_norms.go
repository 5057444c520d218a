package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// NormsBackfiller fills the normalised text of questions stored without one.
type NormsBackfiller interface {
	BackfillNorms(ctx context.Context) (int64, error)
}

// BackfillNormsTask is enqueued once at server start-up.
type BackfillNormsTask struct{}

func (t BackfillNormsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "backfill_text_norms",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func BackfillNormsProcessor(backfiller NormsBackfiller) backlite.QueueProcessor[BackfillNormsTask] {
	return func(ctx context.Context, task BackfillNormsTask) error {
		if backfiller == nil {
			return fmt.Errorf("norms backfiller not configured")
		}

		updated, err := backfiller.BackfillNorms(ctx)
		if err != nil {
			return fmt.Errorf("backfill text norms: %w", err)
		}

		log.Printf("[TASK] Backfilled normalised text for %d questions", updated)
		return nil
	}
}

func NewBackfillNormsQueue(backfiller NormsBackfiller) backlite.Queue {
	return backlite.NewQueue(BackfillNormsProcessor(backfiller))
}

package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// OrphanCategoriesCleaner deletes categories no question refers to.
type OrphanCategoriesCleaner interface {
	DeleteOrphans(ctx context.Context) (int64, error)
}

// CleanupOrphanCategoriesTask runs after question deletes.
type CleanupOrphanCategoriesTask struct{}

func (t CleanupOrphanCategoriesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_orphan_categories",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func CleanupOrphanCategoriesProcessor(cleaner OrphanCategoriesCleaner) backlite.QueueProcessor[CleanupOrphanCategoriesTask] {
	return func(ctx context.Context, task CleanupOrphanCategoriesTask) error {
		if cleaner == nil {
			return fmt.Errorf("orphan categories cleaner not configured")
		}

		deleted, err := cleaner.DeleteOrphans(ctx)
		if err != nil {
			return fmt.Errorf("cleanup orphan categories: %w", err)
		}

		if deleted > 0 {
			log.Printf("[TASK] Cleaned up %d orphan categories", deleted)
		}
		return nil
	}
}

func NewCleanupOrphanCategoriesQueue(cleaner OrphanCategoriesCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupOrphanCategoriesProcessor(cleaner))
}

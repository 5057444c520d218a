package http

import (
	"context"
	"time"

	"github.com/mrlokans/qotd/internal/entities"
)

// The question and category endpoints are served by a dataclient.DataClient;
// the interfaces below cover what lives outside it.

// DailyPicker provides the question of the day.
type DailyPicker interface {
	Today(ctx context.Context) (*entities.DailyPick, error)
	Repick(ctx context.Context, day time.Time) (*entities.DailyPick, error)
}

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

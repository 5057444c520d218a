package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/qotd/internal/config"
	"github.com/mrlokans/qotd/internal/dailypick"
	"github.com/mrlokans/qotd/internal/entities"
)

type fakePicker struct {
	mu    sync.Mutex
	days  []time.Time
	err   error
	drawn chan struct{}
}

func (f *fakePicker) PickForDay(ctx context.Context, day time.Time) (*entities.DailyPick, error) {
	f.mu.Lock()
	f.days = append(f.days, day)
	f.mu.Unlock()
	defer func() { f.drawn <- struct{}{} }()

	if f.err != nil {
		return nil, f.err
	}
	return &entities.DailyPick{Day: entities.DayOf(day), QuestionID: 1}, nil
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 0 * * *"))
	assert.NoError(t, ValidateCronSchedule("30 6 * * 1-5"))
	assert.Error(t, ValidateCronSchedule("every day"))
	assert.Error(t, ValidateCronSchedule("0 0 0 * * *"), "six fields are rejected")
}

func TestDailyPickScheduler_Disabled(t *testing.T) {
	s := NewDailyPickScheduler(&fakePicker{drawn: make(chan struct{}, 1)}, config.DailyPick{Enabled: false, Schedule: "0 0 * * *"})

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestDailyPickScheduler_InvalidSchedule(t *testing.T) {
	s := NewDailyPickScheduler(&fakePicker{drawn: make(chan struct{}, 1)}, config.DailyPick{Enabled: true, Schedule: "nope"})

	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestDailyPickScheduler_PicksOnStart(t *testing.T) {
	picker := &fakePicker{drawn: make(chan struct{}, 1)}
	s := NewDailyPickScheduler(picker, config.DailyPick{Enabled: true, Schedule: "0 0 * * *"})
	fixed := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())
	require.NotNil(t, s.GetNextRunTime())

	select {
	case <-picker.drawn:
	case <-time.After(5 * time.Second):
		t.Fatal("no pick drawn on start")
	}
	picker.mu.Lock()
	assert.Equal(t, []time.Time{fixed}, picker.days)
	picker.mu.Unlock()

	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestDailyPickScheduler_EmptyBankIsNotFatal(t *testing.T) {
	picker := &fakePicker{drawn: make(chan struct{}, 1), err: dailypick.ErrNoQuestions}
	s := NewDailyPickScheduler(picker, config.DailyPick{Enabled: true, Schedule: "0 0 * * *"})

	s.runPick(context.Background())

	assert.Len(t, picker.drawn, 1)
}

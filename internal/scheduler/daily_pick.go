package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/qotd/internal/config"
	"github.com/mrlokans/qotd/internal/dailypick"
	"github.com/mrlokans/qotd/internal/entities"
)

// DayPicker draws the question of a given day.
type DayPicker interface {
	PickForDay(ctx context.Context, day time.Time) (*entities.DailyPick, error)
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// DailyPickScheduler draws the question of the day on a cron schedule.
type DailyPickScheduler struct {
	picker DayPicker
	config config.DailyPick
	now    func() time.Time

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewDailyPickScheduler(picker DayPicker, cfg config.DailyPick) *DailyPickScheduler {
	return &DailyPickScheduler{
		picker: picker,
		config: cfg,
		now:    time.Now,
		cron:   cron.New(cron.WithParser(cronParser)),
	}
}

// Start begins the scheduler if enabled and draws today's pick straight away.
func (s *DailyPickScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Daily pick scheduler: disabled")
		return nil
	}

	if err := ValidateCronSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runPick(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule daily pick job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Daily pick scheduler: started with schedule '%s'. Next run: %v", s.config.Schedule, s.nextRunLocked())

	go s.runPick(cancelCtx)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *DailyPickScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Daily pick scheduler: stopped")
}

func (s *DailyPickScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next pick will be drawn
func (s *DailyPickScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.nextRunLocked()
	if next.IsZero() {
		return nil
	}
	return &next
}

func (s *DailyPickScheduler) nextRunLocked() time.Time {
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			return entry.Next
		}
	}
	return time.Time{}
}

func (s *DailyPickScheduler) runPick(ctx context.Context) {
	pick, err := s.picker.PickForDay(ctx, s.now())
	if errors.Is(err, dailypick.ErrNoQuestions) {
		log.Printf("Daily pick: skipped (question bank is empty)")
		return
	}
	if err != nil {
		log.Printf("Daily pick: failed: %v", err)
		return
	}
	log.Printf("Daily pick: %s is question #%d", pick.Day, pick.QuestionID)
}

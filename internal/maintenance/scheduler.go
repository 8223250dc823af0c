package maintenance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Optimizer is implemented by databases that can refresh planner statistics
type Optimizer interface {
	Optimize(ctx context.Context) error
}

// Scheduler runs database optimization on a cron schedule
type Scheduler struct {
	db       Optimizer
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	entryID  cron.EntryID
	mu       sync.Mutex
	running  bool
}

// New creates a scheduler for the given cron expression
func New(db Optimizer, schedule string) *Scheduler {
	return &Scheduler{
		db:       db,
		schedule: schedule,
		timeout:  time.Minute,
		cron:     cron.New(),
	}
}

// Start registers the job and starts the cron scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	id, err := s.cron.AddFunc(s.schedule, s.run)
	if err != nil {
		return fmt.Errorf("invalid optimize schedule %q: %w", s.schedule, err)
	}
	s.entryID = id

	s.cron.Start()
	s.running = true

	log.Info().Str("schedule", s.schedule).Msg("Database optimize scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	s.entryID = 0
	s.running = false
	log.Info().Msg("Database optimize scheduler stopped")
}

// NextRun returns the next scheduled run, or the zero time when stopped
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.db.Optimize(ctx); err != nil {
		log.Error().Err(err).Msg("Scheduled database optimize failed")
		return
	}
	log.Debug().Dur("duration", time.Since(start)).Msg("Scheduled database optimize complete")
}

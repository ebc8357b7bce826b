package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/AI2HU/pepychart/internal/config"
	"github.com/AI2HU/pepychart/internal/logger"
	"github.com/AI2HU/pepychart/internal/services"
)

// DefaultRunTimeout bounds a single scheduled regeneration
const DefaultRunTimeout = time.Minute

// Creator produces a chart from options
type Creator interface {
	Create(ctx context.Context, opts *config.CreateOptions) (*services.ChartData, error)
}

// Scheduler regenerates charts on cron expressions
type Scheduler struct {
	creator Creator
	cron    *cron.Cron
	running bool
	mu      sync.RWMutex
}

// New creates a new scheduler
func New(creator Creator) *Scheduler {
	cronLogger := cron.PrintfLogger(log.New(logger.Writer(logger.DEBUG), "cron: ", 0))
	return &Scheduler{
		creator: creator,
		cron:    cron.New(cron.WithLogger(cronLogger)),
	}
}

// Add registers a chart job. Image creation is forced on and opening off.
func (s *Scheduler) Add(expr string, opts config.CreateOptions) (cron.EntryID, error) {
	opts.CreateImage = true
	opts.OpenImage = false
	if err := opts.Validate(); err != nil {
		return 0, fmt.Errorf("invalid job for %s: %w", opts.Package, err)
	}

	id, err := s.cron.AddFunc(expr, func() {
		if err := s.RunNow(context.Background(), opts); err != nil {
			logger.Error("Scheduled chart for %s failed: %v", opts.Package, err)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add cron job: %w", err)
	}

	logger.Info("Registered chart for %s with cron expression: %s", opts.Package, expr)
	return id, nil
}

// RunNow regenerates one chart immediately
func (s *Scheduler) RunNow(ctx context.Context, opts config.CreateOptions) error {
	runID := uuid.New().String()
	ctx, cancel := context.WithTimeout(ctx, DefaultRunTimeout)
	defer cancel()

	logger.Info("Run %s: regenerating chart for %s", runID, opts.Package)
	startTime := time.Now()

	data, err := s.creator.Create(ctx, &opts)
	if err != nil {
		return fmt.Errorf("run %s: %w", runID, err)
	}

	logger.Info("Run %s: %d days written to %s in %s", runID, data.Series.Len(), opts.OutputPath, time.Since(startTime).Round(time.Millisecond))
	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	s.cron.Start()
	s.running = true

	logger.Info("Scheduler started with %d job(s)", len(s.cron.Entries()))
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.running = false

	logger.Info("Scheduler stopped")
}

// IsRunning reports whether the scheduler is started
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Next returns the next activation time of every job
func (s *Scheduler) Next() []time.Time {
	entries := s.cron.Entries()
	next := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		next = append(next, entry.Next)
	}
	return next
}

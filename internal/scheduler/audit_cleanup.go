package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// AuditCleanupEnqueuer puts one audit retention run on the task queue.
type AuditCleanupEnqueuer interface {
	EnqueueAuditCleanup(retentionDays int) (string, error)
}

// AuditCleanupConfig controls when the audit trail is pruned.
type AuditCleanupConfig struct {
	Enabled       bool
	Schedule      string
	RetentionDays int
}

// AuditCleanupScheduler enqueues audit retention tasks on a cron schedule.
// The work itself runs on the task queue, so a missed tick is retried there.
type AuditCleanupScheduler struct {
	config   AuditCleanupConfig
	enqueuer AuditCleanupEnqueuer

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewAuditCleanupScheduler(cfg AuditCleanupConfig, enqueuer AuditCleanupEnqueuer) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		config:   cfg,
		enqueuer: enqueuer,
		cron:     cron.New(cron.WithParser(newParser())),
	}
}

// Start schedules the cleanup job. It is a no-op when cleanup is disabled.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Audit cleanup scheduler: disabled")
		return nil
	}

	if err := ValidateCronSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, s.RunNow)
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunTime(s.config.Schedule)
	log.Printf("Audit cleanup scheduler: started with schedule '%s', retention %d days. Next run: %v",
		s.config.Schedule, s.config.RetentionDays, nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for an in-flight enqueue and stops the cron loop.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	log.Printf("Audit cleanup scheduler: stopped")
}

// RunNow enqueues a cleanup immediately.
func (s *AuditCleanupScheduler) RunNow() {
	id, err := s.enqueuer.EnqueueAuditCleanup(s.config.RetentionDays)
	if err != nil {
		log.Printf("Audit cleanup scheduler: %v", err)
		return
	}
	log.Printf("Audit cleanup scheduler: enqueued task %s", id)
}

// IsRunning returns whether the scheduler is active.
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next cleanup will be enqueued, or nil when stopped.
func (s *AuditCleanupScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	return &entry.Next
}

func newParser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
}

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := newParser().Parse(schedule)
	return err
}

// NextRunTime returns the first activation of schedule after now.
func NextRunTime(schedule string) (*time.Time, error) {
	sched, err := newParser().Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}

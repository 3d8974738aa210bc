package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/librarydesk/internal/tasks"
)

// Enqueuer saves a task on the background queue.
type Enqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// MaintenanceConfig controls the periodic maintenance run.
type MaintenanceConfig struct {
	Enabled            bool
	Schedule           string
	AuditRetentionDays int
}

// MaintenanceScheduler periodically enqueues the overdue scan and the
// audit cleanup. The work itself runs on the task queue workers.
type MaintenanceScheduler struct {
	enqueuer Enqueuer
	config   MaintenanceConfig

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a scheduler that enqueues work on
// enqueuer. It does nothing until Start is called.
func NewMaintenanceScheduler(enqueuer Enqueuer, cfg MaintenanceConfig) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		enqueuer: enqueuer,
		config:   cfg,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start schedules the maintenance job. It is a no-op when maintenance is
// disabled. The scheduler stops by itself when ctx is cancelled.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Maintenance scheduler: disabled")
		return nil
	}

	if err := ValidateCronSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runMaintenance()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunTime(s.config.Schedule, time.Now())
	log.Printf("Maintenance scheduler: started with schedule '%s' (%s). Next run: %v",
		s.config.Schedule,
		CronDescription(s.config.Schedule),
		nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job to finish and stops the scheduler.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Maintenance scheduler: stopped")
}

// RunNow enqueues the maintenance tasks immediately.
func (s *MaintenanceScheduler) RunNow() []string {
	return s.runMaintenance()
}

func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next maintenance run will occur.
func (s *MaintenanceScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runMaintenance enqueues every maintenance task and returns the IDs of
// the ones that were saved. A failed enqueue does not stop the others.
func (s *MaintenanceScheduler) runMaintenance() []string {
	if s.enqueuer == nil {
		log.Printf("Maintenance: skipped (task queue not configured)")
		return nil
	}

	batch := []backlite.Task{
		tasks.OverdueScanTask{},
		tasks.CleanupAuditEventsTask{RetentionDays: s.config.AuditRetentionDays},
	}

	var ids []string
	for _, task := range batch {
		id, err := s.enqueuer.Enqueue(task)
		if err != nil {
			log.Printf("Maintenance: failed to enqueue %s: %v", task.Config().Name, err)
			continue
		}
		ids = append(ids, id)
	}
	log.Printf("Maintenance: enqueued %d of %d tasks", len(ids), len(batch))
	return ids
}

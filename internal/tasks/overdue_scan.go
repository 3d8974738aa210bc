package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/librarydesk/internal/entities"
	"github.com/mrlokans/librarydesk/internal/metrics"
)

const OverdueScanQueue = "overdue_scan"

// OverdueLister lists borrowed transactions due before asOf.
type OverdueLister interface {
	ListOverdue(ctx context.Context, asOf time.Time) []entities.TransactionView
}

// OverdueScanTask counts the transactions that are past their due date.
type OverdueScanTask struct{}

func (t OverdueScanTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        OverdueScanQueue,
		MaxAttempts: 1,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
		},
	}
}

// OverdueScanner publishes the overdue count as a metric and writes one
// maintenance audit entry per run.
type OverdueScanner struct {
	lister   OverdueLister
	recorder metrics.Recorder
	audit    MaintenanceLogger
	now      func() time.Time
}

// NewOverdueScanner creates a scanner for borrowed books past due.
func NewOverdueScanner(lister OverdueLister, recorder metrics.Recorder, audit MaintenanceLogger) *OverdueScanner {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &OverdueScanner{
		lister:   lister,
		recorder: recorder,
		audit:    audit,
		now:      time.Now,
	}
}

// Scan returns the transactions overdue as of now.
func (s *OverdueScanner) Scan(ctx context.Context) []entities.TransactionView {
	overdue := s.lister.ListOverdue(ctx, entities.OverdueCutoff(s.now()))
	s.recorder.RecordOverdue(len(overdue))
	return overdue
}

func (s *OverdueScanner) Processor() backlite.QueueProcessor[OverdueScanTask] {
	return func(ctx context.Context, _ OverdueScanTask) error {
		if s.lister == nil {
			return fmt.Errorf("overdue lister not configured")
		}

		overdue := s.Scan(ctx)
		for _, tx := range overdue {
			log.Printf("[TASK] Overdue: transaction %d, book %d (%s), member %d (%s), due %s",
				tx.ID, tx.BookID, tx.BookTitle, tx.MemberID, tx.MemberName, tx.DueDate.Format(entities.DueDateLayout))
		}
		log.Printf("[TASK] Overdue scan found %d transactions", len(overdue))

		if s.audit != nil {
			s.audit.LogMaintenance(OverdueScanQueue, fmt.Sprintf("Found %d overdue transactions", len(overdue)), nil)
		}
		return nil
	}
}

// Queue returns the backlite queue running scans.
func (s *OverdueScanner) Queue() backlite.Queue {
	return backlite.NewQueue(s.Processor())
}

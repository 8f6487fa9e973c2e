package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	syncdomain "studysync-backend/internal/sync/domain"
	"studysync-backend/internal/sync/usecase"
)

// SyncScheduler runs the Canvas reconciliation on a fixed interval so the
// task list stays current without anyone invoking /sync. Runs execute
// sequentially; a tick that fires while a run is in flight waits for it.
type SyncScheduler struct {
	syncUsecase usecase.SyncUsecase
	interval    time.Duration
	stopChan    chan struct{}
}

// NewSyncScheduler creates a new scheduler
func NewSyncScheduler(syncUsecase usecase.SyncUsecase, interval time.Duration) *SyncScheduler {
	return &SyncScheduler{
		syncUsecase: syncUsecase,
		interval:    interval,
		stopChan:    make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *SyncScheduler) Start() {
	log.Printf("[SyncScheduler] Starting periodic Canvas sync (interval: %s)", s.interval)

	go func() {
		// Run immediately on start
		s.runOnce()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-s.stopChan:
				log.Println("[SyncScheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *SyncScheduler) Stop() {
	close(s.stopChan)
}

func (s *SyncScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	summary, err := s.syncUsecase.SyncAssignments(ctx)
	if errors.Is(err, syncdomain.ErrSyncInProgress) {
		log.Println("[SyncScheduler] Sync already running, skipping this tick")
		return
	}
	if err != nil {
		log.Printf("[SyncScheduler] Sync run failed: %v", err)
		return
	}
	log.Printf("[SyncScheduler] Sync run finished: created=%d updated=%d skipped=%d errors=%d",
		summary.Created, summary.Updated, summary.Skipped, summary.Errors)
}

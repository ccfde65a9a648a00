package workers

import (
	"context"
	"log"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
)

type SyncStatusRepository interface {
	RecordOutcome(ctx context.Context, outcome domain.SyncOutcome) error
	AddPendingChange(ctx context.Context, practitionerID string) error
}

type recordJob struct {
	outcome       domain.SyncOutcome
	pendingChange bool
}

// SyncRecorder folds sync bookkeeping into the status row off the
// request path. The upstream sync itself runs elsewhere; this worker
// only records what it reports back, plus local mutations that are
// still waiting to be pushed.
type SyncRecorder struct {
	syncRepo SyncStatusRepository
	jobs     chan recordJob
}

func NewSyncRecorder(syncRepo SyncStatusRepository) *SyncRecorder {
	return &SyncRecorder{
		syncRepo: syncRepo,
		jobs:     make(chan recordJob, 100),
	}
}

func (w *SyncRecorder) Start(ctx context.Context) {
	go func() {
		log.Println("Sync Recorder started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Sync Recorder shutting down...")
				return
			}
		}
	}()
}

// RecordOutcome enqueues the result of one upstream sync attempt.
func (w *SyncRecorder) RecordOutcome(outcome domain.SyncOutcome) {
	w.enqueue(recordJob{outcome: outcome})
}

// RecordPendingChange enqueues a local mutation that has not been
// pushed upstream yet.
func (w *SyncRecorder) RecordPendingChange(practitionerID, operation, entity string) {
	w.enqueue(recordJob{
		outcome:       domain.SyncOutcome{PractitionerID: practitionerID, Operation: operation, Entity: entity},
		pendingChange: true,
	})
}

func (w *SyncRecorder) enqueue(job recordJob) {
	select {
	case w.jobs <- job:
	default:
		log.Printf("Sync Recorder queue full! Dropping job for practitioner %s", job.outcome.PractitionerID)
	}
}

func (w *SyncRecorder) processJob(ctx context.Context, job recordJob) {
	if job.pendingChange {
		if err := w.syncRepo.AddPendingChange(ctx, job.outcome.PractitionerID); err != nil {
			log.Printf("Worker Error recording pending change for %s: %v", job.outcome.PractitionerID, err)
		}
		return
	}

	if err := w.syncRepo.RecordOutcome(ctx, job.outcome); err != nil {
		log.Printf("Worker Error recording sync outcome for %s: %v", job.outcome.PractitionerID, err)
	}
}

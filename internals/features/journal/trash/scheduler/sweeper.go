package scheduler

import (
	"errors"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	TrashModel "journalku_backend/internals/features/journal/trash/model"
	"journalku_backend/internals/features/journal/trash/service"
)

// Sweeper is the recurring background task that enforces the retention
// window: every tick it converts soft-deleted items whose ledger records
// have expired into permanently deleted ones and consumes the records.
// It never touches owner counters or like records; both were settled at
// soft-delete time.
type Sweeper struct {
	db       *gorm.DB
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
	started  bool
	stopOnce sync.Once
}

func NewSweeper(db *gorm.DB, interval time.Duration) *Sweeper {
	return &Sweeper{
		db:       db,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the tick loop. Call once at process init.
func (s *Sweeper) Start() {
	if s.started {
		return
	}
	s.started = true
	go func() {
		defer close(s.done)
		log.Printf("[SWEEPER] started, interval=%s", s.interval)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := s.RunOnce(time.Now()); err != nil {
					log.Printf("[SWEEPER] tick error: %v", err)
				}
			case <-s.stop:
				log.Println("[SWEEPER] stopped")
				return
			}
		}
	}()
}

// Stop ends the loop and waits for the in-flight tick to finish. Safe to
// call more than once, and a no-op if the loop never started.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	if !s.started {
		return
	}
	<-s.done
}

// RunOnce performs a single sweep of every ledger record expired at `now`.
// Best-effort per record: one item's failure is logged and the tick moves
// on; its ledger record survives for the next tick to retry. Returns how
// many items were permanently deleted.
func (s *Sweeper) RunOnce(now time.Time) (int, error) {
	var expired []TrashModel.TrashModel
	if err := s.db.
		Where("trash_expiry_date <= ?", now).
		Find(&expired).Error; err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		log.Println("[SWEEPER] nothing expired")
		return 0, nil
	}

	purged := 0
	for _, record := range expired {
		store, ok := service.StoreFor(record.TrashType)
		if !ok {
			log.Printf("[SWEEPER] trash=%s unknown kind %q, skipping", record.TrashID, record.TrashType)
			continue
		}

		snap, err := store.Load(s.db, record.TrashItemID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Item is gone entirely; the record is stale.
			s.dropRecord(record)
			continue
		case err != nil:
			log.Printf("[SWEEPER] trash=%s load failed: %v", record.TrashID, err)
			continue
		case snap.PermanentlyDeleted:
			// Already purged, e.g. by a direct request racing this tick.
			s.dropRecord(record)
			continue
		case !snap.Deleted:
			// Restored but the record lingered; clean it up.
			log.Printf("[SWEEPER] trash=%s references a live item, dropping record", record.TrashID)
			s.dropRecord(record)
			continue
		}

		if err := store.MarkPurged(s.db, []string{record.TrashItemID}); err != nil {
			log.Printf("[SWEEPER] trash=%s purge failed: %v", record.TrashID, err)
			continue
		}
		s.dropRecord(record)
		purged++
	}

	log.Printf("[SWEEPER] swept %d of %d expired records", purged, len(expired))
	return purged, nil
}

func (s *Sweeper) dropRecord(record TrashModel.TrashModel) {
	if err := s.db.
		Where("trash_id = ?", record.TrashID).
		Delete(&TrashModel.TrashModel{}).Error; err != nil {
		log.Printf("[SWEEPER] trash=%s record delete failed: %v", record.TrashID, err)
	}
}

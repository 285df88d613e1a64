package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	TrashModel "journalku_backend/internals/features/journal/trash/model"
)

// LifecycleService owns every transition of the retention pipeline:
// active → soft-deleted (trashed) → restored | permanently purged.
// The primary state flip (plus the ledger write, which must stay 1:1 with
// it) is synchronous; counter deltas and like flags ride the fan-out.
type LifecycleService struct {
	DB        *gorm.DB
	Retention time.Duration
	fanout    *Fanout
}

func NewLifecycleService(db *gorm.DB, retention time.Duration) *LifecycleService {
	return &LifecycleService{DB: db, Retention: retention, fanout: NewFanout()}
}

// Close drains outstanding fan-out work. Call on shutdown.
func (s *LifecycleService) Close() { s.fanout.Close() }

// WaitFanout blocks until pending dependent writes have settled.
func (s *LifecycleService) WaitFanout() { s.fanout.Wait() }

/* ===============================
   Soft delete
=================================*/

// SoftDelete moves an item into the trash: deleted=true, unpublished, one
// ledger record carrying the expiry. Owner counters and like flags are
// adjusted asynchronously.
func (s *LifecycleService) SoftDelete(kind, itemID, userID string) (*TrashModel.TrashModel, error) {
	store, ok := StoreFor(kind)
	if !ok {
		return nil, ErrUnknownKind
	}

	snap, err := store.Load(s.DB, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Ownership mismatch and purged items both read as absent.
	if snap.OwnerID != userID || snap.PermanentlyDeleted {
		return nil, ErrNotFound
	}
	if snap.Deleted {
		return nil, ErrAlreadyDeleted
	}

	// One ledger record per item. A duplicate here means a double delete
	// raced us; reject rather than silently repeat.
	var existing int64
	if err := s.DB.Model(&TrashModel.TrashModel{}).
		Where("trash_item_id = ? AND trash_type = ?", itemID, kind).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyDeleted
	}

	record := TrashModel.TrashModel{
		TrashType:       kind,
		TrashItemID:     itemID,
		TrashUserID:     userID,
		TrashExpiryDate: time.Now().Add(s.Retention),
	}
	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := store.MarkDeleted(tx, itemID); err != nil {
			return err
		}
		return tx.Create(&record).Error
	}); err != nil {
		return nil, err
	}

	s.fanout.Enqueue(store.DeleteFanout(s.DB, snap))
	return &record, nil
}

/* ===============================
   Restore
=================================*/

// Restore brings the referenced items back as unpublished drafts and
// consumes their ledger records. All-or-nothing per batch: a foreign or
// missing ledger record, or an item no longer restorable, fails the whole
// call with nothing committed.
func (s *LifecycleService) Restore(trashIDs []string, userID string) (int, error) {
	records, err := s.loadOwnedRecords(trashIDs, userID)
	if err != nil {
		return 0, err
	}
	return s.restore(records, userID)
}

// RestoreAll restores everything in the user's trash.
func (s *LifecycleService) RestoreAll(userID string) (int, error) {
	records, err := s.allRecords(userID)
	if err != nil {
		return 0, err
	}
	return s.restore(records, userID)
}

func (s *LifecycleService) restore(records []TrashModel.TrashModel, userID string) (int, error) {
	itemsByKind, recordIDs := groupRecords(records)

	for kind, itemIDs := range itemsByKind {
		store, ok := StoreFor(kind)
		if !ok {
			return 0, ErrUnknownKind
		}
		n, err := store.CountTrashed(s.DB, itemIDs)
		if err != nil {
			return 0, err
		}
		if n != int64(len(itemIDs)) {
			// Ledger and item state diverged; do not partially restore.
			return 0, ErrNotFound
		}
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		for kind, itemIDs := range itemsByKind {
			store, _ := StoreFor(kind)
			if err := store.MarkRestored(tx, itemIDs); err != nil {
				return err
			}
		}
		return tx.Where("trash_id IN ?", recordIDs).
			Delete(&TrashModel.TrashModel{}).Error
	}); err != nil {
		return 0, err
	}

	for kind, itemIDs := range itemsByKind {
		store, _ := StoreFor(kind)
		s.fanout.Enqueue(store.RestoreFanout(s.DB, userID, itemIDs))
	}
	return len(records), nil
}

/* ===============================
   Purge
=================================*/

// Purge makes the soft delete irreversible: permanently_deleted=true, ledger
// records consumed. Like flags stay as the soft delete left them, and no
// counters move (they were settled at soft-delete time).
func (s *LifecycleService) Purge(trashIDs []string, userID string) (int, error) {
	records, err := s.loadOwnedRecords(trashIDs, userID)
	if err != nil {
		return 0, err
	}
	return s.purge(records)
}

// EmptyAll purges everything in the user's trash.
func (s *LifecycleService) EmptyAll(userID string) (int, error) {
	records, err := s.allRecords(userID)
	if err != nil {
		return 0, err
	}
	return s.purge(records)
}

func (s *LifecycleService) purge(records []TrashModel.TrashModel) (int, error) {
	itemsByKind, recordIDs := groupRecords(records)

	for kind, itemIDs := range itemsByKind {
		store, ok := StoreFor(kind)
		if !ok {
			return 0, ErrUnknownKind
		}
		n, err := store.CountTrashed(s.DB, itemIDs)
		if err != nil {
			return 0, err
		}
		if n != int64(len(itemIDs)) {
			return 0, ErrNotFound
		}
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		for kind, itemIDs := range itemsByKind {
			store, _ := StoreFor(kind)
			if err := store.MarkPurged(tx, itemIDs); err != nil {
				return err
			}
		}
		return tx.Where("trash_id IN ?", recordIDs).
			Delete(&TrashModel.TrashModel{}).Error
	}); err != nil {
		return 0, err
	}
	return len(records), nil
}

/* ===============================
   Listing
=================================*/

var trashSorts = map[string]string{
	"created_at":   "trash_created_at ASC",
	"-created_at":  "trash_created_at DESC",
	"expiry_date":  "trash_expiry_date ASC",
	"-expiry_date": "trash_expiry_date DESC",
}

// ListTrash returns the user's ledger records, optionally filtered by kind.
// Read-only.
func (s *LifecycleService) ListTrash(userID, kind string, offset, limit int, sort string) ([]TrashModel.TrashModel, int64, error) {
	q := s.DB.Model(&TrashModel.TrashModel{}).Where("trash_user_id = ?", userID)
	if kind != "" {
		if _, ok := StoreFor(kind); !ok {
			return nil, 0, ErrUnknownKind
		}
		q = q.Where("trash_type = ?", kind)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := trashSorts[sort]
	if !ok {
		order = trashSorts["-created_at"]
	}

	var records []TrashModel.TrashModel
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

/* ===============================
   Internal helpers
=================================*/

// loadOwnedRecords fetches the ledger records for the given ids, scoped to
// the caller. Any id that is absent or foreign-owned fails the batch.
func (s *LifecycleService) loadOwnedRecords(trashIDs []string, userID string) ([]TrashModel.TrashModel, error) {
	ids := dedupe(trashIDs)
	if len(ids) == 0 {
		return nil, ErrNotFound
	}
	var records []TrashModel.TrashModel
	if err := s.DB.
		Where("trash_id IN ? AND trash_user_id = ?", ids, userID).
		Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) != len(ids) {
		return nil, ErrNotFound
	}
	return records, nil
}

func (s *LifecycleService) allRecords(userID string) ([]TrashModel.TrashModel, error) {
	var records []TrashModel.TrashModel
	if err := s.DB.
		Where("trash_user_id = ?", userID).
		Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrTrashEmpty
	}
	return records, nil
}

func groupRecords(records []TrashModel.TrashModel) (map[string][]string, []string) {
	itemsByKind := make(map[string][]string)
	recordIDs := make([]string, 0, len(records))
	for _, r := range records {
		itemsByKind[r.TrashType] = append(itemsByKind[r.TrashType], r.TrashItemID)
		recordIDs = append(recordIDs, r.TrashID)
	}
	return itemsByKind, recordIDs
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

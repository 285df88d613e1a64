package service

import (
	"gorm.io/gorm"

	EntryModel "journalku_backend/internals/features/journal/entries/model"
	LikeModel "journalku_backend/internals/features/journal/likes/model"
	TaskModel "journalku_backend/internals/features/journal/tasks/model"
	TrashModel "journalku_backend/internals/features/journal/trash/model"
	UserModel "journalku_backend/internals/features/users/user/model"
)

// ItemSnapshot carries the pre-transition state the lifecycle needs to
// compute counter deltas.
type ItemSnapshot struct {
	ID                 string
	OwnerID            string
	Published          bool
	NoOfLikes          int
	Deleted            bool
	PermanentlyDeleted bool
}

// FanoutStep is one idempotent dependent write, retried independently of the
// other steps in its batch.
type FanoutStep struct {
	Name string
	Run  func() error
}

// ItemStore is the per-kind strategy consumed by the lifecycle and the
// sweeper. Adding a content kind means one more implementation registered in
// kindStores, nothing else.
type ItemStore interface {
	// Load returns the current state; gorm.ErrRecordNotFound when absent.
	Load(db *gorm.DB, itemID string) (*ItemSnapshot, error)
	// MarkDeleted flips deleted=true and unpublishes in one write.
	MarkDeleted(db *gorm.DB, itemID string) error
	// CountTrashed counts items among ids that are deleted and not yet
	// permanently deleted, i.e. eligible for restore or purge.
	CountTrashed(db *gorm.DB, itemIDs []string) (int64, error)
	// MarkRestored flips deleted=false; published state is left alone
	// (restored items come back as drafts).
	MarkRestored(db *gorm.DB, itemIDs []string) error
	// MarkPurged flips permanently_deleted=true; deleted stays true.
	MarkPurged(db *gorm.DB, itemIDs []string) error
	// DeleteFanout returns the dependent writes owed after a soft delete.
	DeleteFanout(db *gorm.DB, snap *ItemSnapshot) []FanoutStep
	// RestoreFanout returns the dependent writes owed after a restore.
	RestoreFanout(db *gorm.DB, ownerID string, itemIDs []string) []FanoutStep
}

var kindStores = map[string]ItemStore{
	TrashModel.TrashTypeEntry: entryStore{},
	TrashModel.TrashTypeTask:  taskStore{},
}

// StoreFor resolves a trash record kind to its item store.
func StoreFor(kind string) (ItemStore, bool) {
	s, ok := kindStores[kind]
	return s, ok
}

// applyUserCounterDeltas applies signed deltas to the denormalized user
// aggregates as atomic increments. Never read-modify-write: two concurrent
// transitions touching the same user must both land.
func applyUserCounterDeltas(db *gorm.DB, userID string, deltas map[string]int) error {
	updates := map[string]interface{}{}
	for col, d := range deltas {
		if d != 0 {
			updates[col] = gorm.Expr(col+" + ?", d)
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return db.Model(&UserModel.UserModel{}).
		Where("user_id = ?", userID).
		UpdateColumns(updates).Error
}

/* ===============================
   Entry kind
=================================*/

type entryStore struct{}

func (entryStore) Load(db *gorm.DB, itemID string) (*ItemSnapshot, error) {
	var e EntryModel.EntryModel
	if err := db.First(&e, "entry_id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &ItemSnapshot{
		ID:                 e.EntryID,
		OwnerID:            e.EntryUserID,
		Published:          e.EntryIsPublished,
		NoOfLikes:          e.EntryNoOfLikes,
		Deleted:            e.EntryDeleted,
		PermanentlyDeleted: e.EntryPermanentlyDeleted,
	}, nil
}

func (entryStore) MarkDeleted(db *gorm.DB, itemID string) error {
	return db.Model(&EntryModel.EntryModel{}).
		Where("entry_id = ?", itemID).
		Updates(map[string]interface{}{
			"entry_deleted":      true,
			"entry_is_published": false,
		}).Error
}

func (entryStore) CountTrashed(db *gorm.DB, itemIDs []string) (int64, error) {
	var n int64
	err := db.Model(&EntryModel.EntryModel{}).
		Where("entry_id IN ? AND entry_deleted = ? AND entry_permanently_deleted = ?", itemIDs, true, false).
		Count(&n).Error
	return n, err
}

func (entryStore) MarkRestored(db *gorm.DB, itemIDs []string) error {
	return db.Model(&EntryModel.EntryModel{}).
		Where("entry_id IN ? AND entry_deleted = ? AND entry_permanently_deleted = ?", itemIDs, true, false).
		Update("entry_deleted", false).Error
}

func (entryStore) MarkPurged(db *gorm.DB, itemIDs []string) error {
	return db.Model(&EntryModel.EntryModel{}).
		Where("entry_id IN ?", itemIDs).
		Update("entry_permanently_deleted", true).Error
}

func (entryStore) DeleteFanout(db *gorm.DB, snap *ItemSnapshot) []FanoutStep {
	deltas := map[string]int{"user_no_of_entries": -1}
	if snap.Published {
		deltas["user_no_of_published_entries"] = -1
	}
	if snap.NoOfLikes > 0 {
		deltas["user_no_of_likes"] = -snap.NoOfLikes
	}
	ownerID := snap.OwnerID
	entryID := snap.ID
	return []FanoutStep{
		{
			Name: "entry.delete.owner-counters",
			Run: func() error {
				return applyUserCounterDeltas(db, ownerID, deltas)
			},
		},
		{
			Name: "entry.delete.flag-likes",
			Run: func() error {
				return db.Model(&LikeModel.LikeModel{}).
					Where("like_entry_id = ?", entryID).
					Updates(map[string]interface{}{
						"like_entry_deleted":     true,
						"like_entry_unpublished": true,
					}).Error
			},
		},
	}
}

func (entryStore) RestoreFanout(db *gorm.DB, ownerID string, itemIDs []string) []FanoutStep {
	n := len(itemIDs)
	return []FanoutStep{
		{
			Name: "entry.restore.owner-counters",
			Run: func() error {
				return applyUserCounterDeltas(db, ownerID, map[string]int{
					"user_no_of_entries": n,
				})
			},
		},
		{
			// entry_unpublished stays true: restored entries are drafts
			// until explicitly republished.
			Name: "entry.restore.unflag-likes",
			Run: func() error {
				return db.Model(&LikeModel.LikeModel{}).
					Where("like_entry_id IN ?", itemIDs).
					Update("like_entry_deleted", false).Error
			},
		},
	}
}

/* ===============================
   Task kind
=================================*/

// Tasks share the retention lifecycle but carry no likes and no user
// aggregates, so their fan-out is empty.
type taskStore struct{}

func (taskStore) Load(db *gorm.DB, itemID string) (*ItemSnapshot, error) {
	var t TaskModel.TaskModel
	if err := db.First(&t, "task_id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &ItemSnapshot{
		ID:                 t.TaskID,
		OwnerID:            t.TaskUserID,
		Deleted:            t.TaskDeleted,
		PermanentlyDeleted: t.TaskPermanentlyDeleted,
	}, nil
}

func (taskStore) MarkDeleted(db *gorm.DB, itemID string) error {
	return db.Model(&TaskModel.TaskModel{}).
		Where("task_id = ?", itemID).
		Update("task_deleted", true).Error
}

func (taskStore) CountTrashed(db *gorm.DB, itemIDs []string) (int64, error) {
	var n int64
	err := db.Model(&TaskModel.TaskModel{}).
		Where("task_id IN ? AND task_deleted = ? AND task_permanently_deleted = ?", itemIDs, true, false).
		Count(&n).Error
	return n, err
}

func (taskStore) MarkRestored(db *gorm.DB, itemIDs []string) error {
	return db.Model(&TaskModel.TaskModel{}).
		Where("task_id IN ? AND task_deleted = ? AND task_permanently_deleted = ?", itemIDs, true, false).
		Update("task_deleted", false).Error
}

func (taskStore) MarkPurged(db *gorm.DB, itemIDs []string) error {
	return db.Model(&TaskModel.TaskModel{}).
		Where("task_id IN ?", itemIDs).
		Update("task_permanently_deleted", true).Error
}

func (taskStore) DeleteFanout(db *gorm.DB, snap *ItemSnapshot) []FanoutStep {
	return nil
}

func (taskStore) RestoreFanout(db *gorm.DB, ownerID string, itemIDs []string) []FanoutStep {
	return nil
}

package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	EntryModel "journalku_backend/internals/features/journal/entries/model"
	LikeModel "journalku_backend/internals/features/journal/likes/model"
	TaskModel "journalku_backend/internals/features/journal/tasks/model"
	TrashModel "journalku_backend/internals/features/journal/trash/model"
	UserModel "journalku_backend/internals/features/users/user/model"
)

const testRetention = 30 * 24 * time.Hour

// openTestDB gives each test its own in-memory database. cache=shared keeps
// the pool's connections (fan-out goroutines included) on the same database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&UserModel.UserModel{},
		&EntryModel.EntryModel{},
		&TaskModel.TaskModel{},
		&LikeModel.LikeModel{},
		&TrashModel.TrashModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) UserModel.UserModel {
	t.Helper()
	user := UserModel.UserModel{
		UserName:     "writer-" + uuid.NewString()[:8],
		UserEmail:    uuid.NewString() + "@example.com",
		UserPassword: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedEntry(t *testing.T, db *gorm.DB, userID string, published bool, likes int) EntryModel.EntryModel {
	t.Helper()
	entry := EntryModel.EntryModel{
		EntryUserID:      userID,
		EntryTitle:       "morning pages",
		EntryDescription: "wrote some thoughts",
		EntryIsPublished: published,
		EntryNoOfLikes:   likes,
	}
	require.NoError(t, db.Create(&entry).Error)

	deltas := map[string]int{"user_no_of_entries": 1}
	if published {
		deltas["user_no_of_published_entries"] = 1
	}
	if likes > 0 {
		deltas["user_no_of_likes"] = likes
	}
	require.NoError(t, applyUserCounterDeltas(db, userID, deltas))
	return entry
}

func seedTask(t *testing.T, db *gorm.DB, userID string) TaskModel.TaskModel {
	t.Helper()
	task := TaskModel.TaskModel{
		TaskUserID:      userID,
		TaskTitle:       "water the plants",
		TaskDescription: "both of them",
		TaskStatus:      TaskModel.TaskStatusPending,
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}

func reloadUser(t *testing.T, db *gorm.DB, id string) UserModel.UserModel {
	t.Helper()
	var user UserModel.UserModel
	require.NoError(t, db.First(&user, "user_id = ?", id).Error)
	return user
}

func reloadEntry(t *testing.T, db *gorm.DB, id string) EntryModel.EntryModel {
	t.Helper()
	var entry EntryModel.EntryModel
	require.NoError(t, db.First(&entry, "entry_id = ?", id).Error)
	return entry
}

func countTrash(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&TrashModel.TrashModel{}).Count(&n).Error)
	return n
}

func TestSoftDeleteEntry(t *testing.T) {
	db := openTestDB(t)
	svc := NewLifecycleService(db, testRetention)
	defer svc.Close()

	user := seedUser(t, db)
	liker := seedUser(t, db)
	entry := seedEntry(t, db, user.UserID, true, 2)
	require.NoError(t, db.Create(&LikeModel.LikeModel{
		LikeEntryID: entry.EntryID,
		LikeLikedBy: liker.UserID,
		LikeOwnerID: user.UserID,
		LikeIsLiked: true,
	}).Error)

	before := time.Now()
	record, err := svc.SoftDelete(TrashModel.TrashTypeEntry, entry.EntryID, user.UserID)
	require.NoError(t, err)
	svc.WaitFanout()

	got := reloadEntry(t, db, entry.EntryID)
	assert.True(t, got.EntryDeleted)
	assert.False(t, got.EntryIsPublished, "soft delete must unpublish")
	assert.False(t, got.EntryPermanentlyDeleted)

	assert.Equal(t, TrashModel.TrashTypeEntry, record.TrashType)
	assert.Equal(t, entry.EntryID, record.TrashItemID)
	assert.WithinDuration(t, before.Add(testRetention), record.TrashExpiryDate, 5*time.Second)

	owner := reloadUser(t, db, user.UserID)
	assert.Equal(t, 0, owner.UserNoOfEntries)
	assert.Equal(t, 0, owner.UserNoOfPublishedEntries)
	assert.Equal(t, 0, owner.UserNoOfLikes)

	var like LikeModel.LikeModel
	require.NoError(t, db.First(&like, "like_entry_id = ?", entry.EntryID).Error)
	assert.True(t, like.LikeEntryDeleted)
	assert.True(t, like.LikeEntryUnpublished)
}

func TestSoftDeleteRejectsForeignOwner(t *testing.T) {
	db := openTestDB(t)
	svc := NewLifecycleService(db, testRetention)
	defer svc.Close()

	owner := seedUser(t, db)
	intruder := seedUser(t, db)
	entry := seedEntry(t, db, owner.UserID, false, 0)

	_, err := svc.SoftDelete(TrashModel.TrashTypeEntry, entry.EntryID, intruder.UserID)
	assert.ErrorIs(t, err, ErrNotFound, "foreign items must read as absent")

	got := reloadEntry(t, db, entry.EntryID)
	assert.False(t, got.EntryDeleted)
	assert.Equal(t, int64(0), countTrash(t, db))
}

func TestSoftDeleteTwiceRejected(t *testing.T) {
	db := openTestDB(t)
	svc := NewLifecycleService(db, testRetention)
	defer svc.Close()

	user := seedUser(t, db)
	entry := seedEntry(t, db, user.UserID, false, 0)

	_, err := svc.SoftDelete(TrashModel.TrashTypeEntry, entry.EntryID, user.UserID)
	require.NoError(t, err)
	_, err = svc.SoftDelete(TrashModel.TrashTypeEntry, entry.EntryID, user.UserID)
	assert.ErrorIs(t, err, ErrAlreadyDeleted)
	assert.Equal(t, int64(1), countTrash(t, db), "no duplicate ledger record")
}

func TestSoftDeleteUnknownKind(t *testing.T) {
	db := openTestDB(t)
	svc := NewLifecycleService(db, testRetention)
	defer svc.Close()

	_, err := svc.SoftDelete("note", uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRestoreRoundTripIsCounterNeutral(t *testing.T) {
	db := openTestDB(t)
	svc := NewLifecycleService(db, testRetention)
	defer svc.Close()

	user := seedUser(t, db)
	entry := seedEntry(t, db, user.UserID, false, 0)
	baseline := reloadUser(t, db, user.UserID)

	record, err := svc.SoftDelete(TrashModel.TrashTypeEntry, entry.EntryID, user.UserID)
	require.NoError(t, err)
	svc.WaitFanout()

	n, err := svc.Restore([]string{record.TrashID}, user.UserID)
	require.NoError(t, err)
	svc.WaitFanout()
	assert.Equal(t, 1, n)

	got := reloadEntry(t, db, entry.EntryID)
	assert.False(t, got.EntryDeleted)
	assert.False(t, got.EntryIsPublished, "restored entries come back as drafts")

	after := reloadUser(t, db, user.UserID)
	assert.Equal(t, baseline.UserNoOfEntries, after.UserNoOfEntries)
	assert.Equal(t, baseline.UserNoOfPublishedEntries, after.UserNoOfPublishedEntries)
	assert.Equal(t, baseline.UserNoOfLikes, after.UserNoOfLikes)

	assert.Equal(t, int64(0), countTrash(t, db), "restore consumes the ledger record")
}

func TestRestoreKeepsLikesUnpublished(t *testing.T) {
	db := openTestDB(t)
	svc := NewLifecycleService(db, testRetention)
	defer svc.Close()

	user := seedUser(t, db)
	liker := seedUser(t, db)
	entry := seedEntry(t, db, user.UserID, true, 1)
	require.NoError(t, db.Create(&LikeModel.LikeModel{
		LikeEntryID: entry.EntryID,
		LikeLikedBy: liker.UserID,
		LikeOwnerID: user.UserID,
		LikeIsLiked: true,
	}).Error)

	record, err := svc.SoftDelete(TrashModel.TrashTypeEntry, entry.EntryID, user.UserID)
	require.NoError(t, err)
	svc.WaitFanout()

	_, err = svc.Restore([]string{record.TrashID}, user.UserID)
	require.NoError(t, err)
	svc.WaitFanout()

	var like LikeModel.LikeModel
	require.NoError(t, db.First(&like, "like_entry_id = ?", entry.EntryID).Error)
	assert.False(t, like.LikeEntryDeleted)
	assert.True(t, like.LikeEntryUnpublished, "likes stay hidden until an explicit publish")
}

func TestRestoreForeignRecordFailsWholeBatch(t *testing.T) {
	db := openTestDB(t)
	svc := NewLifecycleService(db, testRetention)
	defer svc.Close()

	alice := seedUser(t, db)
	bob := seedUser(t, db)
	aliceEntry := seedEntry(t, db, alice.UserID, false, 0)
	bobEntry := seedEntry(t, db, bob.UserID, false, 0)

	aliceRecord, err := svc.SoftDelete(TrashModel.TrashTypeEntry, aliceEntry.EntryID, alice.UserID)
	require.NoError(t, err)
	bobRecord, err := svc.SoftDelete(TrashModel.TrashTypeEntry, bobEntry.EntryID, bob.UserID)
	require.NoError(t, err)
	svc.WaitFanout()

	_, err = svc.Restore([]string{aliceRecord.TrashID, bobRecord.TrashID}, alice.UserID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Nothing moved, including Alice's own record.
	assert.True(t, reloadEntry(t, db, aliceEntry.EntryID).EntryDeleted)
	assert.True(t, reloadEntry(t, db, bobEntry.EntryID).EntryDeleted)
	assert.Equal(t, int64(2), countTrash(t, db))
}

func TestPurgeIsIrreversible(t *testing.T) {
	db := openTestDB(t)
	svc := NewLifecycleService(db, testRetention)
	defer svc.Close()

	user := seedUser(t, db)
	entry := seedEntry(t, db, user.UserID, false, 0)

	record, err := svc.SoftDelete(TrashModel.TrashTypeEntry, entry.EntryID, user.UserID)
	require.NoError(t, err)
	svc.WaitFanout()

	n, err := svc.Purge([]string{record.TrashID}, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got := reloadEntry(t, db, entry.EntryID)
	assert.True(t, got.EntryDeleted, "permanently_deleted implies deleted")
	assert.True(t, got.EntryPermanentlyDeleted)
	assert.Equal(t, int64(0), countTrash(t, db))

	// The record is consumed, so a restore attempt no longer finds it.
	_, err = svc.Restore([]string{record.TrashID}, user.UserID)
	assert.ErrorIs(t, err, ErrNotFound)

	// And the item itself now reads as absent to the lifecycle.
	_, err = svc.SoftDelete(TrashModel.TrashTypeEntry, entry.EntryID, user.UserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestoreAllMixedKinds(t *testing.T) {
	db := openTestDB(t)
	svc := NewLifecycleService(db, testRetention)
	defer svc.Close()

	user := seedUser(t, db)
	entry := seedEntry(t, db, user.UserID, false, 0)
	task := seedTask(t, db, user.UserID)

	_, err := svc.SoftDelete(TrashModel.TrashTypeEntry, entry.EntryID, user.UserID)
	require.NoError(t, err)
	_, err = svc.SoftDelete(TrashModel.TrashTypeTask, task.TaskID, user.UserID)
	require.NoError(t, err)
	svc.WaitFanout()

	n, err := svc.RestoreAll(user.UserID)
	require.NoError(t, err)
	svc.WaitFanout()
	assert.Equal(t, 2, n)

	assert.False(t, reloadEntry(t, db, entry.EntryID).EntryDeleted)
	var gotTask TaskModel.TaskModel
	require.NoError(t, db.First(&gotTask, "task_id = ?", task.TaskID).Error)
	assert.False(t, gotTask.TaskDeleted)
	assert.Equal(t, int64(0), countTrash(t, db))
}

func TestEmptyAllOnEmptyTrash(t *testing.T) {
	db := openTestDB(t)
	svc := NewLifecycleService(db, testRetention)
	defer svc.Close()

	user := seedUser(t, db)
	_, err := svc.EmptyAll(user.UserID)
	assert.ErrorIs(t, err, ErrTrashEmpty)
	_, err = svc.RestoreAll(user.UserID)
	assert.ErrorIs(t, err, ErrTrashEmpty)
}

func TestListTrashFiltersAndScopes(t *testing.T) {
	db := openTestDB(t)
	svc := NewLifecycleService(db, testRetention)
	defer svc.Close()

	alice := seedUser(t, db)
	bob := seedUser(t, db)
	aliceEntry := seedEntry(t, db, alice.UserID, false, 0)
	aliceTask := seedTask(t, db, alice.UserID)
	bobEntry := seedEntry(t, db, bob.UserID, false, 0)

	_, err := svc.SoftDelete(TrashModel.TrashTypeEntry, aliceEntry.EntryID, alice.UserID)
	require.NoError(t, err)
	_, err = svc.SoftDelete(TrashModel.TrashTypeTask, aliceTask.TaskID, alice.UserID)
	require.NoError(t, err)
	_, err = svc.SoftDelete(TrashModel.TrashTypeEntry, bobEntry.EntryID, bob.UserID)
	require.NoError(t, err)
	svc.WaitFanout()

	records, total, err := svc.ListTrash(alice.UserID, "", 0, 10, "-created_at")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, records, 2)

	records, total, err = svc.ListTrash(alice.UserID, TrashModel.TrashTypeTask, 0, 10, "expiry_date")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, aliceTask.TaskID, records[0].TrashItemID)

	_, _, err = svc.ListTrash(alice.UserID, "note", 0, 10, "")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestTaskLifecycleUsesTaskStore(t *testing.T) {
	db := openTestDB(t)
	svc := NewLifecycleService(db, testRetention)
	defer svc.Close()

	user := seedUser(t, db)
	task := seedTask(t, db, user.UserID)
	entriesBefore := reloadUser(t, db, user.UserID).UserNoOfEntries

	record, err := svc.SoftDelete(TrashModel.TrashTypeTask, task.TaskID, user.UserID)
	require.NoError(t, err)
	svc.WaitFanout()

	var got TaskModel.TaskModel
	require.NoError(t, db.First(&got, "task_id = ?", task.TaskID).Error)
	assert.True(t, got.TaskDeleted)

	// Task transitions never move entry counters.
	assert.Equal(t, entriesBefore, reloadUser(t, db, user.UserID).UserNoOfEntries)

	_, err = svc.Restore([]string{record.TrashID}, user.UserID)
	require.NoError(t, err)
	svc.WaitFanout()
	require.NoError(t, db.First(&got, "task_id = ?", task.TaskID).Error)
	assert.False(t, got.TaskDeleted)
}

package scheduler

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
	"journalku_backend/internals/features/journal/trash/service"
	UserModel "journalku_backend/internals/features/users/user/model"
)

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

// trashEntry soft-deletes a fresh entry and rewinds its ledger expiry so the
// record reads as `age` old relative to now.
func trashEntry(t *testing.T, db *gorm.DB, svc *service.LifecycleService, userID string, expiry time.Time) (EntryModel.EntryModel, TrashModel.TrashModel) {
	t.Helper()
	entry := EntryModel.EntryModel{
		EntryUserID:      userID,
		EntryTitle:       "old entry",
		EntryDescription: "about to expire",
	}
	require.NoError(t, db.Create(&entry).Error)

	record, err := svc.SoftDelete(TrashModel.TrashTypeEntry, entry.EntryID, userID)
	require.NoError(t, err)
	svc.WaitFanout()

	require.NoError(t, db.Model(&TrashModel.TrashModel{}).
		Where("trash_id = ?", record.TrashID).
		Update("trash_expiry_date", expiry).Error)
	record.TrashExpiryDate = expiry
	return entry, *record
}

func seedSweepUser(t *testing.T, db *gorm.DB) UserModel.UserModel {
	t.Helper()
	user := UserModel.UserModel{
		UserName:     "sweep-" + uuid.NewString()[:8],
		UserEmail:    uuid.NewString() + "@example.com",
		UserPassword: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestRunOncePurgesExpiredOnly(t *testing.T) {
	db := openTestDB(t)
	svc := service.NewLifecycleService(db, 30*24*time.Hour)
	defer svc.Close()
	user := seedSweepUser(t, db)

	now := time.Now()
	expiredEntry, _ := trashEntry(t, db, svc, user.UserID, now.Add(-time.Hour))
	freshEntry, freshRecord := trashEntry(t, db, svc, user.UserID, now.Add(time.Hour))

	sweeper := NewSweeper(db, time.Minute)
	purged, err := sweeper.RunOnce(now)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	var got EntryModel.EntryModel
	require.NoError(t, db.First(&got, "entry_id = ?", expiredEntry.EntryID).Error)
	assert.True(t, got.EntryPermanentlyDeleted)
	assert.True(t, got.EntryDeleted)

	var fresh EntryModel.EntryModel
	require.NoError(t, db.First(&fresh, "entry_id = ?", freshEntry.EntryID).Error)
	assert.False(t, fresh.EntryPermanentlyDeleted, "unexpired items are untouched")

	var remaining []TrashModel.TrashModel
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, freshRecord.TrashID, remaining[0].TrashID)
}

func TestRunOnceDoesNotTouchCountersOrLikes(t *testing.T) {
	db := openTestDB(t)
	svc := service.NewLifecycleService(db, 30*24*time.Hour)
	defer svc.Close()
	user := seedSweepUser(t, db)

	now := time.Now()
	entry, _ := trashEntry(t, db, svc, user.UserID, now.Add(-time.Minute))
	require.NoError(t, db.Create(&LikeModel.LikeModel{
		LikeEntryID:          entry.EntryID,
		LikeLikedBy:          uuid.NewString(),
		LikeOwnerID:          user.UserID,
		LikeIsLiked:          true,
		LikeEntryDeleted:     true,
		LikeEntryUnpublished: true,
	}).Error)

	var before UserModel.UserModel
	require.NoError(t, db.First(&before, "user_id = ?", user.UserID).Error)

	sweeper := NewSweeper(db, time.Minute)
	_, err := sweeper.RunOnce(now)
	require.NoError(t, err)

	var after UserModel.UserModel
	require.NoError(t, db.First(&after, "user_id = ?", user.UserID).Error)
	assert.Equal(t, before.UserNoOfEntries, after.UserNoOfEntries)
	assert.Equal(t, before.UserNoOfLikes, after.UserNoOfLikes)

	var likes int64
	require.NoError(t, db.Model(&LikeModel.LikeModel{}).
		Where("like_entry_id = ?", entry.EntryID).Count(&likes).Error)
	assert.Equal(t, int64(1), likes, "like rows survive the sweep")
}

func TestRunOnceToleratesConcurrentPurge(t *testing.T) {
	db := openTestDB(t)
	svc := service.NewLifecycleService(db, 30*24*time.Hour)
	defer svc.Close()
	user := seedSweepUser(t, db)

	now := time.Now()
	entry, _ := trashEntry(t, db, svc, user.UserID, now.Add(-time.Hour))

	// A direct purge request beat the sweeper to the item but the record
	// deletion has not landed yet.
	require.NoError(t, db.Model(&EntryModel.EntryModel{}).
		Where("entry_id = ?", entry.EntryID).
		Update("entry_permanently_deleted", true).Error)

	sweeper := NewSweeper(db, time.Minute)
	purged, err := sweeper.RunOnce(now)
	require.NoError(t, err)
	assert.Equal(t, 0, purged, "already-purged items are not double counted")

	var records int64
	require.NoError(t, db.Model(&TrashModel.TrashModel{}).Count(&records).Error)
	assert.Equal(t, int64(0), records, "the stale record is still consumed")
}

func TestRunOnceDropsRecordForLiveItem(t *testing.T) {
	db := openTestDB(t)
	svc := service.NewLifecycleService(db, 30*24*time.Hour)
	defer svc.Close()
	user := seedSweepUser(t, db)

	now := time.Now()
	entry, _ := trashEntry(t, db, svc, user.UserID, now.Add(-time.Hour))

	// Simulate a restore whose record deletion was lost.
	require.NoError(t, db.Model(&EntryModel.EntryModel{}).
		Where("entry_id = ?", entry.EntryID).
		Update("entry_deleted", false).Error)

	sweeper := NewSweeper(db, time.Minute)
	purged, err := sweeper.RunOnce(now)
	require.NoError(t, err)
	assert.Equal(t, 0, purged)

	var got EntryModel.EntryModel
	require.NoError(t, db.First(&got, "entry_id = ?", entry.EntryID).Error)
	assert.False(t, got.EntryPermanentlyDeleted, "live items are never purged")

	var records int64
	require.NoError(t, db.Model(&TrashModel.TrashModel{}).Count(&records).Error)
	assert.Equal(t, int64(0), records)
}

func TestStartStop(t *testing.T) {
	db := openTestDB(t)
	sweeper := NewSweeper(db, 10*time.Millisecond)
	sweeper.Start()
	time.Sleep(30 * time.Millisecond)
	sweeper.Stop() // must not hang or panic
	sweeper.Stop() // repeated stop is a no-op
}

func TestStopWithoutStartReturns(t *testing.T) {
	db := openTestDB(t)
	sweeper := NewSweeper(db, time.Minute)
	sweeper.Stop() // never started, must not block
	sweeper.Stop()
}

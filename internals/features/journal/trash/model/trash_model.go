package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TrashTypeEntry = "entry"
	TrashTypeTask  = "task"
)

// TrashModel is the retention ledger: one record per soft-deleted item,
// alive exactly while the item sits in the grace period. Restore consumes
// it before expiry; the sweeper (or an explicit purge) consumes it at or
// after expiry.
type TrashModel struct {
	TrashID     string `gorm:"column:trash_id;primaryKey;type:uuid"`
	TrashType   string `gorm:"column:trash_type;type:varchar(10);not null;index:idx_trash_user_type"`
	TrashItemID string `gorm:"column:trash_item_id;type:uuid;not null;index"`
	TrashUserID string `gorm:"column:trash_user_id;type:uuid;not null;index:idx_trash_user_type,priority:1"`

	TrashExpiryDate time.Time `gorm:"column:trash_expiry_date;not null;index"`

	TrashCreatedAt time.Time `gorm:"column:trash_created_at;autoCreateTime"`
	TrashUpdatedAt time.Time `gorm:"column:trash_updated_at;autoUpdateTime"`
}

func (TrashModel) TableName() string { return "trash" }

func (t *TrashModel) BeforeCreate(tx *gorm.DB) error {
	if t.TrashID == "" {
		t.TrashID = uuid.NewString()
	}
	return nil
}

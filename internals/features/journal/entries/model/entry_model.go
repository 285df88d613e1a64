package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EntryModel struct {
	EntryID          string         `gorm:"column:entry_id;primaryKey;type:uuid"`
	EntryUserID      string         `gorm:"column:entry_user_id;type:uuid;not null;index"`
	EntryTitle       string         `gorm:"column:entry_title;type:varchar(100);not null"`
	EntryDescription string         `gorm:"column:entry_description;type:text;not null"`
	EntryTags        datatypes.JSON `gorm:"column:entry_tags"`

	EntryNoOfLikes   int  `gorm:"column:entry_no_of_likes;not null;default:0"`
	EntryIsPublished bool `gorm:"column:entry_is_published;not null;default:false"`
	EntryEdited      bool `gorm:"column:entry_edited;not null;default:false"`

	// Retention lifecycle flags. permanently_deleted implies deleted; the
	// flip back to deleted=false only happens through a trash restore.
	EntryDeleted            bool `gorm:"column:entry_deleted;not null;default:false;index"`
	EntryPermanentlyDeleted bool `gorm:"column:entry_permanently_deleted;not null;default:false"`

	EntryCreatedAt time.Time `gorm:"column:entry_created_at;autoCreateTime"`
	EntryUpdatedAt time.Time `gorm:"column:entry_updated_at;autoUpdateTime"`
}

func (EntryModel) TableName() string { return "entries" }

func (e *EntryModel) BeforeCreate(tx *gorm.DB) error {
	if e.EntryID == "" {
		e.EntryID = uuid.NewString()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookmarkModel struct {
	BookmarkID           string         `gorm:"column:bookmark_id;primaryKey;type:uuid"`
	BookmarkEntryID      string         `gorm:"column:bookmark_entry_id;type:uuid;not null;uniqueIndex:idx_bookmark_entry_user"`
	BookmarkBookmarkedBy string         `gorm:"column:bookmark_bookmarked_by;type:uuid;not null;uniqueIndex:idx_bookmark_entry_user"`
	BookmarkPublishedBy  string         `gorm:"column:bookmark_published_by;type:uuid;not null"`
	BookmarkTags         datatypes.JSON `gorm:"column:bookmark_tags"`

	BookmarkCreatedAt time.Time `gorm:"column:bookmark_created_at;autoCreateTime"`
}

func (BookmarkModel) TableName() string { return "bookmarks" }

func (b *BookmarkModel) BeforeCreate(tx *gorm.DB) error {
	if b.BookmarkID == "" {
		b.BookmarkID = uuid.NewString()
	}
	return nil
}

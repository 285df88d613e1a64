package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagModel struct {
	TagID   string `gorm:"column:tag_id;primaryKey;type:uuid"`
	TagName string `gorm:"column:tag_name;type:varchar(50);not null;uniqueIndex"`

	TagCreatedAt time.Time `gorm:"column:tag_created_at;autoCreateTime"`
	TagUpdatedAt time.Time `gorm:"column:tag_updated_at;autoUpdateTime"`
}

func (TagModel) TableName() string { return "tags" }

func (t *TagModel) BeforeCreate(tx *gorm.DB) error {
	if t.TagID == "" {
		t.TagID = uuid.NewString()
	}
	return nil
}

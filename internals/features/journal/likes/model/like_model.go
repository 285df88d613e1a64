package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikeModel struct {
	LikeID      string `gorm:"column:like_id;primaryKey;type:uuid"`
	LikeEntryID string `gorm:"column:like_entry_id;type:uuid;not null;uniqueIndex:idx_like_entry_user"`
	LikeLikedBy string `gorm:"column:like_liked_by;type:uuid;not null;uniqueIndex:idx_like_entry_user"`
	LikeOwnerID string `gorm:"column:like_owner_id;type:uuid;not null;index"`
	LikeIsLiked bool   `gorm:"column:like_is_liked;not null;default:true"`

	// Denormalized entry availability, so listings can hide likes on
	// unavailable content without a join. Never removed by the retention
	// flow, only flagged.
	LikeEntryDeleted     bool `gorm:"column:like_entry_deleted;not null;default:false"`
	LikeEntryUnpublished bool `gorm:"column:like_entry_unpublished;not null;default:false"`

	LikeCreatedAt time.Time `gorm:"column:like_created_at;autoCreateTime"`
	LikeUpdatedAt time.Time `gorm:"column:like_updated_at;autoUpdateTime"`
}

func (LikeModel) TableName() string { return "likes" }

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.LikeID == "" {
		l.LikeID = uuid.NewString()
	}
	return nil
}

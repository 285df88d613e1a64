package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID       string `gorm:"column:user_id;primaryKey;type:uuid"`
	UserName     string `gorm:"column:user_name;type:varchar(50);not null;uniqueIndex"`
	UserEmail    string `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex"`
	UserPassword string `gorm:"column:user_password;type:varchar(255);not null"`
	UserBio      *string `gorm:"column:user_bio;type:text"`

	// Denormalized aggregates. Mutated only as a side effect of entry/like
	// transitions, always via atomic increments.
	UserNoOfEntries          int `gorm:"column:user_no_of_entries;not null;default:0"`
	UserNoOfPublishedEntries int `gorm:"column:user_no_of_published_entries;not null;default:0"`
	UserNoOfLikes            int `gorm:"column:user_no_of_likes;not null;default:0"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	return nil
}

package dto

import (
	"time"

	"journalku_backend/internals/features/journal/likes/model"
)

type LikeDTO struct {
	LikeID    string    `json:"like_id"`
	EntryID   string    `json:"entry_id"`
	LikedBy   string    `json:"liked_by"`
	OwnerID   string    `json:"owner_id"`
	IsLiked   bool      `json:"is_liked"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToLikeDTO(m model.LikeModel) LikeDTO {
	return LikeDTO{
		LikeID:    m.LikeID,
		EntryID:   m.LikeEntryID,
		LikedBy:   m.LikeLikedBy,
		OwnerID:   m.LikeOwnerID,
		IsLiked:   m.LikeIsLiked,
		UpdatedAt: m.LikeUpdatedAt,
	}
}

type ToggleLikeRequest struct {
	EntryID string `json:"entry_id" validate:"required,uuid"`
}

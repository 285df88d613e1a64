package dto

import (
	"time"

	"journalku_backend/internals/features/journal/trash/model"
)

type TrashDTO struct {
	TrashID    string    `json:"trash_id"`
	Type       string    `json:"type"`
	ItemID     string    `json:"item_id"`
	UserID     string    `json:"user_id"`
	ExpiryDate time.Time `json:"expiry_date"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToTrashDTO(m model.TrashModel) TrashDTO {
	return TrashDTO{
		TrashID:    m.TrashID,
		Type:       m.TrashType,
		ItemID:     m.TrashItemID,
		UserID:     m.TrashUserID,
		ExpiryDate: m.TrashExpiryDate,
		CreatedAt:  m.TrashCreatedAt,
	}
}

type TrashBatchRequest struct {
	TrashIDs []string `json:"trash_ids" validate:"required,min=1,dive,uuid"`
}

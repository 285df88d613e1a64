package dto

import (
	"time"

	"github.com/bytedance/sonic"

	"journalku_backend/internals/features/journal/entries/model"
)

type EntryDTO struct {
	EntryID     string    `json:"entry_id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	NoOfLikes   int       `json:"no_of_likes"`
	IsPublished bool      `json:"is_published"`
	Edited      bool      `json:"edited"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToEntryDTO(m model.EntryModel) EntryDTO {
	var tags []string
	if len(m.EntryTags) > 0 {
		_ = sonic.Unmarshal(m.EntryTags, &tags)
	}
	if tags == nil {
		tags = []string{}
	}
	return EntryDTO{
		EntryID:     m.EntryID,
		UserID:      m.EntryUserID,
		Title:       m.EntryTitle,
		Description: m.EntryDescription,
		Tags:        tags,
		NoOfLikes:   m.EntryNoOfLikes,
		IsPublished: m.EntryIsPublished,
		Edited:      m.EntryEdited,
		CreatedAt:   m.EntryCreatedAt,
		UpdatedAt:   m.EntryUpdatedAt,
	}
}

type CreateEntryRequest struct {
	Title       string   `json:"title" validate:"required,min=5,max=100"`
	Description string   `json:"description" validate:"required,min=5,max=1000"`
	Tags        []string `json:"tags" validate:"omitempty,dive,min=1,max=50"`
}

type UpdateEntryRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=5,max=100"`
	Description *string  `json:"description" validate:"omitempty,min=5,max=1000"`
	Tags        []string `json:"tags" validate:"omitempty,dive,min=1,max=50"`
}

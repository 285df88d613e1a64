package dto

import (
	"time"

	"journalku_backend/internals/features/journal/tags/model"
)

type TagDTO struct {
	TagID     string    `json:"tag_id"`
	TagName   string    `json:"tag_name"`
	CreatedAt time.Time `json:"created_at"`
}

func ToTagDTO(m model.TagModel) TagDTO {
	return TagDTO{TagID: m.TagID, TagName: m.TagName, CreatedAt: m.TagCreatedAt}
}

type CreateTagRequest struct {
	TagName string `json:"tag_name" validate:"required,min=1,max=50"`
}

type UpdateTagRequest struct {
	TagName string `json:"tag_name" validate:"required,min=1,max=50"`
}

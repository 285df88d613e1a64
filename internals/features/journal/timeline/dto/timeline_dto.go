package dto

import (
	EntryDTO "journalku_backend/internals/features/journal/entries/dto"
	"journalku_backend/internals/features/journal/entries/model"
)

// TimelineEntryDTO is a public entry plus whether the caller has liked it.
type TimelineEntryDTO struct {
	EntryDTO.EntryDTO
	IsLiked bool `json:"is_liked"`
}

func ToTimelineEntryDTO(m model.EntryModel, isLiked bool) TimelineEntryDTO {
	return TimelineEntryDTO{
		EntryDTO: EntryDTO.ToEntryDTO(m),
		IsLiked:  isLiked,
	}
}

package dto

import (
	"time"

	"github.com/bytedance/sonic"

	"journalku_backend/internals/features/journal/bookmarks/model"
)

type BookmarkDTO struct {
	BookmarkID   string    `json:"bookmark_id"`
	EntryID      string    `json:"entry_id"`
	BookmarkedBy string    `json:"bookmarked_by"`
	PublishedBy  string    `json:"published_by"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToBookmarkDTO(m model.BookmarkModel) BookmarkDTO {
	var tags []string
	if len(m.BookmarkTags) > 0 {
		_ = sonic.Unmarshal(m.BookmarkTags, &tags)
	}
	if tags == nil {
		tags = []string{}
	}
	return BookmarkDTO{
		BookmarkID:   m.BookmarkID,
		EntryID:      m.BookmarkEntryID,
		BookmarkedBy: m.BookmarkBookmarkedBy,
		PublishedBy:  m.BookmarkPublishedBy,
		Tags:         tags,
		CreatedAt:    m.BookmarkCreatedAt,
	}
}

type CreateBookmarkRequest struct {
	EntryID string `json:"entry_id" validate:"required,uuid"`
}

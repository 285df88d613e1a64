package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	EntryModel "journalku_backend/internals/features/journal/entries/model"
	LikeModel "journalku_backend/internals/features/journal/likes/model"
	"journalku_backend/internals/features/journal/timeline/dto"
	helper "journalku_backend/internals/helpers"
)

type TimelineController struct {
	DB *gorm.DB
}

func NewTimelineController(db *gorm.DB) *TimelineController {
	return &TimelineController{DB: db}
}

var timelineSorts = map[string]string{
	"created_at":  "entry_created_at ASC",
	"-created_at": "entry_created_at DESC",
	"likes":       "entry_no_of_likes ASC",
	"-likes":      "entry_no_of_likes DESC",
}

// =====================================================
// GET /timeline?page=&limit=&sort= — public feed of published
// entries across all users, trash excluded.
// =====================================================
func (ctrl *TimelineController) GetTimeline(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)

	order, ok := timelineSorts[c.Query("sort", "created_at")]
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid sort value")
	}

	q := ctrl.DB.Model(&EntryModel.EntryModel{}).
		Where("entry_deleted = ? AND entry_is_published = ?", false, true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count entries")
	}

	var entries []EntryModel.EntryModel
	if err := q.Order(order).
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&entries).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch timeline")
	}

	liked, err := ctrl.likedByCaller(userID, entries)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch likes")
	}

	response := make([]dto.TimelineEntryDTO, 0, len(entries))
	for _, e := range entries {
		response = append(response, dto.ToTimelineEntryDTO(e, liked[e.EntryID]))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Timeline fetched successfully", response, pagination)
}

// likedByCaller marks which of the page's entries the caller has liked, with
// one query instead of one per entry.
func (ctrl *TimelineController) likedByCaller(userID string, entries []EntryModel.EntryModel) (map[string]bool, error) {
	liked := make(map[string]bool, len(entries))
	if len(entries) == 0 {
		return liked, nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.EntryID)
	}
	var rows []LikeModel.LikeModel
	if err := ctrl.DB.
		Select("like_entry_id").
		Where("like_liked_by = ? AND like_is_liked = ? AND like_entry_id IN ?", userID, true, ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		liked[row.LikeEntryID] = true
	}
	return liked, nil
}

package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"journalku_backend/internals/features/journal/bookmarks/dto"
	"journalku_backend/internals/features/journal/bookmarks/model"
	EntryModel "journalku_backend/internals/features/journal/entries/model"
	helper "journalku_backend/internals/helpers"
)

var validateBookmark = validator.New()

type BookmarkController struct {
	DB *gorm.DB
}

func NewBookmarkController(db *gorm.DB) *BookmarkController {
	return &BookmarkController{DB: db}
}

// POST /bookmarks
func (ctrl *BookmarkController) CreateBookmark(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateBookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateBookmark.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var entry EntryModel.EntryModel
	err = ctrl.DB.First(&entry,
		"entry_id = ? AND entry_deleted = ? AND entry_is_published = ?",
		req.EntryID, false, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Entry not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check entry")
	}

	// Tags snapshot rides the bookmark so listings survive later entry edits.
	bookmark := model.BookmarkModel{
		BookmarkEntryID:      req.EntryID,
		BookmarkBookmarkedBy: userID,
		BookmarkPublishedBy:  entry.EntryUserID,
		BookmarkTags:         entry.EntryTags,
	}
	if err := ctrl.DB.Create(&bookmark).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Entry already bookmarked")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create bookmark")
	}
	return helper.JsonCreated(c, "Bookmark created successfully", dto.ToBookmarkDTO(bookmark))
}

// GET /bookmarks/me
func (ctrl *BookmarkController) GetMyBookmarks(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.BookmarkModel{}).
		Where("bookmark_bookmarked_by = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count bookmarks")
	}

	var bookmarks []model.BookmarkModel
	if err := q.Order("bookmark_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&bookmarks).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch bookmarks")
	}

	response := make([]dto.BookmarkDTO, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		response = append(response, dto.ToBookmarkDTO(bookmark))
	}
	return helper.JsonList(c, "Bookmarks fetched successfully", response,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// DELETE /bookmarks/:id
func (ctrl *BookmarkController) DeleteBookmark(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	bookmarkID := c.Params("id")

	res := ctrl.DB.
		Where("bookmark_id = ? AND bookmark_bookmarked_by = ?", bookmarkID, userID).
		Delete(&model.BookmarkModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete bookmark")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Bookmark not found")
	}
	return helper.JsonDeleted(c, "Bookmark removed successfully", fiber.Map{"bookmark_id": bookmarkID})
}

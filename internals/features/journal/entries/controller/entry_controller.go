package controller

import (
	"errors"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"journalku_backend/internals/features/journal/entries/dto"
	"journalku_backend/internals/features/journal/entries/model"
	LikeModel "journalku_backend/internals/features/journal/likes/model"
	TrashModel "journalku_backend/internals/features/journal/trash/model"
	trashService "journalku_backend/internals/features/journal/trash/service"
	UserModel "journalku_backend/internals/features/users/user/model"
	helper "journalku_backend/internals/helpers"
)

var validateEntry = validator.New()

type EntryController struct {
	DB        *gorm.DB
	Lifecycle *trashService.LifecycleService
}

func NewEntryController(db *gorm.DB, lifecycle *trashService.LifecycleService) *EntryController {
	return &EntryController{DB: db, Lifecycle: lifecycle}
}

// =====================================================
// POST /entries
// =====================================================
func (ctrl *EntryController) CreateEntry(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateEntry.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	entry := model.EntryModel{
		EntryUserID:      userID,
		EntryTitle:       req.Title,
		EntryDescription: req.Description,
		EntryTags:        marshalTags(req.Tags),
	}
	if err := ctrl.DB.Create(&entry).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create entry")
	}

	// New entries count toward the owner's total immediately.
	if err := ctrl.DB.Model(&UserModel.UserModel{}).
		Where("user_id = ?", userID).
		UpdateColumn("user_no_of_entries", gorm.Expr("user_no_of_entries + ?", 1)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update entry count")
	}

	return helper.JsonCreated(c, "Entry created successfully", dto.ToEntryDTO(entry))
}

// =====================================================
// GET /entries — own entries, trash excluded
// =====================================================
func (ctrl *EntryController) GetMyEntries(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.EntryModel{}).
		Where("entry_user_id = ? AND entry_deleted = ?", userID, false).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count entries")
	}

	var entries []model.EntryModel
	if err := ctrl.DB.
		Where("entry_user_id = ? AND entry_deleted = ?", userID, false).
		Order("entry_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&entries).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch entries")
	}

	response := make([]dto.EntryDTO, 0, len(entries))
	for _, e := range entries {
		response = append(response, dto.ToEntryDTO(e))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Entries fetched successfully", response, pagination)
}

// =====================================================
// GET /entries/:id
// =====================================================
func (ctrl *EntryController) GetEntryByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	entry, err := ctrl.loadOwnedEntry(c.Params("id"), userID)
	if err != nil {
		return entryError(c, err)
	}
	return helper.JsonOK(c, "Entry fetched successfully", dto.ToEntryDTO(*entry))
}

// =====================================================
// PATCH /entries/:id
// =====================================================
func (ctrl *EntryController) UpdateEntry(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.UpdateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateEntry.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	entry, err := ctrl.loadOwnedEntry(c.Params("id"), userID)
	if err != nil {
		return entryError(c, err)
	}

	if req.Title != nil {
		entry.EntryTitle = *req.Title
	}
	if req.Description != nil {
		entry.EntryDescription = *req.Description
	}
	if req.Tags != nil {
		entry.EntryTags = marshalTags(req.Tags)
	}
	entry.EntryEdited = true

	if err := ctrl.DB.Save(entry).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update entry")
	}
	return helper.JsonUpdated(c, "Entry updated successfully", dto.ToEntryDTO(*entry))
}

// =====================================================
// PATCH /entries/:id/publish
// Counter deltas: published +1; owner likes += carried-over entry likes.
// =====================================================
func (ctrl *EntryController) PublishEntry(c *fiber.Ctx) error {
	return ctrl.setPublished(c, true)
}

// PATCH /entries/:id/unpublish — the inverse of publish.
func (ctrl *EntryController) UnpublishEntry(c *fiber.Ctx) error {
	return ctrl.setPublished(c, false)
}

func (ctrl *EntryController) setPublished(c *fiber.Ctx, publish bool) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	entry, err := ctrl.loadOwnedEntry(c.Params("id"), userID)
	if err != nil {
		return entryError(c, err)
	}
	if entry.EntryIsPublished == publish {
		if publish {
			return helper.JsonError(c, fiber.StatusBadRequest, "Entry is already published")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, "Entry is not published")
	}

	if err := ctrl.DB.Model(&model.EntryModel{}).
		Where("entry_id = ?", entry.EntryID).
		Update("entry_is_published", publish).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update entry")
	}

	sign := 1
	if !publish {
		sign = -1
	}
	updates := map[string]interface{}{
		"user_no_of_published_entries": gorm.Expr("user_no_of_published_entries + ?", sign),
	}
	if entry.EntryNoOfLikes > 0 {
		updates["user_no_of_likes"] = gorm.Expr("user_no_of_likes + ?", sign*entry.EntryNoOfLikes)
	}
	if err := ctrl.DB.Model(&UserModel.UserModel{}).
		Where("user_id = ?", userID).
		UpdateColumns(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update counters")
	}

	if err := ctrl.DB.Model(&LikeModel.LikeModel{}).
		Where("like_entry_id = ?", entry.EntryID).
		Update("like_entry_unpublished", !publish).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update likes")
	}

	entry.EntryIsPublished = publish
	message := "Entry published successfully"
	if !publish {
		message = "Entry unpublished successfully"
	}
	return helper.JsonUpdated(c, message, dto.ToEntryDTO(*entry))
}

// =====================================================
// DELETE /entries/:id — soft delete into the trash
// =====================================================
func (ctrl *EntryController) DeleteEntry(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	entryID := c.Params("id")
	if entryID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Entry id is required")
	}

	record, err := ctrl.Lifecycle.SoftDelete(TrashModel.TrashTypeEntry, entryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, trashService.ErrNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Entry not found")
		case errors.Is(err, trashService.ErrAlreadyDeleted):
			return helper.JsonError(c, fiber.StatusBadRequest, "Entry is already deleted")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Something went wrong")
		}
	}

	return helper.JsonDeleted(c, "Entry deleted successfully", fiber.Map{
		"trash_id":    record.TrashID,
		"expiry_date": record.TrashExpiryDate,
	})
}

/* ===============================
   Internal helpers
=================================*/

var errEntryNotFound = errors.New("entry not found")

func (ctrl *EntryController) loadOwnedEntry(entryID, userID string) (*model.EntryModel, error) {
	if entryID == "" {
		return nil, errEntryNotFound
	}
	var entry model.EntryModel
	err := ctrl.DB.First(&entry,
		"entry_id = ? AND entry_user_id = ? AND entry_deleted = ? AND entry_permanently_deleted = ?",
		entryID, userID, false, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func entryError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errEntryNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Entry not found")
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch entry")
}

func marshalTags(tags []string) datatypes.JSON {
	if len(tags) == 0 {
		return nil
	}
	raw, err := sonic.Marshal(tags)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

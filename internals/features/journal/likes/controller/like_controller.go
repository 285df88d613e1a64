package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	EntryModel "journalku_backend/internals/features/journal/entries/model"
	"journalku_backend/internals/features/journal/likes/dto"
	"journalku_backend/internals/features/journal/likes/model"
	UserModel "journalku_backend/internals/features/users/user/model"
	helper "journalku_backend/internals/helpers"
)

var validateLike = validator.New()

type LikeController struct {
	DB *gorm.DB
}

func NewLikeController(db *gorm.DB) *LikeController {
	return &LikeController{DB: db}
}

// =====================================================
// POST /likes/toggle (atomic, idempotent, race-safe)
// - insert if absent -> liked = TRUE
// - otherwise flip NOT is_liked
// - always returns the resulting row
// =====================================================
func (ctrl *LikeController) ToggleLike(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.ToggleLikeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateLike.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// Only live, published entries can be (un)liked.
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

	raw := `
		INSERT INTO likes (
			like_id,
			like_entry_id,
			like_liked_by,
			like_owner_id,
			like_is_liked,
			like_entry_deleted,
			like_entry_unpublished,
			like_created_at,
			like_updated_at
		)
		VALUES (?, ?, ?, ?, TRUE, FALSE, FALSE, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (like_entry_id, like_liked_by)
		DO UPDATE SET
			like_is_liked = NOT likes.like_is_liked,
			like_updated_at = CURRENT_TIMESTAMP
		RETURNING *
	`
	var row model.LikeModel
	if err := ctrl.DB.
		Raw(raw, uuid.NewString(), req.EntryID, userID, entry.EntryUserID).
		Scan(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to toggle like")
	}

	// Counter deltas ride the toggle direction, applied as atomic
	// increments so simultaneous likes on the same entry both land.
	sign := 1
	if !row.LikeIsLiked {
		sign = -1
	}
	if err := ctrl.DB.Model(&EntryModel.EntryModel{}).
		Where("entry_id = ?", req.EntryID).
		UpdateColumn("entry_no_of_likes", gorm.Expr("entry_no_of_likes + ?", sign)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update like count")
	}
	if err := ctrl.DB.Model(&UserModel.UserModel{}).
		Where("user_id = ?", entry.EntryUserID).
		UpdateColumn("user_no_of_likes", gorm.Expr("user_no_of_likes + ?", sign)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update like count")
	}

	return helper.JsonOK(c, "Like toggled successfully", dto.ToLikeDTO(row))
}

// =====================================================
// GET /likes/me — likes on content that is still available
// =====================================================
func (ctrl *LikeController) GetMyLikes(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)

	// The denormalized flags hide likes on trashed or unpublished entries
	// without a join.
	q := ctrl.DB.Model(&model.LikeModel{}).
		Where("like_liked_by = ? AND like_is_liked = ? AND like_entry_deleted = ? AND like_entry_unpublished = ?",
			userID, true, false, false)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count likes")
	}

	var likes []model.LikeModel
	if err := q.Order("like_updated_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&likes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch likes")
	}

	response := make([]dto.LikeDTO, 0, len(likes))
	for _, like := range likes {
		response = append(response, dto.ToLikeDTO(like))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Likes fetched successfully", response, pagination)
}

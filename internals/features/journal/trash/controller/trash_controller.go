package controller

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"journalku_backend/internals/features/journal/trash/dto"
	"journalku_backend/internals/features/journal/trash/service"
	helper "journalku_backend/internals/helpers"
)

var validateTrash = validator.New()

type TrashController struct {
	DB        *gorm.DB
	Lifecycle *service.LifecycleService
}

func NewTrashController(db *gorm.DB, lifecycle *service.LifecycleService) *TrashController {
	return &TrashController{DB: db, Lifecycle: lifecycle}
}

// =====================================================
// GET /trash?type=&page=&limit=&sort=
// =====================================================
func (ctrl *TrashController) GetTrash(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	kind := c.Query("type")
	sort := c.Query("sort", "-created_at")
	paging := helper.ResolvePaging(c, 20, 100)

	records, total, err := ctrl.Lifecycle.ListTrash(userID, kind, paging.Offset, paging.Limit, sort)
	if err != nil {
		return lifecycleError(c, err)
	}

	response := make([]dto.TrashDTO, 0, len(records))
	for _, r := range records {
		response = append(response, dto.ToTrashDTO(r))
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Trash fetched successfully", response, pagination)
}

// =====================================================
// PATCH /trash/:id — restore one item
// =====================================================
func (ctrl *TrashController) RestoreTrash(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	trashID := c.Params("id")
	if trashID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Trash id missing")
	}

	if _, err := ctrl.Lifecycle.Restore([]string{trashID}, userID); err != nil {
		return lifecycleError(c, err)
	}
	return helper.JsonUpdated(c, "Item restored successfully", nil)
}

// =====================================================
// PATCH /trash/restore — restore a batch (body: trash_ids)
// =====================================================
func (ctrl *TrashController) RestoreMany(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.TrashBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateTrash.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	n, err := ctrl.Lifecycle.Restore(req.TrashIDs, userID)
	if err != nil {
		return lifecycleError(c, err)
	}
	return helper.JsonUpdated(c, fmt.Sprintf("%d item(s) restored successfully", n), nil)
}

// =====================================================
// DELETE /trash/:id — purge one item (irreversible)
// =====================================================
func (ctrl *TrashController) DeleteTrash(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	trashID := c.Params("id")
	if trashID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Trash id missing")
	}

	if _, err := ctrl.Lifecycle.Purge([]string{trashID}, userID); err != nil {
		return lifecycleError(c, err)
	}
	return helper.JsonDeleted(c, "Item deleted permanently", nil)
}

// =====================================================
// DELETE /trash — purge a batch (body: trash_ids)
// =====================================================
func (ctrl *TrashController) DeleteMany(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.TrashBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateTrash.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	n, err := ctrl.Lifecycle.Purge(req.TrashIDs, userID)
	if err != nil {
		return lifecycleError(c, err)
	}
	return helper.JsonDeleted(c, fmt.Sprintf("%d item(s) deleted permanently", n), nil)
}

// =====================================================
// PATCH /trash/empty — restore everything
// =====================================================
func (ctrl *TrashController) RestoreAll(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	n, err := ctrl.Lifecycle.RestoreAll(userID)
	if err != nil {
		return lifecycleError(c, err)
	}
	return helper.JsonUpdated(c, fmt.Sprintf("%d item(s) restored successfully", n), nil)
}

// =====================================================
// DELETE /trash/empty — purge everything
// =====================================================
func (ctrl *TrashController) EmptyAll(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	n, err := ctrl.Lifecycle.EmptyAll(userID)
	if err != nil {
		return lifecycleError(c, err)
	}
	return helper.JsonDeleted(c, fmt.Sprintf("%d item(s) deleted permanently", n), nil)
}

// lifecycleError maps the service taxonomy onto the uniform envelope.
func lifecycleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Trash not found")
	case errors.Is(err, service.ErrAlreadyDeleted):
		return helper.JsonError(c, fiber.StatusBadRequest, "Item is already deleted")
	case errors.Is(err, service.ErrUnknownKind):
		return helper.JsonError(c, fiber.StatusBadRequest, "Type must either be entry or task")
	case errors.Is(err, service.ErrTrashEmpty):
		return helper.JsonError(c, fiber.StatusConflict, "Trash is empty")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Something went wrong")
	}
}

package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"journalku_backend/internals/features/journal/tags/dto"
	"journalku_backend/internals/features/journal/tags/model"
	helper "journalku_backend/internals/helpers"
)

var validateTag = validator.New()

type TagController struct {
	DB *gorm.DB
}

func NewTagController(db *gorm.DB) *TagController {
	return &TagController{DB: db}
}

// Tag names are stored lowercased so "Work" and "work" are one tag.
func normalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// POST /tags
func (ctrl *TagController) CreateTag(c *fiber.Ctx) error {
	var req dto.CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateTag.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	tag := model.TagModel{TagName: normalizeTagName(req.TagName)}
	if err := ctrl.DB.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Tag already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create tag")
	}
	return helper.JsonCreated(c, "Tag created successfully", dto.ToTagDTO(tag))
}

// GET /tags
func (ctrl *TagController) GetTags(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	q := ctrl.DB.Model(&model.TagModel{})
	if search := normalizeTagName(c.Query("search")); search != "" {
		q = q.Where("tag_name LIKE ?", search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count tags")
	}

	var tags []model.TagModel
	if err := q.Order("tag_name ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&tags).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tags")
	}

	response := make([]dto.TagDTO, 0, len(tags))
	for _, tag := range tags {
		response = append(response, dto.ToTagDTO(tag))
	}
	return helper.JsonList(c, "Tags fetched successfully", response,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// PATCH /tags/:id
func (ctrl *TagController) UpdateTag(c *fiber.Ctx) error {
	tagID := c.Params("id")

	var req dto.UpdateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateTag.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var tag model.TagModel
	if err := ctrl.DB.First(&tag, "tag_id = ?", tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tag not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tag")
	}

	tag.TagName = normalizeTagName(req.TagName)
	if err := ctrl.DB.Save(&tag).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Tag already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update tag")
	}
	return helper.JsonUpdated(c, "Tag updated successfully", dto.ToTagDTO(tag))
}

// DELETE /tags/:id
func (ctrl *TagController) DeleteTag(c *fiber.Ctx) error {
	tagID := c.Params("id")

	res := ctrl.DB.Where("tag_id = ?", tagID).Delete(&model.TagModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete tag")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tag not found")
	}
	return helper.JsonDeleted(c, "Tag deleted successfully", fiber.Map{"tag_id": tagID})
}

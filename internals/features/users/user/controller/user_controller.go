package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"journalku_backend/internals/features/users/user/dto"
	"journalku_backend/internals/features/users/user/model"
	helper "journalku_backend/internals/helpers"
)

var validateUser = validator.New()

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /users/me — profile with the denormalized counters.
func (ctrl *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}
	return helper.JsonOK(c, "Profile fetched successfully", dto.ToUserDTO(user))
}

// PATCH /users/me
func (ctrl *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateUser.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	if req.UserName != nil {
		user.UserName = strings.TrimSpace(*req.UserName)
	}
	if req.UserBio != nil {
		user.UserBio = req.UserBio
	}
	if err := ctrl.DB.Save(&user).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Username already taken")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return helper.JsonUpdated(c, "Profile updated successfully", dto.ToUserDTO(user))
}

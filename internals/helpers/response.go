package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Uniform success/error envelope
=================================*/

func jsonSuccess(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// JsonOK: generic success (GET detail etc.)
func JsonOK(c *fiber.Ctx, message string, data interface{}) error {
	return jsonSuccess(c, fiber.StatusOK, message, data)
}

// JsonCreated: success for POST
func JsonCreated(c *fiber.Ctx, message string, data interface{}) error {
	return jsonSuccess(c, fiber.StatusCreated, message, data)
}

// JsonUpdated: success for PATCH/PUT
func JsonUpdated(c *fiber.Ctx, message string, data interface{}) error {
	return jsonSuccess(c, fiber.StatusOK, message, data)
}

// JsonDeleted: success for DELETE
func JsonDeleted(c *fiber.Ctx, message string, data interface{}) error {
	return jsonSuccess(c, fiber.StatusOK, message, data)
}

// JsonList: list + pagination payload
func JsonList(c *fiber.Ctx, message string, data interface{}, pagination interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"code":       fiber.StatusOK,
		"status":     "success",
		"message":    message,
		"data":       data,
		"pagination": pagination,
	})
}

// JsonError: generic error (not validation)
func JsonError(c *fiber.Ctx, code int, message string) error {
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
	}
	if code == 0 {
		code = fiber.StatusInternalServerError
	}
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

// JsonValidationError: validator.v10 errors as field → tag map
func JsonValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	errorsMap := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"code":    fiber.StatusBadRequest,
		"status":  "error",
		"message": "Validation failed",
		"errors":  errorsMap,
	})
}

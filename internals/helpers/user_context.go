package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// GetUserID reads the authenticated user id placed in Locals by the auth
// middleware.
func GetUserID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals("user_id").(string)
	if !ok || id == "" {
		return "", errors.New("user is not logged in")
	}
	return id, nil
}

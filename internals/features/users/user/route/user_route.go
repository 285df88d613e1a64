package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"journalku_backend/internals/features/users/user/controller"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	users := api.Group("/users")
	users.Get("/me", ctrl.GetMe)
	users.Patch("/me", ctrl.UpdateMe)
}

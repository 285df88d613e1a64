package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"journalku_backend/internals/features/journal/tags/controller"
)

func TagRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTagController(db)

	tags := api.Group("/tags")
	tags.Post("/", ctrl.CreateTag)
	tags.Get("/", ctrl.GetTags)
	tags.Patch("/:id", ctrl.UpdateTag)
	tags.Delete("/:id", ctrl.DeleteTag)
}

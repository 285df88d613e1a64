package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"journalku_backend/internals/features/journal/entries/controller"
	trashService "journalku_backend/internals/features/journal/trash/service"
)

func EntryRoutes(api fiber.Router, db *gorm.DB, lifecycle *trashService.LifecycleService) {
	ctrl := controller.NewEntryController(db, lifecycle)

	entries := api.Group("/entries")
	entries.Post("/", ctrl.CreateEntry)
	entries.Get("/", ctrl.GetMyEntries)
	entries.Get("/:id", ctrl.GetEntryByID)
	entries.Patch("/:id", ctrl.UpdateEntry)
	entries.Patch("/:id/publish", ctrl.PublishEntry)
	entries.Patch("/:id/unpublish", ctrl.UnpublishEntry)
	entries.Delete("/:id", ctrl.DeleteEntry)
}

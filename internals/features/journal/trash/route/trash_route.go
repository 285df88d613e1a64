package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"journalku_backend/internals/features/journal/trash/controller"
	"journalku_backend/internals/features/journal/trash/service"
)

func TrashRoutes(api fiber.Router, db *gorm.DB, lifecycle *service.LifecycleService) {
	ctrl := controller.NewTrashController(db, lifecycle)

	trash := api.Group("/trash")
	trash.Get("/", ctrl.GetTrash)

	// bulk routes before the :id routes so "empty"/"restore" never match as ids
	trash.Patch("/empty", ctrl.RestoreAll)
	trash.Delete("/empty", ctrl.EmptyAll)
	trash.Patch("/restore", ctrl.RestoreMany)
	trash.Delete("/", ctrl.DeleteMany)

	trash.Patch("/:id", ctrl.RestoreTrash)
	trash.Delete("/:id", ctrl.DeleteTrash)
}

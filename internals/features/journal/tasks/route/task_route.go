package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"journalku_backend/internals/features/journal/tasks/controller"
	trashService "journalku_backend/internals/features/journal/trash/service"
)

func TaskRoutes(api fiber.Router, db *gorm.DB, lifecycle *trashService.LifecycleService) {
	ctrl := controller.NewTaskController(db, lifecycle)

	tasks := api.Group("/tasks")
	tasks.Post("/", ctrl.CreateTask)
	tasks.Get("/", ctrl.GetMyTasks)
	tasks.Patch("/:id", ctrl.UpdateTask)
	tasks.Delete("/:id", ctrl.DeleteTask)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"journalku_backend/internals/features/journal/timeline/controller"
)

func TimelineRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTimelineController(db)

	timeline := api.Group("/timeline")
	timeline.Get("/", ctrl.GetTimeline)
}

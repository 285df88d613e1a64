package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"journalku_backend/internals/features/journal/likes/controller"
)

func LikeRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewLikeController(db)

	likes := api.Group("/likes")
	likes.Post("/toggle", ctrl.ToggleLike)
	likes.Get("/me", ctrl.GetMyLikes)
}

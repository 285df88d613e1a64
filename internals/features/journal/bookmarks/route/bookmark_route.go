package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"journalku_backend/internals/features/journal/bookmarks/controller"
)

func BookmarkRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewBookmarkController(db)

	bookmarks := api.Group("/bookmarks")
	bookmarks.Post("/", ctrl.CreateBookmark)
	bookmarks.Get("/me", ctrl.GetMyBookmarks)
	bookmarks.Delete("/:id", ctrl.DeleteBookmark)
}

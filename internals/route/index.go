package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	BookmarkRoute "journalku_backend/internals/features/journal/bookmarks/route"
	EntryRoute "journalku_backend/internals/features/journal/entries/route"
	LikeRoute "journalku_backend/internals/features/journal/likes/route"
	TagRoute "journalku_backend/internals/features/journal/tags/route"
	TaskRoute "journalku_backend/internals/features/journal/tasks/route"
	TimelineRoute "journalku_backend/internals/features/journal/timeline/route"
	TrashRoute "journalku_backend/internals/features/journal/trash/route"
	trashService "journalku_backend/internals/features/journal/trash/service"
	AuthRoute "journalku_backend/internals/features/users/auth/route"
	UserRoute "journalku_backend/internals/features/users/user/route"
	authMiddleware "journalku_backend/internals/middlewares/auth"
)

// SetupRoutes mounts the public auth surface and the authenticated API.
func SetupRoutes(app *fiber.App, db *gorm.DB, lifecycle *trashService.LifecycleService) {
	api := app.Group("/api")

	// Public
	AuthRoute.AuthRoutes(api, db)

	// Everything else requires a valid bearer token.
	protected := api.Group("/", authMiddleware.AuthMiddleware())

	UserRoute.UserRoutes(protected, db)
	EntryRoute.EntryRoutes(protected, db, lifecycle)
	TaskRoute.TaskRoutes(protected, db, lifecycle)
	TimelineRoute.TimelineRoutes(protected, db)
	LikeRoute.LikeRoutes(protected, db)
	TagRoute.TagRoutes(protected, db)
	BookmarkRoute.BookmarkRoutes(protected, db)
	TrashRoute.TrashRoutes(protected, db, lifecycle)
}

package controller_test

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	EntryModel "journalku_backend/internals/features/journal/entries/model"
	LikeModel "journalku_backend/internals/features/journal/likes/model"
	TaskModel "journalku_backend/internals/features/journal/tasks/model"
	TrashModel "journalku_backend/internals/features/journal/trash/model"
	"journalku_backend/internals/features/journal/trash/route"
	"journalku_backend/internals/features/journal/trash/service"
	UserModel "journalku_backend/internals/features/users/user/model"
)

// newTestApp wires the trash routes behind a stub auth layer that trusts the
// X-Test-User header, so the HTTP surface can be exercised without tokens.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *service.LifecycleService) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&UserModel.UserModel{},
		&EntryModel.EntryModel{},
		&TaskModel.TaskModel{},
		&LikeModel.LikeModel{},
		&TrashModel.TrashModel{},
	))

	lifecycle := service.NewLifecycleService(db, 30*24*time.Hour)
	t.Cleanup(lifecycle.Close)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-Test-User"); id != "" {
			c.Locals("user_id", id)
		}
		return c.Next()
	})
	route.TrashRoutes(app.Group("/api"), db, lifecycle)
	return app, db, lifecycle
}

func trashOneEntry(t *testing.T, db *gorm.DB, lifecycle *service.LifecycleService, userID string) *TrashModel.TrashModel {
	t.Helper()
	entry := EntryModel.EntryModel{
		EntryUserID:      userID,
		EntryTitle:       "draft",
		EntryDescription: "text",
	}
	require.NoError(t, db.Create(&entry).Error)
	record, err := lifecycle.SoftDelete(TrashModel.TrashTypeEntry, entry.EntryID, userID)
	require.NoError(t, err)
	lifecycle.WaitFanout()
	return record
}

func doRequest(t *testing.T, app *fiber.App, method, target, userID, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Test-User", userID)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(payload)
}

func TestGetTrash(t *testing.T) {
	app, db, lifecycle := newTestApp(t)
	userID := uuid.NewString()
	record := trashOneEntry(t, db, lifecycle, userID)

	status, body := doRequest(t, app, "GET", "/api/trash?type=entry", userID, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, record.TrashID)
	assert.Contains(t, body, `"pagination"`)

	status, _ = doRequest(t, app, "GET", "/api/trash?type=note", userID, "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doRequest(t, app, "GET", "/api/trash", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRestoreEndpoint(t *testing.T) {
	app, db, lifecycle := newTestApp(t)
	userID := uuid.NewString()
	record := trashOneEntry(t, db, lifecycle, userID)

	status, _ := doRequest(t, app, "PATCH", "/api/trash/"+record.TrashID, userID, "")
	assert.Equal(t, fiber.StatusOK, status)
	lifecycle.WaitFanout()

	var entry EntryModel.EntryModel
	require.NoError(t, db.First(&entry, "entry_id = ?", record.TrashItemID).Error)
	assert.False(t, entry.EntryDeleted)

	// The record is gone now; a repeat restore is a 404.
	status, _ = doRequest(t, app, "PATCH", "/api/trash/"+record.TrashID, userID, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestRestoreForeignRecordIs404(t *testing.T) {
	app, db, lifecycle := newTestApp(t)
	owner := uuid.NewString()
	record := trashOneEntry(t, db, lifecycle, owner)

	status, _ := doRequest(t, app, "PATCH", "/api/trash/"+record.TrashID, uuid.NewString(), "")
	assert.Equal(t, fiber.StatusNotFound, status, "foreign records must not leak existence")
}

func TestDeleteManyEndpoint(t *testing.T) {
	app, db, lifecycle := newTestApp(t)
	userID := uuid.NewString()
	a := trashOneEntry(t, db, lifecycle, userID)
	b := trashOneEntry(t, db, lifecycle, userID)

	body := fmt.Sprintf(`{"trash_ids":["%s","%s"]}`, a.TrashID, b.TrashID)
	status, payload := doRequest(t, app, "DELETE", "/api/trash", userID, body)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, payload, "2 item(s) deleted permanently")

	status, _ = doRequest(t, app, "DELETE", "/api/trash", userID, `{"trash_ids":["not-a-uuid"]}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestEmptyEndpointsOnEmptyTrash(t *testing.T) {
	app, _, _ := newTestApp(t)
	userID := uuid.NewString()

	status, body := doRequest(t, app, "DELETE", "/api/trash/empty", userID, "")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body, "Trash is empty")

	status, _ = doRequest(t, app, "PATCH", "/api/trash/empty", userID, "")
	assert.Equal(t, fiber.StatusConflict, status)
}

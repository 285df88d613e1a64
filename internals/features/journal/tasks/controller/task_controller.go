package controller

import (
	"errors"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"journalku_backend/internals/features/journal/tasks/dto"
	"journalku_backend/internals/features/journal/tasks/model"
	TrashModel "journalku_backend/internals/features/journal/trash/model"
	trashService "journalku_backend/internals/features/journal/trash/service"
	helper "journalku_backend/internals/helpers"
)

var validateTask = validator.New()

type TaskController struct {
	DB        *gorm.DB
	Lifecycle *trashService.LifecycleService
}

func NewTaskController(db *gorm.DB, lifecycle *trashService.LifecycleService) *TaskController {
	return &TaskController{DB: db, Lifecycle: lifecycle}
}

// =====================================================
// POST /tasks
// =====================================================
func (ctrl *TaskController) CreateTask(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateTask.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	status := req.Status
	if status == "" {
		status = model.TaskStatusPending
	}

	task := model.TaskModel{
		TaskUserID:      userID,
		TaskTitle:       req.Title,
		TaskDescription: req.Description,
		TaskStatus:      status,
		TaskDueDate:     req.DueDate,
		TaskTags:        marshalTaskTags(req.Tags),
	}
	if err := ctrl.DB.Create(&task).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create task")
	}
	return helper.JsonCreated(c, "Task created successfully", dto.ToTaskDTO(task))
}

// =====================================================
// GET /tasks — own tasks, trash excluded
// =====================================================
func (ctrl *TaskController) GetMyTasks(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.TaskModel{}).
		Where("task_user_id = ? AND task_deleted = ?", userID, false)
	if status := c.Query("status"); status != "" {
		q = q.Where("task_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count tasks")
	}

	var tasks []model.TaskModel
	if err := q.Order("task_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&tasks).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tasks")
	}

	response := make([]dto.TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		response = append(response, dto.ToTaskDTO(t))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Tasks fetched successfully", response, pagination)
}

// =====================================================
// PATCH /tasks/:id
// =====================================================
func (ctrl *TaskController) UpdateTask(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateTask.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var task model.TaskModel
	err = ctrl.DB.First(&task,
		"task_id = ? AND task_user_id = ? AND task_deleted = ? AND task_permanently_deleted = ?",
		c.Params("id"), userID, false, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Task not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch task")
	}

	if req.Title != nil {
		task.TaskTitle = *req.Title
	}
	if req.Description != nil {
		task.TaskDescription = *req.Description
	}
	if req.Status != nil {
		task.TaskStatus = *req.Status
	}
	if req.DueDate != nil {
		task.TaskDueDate = req.DueDate
	}
	if req.Tags != nil {
		task.TaskTags = marshalTaskTags(req.Tags)
	}

	if err := ctrl.DB.Save(&task).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update task")
	}
	return helper.JsonUpdated(c, "Task updated successfully", dto.ToTaskDTO(task))
}

// =====================================================
// DELETE /tasks/:id — soft delete into the trash
// =====================================================
func (ctrl *TaskController) DeleteTask(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	taskID := c.Params("id")
	if taskID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Task id is required")
	}

	record, err := ctrl.Lifecycle.SoftDelete(TrashModel.TrashTypeTask, taskID, userID)
	if err != nil {
		switch {
		case errors.Is(err, trashService.ErrNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Task not found")
		case errors.Is(err, trashService.ErrAlreadyDeleted):
			return helper.JsonError(c, fiber.StatusBadRequest, "Task is already deleted")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Something went wrong")
		}
	}

	return helper.JsonDeleted(c, "Task deleted successfully", fiber.Map{
		"trash_id":    record.TrashID,
		"expiry_date": record.TrashExpiryDate,
	})
}

func marshalTaskTags(tags []string) datatypes.JSON {
	if len(tags) == 0 {
		return nil
	}
	raw, err := sonic.Marshal(tags)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

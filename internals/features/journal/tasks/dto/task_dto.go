package dto

import (
	"time"

	"github.com/bytedance/sonic"

	"journalku_backend/internals/features/journal/tasks/model"
)

type TaskDTO struct {
	TaskID      string     `json:"task_id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToTaskDTO(m model.TaskModel) TaskDTO {
	var tags []string
	if len(m.TaskTags) > 0 {
		_ = sonic.Unmarshal(m.TaskTags, &tags)
	}
	if tags == nil {
		tags = []string{}
	}
	return TaskDTO{
		TaskID:      m.TaskID,
		UserID:      m.TaskUserID,
		Title:       m.TaskTitle,
		Description: m.TaskDescription,
		Status:      m.TaskStatus,
		DueDate:     m.TaskDueDate,
		Tags:        tags,
		CreatedAt:   m.TaskCreatedAt,
		UpdatedAt:   m.TaskUpdatedAt,
	}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"omitempty,min=5,max=50"`
	Description string     `json:"description" validate:"required,min=5,max=500"`
	Status      string     `json:"status" validate:"omitempty,oneof=pending active completed"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags" validate:"omitempty,dive,min=1,max=50"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=5,max=50"`
	Description *string    `json:"description" validate:"omitempty,min=5,max=500"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending active completed"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags" validate:"omitempty,dive,min=1,max=50"`
}

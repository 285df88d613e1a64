package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TaskStatusPending   = "pending"
	TaskStatusActive    = "active"
	TaskStatusCompleted = "completed"
)

type TaskModel struct {
	TaskID          string         `gorm:"column:task_id;primaryKey;type:uuid"`
	TaskUserID      string         `gorm:"column:task_user_id;type:uuid;not null;index"`
	TaskTitle       string         `gorm:"column:task_title;type:varchar(50)"`
	TaskDescription string         `gorm:"column:task_description;type:text;not null"`
	TaskStatus      string         `gorm:"column:task_status;type:varchar(20);not null;default:'pending'"`
	TaskDueDate     *time.Time     `gorm:"column:task_due_date"`
	TaskTags        datatypes.JSON `gorm:"column:task_tags"`

	TaskDeleted            bool `gorm:"column:task_deleted;not null;default:false;index"`
	TaskPermanentlyDeleted bool `gorm:"column:task_permanently_deleted;not null;default:false"`

	TaskCreatedAt time.Time `gorm:"column:task_created_at;autoCreateTime"`
	TaskUpdatedAt time.Time `gorm:"column:task_updated_at;autoUpdateTime"`
}

func (TaskModel) TableName() string { return "tasks" }

func (t *TaskModel) BeforeCreate(tx *gorm.DB) error {
	if t.TaskID == "" {
		t.TaskID = uuid.NewString()
	}
	return nil
}

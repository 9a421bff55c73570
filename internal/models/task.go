package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusBlocked:
		return true
	}
	return false
}

type Task struct {
	Base
	PhaseID        uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"phase_id"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	Description    string     `gorm:"type:text" json:"description"`
	Status         TaskStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	DueDate        *time.Time `json:"due_date"`
	AssignedUserID *uuid.UUID `gorm:"type:varchar(36);index" json:"assigned_user_id"`

	// Relations
	Phase        *Phase `gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE" json:"phase,omitempty"`
	AssignedUser *User  `gorm:"foreignKey:AssignedUserID;constraint:OnDelete:SET NULL" json:"assigned_user,omitempty"`
}

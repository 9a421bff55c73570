package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LogStatus string

const (
	LogStatusInfo   LogStatus = "INFO"
	LogStatusAction LogStatus = "ACTION"
	LogStatusAlert  LogStatus = "ALERT"
)

func (s LogStatus) Valid() bool {
	switch s {
	case LogStatusInfo, LogStatusAction, LogStatusAlert:
		return true
	}
	return false
}

// HistoryLog records something that happened on a project.
// Logs go away with their project or phase and outlive their task and user.
type HistoryLog struct {
	Base
	ProjectID uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"project_id"`
	PhaseID   *uuid.UUID     `gorm:"type:varchar(36);index" json:"phase_id"`
	TaskID    *uuid.UUID     `gorm:"type:varchar(36);index" json:"task_id"`
	UserID    *uuid.UUID     `gorm:"type:varchar(36);index" json:"user_id"`
	Summary   string         `gorm:"type:text;not null" json:"summary"`
	Status    LogStatus      `gorm:"type:varchar(20);not null;default:'INFO'" json:"status"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	Details   datatypes.JSON `json:"details,omitempty"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Phase   *Phase   `gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE" json:"phase,omitempty"`
	Task    *Task    `gorm:"foreignKey:TaskID;constraint:OnDelete:SET NULL" json:"task,omitempty"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
}

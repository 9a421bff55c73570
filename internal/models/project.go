package models

import "github.com/google/uuid"

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "PLANNING"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}

type Project struct {
	Base
	Name              string        `gorm:"type:varchar(255);not null" json:"name"`
	Description       string        `gorm:"type:text" json:"description"`
	Status            ProjectStatus `gorm:"type:varchar(20);not null;default:'PLANNING';index" json:"status"`
	ResponsibleUserID *uuid.UUID    `gorm:"type:varchar(36);index" json:"responsible_user_id"`
	TeamID            *uuid.UUID    `gorm:"type:varchar(36);index" json:"team_id"`

	// Relations
	ResponsibleUser *User `gorm:"foreignKey:ResponsibleUserID;constraint:OnDelete:SET NULL" json:"responsible_user,omitempty"`
	Team            *Team `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL" json:"team,omitempty"`
}

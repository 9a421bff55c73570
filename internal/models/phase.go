package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PhaseStatus string

const (
	PhaseStatusPending    PhaseStatus = "PENDING"
	PhaseStatusInProgress PhaseStatus = "IN_PROGRESS"
	PhaseStatusReview     PhaseStatus = "REVIEW"
	PhaseStatusApproved   PhaseStatus = "APPROVED"
	PhaseStatusRejected   PhaseStatus = "REJECTED"
)

func (s PhaseStatus) Valid() bool {
	switch s {
	case PhaseStatusPending, PhaseStatusInProgress, PhaseStatusReview, PhaseStatusApproved, PhaseStatusRejected:
		return true
	}
	return false
}

// Phase is a numbered stage of a project. Levels are unique within a project.
type Phase struct {
	Base
	ProjectID         uuid.UUID                   `gorm:"type:varchar(36);not null;uniqueIndex:idx_phases_project_level,priority:1" json:"project_id"`
	TemplateID        *uuid.UUID                  `gorm:"type:varchar(36);index" json:"template_id"`
	Name              string                      `gorm:"type:varchar(255)" json:"name"`
	Level             int                         `gorm:"not null;uniqueIndex:idx_phases_project_level,priority:2" json:"level"`
	Status            PhaseStatus                 `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Configuration     datatypes.JSON              `json:"configuration"`
	RequiredDocuments datatypes.JSONSlice[string] `json:"required_documents"`

	// Relations
	Project  *Project       `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Template *PhaseTemplate `gorm:"foreignKey:TemplateID;constraint:OnDelete:SET NULL" json:"template,omitempty"`
}

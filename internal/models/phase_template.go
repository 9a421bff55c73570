package models

import "gorm.io/datatypes"

// PhaseTemplate is reference data describing the fields and tasks of a phase.
type PhaseTemplate struct {
	Base
	Name        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Content     datatypes.JSON `json:"content"`
	Level       *int           `json:"level"`
}

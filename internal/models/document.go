package models

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is the metadata of a file attached to a phase.
// The bytes live in external storage; File holds the storage reference.
type Document struct {
	Base
	PhaseID      uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"phase_id"`
	File         string     `gorm:"type:varchar(1024);not null" json:"file"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Description  string     `gorm:"type:text" json:"description"`
	UploadedAt   time.Time  `gorm:"not null" json:"uploaded_at"`
	UploadedByID *uuid.UUID `gorm:"type:varchar(36);index" json:"uploaded_by_id"`

	// Relations
	Phase      *Phase `gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE" json:"phase,omitempty"`
	UploadedBy *User  `gorm:"foreignKey:UploadedByID;constraint:OnDelete:SET NULL" json:"uploaded_by,omitempty"`
}

// DeriveName fills Name from the base name of File when no name was given.
// It is applied once, before insertion.
func (d *Document) DeriveName() {
	if strings.TrimSpace(d.Name) != "" {
		return
	}
	d.Name = BaseName(d.File)
}

// BaseName returns the last element of a slash or backslash separated
// file reference, or "" when that element does not name a file.
func BaseName(ref string) string {
	name := path.Base(strings.ReplaceAll(ref, "\\", "/"))
	switch name {
	case ".", "..", "/":
		return ""
	}
	return name
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type PermissionLevel string

const (
	PermissionRead   PermissionLevel = "READ"
	PermissionEdit   PermissionLevel = "EDIT"
	PermissionManage PermissionLevel = "MANAGE"
	PermissionAdmin  PermissionLevel = "ADMIN"
)

func (l PermissionLevel) Valid() bool {
	switch l {
	case PermissionRead, PermissionEdit, PermissionManage, PermissionAdmin:
		return true
	}
	return false
}

// ProjectPermission is the access level a user holds on a project.
// A (user, project) pair has at most one row.
type ProjectPermission struct {
	Base
	UserID          uuid.UUID       `gorm:"type:varchar(36);not null;uniqueIndex:idx_project_permissions_user_project,priority:1" json:"user_id"`
	ProjectID       uuid.UUID       `gorm:"type:varchar(36);not null;uniqueIndex:idx_project_permissions_user_project,priority:2;index" json:"project_id"`
	PermissionLevel PermissionLevel `gorm:"type:varchar(20);not null;default:'READ'" json:"permission_level"`
	GrantedAt       time.Time       `gorm:"not null" json:"granted_at"`

	// Relations
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

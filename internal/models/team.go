package models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	Base
	Name        string `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// TeamMember links a user to a team. Rows disappear with either side.
type TeamMember struct {
	TeamID   uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"team_id"`
	UserID   uuid.UUID `gorm:"type:varchar(36);primaryKey;index" json:"user_id"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`

	// Relations
	Team *Team `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"team,omitempty"`
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

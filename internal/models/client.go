package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer organisation a project is delivered to.
type Client struct {
	Base
	Name    string `gorm:"type:varchar(150);not null" json:"name"`
	Email   string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone   string `gorm:"type:varchar(50)" json:"phone"`
	Address string `gorm:"type:text" json:"address"`
}

// ProjectClient links a project to one of its clients.
type ProjectClient struct {
	ProjectID uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"project_id"`
	ClientID  uuid.UUID `gorm:"type:varchar(36);primaryKey;index" json:"client_id"`
	LinkedAt  time.Time `gorm:"not null" json:"linked_at"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Client  *Client  `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"client,omitempty"`
}

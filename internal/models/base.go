package models

import (
	"time"

	"github.com/google/uuid"
)

// Base holds the identifier and timestamps shared by every entity.
// The repository layer fills them in explicitly; nothing relies on database defaults.
type Base struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// Init assigns a fresh identifier and creation timestamps.
// An identifier or creation time that is already set is kept.
func (b *Base) Init(now time.Time) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// Touch refreshes the modification timestamp.
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now
}

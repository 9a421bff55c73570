package models

// User is a person working on APQP projects.
type User struct {
	Base
	Name              string `gorm:"type:varchar(150);not null" json:"name"`
	Email             string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Department        string `gorm:"type:varchar(100)" json:"department"`
	JobTitle          string `gorm:"type:varchar(100)" json:"job_title"`
	Role              string `gorm:"type:varchar(100)" json:"role"`
	NotificationEmail bool   `gorm:"not null" json:"notification_email"`
}

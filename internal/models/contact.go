package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactSubmission is an append-only lead record captured from the
// public contact form. Rows are written only after the notification
// email has been sent.
type ContactSubmission struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name    string    `gorm:"type:varchar(100);not null" json:"name"`
	Email   string    `gorm:"type:varchar(100);not null;index" json:"email"`
	Company string    `gorm:"type:varchar(100);not null" json:"company"`
	Role    string    `gorm:"type:varchar(100);not null" json:"role"`
	UseCase string    `gorm:"type:varchar(200);not null" json:"use_case"`
	Details string    `gorm:"type:text;not null" json:"details"`
	Budget  string    `gorm:"type:varchar(50)" json:"budget,omitempty"`

	// Request metadata
	IP        string `gorm:"type:varchar(45)" json:"ip"`
	UserAgent string `gorm:"type:varchar(512)" json:"user_agent"`
	Browser   string `gorm:"type:varchar(50)" json:"browser"`
	OS        string `gorm:"type:varchar(50)" json:"os"`
	Device    string `gorm:"type:varchar(20)" json:"device"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (c *ContactSubmission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

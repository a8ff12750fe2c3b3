package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a client testimonial shown on the marketing site.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Quote     string    `gorm:"type:text;not null" json:"quote"`
	Author    string    `gorm:"type:varchar(100);not null" json:"author"`
	Role      string    `gorm:"type:varchar(100)" json:"role"`
	Company   string    `gorm:"type:varchar(100)" json:"company"`
	Rating    int       `gorm:"not null;default:5" json:"rating"`
	Featured  bool      `gorm:"default:false;index" json:"featured"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Validate enforces the 1-5 rating band and required fields.
func (r *Review) Validate() error {
	if r.Quote == "" || r.Author == "" {
		return ErrMissingFields
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

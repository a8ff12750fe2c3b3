package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DetailSection is one block of a case study's long-form detail view:
// a heading, ordered paragraphs, and an optional step list.
type DetailSection struct {
	Heading    string   `json:"heading"`
	Paragraphs []string `json:"paragraphs"`
	Steps      []string `json:"steps,omitempty"`
}

// CaseStudyDetail groups the long-form sections of a case study.
type CaseStudyDetail struct {
	Problem     DetailSection `json:"problem"`
	Solution    DetailSection `json:"solution"`
	Results     DetailSection `json:"results"`
	WhyItWorked DetailSection `json:"why_it_worked"`
}

// ResultMetric is a short headline number shown on the listing card.
type ResultMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CaseStudy is a client engagement write-up, addressed by slug.
type CaseStudy struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug     string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Title    string    `gorm:"type:varchar(200);not null" json:"title"`
	Client   string    `gorm:"type:varchar(100)" json:"client"`
	Timeline string    `gorm:"type:varchar(100)" json:"timeline"`

	// Listing card fields
	Company   string `gorm:"type:varchar(100)" json:"company"`
	Industry  string `gorm:"type:varchar(100);index" json:"industry"`
	Challenge string `gorm:"type:varchar(500)" json:"challenge"`
	Solution  string `gorm:"type:varchar(500)" json:"solution"`
	Image     string `gorm:"type:varchar(500)" json:"image"`
	ROI       string `gorm:"type:varchar(100)" json:"roi"`

	Detail    CaseStudyDetail `gorm:"serializer:json" json:"detail"`
	Tags      []string        `gorm:"serializer:json" json:"tags"`
	TechStack []string        `gorm:"serializer:json" json:"tech_stack"`
	Metrics   []ResultMetric  `gorm:"serializer:json" json:"metrics"`

	Featured     bool `gorm:"default:false;index" json:"featured"`
	SortPriority int  `gorm:"default:0" json:"sort_priority"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (cs *CaseStudy) BeforeCreate(tx *gorm.DB) error {
	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "Draft"
	ProjectPublished ProjectStatus = "Published"
	ProjectArchived  ProjectStatus = "Archived"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
)

// WorkflowStep is one ordered step in a project's build walkthrough.
type WorkflowStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ProjectMetric is a headline result shown on the project card.
type ProjectMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Project is a portfolio entry with markdown sections and demo links.
type Project struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Slug         string          `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Title        string          `gorm:"type:varchar(200);not null" json:"title"`
	Summary      string          `gorm:"type:varchar(500)" json:"summary"`
	Problem      string          `gorm:"type:text" json:"problem"`
	Solution     string          `gorm:"type:text" json:"solution"`
	Architecture string          `gorm:"type:text" json:"architecture"`
	Workflow     []WorkflowStep  `gorm:"serializer:json" json:"workflow"`
	Metrics      []ProjectMetric `gorm:"serializer:json" json:"metrics"`
	DemoURL      string          `gorm:"type:varchar(500)" json:"demo_url"`
	RepoURL      string          `gorm:"type:varchar(500)" json:"repo_url"`
	Image        string          `gorm:"type:varchar(500)" json:"image"`
	Tags         []string        `gorm:"serializer:json" json:"tags"`
	TechStack    []string        `gorm:"serializer:json" json:"tech_stack"`

	Status     ProjectStatus `gorm:"type:varchar(20);not null;default:'Draft';index" json:"status"`
	Visibility Visibility    `gorm:"type:varchar(20);not null;default:'Public';index" json:"visibility"`

	Featured     bool `gorm:"default:false;index" json:"featured"`
	SortPriority int  `gorm:"default:0" json:"sort_priority"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsVisible reports whether the project may be served to a non-admin
// caller: Published and Public.
func (p *Project) IsVisible() bool {
	return p.Status == ProjectPublished && p.Visibility == VisibilityPublic
}

func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectDraft, ProjectPublished, ProjectArchived:
		return true
	}
	return false
}

func ValidVisibility(v Visibility) bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate:
		return true
	}
	return false
}

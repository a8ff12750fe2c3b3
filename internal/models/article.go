package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "Draft"
	ArticleReview    ArticleStatus = "Review"
	ArticleScheduled ArticleStatus = "Scheduled"
	ArticlePublished ArticleStatus = "Published"
	ArticleArchived  ArticleStatus = "Archived"
)

type SearchIntent string

const (
	IntentInformational SearchIntent = "Informational"
	IntentNavigational  SearchIntent = "Navigational"
	IntentTransactional SearchIntent = "Transactional"
	IntentCommercial    SearchIntent = "Commercial"
)

// Article is a blog post with SEO metadata and a publishing workflow.
// WordCount, ReadingTime and SEOScore are recomputed on every save.
type Article struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug     string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Title    string    `gorm:"type:varchar(200);not null" json:"title"`
	Excerpt  string    `gorm:"type:varchar(500)" json:"excerpt"`
	Content  string    `gorm:"type:text" json:"content"`
	Category string    `gorm:"type:varchar(100);index" json:"category"`
	Tags     []string  `gorm:"serializer:json" json:"tags"`
	Author   string    `gorm:"type:varchar(100)" json:"author"`
	Image    string    `gorm:"type:varchar(500)" json:"image"`

	// SEO metadata
	MetaTitle         string       `gorm:"type:varchar(100)" json:"meta_title"`
	MetaDescription   string       `gorm:"type:varchar(200)" json:"meta_description"`
	PrimaryKeyword    string       `gorm:"type:varchar(100)" json:"primary_keyword"`
	SecondaryKeywords []string     `gorm:"serializer:json" json:"secondary_keywords"`
	SearchIntent      SearchIntent `gorm:"type:varchar(20)" json:"search_intent"`

	// Publishing workflow
	Status      ArticleStatus `gorm:"type:varchar(20);not null;default:'Draft';index" json:"status"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`

	// Computed on save
	WordCount   int `gorm:"default:0" json:"word_count"`
	ReadingTime int `gorm:"default:0" json:"reading_time"`
	SEOScore    int `gorm:"default:0" json:"seo_score"`

	ViewCount int `gorm:"default:0" json:"view_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsVisible reports whether the article may be served to a non-admin
// caller: Published and not dated in the future.
func (a *Article) IsVisible(now time.Time) bool {
	if a.Status != ArticlePublished {
		return false
	}
	if a.PublishedAt != nil && a.PublishedAt.After(now) {
		return false
	}
	return true
}

// ValidStatus reports whether s is one of the workflow states.
func ValidArticleStatus(s ArticleStatus) bool {
	switch s {
	case ArticleDraft, ArticleReview, ArticleScheduled, ArticlePublished, ArticleArchived:
		return true
	}
	return false
}

// ValidSearchIntent reports whether s is a known search intent.
func ValidSearchIntent(s SearchIntent) bool {
	switch s {
	case "", IntentInformational, IntentNavigational, IntentTransactional, IntentCommercial:
		return true
	}
	return false
}

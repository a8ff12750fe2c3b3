package repository

import (
	"errors"
	"time"

	"github.com/brightfold/studio-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *ArticleRepository) Save(article *models.Article) error {
	return r.db.Save(article).Error
}

func (r *ArticleRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Article{}, "id = ?", id).Error
}

func (r *ArticleRepository) GetByID(id uuid.UUID) (*models.Article, error) {
	var article models.Article
	err := r.db.Where("id = ?", id).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

func (r *ArticleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Where("slug = ?", slug).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// SlugExists reports whether any article already uses the slug.
func (r *ArticleRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// List returns a page of articles plus the unpaginated total.
func (r *ArticleRepository) List(opts ListOptions) ([]models.Article, int64, error) {
	opts.normalize()

	query := r.db.Model(&models.Article{})

	if opts.PublicOnly {
		query = query.Where("status = ?", models.ArticlePublished).
			Where("published_at IS NULL OR published_at <= ?", time.Now())
	}
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(excerpt) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}
	if opts.Category != "" {
		query = query.Where("category = ?", opts.Category)
	}
	if opts.Tag != "" {
		// tags are stored as a JSON array of strings
		query = query.Where(`tags LIKE ?`, `%"`+opts.Tag+`"%`)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []models.Article
	err := query.
		Order("published_at DESC NULLS LAST, created_at DESC").
		Offset(opts.offset()).
		Limit(opts.Limit).
		Find(&articles).Error

	return articles, total, err
}

// IncrementViews folds flushed view-counter deltas into the stored count.
func (r *ArticleRepository) IncrementViews(id uuid.UUID, delta int64) error {
	return r.db.Model(&models.Article{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + ?", delta)).Error
}

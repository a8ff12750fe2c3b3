package repository

import (
	"errors"

	"github.com/brightfold/studio-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaseStudyRepository struct {
	db *gorm.DB
}

func NewCaseStudyRepository(db *gorm.DB) *CaseStudyRepository {
	return &CaseStudyRepository{db: db}
}

func (r *CaseStudyRepository) Create(cs *models.CaseStudy) error {
	return r.db.Create(cs).Error
}

func (r *CaseStudyRepository) Save(cs *models.CaseStudy) error {
	return r.db.Save(cs).Error
}

func (r *CaseStudyRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.CaseStudy{}, "id = ?", id).Error
}

func (r *CaseStudyRepository) GetByID(id uuid.UUID) (*models.CaseStudy, error) {
	var cs models.CaseStudy
	err := r.db.Where("id = ?", id).First(&cs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cs, nil
}

func (r *CaseStudyRepository) GetBySlug(slug string) (*models.CaseStudy, error) {
	var cs models.CaseStudy
	err := r.db.Where("slug = ?", slug).First(&cs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cs, nil
}

func (r *CaseStudyRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.CaseStudy{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *CaseStudyRepository) List(opts ListOptions) ([]models.CaseStudy, int64, error) {
	opts.normalize()

	query := r.db.Model(&models.CaseStudy{})

	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(company) LIKE LOWER(?) OR LOWER(challenge) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}
	if opts.Category != "" {
		query = query.Where("industry = ?", opts.Category)
	}
	if opts.Tag != "" {
		query = query.Where(`tags LIKE ?`, `%"`+opts.Tag+`"%`)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var studies []models.CaseStudy
	err := query.
		Order("featured DESC, sort_priority DESC, created_at DESC").
		Offset(opts.offset()).
		Limit(opts.Limit).
		Find(&studies).Error

	return studies, total, err
}

package repository

import (
	"github.com/brightfold/studio-backend/internal/models"
	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(submission *models.ContactSubmission) error {
	return r.db.Create(submission).Error
}

// List returns submissions newest first with the unpaginated total.
func (r *ContactRepository) List(opts ListOptions) ([]models.ContactSubmission, int64, error) {
	opts.normalize()

	query := r.db.Model(&models.ContactSubmission{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []models.ContactSubmission
	err := query.
		Order("created_at DESC").
		Offset(opts.offset()).
		Limit(opts.Limit).
		Find(&submissions).Error

	return submissions, total, err
}

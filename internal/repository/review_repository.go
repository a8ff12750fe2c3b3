package repository

import (
	"errors"

	"github.com/brightfold/studio-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) Save(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *ReviewRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Review{}, "id = ?", id).Error
}

func (r *ReviewRepository) GetByID(id uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("id = ?", id).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// List returns reviews ordered for display; featured first.
func (r *ReviewRepository) List(featuredOnly bool) ([]models.Review, error) {
	query := r.db.Model(&models.Review{})
	if featuredOnly {
		query = query.Where("featured = ?", true)
	}

	var reviews []models.Review
	err := query.
		Order("featured DESC, sort_order ASC, created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

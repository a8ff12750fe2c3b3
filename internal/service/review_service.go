package service

import (
	"errors"

	"github.com/brightfold/studio-backend/internal/models"
	"github.com/brightfold/studio-backend/internal/repository"
	"github.com/google/uuid"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewService struct {
	reviewRepo *repository.ReviewRepository
}

func NewReviewService(reviewRepo *repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo}
}

func (s *ReviewService) Create(review *models.Review) error {
	if err := review.Validate(); err != nil {
		return err
	}
	return s.reviewRepo.Create(review)
}

func (s *ReviewService) Update(id uuid.UUID, updated *models.Review) (*models.Review, error) {
	existing, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrReviewNotFound
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ReviewService) Delete(id uuid.UUID) error {
	existing, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrReviewNotFound
	}
	return s.reviewRepo.Delete(id)
}

func (s *ReviewService) Get(id uuid.UUID) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

func (s *ReviewService) List(featuredOnly bool) ([]models.Review, error) {
	return s.reviewRepo.List(featuredOnly)
}

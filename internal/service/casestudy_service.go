package service

import (
	"errors"

	"github.com/brightfold/studio-backend/internal/models"
	"github.com/brightfold/studio-backend/internal/repository"
	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrCaseStudyNotFound = errors.New("case study not found")

type CaseStudyService struct {
	caseStudyRepo *repository.CaseStudyRepository
}

func NewCaseStudyService(caseStudyRepo *repository.CaseStudyRepository) *CaseStudyService {
	return &CaseStudyService{caseStudyRepo: caseStudyRepo}
}

func (s *CaseStudyService) Create(cs *models.CaseStudy) error {
	if cs.Title == "" {
		return ErrTitleRequired
	}

	err := createWithUniqueSlug(cs.Slug, cs.Title, s.caseStudyRepo.SlugExists, func(slug string) error {
		cs.Slug = slug
		return s.caseStudyRepo.Create(cs)
	})
	if err != nil {
		logger.Log.Error("Failed to create case study",
			zap.String("slug", cs.Slug),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Case study created",
		zap.String("case_study_id", cs.ID.String()),
		zap.String("slug", cs.Slug),
	)
	return nil
}

func (s *CaseStudyService) Update(id uuid.UUID, updated *models.CaseStudy) (*models.CaseStudy, error) {
	existing, err := s.caseStudyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCaseStudyNotFound
	}

	if updated.Title == "" {
		return nil, ErrTitleRequired
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	slug, err := uniqueSlug(updated.Slug, updated.Title, existing.Slug, s.caseStudyRepo.SlugExists)
	if err != nil {
		return nil, err
	}
	updated.Slug = slug

	if err := s.caseStudyRepo.Save(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *CaseStudyService) Delete(id uuid.UUID) error {
	existing, err := s.caseStudyRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCaseStudyNotFound
	}
	return s.caseStudyRepo.Delete(id)
}

// GetBySlug returns a case study. Case studies have no draft state;
// every stored study is public.
func (s *CaseStudyService) GetBySlug(slug string) (*models.CaseStudy, error) {
	cs, err := s.caseStudyRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if cs == nil {
		return nil, ErrCaseStudyNotFound
	}
	return cs, nil
}

func (s *CaseStudyService) List(opts repository.ListOptions) ([]models.CaseStudy, int64, error) {
	return s.caseStudyRepo.List(opts)
}

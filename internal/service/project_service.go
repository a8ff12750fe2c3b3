package service

import (
	"errors"

	"github.com/brightfold/studio-backend/internal/models"
	"github.com/brightfold/studio-backend/internal/repository"
	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrInvalidVisibility = errors.New("invalid visibility")
)

type ProjectService struct {
	projectRepo *repository.ProjectRepository
}

func NewProjectService(projectRepo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

func (s *ProjectService) prepare(project *models.Project) error {
	if project.Title == "" {
		return ErrTitleRequired
	}
	if project.Status == "" {
		project.Status = models.ProjectDraft
	}
	if !models.ValidProjectStatus(project.Status) {
		return ErrInvalidStatus
	}
	if project.Visibility == "" {
		project.Visibility = models.VisibilityPublic
	}
	if !models.ValidVisibility(project.Visibility) {
		return ErrInvalidVisibility
	}
	return nil
}

func (s *ProjectService) Create(project *models.Project) error {
	if err := s.prepare(project); err != nil {
		return err
	}

	err := createWithUniqueSlug(project.Slug, project.Title, s.projectRepo.SlugExists, func(slug string) error {
		project.Slug = slug
		return s.projectRepo.Create(project)
	})
	if err != nil {
		logger.Log.Error("Failed to create project",
			zap.String("slug", project.Slug),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("slug", project.Slug),
	)
	return nil
}

func (s *ProjectService) Update(id uuid.UUID, updated *models.Project) (*models.Project, error) {
	existing, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProjectNotFound
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.prepare(updated); err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(updated.Slug, updated.Title, existing.Slug, s.projectRepo.SlugExists)
	if err != nil {
		return nil, err
	}
	updated.Slug = slug

	if err := s.projectRepo.Save(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ProjectService) Delete(id uuid.UUID) error {
	existing, err := s.projectRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProjectNotFound
	}
	return s.projectRepo.Delete(id)
}

func (s *ProjectService) GetBySlug(slug string, isAdmin bool) (*models.Project, error) {
	project, err := s.projectRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if !isAdmin && !project.IsVisible() {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (s *ProjectService) List(opts repository.ListOptions, isAdmin bool) ([]models.Project, int64, error) {
	opts.PublicOnly = !isAdmin
	return s.projectRepo.List(opts)
}

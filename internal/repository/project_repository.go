package repository

import (
	"errors"

	"github.com/brightfold/studio-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *ProjectRepository) Save(project *models.Project) error {
	return r.db.Save(project).Error
}

func (r *ProjectRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

func (r *ProjectRepository) GetByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) GetBySlug(slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("slug = ?", slug).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *ProjectRepository) List(opts ListOptions) ([]models.Project, int64, error) {
	opts.normalize()

	query := r.db.Model(&models.Project{})

	if opts.PublicOnly {
		query = query.Where("status = ? AND visibility = ?",
			models.ProjectPublished, models.VisibilityPublic)
	}
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(summary) LIKE LOWER(?)",
			pattern, pattern,
		)
	}
	if opts.Tag != "" {
		query = query.Where(`tags LIKE ?`, `%"`+opts.Tag+`"%`)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := query.
		Order("featured DESC, sort_priority DESC, created_at DESC").
		Offset(opts.offset()).
		Limit(opts.Limit).
		Find(&projects).Error

	return projects, total, err
}

package handler

import (
	"errors"
	"net/http"

	"github.com/brightfold/studio-backend/internal/audit"
	"github.com/brightfold/studio-backend/internal/models"
	"github.com/brightfold/studio-backend/internal/service"
	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projectService *service.ProjectService
	auditLog       *audit.Log
}

func NewProjectHandler(projectService *service.ProjectService, auditLog *audit.Log) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		auditLog:       auditLog,
	}
}

// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, total, err := h.projectService.List(listOptions(c), isAdmin(c))
	if err != nil {
		logger.Log.Error("Failed to list projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"total":    total,
	})
}

// GET /api/projects/:slug
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projectService.GetBySlug(c.Param("slug"), isAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// POST /api/projects (admin)
func (h *ProjectHandler) Create(c *gin.Context) {
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.projectService.Create(&project); err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Log.Error("Failed to create project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	recordAudit(h.auditLog, c, "project.create", project.ID.String(), project.Slug)

	c.JSON(http.StatusCreated, gin.H{"project": project})
}

// PUT /api/projects/:id (admin)
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.projectService.Update(id, &project)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Log.Error("Failed to update project", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		}
		return
	}

	recordAudit(h.auditLog, c, "project.update", id.String(), updated.Slug)

	c.JSON(http.StatusOK, gin.H{"project": updated})
}

// DELETE /api/projects/:id (admin)
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	if err := h.projectService.Delete(id); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		logger.Log.Error("Failed to delete project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	recordAudit(h.auditLog, c, "project.delete", id.String(), "")

	c.JSON(http.StatusOK, gin.H{"success": true})
}

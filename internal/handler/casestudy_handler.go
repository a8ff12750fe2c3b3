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

type CaseStudyHandler struct {
	caseStudyService *service.CaseStudyService
	auditLog         *audit.Log
}

func NewCaseStudyHandler(caseStudyService *service.CaseStudyService, auditLog *audit.Log) *CaseStudyHandler {
	return &CaseStudyHandler{
		caseStudyService: caseStudyService,
		auditLog:         auditLog,
	}
}

// GET /api/case-studies
func (h *CaseStudyHandler) List(c *gin.Context) {
	studies, total, err := h.caseStudyService.List(listOptions(c))
	if err != nil {
		logger.Log.Error("Failed to list case studies", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch case studies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"case_studies": studies,
		"total":        total,
	})
}

// GET /api/case-studies/:slug
func (h *CaseStudyHandler) Get(c *gin.Context) {
	cs, err := h.caseStudyService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCaseStudyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Case study not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch case study"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"case_study": cs})
}

// POST /api/case-studies (admin)
func (h *CaseStudyHandler) Create(c *gin.Context) {
	var cs models.CaseStudy
	if err := c.ShouldBindJSON(&cs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.caseStudyService.Create(&cs); err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Log.Error("Failed to create case study", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create case study"})
		return
	}

	recordAudit(h.auditLog, c, "case_study.create", cs.ID.String(), cs.Slug)

	c.JSON(http.StatusCreated, gin.H{"case_study": cs})
}

// PUT /api/case-studies/:id (admin)
func (h *CaseStudyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid case study id"})
		return
	}

	var cs models.CaseStudy
	if err := c.ShouldBindJSON(&cs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.caseStudyService.Update(id, &cs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaseStudyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Case study not found"})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Log.Error("Failed to update case study", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update case study"})
		}
		return
	}

	recordAudit(h.auditLog, c, "case_study.update", id.String(), updated.Slug)

	c.JSON(http.StatusOK, gin.H{"case_study": updated})
}

// DELETE /api/case-studies/:id (admin)
func (h *CaseStudyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid case study id"})
		return
	}

	if err := h.caseStudyService.Delete(id); err != nil {
		if errors.Is(err, service.ErrCaseStudyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Case study not found"})
			return
		}
		logger.Log.Error("Failed to delete case study", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete case study"})
		return
	}

	recordAudit(h.auditLog, c, "case_study.delete", id.String(), "")

	c.JSON(http.StatusOK, gin.H{"success": true})
}

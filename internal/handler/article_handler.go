package handler

import (
	"errors"
	"net/http"

	"github.com/brightfold/studio-backend/internal/audit"
	"github.com/brightfold/studio-backend/internal/models"
	"github.com/brightfold/studio-backend/internal/service"
	"github.com/brightfold/studio-backend/internal/views"
	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ArticleHandler struct {
	articleService *service.ArticleService
	viewCounter    *views.Counter
	auditLog       *audit.Log
}

func NewArticleHandler(articleService *service.ArticleService, viewCounter *views.Counter, auditLog *audit.Log) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		viewCounter:    viewCounter,
		auditLog:       auditLog,
	}
}

// List serves published articles to the public and everything to admins.
// GET /api/articles
func (h *ArticleHandler) List(c *gin.Context) {
	articles, total, err := h.articleService.List(listOptions(c), isAdmin(c))
	if err != nil {
		logger.Log.Error("Failed to list articles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"total":    total,
	})
}

// Get serves one article by slug, counting the view for public reads.
// GET /api/articles/:slug
func (h *ArticleHandler) Get(c *gin.Context) {
	admin := isAdmin(c)

	article, err := h.articleService.GetBySlug(c.Param("slug"), admin)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch article"})
		return
	}

	if !admin && h.viewCounter != nil {
		h.viewCounter.Record(article.ID)
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// Create stores a new article. Admin only.
// POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.articleService.Create(&article); err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Log.Error("Failed to create article", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}

	recordAudit(h.auditLog, c, "article.create", article.ID.String(), article.Slug)

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// Update replaces an article. Admin only.
// PUT /api/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.articleService.Update(id, &article)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Log.Error("Failed to update article", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		}
		return
	}

	recordAudit(h.auditLog, c, "article.update", id.String(), updated.Slug)

	c.JSON(http.StatusOK, gin.H{"article": updated})
}

// Delete removes an article. Admin only.
// DELETE /api/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	if err := h.articleService.Delete(id); err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		logger.Log.Error("Failed to delete article", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}

	recordAudit(h.auditLog, c, "article.delete", id.String(), "")

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrTitleRequired) ||
		errors.Is(err, service.ErrInvalidStatus) ||
		errors.Is(err, service.ErrInvalidIntent) ||
		errors.Is(err, service.ErrInvalidVisibility) ||
		errors.Is(err, service.ErrInvalidSlug)
}

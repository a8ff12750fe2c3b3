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

type ReviewHandler struct {
	reviewService *service.ReviewService
	auditLog      *audit.Log
}

func NewReviewHandler(reviewService *service.ReviewService, auditLog *audit.Log) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		auditLog:      auditLog,
	}
}

// GET /api/reviews?featured=true
func (h *ReviewHandler) List(c *gin.Context) {
	featuredOnly := c.Query("featured") == "true"

	reviews, err := h.reviewService.List(featuredOnly)
	if err != nil {
		logger.Log.Error("Failed to list reviews", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// GET /api/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	review, err := h.reviewService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// POST /api/reviews (admin)
func (h *ReviewHandler) Create(c *gin.Context) {
	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.reviewService.Create(&review); err != nil {
		if errors.Is(err, models.ErrMissingFields) || errors.Is(err, models.ErrInvalidRating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Log.Error("Failed to create review", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	recordAudit(h.auditLog, c, "review.create", review.ID.String(), review.Author)

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// PUT /api/reviews/:id (admin)
func (h *ReviewHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.reviewService.Update(id, &review)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		case errors.Is(err, models.ErrMissingFields), errors.Is(err, models.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Log.Error("Failed to update review", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		}
		return
	}

	recordAudit(h.auditLog, c, "review.update", id.String(), "")

	c.JSON(http.StatusOK, gin.H{"review": updated})
}

// DELETE /api/reviews/:id (admin)
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	if err := h.reviewService.Delete(id); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		logger.Log.Error("Failed to delete review", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	recordAudit(h.auditLog, c, "review.delete", id.String(), "")

	c.JSON(http.StatusOK, gin.H{"success": true})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/brightfold/studio-backend/internal/service"
	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContactHandler struct {
	contactService *service.ContactService
	isProduction   bool
}

func NewContactHandler(contactService *service.ContactService, isProduction bool) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		isProduction:   isProduction,
	}
}

type ContactSubmitRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Company string `json:"company" binding:"required"`
	Role    string `json:"role" binding:"required"`
	UseCase string `json:"useCase" binding:"required"`
	Details string `json:"details" binding:"required"`
	Budget  string `json:"budget"`
}

// Submit handles the public contact form.
// POST /api/contact/submit
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "name, email, company, role, useCase and details are required",
		})
		return
	}

	err := h.contactService.Submit(c.Request.Context(), service.ContactRequest{
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Role:      req.Role,
		UseCase:   req.UseCase,
		Details:   req.Details,
		Budget:    req.Budget,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, service.ErrContactValidation) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": err.Error(),
			})
			return
		}

		logger.Log.Error("Contact submission failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)

		// Hide provider detail from callers in production
		message := "Failed to send message. Please try again later."
		if !h.isProduction {
			message = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": message,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Thanks for reaching out. We'll get back to you within one business day.",
	})
}

// Submissions lists stored leads. Admin only.
// GET /api/contact/submissions
func (h *ContactHandler) Submissions(c *gin.Context) {
	submissions, total, err := h.contactService.List(listOptions(c))
	if err != nil {
		logger.Log.Error("Failed to list contact submissions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"total":       total,
	})
}

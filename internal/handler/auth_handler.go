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

type AuthHandler struct {
	authService *service.AuthService
	auditLog    *audit.Log
}

func NewAuthHandler(authService *service.AuthService, auditLog *audit.Log) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		auditLog:    auditLog,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type UpdateRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

// setSessionCookie mirrors the token into an httpOnly cookie so
// browser clients don't have to manage the Authorization header.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		"token",
		token,
		3600, // matches the 1-hour token expiry
		"/",
		"",
		h.authService.IsProduction(),
		true,
	)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "name, email and password are required",
		})
		return
	}

	logger.Log.Info("Registration attempt",
		zap.String("email", req.Email),
		zap.String("ip", c.ClientIP()),
	)

	user, token, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	h.setSessionCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"user":    user.Public(),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "email and password are required",
		})
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if !errors.Is(err, service.ErrInvalidCredentials) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{
			"success": false,
			"message": "invalid credentials",
		})
		return
	}

	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user.Public(),
	})
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "id_token is required",
		})
		return
	}

	user, token, err := h.authService.GoogleLogin(req.IDToken)
	if err != nil {
		status := http.StatusUnauthorized
		if !errors.Is(err, service.ErrInvalidGoogleToken) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{
			"success": false,
			"message": "google login failed",
		})
		return
	}

	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user.Public(),
	})
}

// GetUsers lists all accounts. Admin only.
func (h *AuthHandler) GetUsers(c *gin.Context) {
	users, err := h.authService.GetAllUsers()
	if err != nil {
		logger.Log.Error("Failed to fetch users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch users",
		})
		return
	}

	views := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		views = append(views, u.Public())
	}

	c.JSON(http.StatusOK, gin.H{
		"users": views,
	})
}

// UpdateRole mutates a user's role. Admin only; self-demotion is refused.
func (h *AuthHandler) UpdateRole(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user id",
		})
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "role is required",
		})
		return
	}

	actorID := c.MustGet("user_id").(uuid.UUID)

	user, err := h.authService.UpdateRole(actorID, targetID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDemotion):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		}
		return
	}

	recordAudit(h.auditLog, c, "user.role", targetID.String(), string(req.Role))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user.Public(),
	})
}

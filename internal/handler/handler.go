package handler

import (
	"strconv"

	"github.com/brightfold/studio-backend/internal/audit"
	"github.com/brightfold/studio-backend/internal/middleware"
	"github.com/brightfold/studio-backend/internal/repository"
	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// listOptions reads the shared list query parameters.
func listOptions(c *gin.Context) repository.ListOptions {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	return repository.ListOptions{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Page:     page,
		Limit:    limit,
	}
}

// recordAudit writes an admin-mutation audit entry. Best-effort: a
// failed audit write is logged but never fails the request.
func recordAudit(log *audit.Log, c *gin.Context, action, resource, detail string) {
	if log == nil {
		return
	}

	actor := ""
	if id, exists := c.Get("user_id"); exists {
		if uid, ok := id.(uuid.UUID); ok {
			actor = uid.String()
		}
	}

	err := log.Record(audit.Entry{
		ActorID:  actor,
		Action:   action,
		Resource: resource,
		Detail:   detail,
	})
	if err != nil {
		logger.Log.Warn("Audit record failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// isAdmin reports whether the request carries an admin session.
func isAdmin(c *gin.Context) bool {
	return middleware.IsAdmin(c)
}

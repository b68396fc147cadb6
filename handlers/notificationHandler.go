package handlers

import (
	"errors"
	"net/http"
	"time"

	"dansarena/middlewares"
	"dansarena/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ListNotificationsHandler handles GET /notifications. Callers only ever
// see their own rows; ?unread=true narrows to unread ones.
func ListNotificationsHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	claims, ok := middlewares.GetClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing bearer token")
		return
	}

	query := db.Where("user_id = ?", claims.UserID)
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		logger.Error("failed to list notifications", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{
		"items": notifications,
		"count": len(notifications),
	})
}

// MarkNotificationReadHandler handles PATCH /notifications/:id/read.
func MarkNotificationReadHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	claims, ok := middlewares.GetClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing bearer token")
		return
	}
	notificationID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid notification id")
		return
	}

	var n models.Notification
	if err := db.First(&n, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "notification not found")
			return
		}
		logger.Error("failed to fetch notification", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if n.UserID != claims.UserID {
		respondError(c, http.StatusForbidden, "not your notification")
		return
	}

	now := time.Now()
	if err := db.Model(&n).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": now,
	}).Error; err != nil {
		logger.Error("failed to mark notification read", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to update notification")
		return
	}
	respondOK(c, http.StatusOK, "notification marked read", nil)
}

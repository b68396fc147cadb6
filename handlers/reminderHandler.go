package handlers

import (
	"net/http"
	"time"

	"dansarena/battle"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CheckRemindersHandler handles GET /battles/check-reminders. The sweep is
// idempotent, so external schedulers may call this as often as they like;
// the in-process cron job runs the very same function.
func CheckRemindersHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	result, err := battle.RunReminderSweep(db, logger, time.Now())
	if err != nil {
		logger.Error("reminder sweep failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "reminder sweep failed")
		return
	}
	respondOK(c, http.StatusOK, "reminder sweep finished", result)
}

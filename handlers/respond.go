package handlers

import (
	"errors"
	"net/http"

	"dansarena/battle"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Every endpoint answers with the same envelope:
// { success, message?, data?, error? }.

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondBattleError maps the battle package's sentinel errors onto the
// HTTP taxonomy: 403 authorization, 404 absence, 400 validation and
// wrong-state conflicts, 500 everything else.
func respondBattleError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, battle.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		respondError(c, http.StatusNotFound, "battle not found")
	case errors.Is(err, battle.ErrNotParticipant), errors.Is(err, battle.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, battle.ErrInvalidState),
		errors.Is(err, battle.ErrValidation),
		errors.Is(err, battle.ErrConflict):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error("battle transition failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}

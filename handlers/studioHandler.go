package handlers

import (
	"errors"
	"net/http"

	"dansarena/middlewares"
	"dansarena/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateStudioHandler handles POST /studios. Studio role only; the
// OwnerID unique index enforces one studio per owner.
func CreateStudioHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	claims, ok := middlewares.GetClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req models.CreateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	studio := models.Studio{
		OwnerID:     claims.UserID,
		Name:        req.Name,
		Address:     req.Address,
		Capacity:    req.Capacity,
		HourlyPrice: req.HourlyPrice,
	}
	if err := db.Create(&studio).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusBadRequest, "you already own a studio")
			return
		}
		logger.Error("failed to create studio", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to create studio")
		return
	}

	respondOK(c, http.StatusCreated, "studio created", studio)
}

// ListStudiosHandler handles GET /studios, the catalogue dancers browse
// when picking their ranked preferences.
func ListStudiosHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	var studios []models.Studio
	if err := db.Order("name").Find(&studios).Error; err != nil {
		logger.Error("failed to list studios", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list studios")
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{
		"items": studios,
		"count": len(studios),
	})
}

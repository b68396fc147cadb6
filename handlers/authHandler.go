package handlers

import (
	"errors"
	"net/http"

	"dansarena/auth"
	"dansarena/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterHandler creates an account and returns a signed token.
func RegisterHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !models.ValidRole(req.Role) {
		respondError(c, http.StatusBadRequest, "unknown role")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("password hashing failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Nickname:     req.Nickname,
		Role:         req.Role,
		DanceStyle:   req.DanceStyle,
		City:         req.City,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusBadRequest, "email already registered")
			return
		}
		logger.Error("failed to create user", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		logger.Error("token generation failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}

	respondOK(c, http.StatusCreated, "account created", gin.H{
		"userId": user.ID,
		"token":  token,
	})
}

// LoginHandler checks credentials and returns a signed token. The same
// "invalid credentials" answer covers unknown email and wrong password.
func LoginHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		logger.Error("failed to fetch user", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		logger.Error("token generation failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"userId": user.ID,
		"role":   user.Role,
		"token":  token,
	})
}

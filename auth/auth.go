package auth

import (
	"errors"
	"time"

	"dansarena/models"

	"github.com/golang-jwt/jwt/v5"
)

// JwtKey signs and verifies bearer tokens. Set from config at startup;
// the default only exists so tests need no config file.
var JwtKey = []byte("dev_secret_change_me")

const tokenTTL = 72 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// GenerateToken issues an HS256 token carrying the user's id and role.
func GenerateToken(userID uint, role string) (string, error) {
	claims := &models.MyClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}

// ParseToken verifies tokenString and returns its claims.
func ParseToken(tokenString string) (*models.MyClaims, error) {
	claims := &models.MyClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// MyClaims is the JWT payload. The middleware verifies it once per request
// and hands the resolved principal to handlers through the gin context.
type MyClaims struct {
	UserID uint   `json:"userid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

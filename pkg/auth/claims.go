package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims is the typed shape of the JWT minted by the hosted auth
// provider. The backend never issues these tokens, it only verifies them.
type AccessTokenClaims struct {
	UserID uuid.UUID  `json:"user_id"`
	HomeID *uuid.UUID `json:"home_id,omitempty"`
	Role   string     `json:"role"`
	jwt.RegisteredClaims
}

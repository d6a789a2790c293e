package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the decoded payload of a session token. Possession of a
// validly signed, unexpired token is the sole proof of session validity;
// nothing is stored server-side.
type TokenClaims struct {
	UserID   int64  `json:"id"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	CID      string `json:"cid"`
	jwt.RegisteredClaims
}

package auth

import (
	"fmt"
	"time"

	"github.com/campusportal/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager signs and verifies session tokens. Tokens are the only
// session artifact: nothing is stored server-side, so a validly signed,
// unexpired token is accepted on its own.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

// NewTokenManager creates a TokenManager signing with the shared secret.
func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// GenerateToken issues a signed HS256 token for an already-authenticated,
// active user, embedding id, email, userType and cid.
func (tm *TokenManager) GenerateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := &models.TokenClaims{
		UserID:   user.ID,
		Email:    user.Email,
		UserType: user.UserType,
		CID:      user.CID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken verifies a presented token and returns its claims. An empty
// token fails with ErrMissingToken; a bad signature or past-expiry token
// fails with ErrInvalidToken. The two cases are never conflated so callers
// can report "token required" versus "invalid or expired token".
func (tm *TokenManager) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	if tokenString == "" {
		return nil, models.ErrMissingToken
	}

	claims := &models.TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrInvalidToken
	}

	return claims, nil
}

// Authorize decides access purely from the decoded claims: allow when the
// token's userType matches any of the required roles, deny with ErrForbidden
// otherwise. No store lookup is involved.
func Authorize(claims *models.TokenClaims, roles ...string) error {
	if claims == nil {
		return models.ErrForbidden
	}
	for _, role := range roles {
		if claims.UserType == role {
			return nil
		}
	}
	return models.ErrForbidden
}

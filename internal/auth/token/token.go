// Package token issues the signed JWTs used for API authentication.
package token

import (
	"time"

	"leadtracker_backend/platform/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Signer issues HS256-signed access tokens.
type Signer struct {
	cfg config.JWTConfig
}

// NewSigner creates a token signer from JWT configuration.
func NewSigner(cfg config.JWTConfig) *Signer {
	return &Signer{cfg: cfg}
}

// Sign issues a token for the given user. The subject claim carries the
// user ID, matching what the auth middleware expects.
func (s *Signer) Sign(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.GetJWTTTL()).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.GetJWTSecret()))
}

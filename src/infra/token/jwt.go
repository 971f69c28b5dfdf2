// Package token implements bearer credential signing and verification
// with HS256 JWTs.
package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"inkwell/src/core/domain"
	"inkwell/src/core/ports"
	"inkwell/src/infra/config"
)

// claims embeds the caller's display name next to the registered
// claims; the subject carries the user ID.
type claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// JWTIssuer implements ports.TokenIssuer using golang-jwt.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

// NewJWTIssuer constructs an issuer from auth configuration.
func NewJWTIssuer(cfg config.AuthConfig) *JWTIssuer {
	return &JWTIssuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}
}

// Issue signs a token for the identity, valid for the configured TTL.
func (i *JWTIssuer) Issue(identity domain.Identity) (string, error) {
	now := time.Now()
	c := claims{
		Name: identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
}

// Verify parses and validates a token and returns the embedded identity.
func (i *JWTIssuer) Verify(tokenString string) (*domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, domain.NewUnauthorizedError("invalid or expired token")
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, domain.NewUnauthorizedError("invalid token")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, domain.NewUnauthorizedError("invalid token subject")
	}

	return &domain.Identity{ID: userID, Name: c.Name}, nil
}

// Package session issues and verifies the signed session tokens that carry
// the Discord identity. The bridge signs a token after the OAuth exchange;
// the API verifies it on every request and resolves the Viewer from the
// claims alone, so no session state is held server-side.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shopkeeper/internal/db/models"
)

// DefaultTTL is the lifetime of issued session tokens
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken means the token failed signature or claims validation
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the JWT claims layout of a session token
type Claims struct {
	Username string `json:"username"`
	IsOwner  bool   `json:"is_owner"`
	jwt.RegisteredClaims
}

// Issue signs a session token for the viewer
func Issue(secret string, viewer models.Viewer, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := time.Now()
	claims := Claims{
		Username: viewer.Username,
		IsOwner:  viewer.IsOwner,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   viewer.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify validates a session token and returns the viewer it carries
func Verify(secret, tokenString string) (models.Viewer, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return models.Viewer{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return models.Viewer{}, ErrInvalidToken
	}

	return models.Viewer{
		ID:       claims.Subject,
		Username: claims.Username,
		IsOwner:  claims.IsOwner,
	}, nil
}

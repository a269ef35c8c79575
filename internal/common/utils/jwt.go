package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims represents the claims carried by the backend session token
type SessionClaims struct {
	jwt.RegisteredClaims
	Email      string `json:"email,omitempty"`
	CustomerID int64  `json:"customer_id,omitempty"`
}

// ParseUnverifiedJWT reads the claims of a token without checking its signature.
// Used when no JWKS endpoint is configured: the token is opaque to the client
// and only its expiry matters.
func ParseUnverifiedJWT(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

// ExpiresAtTime returns the expiry of the claims, zero when absent
func (c *SessionClaims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("authorization header format must be: Bearer {token}")
	}

	return parts[1], nil
}

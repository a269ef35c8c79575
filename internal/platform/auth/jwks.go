package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/jwk"
	"github.com/lestrrat-go/jwx/jwt"

	"github.com/hirosato/go-bank-client/internal/common/utils"
	"github.com/hirosato/go-bank-client/internal/domain/errors"
)

// JWKSVerifier validates session tokens against the backend's published keys
type JWKSVerifier struct {
	jwksURL string
	log     *slog.Logger

	mu     sync.RWMutex
	jwkSet jwk.Set
}

// NewJWKSVerifier creates a verifier. Keys are fetched lazily on first use.
func NewJWKSVerifier(jwksURL string, log *slog.Logger) *JWKSVerifier {
	return &JWKSVerifier{
		jwksURL: jwksURL,
		log:     log,
	}
}

// RefreshJWKSet refreshes the JWK set used for token validation
func (v *JWKSVerifier) RefreshJWKSet(ctx context.Context) error {
	jwkSet, err := jwk.Fetch(ctx, v.jwksURL)
	if err != nil {
		return fmt.Errorf("failed to refresh JWK set: %w", err)
	}

	v.mu.Lock()
	v.jwkSet = jwkSet
	v.mu.Unlock()
	return nil
}

// Verify validates the signature and expiry of a token and extracts its claims
func (v *JWKSVerifier) Verify(ctx context.Context, tokenString string) (*utils.SessionClaims, error) {
	token, err := v.parse(tokenString)
	if err != nil {
		// Keys may have rotated, refresh once and retry
		if refreshErr := v.RefreshJWKSet(ctx); refreshErr != nil {
			v.log.Warn("Failed to fetch JWK set", "error", refreshErr)
			return nil, errors.NewConnectionError("could not fetch signing keys", refreshErr)
		}
		token, err = v.parse(tokenString)
		if err != nil {
			return nil, errors.NewAuthenticationError("invalid session token")
		}
	}

	claims := &utils.SessionClaims{}
	claims.Subject = token.Subject()
	if exp := token.Expiration(); !exp.IsZero() {
		claims.ExpiresAt = jwtv5.NewNumericDate(exp)
	}
	if email, ok := token.Get("email"); ok {
		if s, ok := email.(string); ok {
			claims.Email = s
		}
	}
	if id, ok := token.Get("customer_id"); ok {
		if f, ok := id.(float64); ok {
			claims.CustomerID = int64(f)
		}
	}

	return claims, nil
}

func (v *JWKSVerifier) parse(tokenString string) (jwt.Token, error) {
	v.mu.RLock()
	set := v.jwkSet
	v.mu.RUnlock()

	if set == nil {
		return nil, fmt.Errorf("no JWK set loaded")
	}

	return jwt.Parse(
		[]byte(tokenString),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
	)
}

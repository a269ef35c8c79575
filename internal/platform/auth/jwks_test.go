package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/jwa"
	"github.com/lestrrat-go/jwx/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/go-bank-client/internal/common/config"
	"github.com/hirosato/go-bank-client/internal/common/utils"
	domainErrors "github.com/hirosato/go-bank-client/internal/domain/errors"
)

func newJWKSServer(t *testing.T, pub *rsa.PublicKey, kid string) *httptest.Server {
	t.Helper()

	key, err := jwk.New(pub)
	require.NoError(t, err)
	require.NoError(t, key.Set(jwk.KeyIDKey, kid))
	require.NoError(t, key.Set(jwk.AlgorithmKey, jwa.RS256))

	set := jwk.NewSet()
	set.Add(key)
	body, err := json.Marshal(set)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func signRS256(t *testing.T, priv *rsa.PrivateKey, kid string, claims utils.SessionClaims) string {
	t.Helper()

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(priv)
	require.NoError(t, err)
	return signed
}

func TestJWKSVerifier_Verify(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	server := newJWKSServer(t, &priv.PublicKey, "k1")

	t.Run("valid token", func(t *testing.T) {
		verifier := NewJWKSVerifier(server.URL, logger)
		signed := signRS256(t, priv, "k1", utils.SessionClaims{
			RegisteredClaims: jwtv5.RegisteredClaims{
				Subject:   "7",
				ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Hour)),
			},
			Email:      "ana@example.com",
			CustomerID: 7,
		})

		claims, err := verifier.Verify(context.Background(), signed)
		require.NoError(t, err)
		assert.Equal(t, "7", claims.Subject)
		assert.Equal(t, "ana@example.com", claims.Email)
		assert.Equal(t, int64(7), claims.CustomerID)
		assert.False(t, claims.ExpiresAtTime().IsZero())
	})

	t.Run("foreign signature", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		verifier := NewJWKSVerifier(server.URL, logger)
		signed := signRS256(t, other, "k1", utils.SessionClaims{
			RegisteredClaims: jwtv5.RegisteredClaims{
				ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		_, err = verifier.Verify(context.Background(), signed)
		assert.ErrorIs(t, err, domainErrors.ErrAuthentication)
	})

	t.Run("unreachable key endpoint", func(t *testing.T) {
		verifier := NewJWKSVerifier("http://127.0.0.1:1/jwks.json", logger)

		_, err := verifier.Verify(context.Background(), "a.b.c")
		assert.ErrorIs(t, err, domainErrors.ErrConnection)
	})
}

func TestNewTokenVerifier(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	_, isJWKS := NewTokenVerifier(&config.Config{JWKSURL: "https://bank.example.com/jwks"}, logger).(*JWKSVerifier)
	assert.True(t, isJWKS)

	verifier := NewTokenVerifier(&config.Config{}, logger)
	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, utils.SessionClaims{CustomerID: 3})
	signed, err := token.SignedString([]byte("server-secret"))
	require.NoError(t, err)

	claims, err := verifier.Verify(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.CustomerID)

	_, err = verifier.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, domainErrors.ErrAuthentication)
}

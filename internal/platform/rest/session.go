package rest

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/hirosato/go-bank-client/internal/common/utils"
)

// Session is the bearer token handed out at sign-in
type Session struct {
	Token  string
	Claims *utils.SessionClaims
}

// Session returns the current session, nil when signed out or expired
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil || c.expired(c.session) {
		return nil
	}
	s := *c.session
	return &s
}

// ClearSession forgets the bearer token
func (c *Client) ClearSession() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

// sessionToken returns the token to send, dropping it once expired
func (c *Client) sessionToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return ""
	}
	if c.expired(c.session) {
		c.log.Info("Session token expired", zap.Time("expiresAt", c.session.Claims.ExpiresAtTime()))
		c.session = nil
		return ""
	}
	return c.session.Token
}

// captureSession stores the bearer token of a sign-in response, if any
func (c *Client) captureSession(ctx context.Context, header http.Header) error {
	token, err := utils.ExtractBearerToken(header.Get("Authorization"))
	if err != nil {
		return nil
	}

	var claims *utils.SessionClaims
	if c.verifier != nil {
		claims, err = c.verifier.Verify(ctx, token)
		if err != nil {
			c.log.Warn("Rejected session token", zap.Error(err))
			return err
		}
	}

	c.mu.Lock()
	c.session = &Session{Token: token, Claims: claims}
	c.mu.Unlock()

	if claims != nil {
		c.log.Debug("Session started", zap.String("subject", claims.Subject), zap.Time("expiresAt", claims.ExpiresAtTime()))
	}
	return nil
}

func (c *Client) expired(s *Session) bool {
	if s.Claims == nil {
		return false
	}
	exp := s.Claims.ExpiresAtTime()
	return !exp.IsZero() && !c.now().Before(exp)
}

package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hirosato/go-bank-client/internal/common/config"
	"github.com/hirosato/go-bank-client/internal/domain/errors"
	"github.com/hirosato/go-bank-client/internal/platform/auth"
)

// Client is the HTTP transport shared by the bank backend repositories
type Client struct {
	baseURL  string
	http     *http.Client
	verifier auth.TokenVerifier
	log      *zap.Logger
	now      func() time.Time

	mu      sync.RWMutex
	session *Session
}

// NewClient creates a new backend client
func NewClient(cfg *config.Config, verifier auth.TokenVerifier, log *zap.Logger) *Client {
	return &Client{
		baseURL:  cfg.APIBaseURL,
		http:     &http.Client{Timeout: cfg.HTTPTimeout},
		verifier: verifier,
		log:      log,
		now:      time.Now,
	}
}

// result is what callers need from a response besides the decoded body
type result struct {
	status int
	header http.Header
}

// do sends a JSON request and decodes a JSON response into out.
// Non-2xx statuses are returned as errors.AppError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (*result, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.NewInternalError("failed to encode request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.NewInternalError("failed to build request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.sessionToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("requestId", requestID),
	)
	log.Debug("REQUEST", zap.Any("headers", maskSensitiveHeaders(req.Header)))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("Backend unreachable", zap.Error(err))
		return nil, errors.NewConnectionError("Could not reach the bank server", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("Failed to read response", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, errors.NewConnectionError("Connection lost while reading the response", err)
	}

	log.Debug("RESPONSE",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.Int("bytes", len(data)),
	)

	res := &result{status: resp.StatusCode, header: resp.Header}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := statusError(resp.StatusCode, data)
		log.Warn("Backend rejected request",
			zap.Int("status", resp.StatusCode),
			zap.String("code", appErr.Code),
			zap.String("message", appErr.Message),
		)
		return res, appErr
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			log.Warn("Failed to decode response", zap.Error(err))
			return res, errors.NewServerError("Unexpected response from the bank server", err)
		}
	}

	return res, nil
}

// maskSensitiveHeaders copies the headers for logging, hiding credentials
func maskSensitiveHeaders(headers http.Header) map[string]string {
	masked := make(map[string]string, len(headers))
	for k := range headers {
		masked[k] = headers.Get(k)
	}

	sensitiveHeaders := []string{
		"Authorization",
		"X-Api-Key",
		"Cookie",
	}
	for _, header := range sensitiveHeaders {
		if _, ok := masked[header]; ok {
			masked[header] = "***"
		}
	}

	return masked
}

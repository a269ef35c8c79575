package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hirosato/go-bank-client/internal/domain/errors"
)

// errorBody is the error payload of the backend. Either field may be set.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func backendMessage(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// statusError maps an HTTP status to the client error taxonomy
func statusError(status int, data []byte) errors.AppError {
	message := strings.TrimSpace(backendMessage(data))
	orDefault := func(fallback string) string {
		if message == "" {
			return fallback
		}
		return message
	}

	switch {
	case status == http.StatusNotFound:
		return errors.NewNotFoundError(orDefault("Not found"))
	case status == http.StatusConflict:
		return errors.NewConflictError(orDefault("Already exists"))
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return errors.NewValidationError(orDefault("Rejected by the bank server")).WithStatus(status)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.NewAuthenticationError(orDefault("Not authorized")).WithStatus(status)
	case status >= 500:
		appErr := errors.NewServerError("The bank server failed, please try again later", nil).WithStatus(status)
		if message != "" {
			appErr = appErr.WithDetail("backendMessage", message)
		}
		return appErr
	default:
		return errors.NewServerError(fmt.Sprintf("Unexpected response status %d", status), nil).WithStatus(status)
	}
}

package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mmynk/packs/internal/auth"
	"github.com/mmynk/packs/internal/storage"
)

// APIError is an error with a fixed HTTP status and machine-readable code.
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// errorResponse is the body of every error reply.
type errorResponse struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func badRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "invalid_request", Message: message}
}

func forbidden(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Code: "forbidden", Message: message}
}

// resourceError turns storage sentinels into responses naming the resource.
// Other errors pass through unchanged.
func resourceError(resource string, err error) error {
	switch {
	case errors.Is(err, storage.ErrPackNotFound):
		return &APIError{Status: http.StatusNotFound, Code: "pack_not_found", Message: "Pack not found.", Err: err}
	case errors.Is(err, storage.ErrNotFound):
		return &APIError{Status: http.StatusNotFound, Code: "not_found", Message: resource + " not found.", Err: err}
	case errors.Is(err, storage.ErrConflict):
		return &APIError{
			Status:  http.StatusConflict,
			Code:    "already_exists",
			Message: fmt.Sprintf("A %s with that name already exists.", strings.ToLower(resource)),
			Err:     err,
		}
	}
	return err
}

// toAPIError classifies any error returned by a handler or middleware.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok && m != "" {
			message = m
		}
		return &APIError{Status: httpErr.Code, Code: statusCode(httpErr.Code), Message: message, Err: err}
	}

	unauthorized := func(code, message string) *APIError {
		return &APIError{Status: http.StatusUnauthorized, Code: code, Message: message, Err: err}
	}

	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return unauthorized("authorization_required", "Request does not contain an access token.")
	case errors.Is(err, auth.ErrTokenExpired):
		return unauthorized("token_expired", "The token has expired.")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrWrongTokenType):
		return unauthorized("invalid_token", "Signature verification failed.")
	case errors.Is(err, auth.ErrTokenRevoked):
		return unauthorized("token_revoked", "The token has been revoked.")
	case errors.Is(err, auth.ErrTokenNotFresh):
		return unauthorized("fresh_token_required", "The token is not fresh.")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return unauthorized("invalid_credentials", "Invalid username or password.")
	case errors.Is(err, auth.ErrUsernameExists):
		return &APIError{Status: http.StatusConflict, Code: "username_taken", Message: "A user with that username already exists.", Err: err}
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidUsername):
		return &APIError{Status: http.StatusBadRequest, Code: "invalid_request", Message: err.Error(), Err: err}
	}

	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrPackNotFound) || errors.Is(err, storage.ErrConflict) {
		errors.As(resourceError("Record", err), &apiErr)
		return apiErr
	}

	return &APIError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "Internal server error.", Err: err}
}

// statusCode derives a code such as "method_not_allowed" from a status.
func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "error"
	}
	return strings.ToLower(strings.ReplaceAll(text, " ", "_"))
}

// handleError is the echo HTTPErrorHandler; every error reply goes through it.
func handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	apiErr := toAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		slog.Error("Unhandled error",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(apiErr.Status)
	} else {
		err = c.JSON(apiErr.Status, errorResponse{
			Code:    apiErr.Status,
			Status:  http.StatusText(apiErr.Status),
			Error:   apiErr.Code,
			Message: apiErr.Message,
		})
	}
	if err != nil {
		slog.Error("Failed to write error response", "error", err)
	}
}

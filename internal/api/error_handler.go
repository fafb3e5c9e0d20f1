package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/infrastructure/backend"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error        string            `json:"error"`
	Fields       map[string]string `json:"fields,omitempty"`
	ConfirmToken string            `json:"confirm_token,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain and gateway errors to their HTTP status codes.
//   - Sends visitors whose session the backend rejected back to the login page.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrUnauthorized) {
			// The Session middleware has already dropped the session.
			_ = c.Redirect(http.StatusSeeOther, domain.LoginRoute)
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: ve.Fields}
	}

	var confirm *domain.ConfirmationRequiredError
	if errors.As(err, &confirm) {
		return http.StatusConflict, errorResponse{
			Error:        "confirmation required",
			ConfirmToken: confirm.Token,
		}
	}

	switch {
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnknownRole):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not found"}
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusServiceUnavailable, errorResponse{Error: backend.NetworkMessage}
	case errors.Is(err, domain.ErrEditLocked):
		return http.StatusLocked, errorResponse{Error: "article is locked for editing; request edit access first"}
	case errors.Is(err, domain.ErrInvalidConfirmation):
		return http.StatusConflict, errorResponse{Error: "confirmation expired, please try again"}
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, errorResponse{Error: "too many requests, slow down"}
	case errors.Is(err, domain.ErrInvalidImage):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	}

	// Any other backend answer keeps the backend's status and message.
	var be *backend.Error
	if errors.As(err, &be) {
		if be.Status >= http.StatusInternalServerError {
			log.Warn().Err(err).Int("status", be.Status).Str("path", c.Path()).Msg("backend error")
		}
		return be.Status, errorResponse{Error: be.Message}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

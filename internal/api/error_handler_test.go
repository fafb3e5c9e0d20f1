package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/infrastructure/backend"
)

func handle(t *testing.T, method string, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/staff/articles", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"unknown role", fmt.Errorf("route: %w", domain.ErrUnknownRole), http.StatusForbidden},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"edit locked", domain.ErrEditLocked, http.StatusLocked},
		{"stale confirmation", domain.ErrInvalidConfirmation, http.StatusConflict},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests},
		{"bad image", domain.ErrInvalidImage, http.StatusUnprocessableEntity},
		{"backend conflict", &backend.Error{Status: http.StatusConflict, Message: "Slug already taken"}, http.StatusConflict},
		{"backend 404", &backend.Error{Status: http.StatusNotFound, Message: "gone"}, http.StatusNotFound},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := handle(t, http.MethodGet, tt.err)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHTTPErrorHandler_BackendMessage(t *testing.T) {
	rec := handle(t, http.MethodGet, &backend.Error{Status: http.StatusConflict, Message: "Slug already taken"})

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Error != "Slug already taken" {
		t.Fatalf("unexpected message %q", body.Error)
	}
}

func TestHTTPErrorHandler_Network(t *testing.T) {
	rec := handle(t, http.MethodGet, fmt.Errorf("fetch: %w", domain.ErrNetwork))

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable || body.Error != backend.NetworkMessage {
		t.Fatalf("got %d %q", rec.Code, body.Error)
	}
}

func TestHTTPErrorHandler_ValidationFields(t *testing.T) {
	ve := domain.NewValidationError()
	ve.Add("title", "title is required")
	rec := handle(t, http.MethodPost, ve)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity || body.Fields["title"] != "title is required" {
		t.Fatalf("got %d %+v", rec.Code, body)
	}
}

func TestHTTPErrorHandler_ConfirmationToken(t *testing.T) {
	rec := handle(t, http.MethodDelete, &domain.ConfirmationRequiredError{Action: "delete-article", Token: "ct-9"})

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rec.Code != http.StatusConflict || body.ConfirmToken != "ct-9" {
		t.Fatalf("got %d %+v", rec.Code, body)
	}
}

func TestHTTPErrorHandler_UnauthorizedRedirectsToLogin(t *testing.T) {
	for _, err := range []error{
		domain.ErrUnauthorized,
		&backend.Error{Status: http.StatusUnauthorized, Message: "jwt expired"},
	} {
		rec := handle(t, http.MethodGet, err)
		if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != domain.LoginRoute {
			t.Fatalf("%v: got %d to %q", err, rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	}
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	rec := handle(t, http.MethodHead, domain.ErrNotFound)
	if rec.Code != http.StatusNotFound || rec.Body.Len() != 0 {
		t.Fatalf("got %d with %d bytes", rec.Code, rec.Body.Len())
	}
}

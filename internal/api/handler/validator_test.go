package handler

import (
	"errors"
	"testing"

	"github.com/kickside/newsdesk/internal/core/domain"
)

func TestValidator_FieldNamesFollowTags(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&changePasswordRequest{CurrentPassword: "old"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"newPassword", "confirmPassword"} {
		if ve.Fields[field] != field+" is required" {
			t.Errorf("field %s: got %q", field, ve.Fields[field])
		}
	}
	if _, ok := ve.Fields["password"]; ok {
		t.Errorf("filled field reported: %v", ve.Fields)
	}
}

func TestValidator_QueryNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&listQuery{Page: -1, PageSize: 101})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields["page"] != "page must be at least 0" {
		t.Errorf("page: got %q", ve.Fields["page"])
	}
	if ve.Fields["page_size"] != "page_size must be at most 100" {
		t.Errorf("page_size: got %q", ve.Fields["page_size"])
	}
}

func TestValidator_Valid(t *testing.T) {
	if err := NewValidator().Validate(&analyticsQuery{Year: 2026, Month: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := NewValidator().Validate(&analyticsQuery{}); err != nil {
		t.Fatalf("zero values must pass: %v", err)
	}
}

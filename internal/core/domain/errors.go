package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("access forbidden")
	ErrNotFound             = errors.New("not found")
	ErrNetwork              = errors.New("network error")
	ErrValidation           = errors.New("validation failed")
	ErrEditLocked           = errors.New("article is locked for editing")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrInvalidConfirmation  = errors.New("invalid or expired confirmation")
	ErrRateLimited          = errors.New("too many requests")
	ErrInvalidImage         = errors.New("invalid image")
	ErrSessionNotFound      = errors.New("session not found")
	ErrUnknownRole          = errors.New("unknown role")
)

// ValidationError carries one message per offending form field.
// It matches ErrValidation through errors.Is.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records msg for field unless the field already has a message;
// the first failure per field is the one surfaced.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = msg
}

// Empty reports whether no field failed.
func (e *ValidationError) Empty() bool { return e == nil || len(e.Fields) == 0 }

// OrNil returns e when it holds failures, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConfirmationRequiredError is returned by destructive actions issued without
// a confirmation token. Token must be echoed back to perform the action.
type ConfirmationRequiredError struct {
	Action string
	Token  string
}

func (e *ConfirmationRequiredError) Error() string {
	return "confirmation required: " + e.Action
}

func (e *ConfirmationRequiredError) Is(target error) bool { return target == ErrConfirmationRequired }

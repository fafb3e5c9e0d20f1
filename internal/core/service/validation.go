package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const minPasswordLength = 6

var validate = validator.New()

func validEmail(s string) bool {
	return validate.Var(strings.TrimSpace(s), "required,email") == nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

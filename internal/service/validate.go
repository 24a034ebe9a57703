package service

import (
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func isURL(value string) bool {
	return validate.Var(value, "url") == nil
}

func validNameLength(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 2 && n <= 30
}

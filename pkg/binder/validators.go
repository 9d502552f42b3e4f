package binder

import (
	"net/url"
	"regexp"

	"github.com/andersbekkevard/librarium-app-sub001/pkg/isbn"
	"github.com/andersbekkevard/librarium-app-sub001/pkg/readingstate"
	"github.com/go-playground/validator/v10"
)

var (
	dateRE = regexp.MustCompile(`^\d{4}-(0[0-9]|1[0-2])-(0[0-9]|1[0-9]|2[0-9]|3[0-1])$`)
)

// dateValidator ensures the value matches the format YYYY-MM-DD or the empty
// string. The reason the empty string is allowed is that this validator can be
// used to clear out values. However, this is only useful in that case, so if
// you're using this validator but want the value to be required, add a `ne=` to
// the validate tag so that the empty string is disallowed.
func dateValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return dateRE.MatchString(value)
}

// urlValidator ensures the value is an absolute http(s) URL or the empty
// string.
func urlValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// isbnValidator ensures the value is a checksum-valid ISBN-10 or ISBN-13, or
// the empty string.
func isbnValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return isbn.IsValid(value)
}

// readingStateValidator ensures the value is a known reading state.
func readingStateValidator(fl validator.FieldLevel) bool {
	return readingstate.IsValid(readingstate.State(fl.Field().String()))
}

package models

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ButtonSeparator splits a button input into label and target URL.
const ButtonSeparator = " — "

// ErrButtonFormat is returned when button input cannot be parsed into a
// label/URL pair.
var ErrButtonFormat = errors.New("button: expected '<label> — <url>'")

var validate = validator.New()

// ParseButton parses user input of the form "<label> — <url>". The split
// happens on the first separator occurrence; label and URL must be non-empty
// after trimming and the URL must be well formed. The input is never mutated
// into a partial result: either a complete button or ErrButtonFormat.
func ParseButton(input string) (*Button, error) {
	raw := strings.TrimSpace(input)
	idx := strings.Index(raw, ButtonSeparator)
	if idx < 0 {
		return nil, ErrButtonFormat
	}

	label := strings.TrimSpace(raw[:idx])
	url := strings.TrimSpace(raw[idx+len(ButtonSeparator):])
	if label == "" || url == "" {
		return nil, ErrButtonFormat
	}
	if err := validate.Var(url, "url"); err != nil {
		return nil, ErrButtonFormat
	}

	return &Button{Label: label, URL: url}, nil
}

package identity

import (
	"errors"
	"regexp"
	"strings"
)

// Client-side credential checks. They block a submission before any
// network call; the backend remains the authority on acceptance.

var emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)

const minPasswordLen = 8

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email address is not valid")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrNameRequired     = errors.New("name is required")
)

// ValidateEmail checks presence and syntax.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// ValidatePassword enforces the minimum length.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateName checks a first or last name is non-empty.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return nil
}

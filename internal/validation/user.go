package validation

import (
	"net/mail"
	"regexp"
	"strings"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,30}$`)

// ValidateUsername allows 3-30 letters, digits, underscores, dots and dashes.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return newError("username", "username is required")
	}
	if !usernamePattern.MatchString(username) {
		return newError("username", "username must be 3-30 characters of letters, digits, '_', '.' or '-'")
	}
	return nil
}

// ValidateEmail validates email format and length
// Uses Go's built-in net/mail parser which follows RFC 5322
func ValidateEmail(email string) error {
	if email == "" {
		return newError("email", "email address is required")
	}

	// RFC 5321: total max 254 with @
	if len(email) > 254 {
		return newError("email", "email address is too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return newError("email", "invalid email address format")
	}

	return nil
}

// ValidatePassword enforces the minimum length. bcrypt ignores bytes past 72.
func ValidatePassword(password string) error {
	if password == "" {
		return newError("password", "password is required")
	}
	if len(password) < 8 {
		return newError("password", "password must be at least 8 characters")
	}
	if len(password) > 72 {
		return newError("password", "password is too long (max 72 bytes)")
	}
	return nil
}

// ValidateName validates an optional first or last name.
func ValidateName(field, name string) error {
	if len(strings.TrimSpace(name)) > 100 {
		return newError(field, field+" is too long (max 100 characters)")
	}
	return nil
}

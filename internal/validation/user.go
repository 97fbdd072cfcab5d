package validation

import (
	"regexp"       // Regular expressions
	"unicode/utf8" // Character counting
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)          // Letters, digits, dot, underscore, hyphen
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`) // Syntactic email check
	upperRe    = regexp.MustCompile(`[A-Z]`)                      // At least one uppercase letter
	digitRe    = regexp.MustCompile(`[0-9]`)                      // At least one digit
)

// ValidateUsername checks the username charset and length rules.
// Lengths are counted in characters, not bytes.
func ValidateUsername(username string) *FieldError {
	if !usernameRe.MatchString(username) {
		return &FieldError{Field: "username", Message: "Username must contain only letters, numbers, dots, underscores or hyphens"}
	}
	if n := utf8.RuneCountInString(username); n < 3 || n > 100 {
		return &FieldError{Field: "username", Message: "Username must be between 3 and 100 characters"}
	}
	return nil
}

// ValidateEmail checks that the email is syntactically valid.
// Uniqueness against existing users is checked separately by the handlers.
func ValidateEmail(email string) *FieldError {
	if !emailRe.MatchString(email) {
		return &FieldError{Field: "email", Message: "Please enter a valid email address"}
	}
	return nil
}

// ValidatePassword checks the password rules applied at account creation.
// The minimum length is counted in characters, not bytes.
func ValidatePassword(password string) *FieldError {
	if utf8.RuneCountInString(password) < 8 {
		return &FieldError{Field: "password", Message: "Password must be at least 8 characters"}
	}
	if !upperRe.MatchString(password) {
		return &FieldError{Field: "password", Message: "Password must include at least one uppercase letter"}
	}
	if !digitRe.MatchString(password) {
		return &FieldError{Field: "password", Message: "Password must include at least one number"}
	}
	return nil
}

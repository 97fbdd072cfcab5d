package validation

import "unicode/utf8" // Character counting

// ValidateTitle checks the post title length rule.
// The length is counted in characters, not bytes.
func ValidateTitle(title string) *FieldError {
	if n := utf8.RuneCountInString(title); n < 3 || n > 255 {
		return &FieldError{Field: "title", Message: "Title must be between 3 and 255 characters"}
	}
	return nil
}

// ValidateContent checks the post content length rule.
// The length is counted in characters, not bytes.
func ValidateContent(content string) *FieldError {
	if utf8.RuneCountInString(content) < 10 {
		return &FieldError{Field: "content", Message: "Content must be at least 10 characters"}
	}
	return nil
}

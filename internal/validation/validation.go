// Package validation provides pure field-validation functions for user and
// post payloads. Database-dependent checks (email uniqueness) live in the
// handlers; everything here is side-effect free.
package validation

// FieldError describes a validation failure for a single input field
type FieldError struct {
	Field   string `json:"field"`   // Name of the offending field
	Message string `json:"message"` // Human-readable message
}

// Error implements the error interface
func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

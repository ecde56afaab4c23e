package planner

import "errors"

var (
	// ErrUnauthorized is returned when the acting principal lacks permission for an operation.
	ErrUnauthorized = errors.New("planner: unauthorized")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("planner: not found")
	// ErrUnknownSaveMode is returned when a save request names a mode outside {all, cur}.
	ErrUnknownSaveMode = errors.New("planner: unknown save mode")
	// ErrInvalidCredentials is returned for bad email/password pairs and unusable tokens.
	ErrInvalidCredentials = errors.New("planner: invalid credentials")
	// ErrSessionExpired is returned when a session token is past its expiry.
	ErrSessionExpired = errors.New("planner: session expired")
	// ErrSessionRevoked is returned when a session token has been revoked.
	ErrSessionRevoked = errors.New("planner: session revoked")
	// ErrAlreadyExists is returned when a unique attribute collides with an existing record.
	ErrAlreadyExists = errors.New("planner: already exists")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

package apperrors

import "errors"

// Error kinds. Every concrete error below wraps exactly one of these so the
// HTTP layer can map it with errors.Is.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrDuplicate        = errors.New("duplicate")
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrUnavailable      = errors.New("store unavailable")
	ErrValidationFailed = errors.New("validation failed")
)

// Authentication errors
var (
	ErrTokenMissing   = NewCustomError(ErrUnauthorized, "authorization token missing")
	ErrTokenMalformed = NewCustomError(ErrUnauthorized, "authorization token malformed")
	ErrTokenExpired   = NewCustomError(ErrUnauthorized, "authorization token expired")

	// ErrInvalidCredentials is returned for both an unknown user and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User errors
var (
	ErrUserNotFound  = NewCustomError(ErrNotFound, "User not found")
	ErrUsernameTaken = NewCustomError(ErrDuplicate, "Username already registered")
	ErrEmailTaken    = NewCustomError(ErrDuplicate, "Email already registered")
)

// Student errors
var (
	ErrStudentNotFound = NewCustomError(ErrNotFound, "Student not found")
	ErrStudentIDTaken  = NewCustomError(ErrConflict, "Student ID already registered")
)

// NewValidationError creates a validation error carrying a client-safe message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Unavailable wraps a driver error as a store failure. The original error is kept
// in the chain for logging; Error() never reaches a client.
func Unavailable(err error) error {
	return &CustomError{
		Err:     ErrUnavailable,
		Message: "store unavailable",
		Cause:   err,
	}
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with a client-safe message
type CustomError struct {
	Err     error
	Message string
	Cause   error
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements the multi-error form of errors.Unwrap so both the kind and
// the cause are visible to errors.Is / errors.As.
func (e *CustomError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// PublicMessage returns the client-safe message carried by err, or fallback
// when err carries none.
func PublicMessage(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" && ce.Cause == nil {
		return ce.Message
	}
	return fallback
}

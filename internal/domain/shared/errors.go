package shared

import "errors"

// ErrorKind classifies a domain error for recovery handling.
// Validation and conversion errors are recoverable at file/row granularity;
// persistence errors are recoverable by an explicit user retry.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindConversion  ErrorKind = "conversion"
	KindPersistence ErrorKind = "persistence"
	KindUnknown     ErrorKind = "unknown"
)

// DomainError represents a domain-level error with a user-facing message
// and a recovery instruction. Technical detail belongs in logs, not here.
type DomainError struct {
	Kind     ErrorKind `json:"kind"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Recovery string    `json:"recovery,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Recovery == "" {
		return e.Message
	}
	return e.Message + ". " + e.Recovery
}

// NewValidationError creates a validation error
func NewValidationError(code, message, recovery string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: code, Message: message, Recovery: recovery}
}

// NewConversionError creates a conversion error
func NewConversionError(code, message, recovery string) *DomainError {
	return &DomainError{Kind: KindConversion, Code: code, Message: message, Recovery: recovery}
}

// NewPersistenceError creates a persistence error
func NewPersistenceError(code, message, recovery string) *DomainError {
	return &DomainError{Kind: KindPersistence, Code: code, Message: message, Recovery: recovery}
}

// Common domain errors
var (
	ErrNotFound = &DomainError{
		Kind: KindPersistence, Code: "NOT_FOUND",
		Message: "Resource not found",
	}
	ErrFileTooLarge = NewValidationError("FILE_TOO_LARGE",
		"File too large", "Please use an image smaller than 10MB.")
	ErrUnsupportedFormat = NewValidationError("UNSUPPORTED_FORMAT",
		"Unsupported file format", "Please use JPEG, PNG, WebP, or HEIC images.")
	ErrSessionFull = NewValidationError("SESSION_FULL",
		"Maximum number of images reached", "Remove an image before adding another.")
	ErrInvalidInput = NewValidationError("INVALID_INPUT",
		"Invalid data", "Please check your entries and correct any errors.")
	ErrConversionFailed = NewConversionError("CONVERSION_FAILED",
		"Image conversion failed", "Please try uploading a JPEG or PNG image instead.")
	ErrPersistenceFailed = NewPersistenceError("PERSISTENCE_FAILED",
		"Saving changes failed", "Check your connection and try again.")
	ErrUnknown = &DomainError{
		Kind: KindUnknown, Code: "UNKNOWN",
		Message:  "Something went wrong",
		Recovery: "Please try again. If the problem persists, refresh the page.",
	}
)

// KindOf returns the error kind of err, or KindUnknown for foreign errors.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsConversion reports whether err is a conversion error
func IsConversion(err error) bool { return KindOf(err) == KindConversion }

// IsPersistence reports whether err is a persistence error
func IsPersistence(err error) bool { return KindOf(err) == KindPersistence }

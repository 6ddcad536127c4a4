package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrBadRequest       = errors.New("bad request")
)

// Authentication errors
var (
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")
)

// Source data errors. Per-record problems are reported as issues on a report;
// these sentinels classify them and are returned only from single-record calls.
var (
	ErrInvalidYear         = errors.New("invalid admission year")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrUnmappedDepartment  = errors.New("unmapped department")
	ErrMalformedInput      = errors.New("malformed input collection")
	ErrInvalidPackage      = errors.New("invalid package offer")
	ErrStudentNotFound     = errors.New("student not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrSourceUnavailable   = errors.New("source data unavailable")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewMalformedInputError reports a collection that cannot be read at all
func NewMalformedInputError(collection string, cause error) *CustomError {
	return &CustomError{
		Err:     ErrMalformedInput,
		Message: "malformed " + collection + " collection",
		Details: map[string]interface{}{"collection": collection, "cause": errString(cause)},
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

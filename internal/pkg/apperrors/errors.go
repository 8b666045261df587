package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Storage errors
	ErrStorage     = errors.New("storage failure")
	ErrStorageFull = errors.New("storage quota exceeded")

	// Backup errors
	ErrImportFailed = errors.New("import failed")

	// Interaction errors
	ErrConfirmationDeclined = errors.New("operation not confirmed")
)

// Entity errors
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrDriverNotFound  = errors.New("driver not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrRouteNotFound   = errors.New("route not found")

	ErrNationalIDExists = errors.New("national id already registered")
	ErrPlateExists      = errors.New("plate already registered")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewEntityNotFoundError reports a missing entity. The returned error matches
// both ErrResourceNotFound and the entity specific sentinel.
func NewEntityNotFoundError(sentinel error, id string) error {
	return &CustomError{
		Err:     errors.Join(ErrResourceNotFound, sentinel),
		Message: sentinel.Error(),
		Code:    "not_found",
		Details: map[string]interface{}{"id": id},
	}
}

// NewDuplicateKeyError reports a collision on a unique key. The returned error matches
// both ErrResourceAlreadyExists and the entity specific sentinel.
func NewDuplicateKeyError(sentinel error, field, value string) error {
	return &CustomError{
		Err:     errors.Join(ErrResourceAlreadyExists, sentinel),
		Message: sentinel.Error(),
		Code:    "duplicate",
		Details: map[string]interface{}{"field": field, "value": value},
	}
}

// NewStorageError wraps a persistence failure so callers can match ErrStorage.
func NewStorageError(message string, cause error) error {
	return &CustomError{
		Err:     errors.Join(ErrStorage, cause),
		Message: message,
	}
}

// NewImportError wraps a document rejected during import.
func NewImportError(message string, cause error) error {
	ce := &CustomError{
		Err:     ErrImportFailed,
		Message: message,
	}
	if cause != nil {
		ce.Err = errors.Join(ErrImportFailed, cause)
	}
	return ce
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
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

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
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

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}

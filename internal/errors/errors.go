package errors

import (
	"errors"
)

// NewValidationError wraps field-level problems of a task or folder.
func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, cause, "%s", message)
}

// NewNotFoundError reports an unknown task or folder id.
func NewNotFoundError(resource string, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound, nil, "%s not found: %s", resource, identifier).
		WithContext("resource", resource).
		WithContext("identifier", identifier)
}

// NewStorageError wraps a failure of the persistence layer.
func NewStorageError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeStorage, cause, "storage operation failed: %s", operation).
		WithContext("operation", operation)
}

// NewInvalidInputError reports a command argument that cannot be used.
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput, nil, "invalid input for %s: %s", field, reason).
		WithContext("field", field).
		WithContext("value", value)
}

// NewCorruptDataError reports a stored or imported document that cannot be
// turned into tasks or folders.
func NewCorruptDataError(key string, cause error) *AppError {
	return newAppError(ErrorTypeCorruptData, cause, "%s document is malformed", key).
		WithContext("key", key)
}

// NewAmbiguousError reports an id prefix matching several tasks or folders.
func NewAmbiguousError(resource string, prefix string, matches int) *AppError {
	return newAppError(ErrorTypeAmbiguous, nil, "%s id %q matches %d entries", resource, prefix, matches).
		WithContext("resource", resource).
		WithContext("prefix", prefix)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// GetUserMessage returns the text shown to the user for err.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	switch {
	case appErr.userFault():
		return appErr.Message
	case appErr.Type == ErrorTypeCorruptData && appErr.Cause != nil:
		return appErr.Message + ": " + GetUserMessage(appErr.Cause)
	case appErr.Type == ErrorTypeCorruptData:
		return appErr.Message
	case appErr.Type == ErrorTypeStorage:
		return "the task database could not be used; changes made in this command may not be saved"
	default:
		return "an unexpected error occurred"
	}
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether err is a system fault rather than a user mistake.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	return !ok || !appErr.userFault()
}

package errors

import (
	"fmt"
)

// ErrorType tells callers how an error should be reported.
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeStorage
	ErrorTypeInvalidInput
	ErrorTypeCorruptData
	ErrorTypeAmbiguous
)

// kind describes an ErrorType. userFault errors are shown verbatim and never
// logged.
type kind struct {
	name      string
	code      string
	userFault bool
}

var kinds = map[ErrorType]kind{
	ErrorTypeValidation:   {name: "validation", code: "VALIDATION_FAILED", userFault: true},
	ErrorTypeNotFound:     {name: "not_found", code: "NOT_FOUND", userFault: true},
	ErrorTypeStorage:      {name: "storage", code: "STORAGE_ERROR"},
	ErrorTypeInvalidInput: {name: "invalid_input", code: "INVALID_INPUT", userFault: true},
	ErrorTypeCorruptData:  {name: "corrupt_data", code: "CORRUPT_DATA"},
	ErrorTypeAmbiguous:    {name: "ambiguous", code: "AMBIGUOUS_ID", userFault: true},
}

func (et ErrorType) String() string {
	if k, ok := kinds[et]; ok {
		return k.name
	}
	return "unknown"
}

// AppError is the structured error returned by the store, the persistence
// layer and the validators.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func newAppError(errorType ErrorType, cause error, format string, args ...interface{}) *AppError {
	return &AppError{
		Type:    errorType,
		Message: fmt.Sprintf(format, args...),
		Code:    kinds[errorType].code,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Type.String() + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code, so sentinel
// values such as &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"} work
// with errors.Is.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && e.Type == other.Type && e.Code == other.Code
}

// IsType reports whether the error is of errorType.
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext records a detail such as the offending field or document key.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext returns a detail recorded with WithContext.
func (e *AppError) GetContext(key string) (interface{}, bool) {
	value, ok := e.Context[key]
	return value, ok
}

// userFault reports whether the error stems from what the user asked for
// rather than from the machine.
func (e *AppError) userFault() bool {
	return kinds[e.Type].userFault
}

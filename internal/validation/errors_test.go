package validation

import (
	"fmt"
	"strings"
	"testing"

	"todo-manager/internal/errors"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "name", Message: "is required"}}, "validation error for field 'name': is required"},
		{"Multiple errors", []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be positive"},
		}, "multiple validation errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.Error()

			if tt.name == "Multiple errors" {
				if !strings.Contains(result, tt.expectError) {
					t.Errorf("ValidationError.Error() = %v, expected to contain %v", result, tt.expectError)
				}
			} else {
				if result != tt.expectError {
					t.Errorf("ValidationError.Error() = %v, expected %v", result, tt.expectError)
				}
			}
		})
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	tests := []struct {
		name     string
		errors   []FieldError
		expected bool
	}{
		{"No errors", []FieldError{}, false},
		{"Has errors", []FieldError{{Field: "name", Message: "is required"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.HasErrors()

			if result != tt.expected {
				t.Errorf("ValidationError.HasErrors() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestValidationError_AddError(t *testing.T) {
	ve := NewValidationError()

	ve.AddError("name", ErrorTypeRequired, "is required", "")

	if len(ve.Errors) != 1 {
		t.Errorf("Expected 1 error, got %d", len(ve.Errors))
	}

	if ve.Errors[0].Field != "name" {
		t.Errorf("Expected field 'name', got %s", ve.Errors[0].Field)
	}

	if ve.Errors[0].Type != ErrorTypeRequired {
		t.Errorf("Expected error type %v, got %v", ErrorTypeRequired, ve.Errors[0].Type)
	}
}

func TestValidationError_AddRequiredError(t *testing.T) {
	ve := NewValidationError()

	ve.AddRequiredError("name")

	if len(ve.Errors) != 1 {
		t.Errorf("Expected 1 error, got %d", len(ve.Errors))
	}

	if ve.Errors[0].Type != ErrorTypeRequired {
		t.Errorf("Expected error type %v, got %v", ErrorTypeRequired, ve.Errors[0].Type)
	}

	if ve.Errors[0].Field != "name" {
		t.Errorf("Expected field 'name', got %s", ve.Errors[0].Field)
	}
}

func TestValidationError_AddInvalidFormatError(t *testing.T) {
	ve := NewValidationError()

	ve.AddInvalidFormatError("color", "red", "#RRGGBB")

	if len(ve.Errors) != 1 {
		t.Errorf("Expected 1 error, got %d", len(ve.Errors))
	}

	if ve.Errors[0].Type != ErrorTypeInvalidFormat {
		t.Errorf("Expected error type %v, got %v", ErrorTypeInvalidFormat, ve.Errors[0].Type)
	}

	if !strings.Contains(ve.Errors[0].Message, "#RRGGBB") {
		t.Errorf("Expected message to contain expected format, got %s", ve.Errors[0].Message)
	}
}

func TestValidationError_AddMaxLengthError(t *testing.T) {
	ve := NewValidationError()

	ve.AddMaxLengthError("title", "a very long title", 5)

	if len(ve.Errors) != 1 {
		t.Errorf("Expected 1 error, got %d", len(ve.Errors))
	}

	if ve.Errors[0].Type != ErrorTypeInvalidLength {
		t.Errorf("Expected error type %v, got %v", ErrorTypeInvalidLength, ve.Errors[0].Type)
	}

	if ve.Errors[0].Message != "title must be at most 5 characters long" {
		t.Errorf("Expected message to name the limit, got %s", ve.Errors[0].Message)
	}
}

func TestValidationError_AddInvalidValueError(t *testing.T) {
	ve := NewValidationError()

	ve.AddInvalidValueError("folder_id", " ", "must be a non-blank identifier")

	if len(ve.Errors) != 1 {
		t.Errorf("Expected 1 error, got %d", len(ve.Errors))
	}

	if ve.Errors[0].Type != ErrorTypeInvalidValue {
		t.Errorf("Expected error type %v, got %v", ErrorTypeInvalidValue, ve.Errors[0].Type)
	}

	if !strings.Contains(ve.Errors[0].Message, "non-blank") {
		t.Errorf("Expected message to contain reason, got %s", ve.Errors[0].Message)
	}
}

func TestValidationError_GetFieldErrors(t *testing.T) {
	ve := NewValidationError()

	ve.AddRequiredError("name")
	ve.AddMaxLengthError("name", "abc", 2)
	ve.AddRequiredError("age")

	nameErrors := ve.GetFieldErrors("name")
	ageErrors := ve.GetFieldErrors("age")
	missingErrors := ve.GetFieldErrors("missing")

	if len(nameErrors) != 2 {
		t.Errorf("Expected 2 errors for 'name', got %d", len(nameErrors))
	}

	if len(ageErrors) != 1 {
		t.Errorf("Expected 1 error for 'age', got %d", len(ageErrors))
	}

	if len(missingErrors) != 0 {
		t.Errorf("Expected 0 errors for 'missing', got %d", len(missingErrors))
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	tests := []struct {
		name     string
		errors   []FieldError
		expected string
	}{
		{"No errors", []FieldError{}, "Input validation failed"},
		{"Single error", []FieldError{{Field: "name", Message: "is required"}}, "is required"},
		{"Multiple errors", []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be positive"},
		}, "Multiple validation errors occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.GetUserFriendlyMessage()

			if tt.name == "Multiple errors" {
				if !strings.Contains(result, tt.expected) {
					t.Errorf("GetUserFriendlyMessage() = %v, expected to contain %v", result, tt.expected)
				}
			} else {
				if result != tt.expected {
					t.Errorf("GetUserFriendlyMessage() = %v, expected %v", result, tt.expected)
				}
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("name")

	if !IsValidationError(ve) {
		t.Errorf("IsValidationError() = false, expected true for ValidationError")
	}

	regularError := &FieldError{Field: "test", Message: "error"}
	if IsValidationError(regularError) {
		t.Errorf("IsValidationError() = true, expected false for regular error")
	}
}

func TestNewValidationError(t *testing.T) {
	ve := NewValidationError()

	if ve == nil {
		t.Error("NewValidationError() returned nil")
	}

	if ve.Errors == nil {
		t.Error("NewValidationError() returned ValidationError with nil Errors slice")
	}

	if len(ve.Errors) != 0 {
		t.Errorf("NewValidationError() returned ValidationError with %d errors, expected 0", len(ve.Errors))
	}
}

func TestValidationError_ErrOrNil(t *testing.T) {
	ve := NewValidationError()
	if ve.ErrOrNil() != nil {
		t.Errorf("ErrOrNil() should be nil without field errors")
	}

	ve.AddRequiredError("title")
	if ve.ErrOrNil() == nil {
		t.Errorf("ErrOrNil() should return the error once a field error exists")
	}
}

func TestValidationError_Merge(t *testing.T) {
	other := NewValidationError()
	other.AddRequiredError("name")
	other.AddInvalidFormatError("color", "blue", "#RRGGBB")

	ve := NewValidationError()
	ve.AddRequiredError("title")
	ve.Merge(other)
	ve.Merge(nil)
	ve.Merge(fmt.Errorf("plain error"))

	if len(ve.Errors) != 3 {
		t.Errorf("Expected 3 errors after merge, got %d", len(ve.Errors))
	}
}

func TestValidationError_AppError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("title")

	appErr := ve.AppError()
	if !errors.IsErrorType(appErr, errors.ErrorTypeValidation) {
		t.Errorf("AppError() should produce a validation AppError")
	}
	if appErr.Message != "title is required" {
		t.Errorf("AppError() message = %q", appErr.Message)
	}
	if kind, ok := appErr.GetContext("title"); !ok || kind != "required" {
		t.Errorf("AppError() should record the failing field in its context")
	}
	if !IsValidationError(appErr) {
		t.Errorf("the wrapped ValidationError should stay reachable")
	}
}

package validation

import (
	"todo-manager/internal/config"
	"todo-manager/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// NewTaskValidatorWithConfig creates a task validator honouring cfg's limits.
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateTitle validates a task title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	if !tv.validator.IsNonEmptyString(title) {
		validationError.AddRequiredError("title")
		return validationError
	}

	if max := tv.validator.titleMaxLength(); !tv.validator.IsWithinMaxLength(title, max) {
		validationError.AddMaxLengthError("title", title, max)
	}

	return validationError.ErrOrNil()
}

// ValidateMemo validates the optional memo; empty is allowed.
func (tv *TaskValidator) ValidateMemo(memo string) error {
	validationError := NewValidationError()
	if max := tv.validator.memoMaxLength(); !tv.validator.IsWithinMaxLength(memo, max) {
		validationError.AddMaxLengthError("memo", len(memo), max)
	}
	return validationError.ErrOrNil()
}

// ValidateFolderID rejects blank folder references.
func (tv *TaskValidator) ValidateFolderID(folderID *string) error {
	if folderID == nil || tv.validator.IsValidID(*folderID) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidValueError("folder_id", *folderID, "must be a non-blank identifier")
	return validationError
}

// ValidateTaskInput validates the fields of a task about to be created.
func (tv *TaskValidator) ValidateTaskInput(input domain.TaskInput) error {
	validationError := NewValidationError()
	validationError.Merge(tv.ValidateTitle(input.Title))
	validationError.Merge(tv.ValidateMemo(input.Memo))
	validationError.Merge(tv.ValidateFolderID(input.FolderID))
	return validationError.ErrOrNil()
}

// ValidateTaskPatch validates only the fields a patch sets.
func (tv *TaskValidator) ValidateTaskPatch(patch domain.TaskPatch) error {
	validationError := NewValidationError()

	if patch.Title != nil {
		validationError.Merge(tv.ValidateTitle(*patch.Title))
	}
	if patch.Memo != nil {
		validationError.Merge(tv.ValidateMemo(*patch.Memo))
	}
	if !patch.Unfile {
		validationError.Merge(tv.ValidateFolderID(patch.FolderID))
	}

	return validationError.ErrOrNil()
}

// ValidateTask validates a complete domain.Task, e.g. one read from storage.
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	validationError := NewValidationError()

	if !tv.validator.IsValidID(task.ID) {
		validationError.AddRequiredError("id")
	}
	validationError.Merge(tv.ValidateTitle(task.Title))
	validationError.Merge(tv.ValidateMemo(task.Memo))
	validationError.Merge(tv.ValidateFolderID(task.FolderID))
	if task.CreatedAt.IsZero() {
		validationError.AddRequiredError("created_at")
	}

	return validationError.ErrOrNil()
}

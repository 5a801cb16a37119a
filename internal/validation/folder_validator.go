package validation

import (
	"todo-manager/internal/config"
	"todo-manager/internal/domain"
)

// FolderValidator provides validation for Folder-related operations
type FolderValidator struct {
	validator *Validator
}

// NewFolderValidator creates a new folder validator
func NewFolderValidator() *FolderValidator {
	return &FolderValidator{validator: NewValidator()}
}

// NewFolderValidatorWithConfig creates a folder validator honouring cfg's limits.
func NewFolderValidatorWithConfig(cfg *config.Config) *FolderValidator {
	return &FolderValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateName validates a folder name
func (fv *FolderValidator) ValidateName(name string) error {
	validationError := NewValidationError()

	if !fv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError("name")
		return validationError
	}
	if max := fv.validator.folderNameMaxLength(); !fv.validator.IsWithinMaxLength(name, max) {
		validationError.AddMaxLengthError("name", name, max)
	}

	return validationError.ErrOrNil()
}

// ValidateColor validates a folder color. Empty means the default color.
func (fv *FolderValidator) ValidateColor(color string) error {
	if color == "" || fv.validator.IsValidColor(color) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidFormatError("color", color, "#RRGGBB")
	return validationError
}

// ValidateFolderInput validates a folder about to be created.
func (fv *FolderValidator) ValidateFolderInput(input domain.FolderInput) error {
	validationError := NewValidationError()
	validationError.Merge(fv.ValidateName(input.Name))
	validationError.Merge(fv.ValidateColor(input.Color))
	return validationError.ErrOrNil()
}

// ValidateFolderPatch validates only the fields a patch sets.
func (fv *FolderValidator) ValidateFolderPatch(patch domain.FolderPatch) error {
	validationError := NewValidationError()
	if patch.Name != nil {
		validationError.Merge(fv.ValidateName(*patch.Name))
	}
	if patch.Color != nil {
		if *patch.Color == "" {
			validationError.AddRequiredError("color")
		} else {
			validationError.Merge(fv.ValidateColor(*patch.Color))
		}
	}
	return validationError.ErrOrNil()
}

// ValidateFolder validates a complete domain.Folder.
func (fv *FolderValidator) ValidateFolder(folder domain.Folder) error {
	validationError := NewValidationError()
	if !fv.validator.IsValidID(folder.ID) {
		validationError.AddRequiredError("id")
	}
	validationError.Merge(fv.ValidateName(folder.Name))
	if folder.Color == "" {
		validationError.AddRequiredError("color")
	} else {
		validationError.Merge(fv.ValidateColor(folder.Color))
	}
	return validationError.ErrOrNil()
}

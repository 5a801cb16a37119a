package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"todo-manager/internal/config"
)

var colorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a validator using the default limits.
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinMaxLength counts characters, not bytes, of the trimmed string.
func (v *Validator) IsWithinMaxLength(s string, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= max
}

// IsValidColor accepts #RRGGBB tokens.
func (v *Validator) IsValidColor(color string) bool {
	return colorRegex.MatchString(strings.TrimSpace(color))
}

// IsValidID rejects empty identifiers and identifiers with surrounding spaces.
func (v *Validator) IsValidID(id string) bool {
	return id != "" && strings.TrimSpace(id) == id
}

func (v *Validator) titleMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMaxLength
	}
	return 255
}

func (v *Validator) memoMaxLength() int {
	if v.config != nil {
		return v.config.Validation.MemoMaxLength
	}
	return 2000
}

func (v *Validator) folderNameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.FolderNameMaxLength
	}
	return 50
}

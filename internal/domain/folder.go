package domain

import "strings"

// DefaultFolderColor is used when a folder is created without a color.
const DefaultFolderColor = "#FFB5BA"

// FolderPalette lists the colors offered when creating a folder.
var FolderPalette = []string{
	"#FFB5BA",
	"#B5D8FF",
	"#C5E8B7",
	"#E8D5B7",
	"#D5B8E8",
	"#FFE4B5",
}

// NextFolderColor picks the first palette color no folder uses yet. Once the
// palette is exhausted it cycles by folder count.
func NextFolderColor(folders []Folder) string {
	used := make(map[string]bool, len(folders))
	for _, folder := range folders {
		used[strings.ToUpper(folder.Color)] = true
	}
	for _, color := range FolderPalette {
		if !used[color] {
			return color
		}
	}
	return FolderPalette[len(folders)%len(FolderPalette)]
}

// Folder is a named, colored grouping of tasks.
type Folder struct {
	ID    string
	Name  string
	Color string
}

// NewFolder creates a Folder, falling back to DefaultFolderColor.
func NewFolder(id string, input FolderInput) Folder {
	color := strings.ToUpper(strings.TrimSpace(input.Color))
	if color == "" {
		color = DefaultFolderColor
	}
	return Folder{
		ID:    id,
		Name:  strings.TrimSpace(input.Name),
		Color: color,
	}
}

// Apply returns the folder with every non-nil patch field applied.
func (f Folder) Apply(patch FolderPatch) Folder {
	if patch.Name != nil {
		f.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Color != nil {
		f.Color = strings.ToUpper(strings.TrimSpace(*patch.Color))
	}
	return f
}

// String returns the folder name for display purposes.
func (f Folder) String() string {
	return f.Name
}

// FolderInput carries the fields of a folder to be created.
type FolderInput struct {
	Name  string
	Color string
}

// FolderPatch is a field-level update of a folder.
type FolderPatch struct {
	Name  *string
	Color *string
}

// IsEmpty reports whether the patch changes nothing.
func (p FolderPatch) IsEmpty() bool {
	return p.Name == nil && p.Color == nil
}

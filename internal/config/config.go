package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"todo-manager/internal/domain"
)

// Config holds all configuration options for the todo manager
type Config struct {
	Storage     StorageConfig     `mapstructure:"storage"`
	Time        TimeConfig        `mapstructure:"time"`
	Validation  ValidationConfig  `mapstructure:"validation"`
	Display     DisplayConfig     `mapstructure:"display"`
	Application ApplicationConfig `mapstructure:"application"`
	Keys        Keymap            `mapstructure:"keys"`
}

// StorageConfig holds database-related configuration
type StorageConfig struct {
	Dir          string        `mapstructure:"dir"`
	Filename     string        `mapstructure:"filename"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// TimeConfig holds the time zone and display layouts
type TimeConfig struct {
	Timezone   string `mapstructure:"timezone"`
	DateFormat string `mapstructure:"date_format"`
	TimeFormat string `mapstructure:"time_format"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength      int `mapstructure:"title_max_length"`
	MemoMaxLength       int `mapstructure:"memo_max_length"`
	FolderNameMaxLength int `mapstructure:"folder_name_max_length"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DefaultCategory string `mapstructure:"default_category"`
	OverdueLimit    int    `mapstructure:"overdue_limit"`
	ShowMemo        bool   `mapstructure:"show_memo"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Verbose bool          `mapstructure:"verbose"`
	Seed    bool          `mapstructure:"seed"`
}

// Keymap binds terminal UI actions to keys.
type Keymap struct {
	Quit         string `mapstructure:"quit"`
	Add          string `mapstructure:"add"`
	Up           string `mapstructure:"up"`
	Down         string `mapstructure:"down"`
	Toggle       string `mapstructure:"toggle"`
	Delete       string `mapstructure:"delete"`
	Detail       string `mapstructure:"detail"`
	Confirm      string `mapstructure:"confirm"`
	Cancel       string `mapstructure:"cancel"`
	NextCategory string `mapstructure:"next_category"`
	PrevCategory string `mapstructure:"prev_category"`
	NextFolder   string `mapstructure:"next_folder"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Storage: StorageConfig{
			Dir:          filepath.Join(homeDir, ".todo"),
			Filename:     "todo.db",
			QueryTimeout: 10 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Time: TimeConfig{
			Timezone:   "Local",
			DateFormat: "2006-01-02",
			TimeFormat: "15:04",
		},
		Validation: ValidationConfig{
			TitleMaxLength:      255,
			MemoMaxLength:       2000,
			FolderNameMaxLength: 50,
		},
		Display: DisplayConfig{
			DefaultCategory: string(domain.CategoryAll),
			OverdueLimit:    3,
			ShowMemo:        true,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Seed:    true,
		},
		Keys: DefaultKeymap(),
	}
}

// DefaultKeymap returns the key bindings of a fresh configuration.
func DefaultKeymap() Keymap {
	return Keymap{
		Quit:         "q",
		Add:          "a",
		Up:           "k",
		Down:         "j",
		Toggle:       " ",
		Delete:       "d",
		Detail:       "enter",
		Confirm:      "y",
		Cancel:       "esc",
		NextCategory: "tab",
		PrevCategory: "shift+tab",
		NextFolder:   "f",
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Storage.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Storage.WriteTimeout
}

// GetLocation resolves the configured time zone. "Local" and "" mean the
// system zone.
func (c *Config) GetLocation() (*time.Location, error) {
	tz := strings.TrimSpace(c.Time.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

// GetDefaultCategory returns the category views start in.
func (c *Config) GetDefaultCategory() domain.Category {
	category, err := domain.ParseCategory(c.Display.DefaultCategory)
	if err != nil {
		return domain.CategoryAll
	}
	return category
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "storage filename cannot be empty"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	if _, err := c.GetLocation(); err != nil {
		return &ConfigError{Field: "time.timezone", Message: "unknown time zone " + c.Time.Timezone}
	}
	if c.Time.DateFormat == "" {
		return &ConfigError{Field: "time.date_format", Message: "date format cannot be empty"}
	}
	if c.Time.TimeFormat == "" {
		return &ConfigError{Field: "time.time_format", Message: "time format cannot be empty"}
	}

	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.MemoMaxLength < 0 {
		return &ConfigError{Field: "validation.memo_max_length", Message: "memo maximum length cannot be negative"}
	}
	if c.Validation.FolderNameMaxLength < 1 {
		return &ConfigError{Field: "validation.folder_name_max_length", Message: "folder name maximum length must be at least 1"}
	}

	if _, err := domain.ParseCategory(c.Display.DefaultCategory); err != nil {
		return &ConfigError{Field: "display.default_category", Message: err.Error()}
	}
	if c.Display.OverdueLimit < 0 {
		return &ConfigError{Field: "display.overdue_limit", Message: "overdue limit cannot be negative"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

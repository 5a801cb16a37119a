package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultConfigFileName is looked up inside the storage directory.
const DefaultConfigFileName = "config.toml"

// fileConfig is the on-disk layout. Durations are written as strings such
// as "10s" so the file stays hand-editable.
type fileConfig struct {
	Storage struct {
		Dir          string `toml:"dir"`
		Filename     string `toml:"filename"`
		QueryTimeout string `toml:"query_timeout"`
		WriteTimeout string `toml:"write_timeout"`
	} `toml:"storage"`
	Time struct {
		Timezone   string `toml:"timezone"`
		DateFormat string `toml:"date_format"`
		TimeFormat string `toml:"time_format"`
	} `toml:"time"`
	Validation struct {
		TitleMaxLength      int `toml:"title_max_length"`
		MemoMaxLength       int `toml:"memo_max_length"`
		FolderNameMaxLength int `toml:"folder_name_max_length"`
	} `toml:"validation"`
	Display struct {
		DefaultCategory string `toml:"default_category"`
		OverdueLimit    int    `toml:"overdue_limit"`
		ShowMemo        bool   `toml:"show_memo"`
	} `toml:"display"`
	Application struct {
		Timeout string `toml:"timeout"`
		Verbose bool   `toml:"verbose"`
		Seed    bool   `toml:"seed"`
	} `toml:"application"`
	Keys struct {
		Quit         string `toml:"quit"`
		Add          string `toml:"add"`
		Up           string `toml:"up"`
		Down         string `toml:"down"`
		Toggle       string `toml:"toggle"`
		Delete       string `toml:"delete"`
		Detail       string `toml:"detail"`
		Confirm      string `toml:"confirm"`
		Cancel       string `toml:"cancel"`
		NextCategory string `toml:"next_category"`
		PrevCategory string `toml:"prev_category"`
		NextFolder   string `toml:"next_folder"`
	} `toml:"keys"`
}

func toFileConfig(c *Config) fileConfig {
	var f fileConfig
	f.Storage.Dir = c.Storage.Dir
	f.Storage.Filename = c.Storage.Filename
	f.Storage.QueryTimeout = c.Storage.QueryTimeout.String()
	f.Storage.WriteTimeout = c.Storage.WriteTimeout.String()
	f.Time.Timezone = c.Time.Timezone
	f.Time.DateFormat = c.Time.DateFormat
	f.Time.TimeFormat = c.Time.TimeFormat
	f.Validation.TitleMaxLength = c.Validation.TitleMaxLength
	f.Validation.MemoMaxLength = c.Validation.MemoMaxLength
	f.Validation.FolderNameMaxLength = c.Validation.FolderNameMaxLength
	f.Display.DefaultCategory = c.Display.DefaultCategory
	f.Display.OverdueLimit = c.Display.OverdueLimit
	f.Display.ShowMemo = c.Display.ShowMemo
	f.Application.Timeout = c.Application.Timeout.String()
	f.Application.Verbose = c.Application.Verbose
	f.Application.Seed = c.Application.Seed
	f.Keys.Quit = c.Keys.Quit
	f.Keys.Add = c.Keys.Add
	f.Keys.Up = c.Keys.Up
	f.Keys.Down = c.Keys.Down
	f.Keys.Toggle = c.Keys.Toggle
	f.Keys.Delete = c.Keys.Delete
	f.Keys.Detail = c.Keys.Detail
	f.Keys.Confirm = c.Keys.Confirm
	f.Keys.Cancel = c.Keys.Cancel
	f.Keys.NextCategory = c.Keys.NextCategory
	f.Keys.PrevCategory = c.Keys.PrevCategory
	f.Keys.NextFolder = c.Keys.NextFolder
	return f
}

// WriteFile stores cfg as TOML at path, creating parent directories.
func WriteFile(path string, cfg *Config) error {
	data, err := toml.Marshal(toFileConfig(cfg))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// EnsureFile writes cfg to path unless a file already exists there. It
// reports whether the file was created.
func EnsureFile(path string, cfg *Config) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if err := WriteFile(path, cfg); err != nil {
		return false, err
	}
	return true, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. TODO_STORAGE_DIR.
const EnvPrefix = "TODO"

// Loader handles loading configuration from multiple sources
type Loader struct {
	configFile string
	createFile bool
}

// NewLoader creates a loader that reads config.toml from the storage
// directory and writes it on first use.
func NewLoader() *Loader {
	return &Loader{createFile: true}
}

// WithConfigFile reads the given file instead of the default location.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// WithoutFileCreation leaves a missing config file missing.
func (l *Loader) WithoutFileCreation() *Loader {
	l.createFile = false
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the config file
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	defaults := NewConfig()

	v := viper.New()
	setDefaults(v, defaults)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := l.configFile
	if path == "" {
		path = filepath.Join(v.GetString("storage.dir"), DefaultConfigFileName)
	}

	if l.createFile {
		if _, err := EnsureFile(path, defaults); err != nil {
			return nil, fmt.Errorf("failed to create config file %s: %w", path, err)
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		if l.createFile || !isMissingFile(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.apply(config)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	StorageDir      *string
	StorageFilename *string
	Timezone        *string
	DefaultCategory *string
	Timeout         *time.Duration
	Verbose         *bool
	Seed            *bool
}

func (o *ConfigOverrides) apply(config *Config) {
	if o.StorageDir != nil {
		config.Storage.Dir = *o.StorageDir
	}
	if o.StorageFilename != nil {
		config.Storage.Filename = *o.StorageFilename
	}
	if o.Timezone != nil {
		config.Time.Timezone = *o.Timezone
	}
	if o.DefaultCategory != nil {
		config.Display.DefaultCategory = *o.DefaultCategory
	}
	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
	if o.Seed != nil {
		config.Application.Seed = *o.Seed
	}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.dir", d.Storage.Dir)
	v.SetDefault("storage.filename", d.Storage.Filename)
	v.SetDefault("storage.query_timeout", d.Storage.QueryTimeout)
	v.SetDefault("storage.write_timeout", d.Storage.WriteTimeout)

	v.SetDefault("time.timezone", d.Time.Timezone)
	v.SetDefault("time.date_format", d.Time.DateFormat)
	v.SetDefault("time.time_format", d.Time.TimeFormat)

	v.SetDefault("validation.title_max_length", d.Validation.TitleMaxLength)
	v.SetDefault("validation.memo_max_length", d.Validation.MemoMaxLength)
	v.SetDefault("validation.folder_name_max_length", d.Validation.FolderNameMaxLength)

	v.SetDefault("display.default_category", d.Display.DefaultCategory)
	v.SetDefault("display.overdue_limit", d.Display.OverdueLimit)
	v.SetDefault("display.show_memo", d.Display.ShowMemo)

	v.SetDefault("application.timeout", d.Application.Timeout)
	v.SetDefault("application.verbose", d.Application.Verbose)
	v.SetDefault("application.seed", d.Application.Seed)

	v.SetDefault("keys.quit", d.Keys.Quit)
	v.SetDefault("keys.add", d.Keys.Add)
	v.SetDefault("keys.up", d.Keys.Up)
	v.SetDefault("keys.down", d.Keys.Down)
	v.SetDefault("keys.toggle", d.Keys.Toggle)
	v.SetDefault("keys.delete", d.Keys.Delete)
	v.SetDefault("keys.detail", d.Keys.Detail)
	v.SetDefault("keys.confirm", d.Keys.Confirm)
	v.SetDefault("keys.cancel", d.Keys.Cancel)
	v.SetDefault("keys.next_category", d.Keys.NextCategory)
	v.SetDefault("keys.prev_category", d.Keys.PrevCategory)
	v.SetDefault("keys.next_folder", d.Keys.NextFolder)
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

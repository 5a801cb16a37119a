package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"todo-manager/internal/config"
	"todo-manager/internal/domain"
	"todo-manager/internal/errors"
	"todo-manager/internal/logging"
	"todo-manager/internal/repository/sqlite"
	"todo-manager/internal/validation"
)

// Document keys.
const (
	TasksKey   = "todos"
	FoldersKey = "folders"
)

// Source tells where a loaded collection came from.
type Source int

const (
	SourceStored Source = iota
	SourceSeed
)

func (s Source) String() string {
	if s == SourceSeed {
		return "seed"
	}
	return "stored"
}

// DocumentStore persists the task and folder collections as JSON documents.
type DocumentStore struct {
	repo         sqlite.Repository
	mapper       *Mapper
	schemas      *SchemaValidator
	tasks        *validation.TaskValidator
	folders      *validation.FolderValidator
	logger       logging.Logger
	queryTimeout time.Duration
	writeTimeout time.Duration
}

// Option configures a DocumentStore.
type Option func(*DocumentStore)

// WithLogger sets the logger used for fallbacks and write failures.
func WithLogger(logger logging.Logger) Option {
	return func(s *DocumentStore) { s.logger = logger }
}

// WithTimeouts bounds each read and write. Zero disables the bound.
func WithTimeouts(query, write time.Duration) Option {
	return func(s *DocumentStore) {
		s.queryTimeout = query
		s.writeTimeout = write
	}
}

// WithLocation sets the zone used for timestamps stored without an offset.
func WithLocation(loc *time.Location) Option {
	return func(s *DocumentStore) { s.mapper = NewMapper(loc) }
}

// WithLimits checks loaded and imported records against cfg's validation limits.
func WithLimits(cfg *config.Config) Option {
	return func(s *DocumentStore) {
		s.tasks = validation.NewTaskValidatorWithConfig(cfg)
		s.folders = validation.NewFolderValidatorWithConfig(cfg)
	}
}

// NewDocumentStore creates a DocumentStore over repo.
func NewDocumentStore(repo sqlite.Repository, opts ...Option) (*DocumentStore, error) {
	schemas, err := NewSchemaValidator()
	if err != nil {
		return nil, err
	}

	s := &DocumentStore{
		repo:    repo,
		mapper:  NewMapper(time.Local),
		schemas: schemas,
		tasks:   validation.NewTaskValidator(),
		folders: validation.NewFolderValidator(),
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// LoadTasks returns the stored tasks, or seed when the document is missing
// or unusable.
func (s *DocumentStore) LoadTasks(ctx context.Context, seed []domain.Task) ([]domain.Task, Source) {
	var records []TaskRecord
	if err := s.load(ctx, TasksKey, &records); err != nil {
		s.fallback(ctx, TasksKey, err)
		return seed, SourceSeed
	}

	tasks, err := s.decodeTasks(records)
	if err != nil {
		s.fallback(ctx, TasksKey, err)
		return seed, SourceSeed
	}

	s.logger.Debugf(ctx, "loaded %d tasks", len(tasks))
	return tasks, SourceStored
}

// LoadFolders returns the stored folders, or seed when the document is
// missing or unusable.
func (s *DocumentStore) LoadFolders(ctx context.Context, seed []domain.Folder) ([]domain.Folder, Source) {
	var records []FolderRecord
	if err := s.load(ctx, FoldersKey, &records); err != nil {
		s.fallback(ctx, FoldersKey, err)
		return seed, SourceSeed
	}

	folders, err := s.decodeFolders(records)
	if err != nil {
		s.fallback(ctx, FoldersKey, err)
		return seed, SourceSeed
	}

	s.logger.Debugf(ctx, "loaded %d folders", len(folders))
	return folders, SourceStored
}

// decodeTasks maps records and rejects rule violations and repeated ids.
func (s *DocumentStore) decodeTasks(records []TaskRecord) ([]domain.Task, error) {
	tasks, err := s.mapper.TasksFromRecords(records)
	if err != nil {
		return nil, errors.NewCorruptDataError(TasksKey, err)
	}

	ids := make([]string, len(tasks))
	for i, task := range tasks {
		if err := s.tasks.ValidateTask(task); err != nil {
			return nil, errors.NewCorruptDataError(TasksKey, fmt.Errorf("task %s: %w", task.ID, err))
		}
		ids[i] = task.ID
	}
	if err := uniqueIDs("task", ids); err != nil {
		return nil, errors.NewCorruptDataError(TasksKey, err)
	}
	return tasks, nil
}

// decodeFolders maps records and rejects rule violations and repeated ids.
func (s *DocumentStore) decodeFolders(records []FolderRecord) ([]domain.Folder, error) {
	folders := s.mapper.FoldersFromRecords(records)

	ids := make([]string, len(folders))
	for i, folder := range folders {
		if err := s.folders.ValidateFolder(folder); err != nil {
			return nil, errors.NewCorruptDataError(FoldersKey, fmt.Errorf("folder %s: %w", folder.ID, err))
		}
		ids[i] = folder.ID
	}
	if err := uniqueIDs("folder", ids); err != nil {
		return nil, errors.NewCorruptDataError(FoldersKey, err)
	}
	return folders, nil
}

func uniqueIDs(resource string, ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return errors.NewInvalidInputError("id", id, "duplicate "+resource+" id")
		}
		seen[id] = true
	}
	return nil
}

// SaveTasks replaces the stored task collection.
func (s *DocumentStore) SaveTasks(ctx context.Context, tasks []domain.Task) error {
	return s.save(ctx, TasksKey, s.mapper.TasksToRecords(tasks))
}

// SaveFolders replaces the stored folder collection.
func (s *DocumentStore) SaveFolders(ctx context.Context, folders []domain.Folder) error {
	return s.save(ctx, FoldersKey, s.mapper.FoldersToRecords(folders))
}

// Export returns the raw JSON stored under key.
func (s *DocumentStore) Export(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	doc, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return []byte(doc.Value), nil
}

// Import checks raw the way a load would and stores it verbatim. Only the
// todos and folders documents are accepted.
func (s *DocumentStore) Import(ctx context.Context, key string, raw []byte) error {
	if err := s.schemas.Validate(key, raw); err != nil {
		return errors.NewCorruptDataError(key, err)
	}

	switch key {
	case TasksKey:
		var records []TaskRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return errors.NewCorruptDataError(key, err)
		}
		if _, err := s.decodeTasks(records); err != nil {
			return err
		}
	case FoldersKey:
		var records []FolderRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return errors.NewCorruptDataError(key, err)
		}
		if _, err := s.decodeFolders(records); err != nil {
			return err
		}
	}

	ctx, cancel := withTimeout(ctx, s.writeTimeout)
	defer cancel()

	if err := s.repo.Put(ctx, key, string(raw)); err != nil {
		return s.wrapWriteError(ctx, key, err)
	}
	return nil
}

// Documents lists the keys that currently hold a stored document.
func (s *DocumentStore) Documents(ctx context.Context) ([]string, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	return s.repo.Keys(ctx)
}

// Reset removes the stored task and folder documents, so the next load starts
// from the seed again. Keys that were never written are skipped.
func (s *DocumentStore) Reset(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.writeTimeout)
	defer cancel()

	for _, key := range []string{TasksKey, FoldersKey} {
		err := s.repo.Delete(ctx, key)
		if err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return s.wrapWriteError(ctx, key, err)
		}
	}
	s.logger.Debugf(ctx, "removed stored documents")
	return nil
}

func (s *DocumentStore) load(ctx context.Context, key string, into interface{}) error {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	doc, err := s.repo.Get(ctx, key)
	if err != nil {
		return err
	}

	raw := []byte(doc.Value)
	if err := s.schemas.Validate(key, raw); err != nil {
		return errors.NewCorruptDataError(key, err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return errors.NewCorruptDataError(key, err)
	}
	return nil
}

func (s *DocumentStore) save(ctx context.Context, key string, records interface{}) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return errors.NewStorageError("encode "+key, err)
	}

	ctx, cancel := withTimeout(ctx, s.writeTimeout)
	defer cancel()

	if err := s.repo.Put(ctx, key, string(raw)); err != nil {
		return s.wrapWriteError(ctx, key, err)
	}
	return nil
}

func (s *DocumentStore) wrapWriteError(ctx context.Context, key string, err error) error {
	s.logger.Errorf(ctx, "saving %s failed: %v", key, err)
	if errors.IsErrorType(err, errors.ErrorTypeStorage) {
		return err
	}
	return errors.NewStorageError("save "+key, err)
}

func (s *DocumentStore) fallback(ctx context.Context, key string, err error) {
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		s.logger.Debugf(ctx, "no %s document stored, using seed data", key)
		return
	}
	s.logger.Debugf(ctx, "%s document unusable, using seed data: %v", key, err)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"todo-manager/internal/clock"
	"todo-manager/internal/config"
	"todo-manager/internal/domain"
	"todo-manager/internal/logging"
	"todo-manager/internal/services"
	"todo-manager/internal/storage"
	"todo-manager/internal/validation"
)

// DocumentStore is the persistence capability the store needs.
type DocumentStore interface {
	LoadTasks(ctx context.Context, seed []domain.Task) ([]domain.Task, storage.Source)
	SaveTasks(ctx context.Context, tasks []domain.Task) error
	LoadFolders(ctx context.Context, seed []domain.Folder) ([]domain.Folder, storage.Source)
	SaveFolders(ctx context.Context, folders []domain.Folder) error
}

// API defines every operation the presentation layer performs on tasks and
// folders.
type API interface {
	// Load replaces the in-memory collections with the stored ones.
	Load(ctx context.Context) error

	// Task commands
	AddTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	EditTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ToggleTask(ctx context.Context, id string) (*domain.Task, error)

	// Folder commands
	AddFolder(ctx context.Context, input domain.FolderInput) (*domain.Folder, error)
	EditFolder(ctx context.Context, id string, patch domain.FolderPatch) (*domain.Folder, error)
	DeleteFolder(ctx context.Context, id string) (int, error)

	// Snapshots
	Tasks() []domain.Task
	Folders() []domain.Folder
	Task(id string) (*domain.Task, error)
	Folder(id string) (*domain.Folder, error)
	ResolveTaskID(prefix string) (string, error)
	ResolveFolderID(prefix string) (string, error)

	// Derived views
	View(category domain.Category, folderID *string) []domain.Task
	Counts() services.Counts
	Dashboard() services.Dashboard

	// Selection state of the views
	ActiveCategory() domain.Category
	SetActiveCategory(category domain.Category)
	ActiveFolder() *string
	SetActiveFolder(folderID *string) error
	ActiveView() []domain.Task

	Now() time.Time
}

type apiImpl struct {
	mu sync.RWMutex

	docs            DocumentStore
	clock           clock.Clock
	logger          logging.Logger
	taskValidator   *validation.TaskValidator
	folderValidator *validation.FolderValidator
	newID           func() string
	seed            bool

	tasks       []domain.Task
	folders     []domain.Folder
	folderIndex map[string]int

	activeCategory domain.Category
	activeFolder   *string
}

// Option configures the store built by New.
type Option func(*apiImpl)

// WithLogger sets the logger mutations are reported to.
func WithLogger(logger logging.Logger) Option {
	return func(a *apiImpl) { a.logger = logger }
}

// WithConfig applies validation limits, the starting category and the seed
// switch from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(a *apiImpl) {
		a.taskValidator = validation.NewTaskValidatorWithConfig(cfg)
		a.folderValidator = validation.NewFolderValidatorWithConfig(cfg)
		a.activeCategory = cfg.GetDefaultCategory()
		a.seed = cfg.Application.Seed
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(a *apiImpl) { a.newID = newID }
}

// WithoutSeed starts from empty collections when nothing is stored.
func WithoutSeed() Option {
	return func(a *apiImpl) { a.seed = false }
}

// New creates a store over docs. Call Load before use to read the stored
// collections; until then the store is empty.
func New(docs DocumentStore, clk clock.Clock, opts ...Option) API {
	a := &apiImpl{
		docs:            docs,
		clock:           clk,
		logger:          logging.Nop(),
		taskValidator:   validation.NewTaskValidator(),
		folderValidator: validation.NewFolderValidator(),
		newID:           uuid.NewString,
		seed:            true,
		folderIndex:     make(map[string]int),
		activeCategory:  domain.CategoryAll,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *apiImpl) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var seedFolders []domain.Folder
	var seedTasks []domain.Task
	if a.seed {
		seedFolders = storage.DefaultFolders()
		seedTasks = storage.SampleTasks(a.clock.Now())
	}

	folders, folderSource := a.docs.LoadFolders(ctx, seedFolders)
	tasks, taskSource := a.docs.LoadTasks(ctx, seedTasks)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.folders = append([]domain.Folder(nil), folders...)
	a.tasks = append([]domain.Task(nil), tasks...)
	a.reindexFolders()
	if orphaned := a.unfileOrphans(); orphaned > 0 {
		a.logger.Debugf(ctx, "unfiled %d tasks whose folder no longer exists", orphaned)
	}
	if a.activeFolder != nil {
		if _, ok := a.folderIndex[*a.activeFolder]; !ok {
			a.activeFolder = nil
		}
	}

	a.logger.Debugf(ctx, "loaded %d folders (%s) and %d tasks (%s)", len(a.folders), folderSource, len(a.tasks), taskSource)
	return nil
}

func (a *apiImpl) Now() time.Time {
	return a.clock.Now()
}

// reindexFolders rebuilds the id lookup table. Callers hold the write lock.
func (a *apiImpl) reindexFolders() {
	a.folderIndex = make(map[string]int, len(a.folders))
	for i, folder := range a.folders {
		a.folderIndex[folder.ID] = i
	}
}

// unfileOrphans clears folder references the index does not know. Callers
// hold the write lock.
func (a *apiImpl) unfileOrphans() int {
	n := 0
	for i, task := range a.tasks {
		if task.IsUnfiled() {
			continue
		}
		if _, ok := a.folderIndex[*task.FolderID]; !ok {
			a.tasks[i] = task.Apply(domain.TaskPatch{Unfile: true})
			n++
		}
	}
	return n
}

func (a *apiImpl) taskIndex(id string) int {
	for i, task := range a.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i, task := range tasks {
		out[i] = task.Clone()
	}
	return out
}

func cloneFolders(folders []domain.Folder) []domain.Folder {
	return append([]domain.Folder{}, folders...)
}

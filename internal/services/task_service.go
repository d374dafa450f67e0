// internal/services/task_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/models"
	"taskboard/internal/repositories"
)

// ErrSaveFailed wraps every persistence failure after a mutation. The
// in-memory collection keeps the mutation; nothing is rolled back.
var ErrSaveFailed = errors.New("failed to save tasks")

// TaskService defines the operations the presentation layers use.
type TaskService interface {
	Load(ctx context.Context) LoadResult
	Create(ctx context.Context, in models.TaskInsert) (*models.Task, error)
	Update(ctx context.Context, id string, upd models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id string) (bool, error)

	Get(id string) (*models.Task, bool)
	Tasks() []models.Task
	FilterByStatus(status models.TaskStatus) []models.Task
	SortByDueDate(tasks []models.Task, ascending bool) []models.Task
	View(status models.TaskStatus, ascending bool) []models.Task
	Completed(ascending bool) []models.Task
	Stats() models.TaskStats
}

// LoadOutcome tells an empty-by-design load apart from a failed one.
type LoadOutcome string

const (
	LoadOK          LoadOutcome = "ok"
	LoadEmpty       LoadOutcome = "empty"
	LoadCorrupt     LoadOutcome = "corrupt"
	LoadUnavailable LoadOutcome = "unavailable"
)

// LoadResult is what Load found. On LoadCorrupt and LoadUnavailable Err holds
// the cause and Tasks is empty.
type LoadResult struct {
	Tasks   []models.Task
	Outcome LoadOutcome
	Err     error
}

// TaskStore is the single owner of the task collection. Construct one per
// process with NewTaskStore, call Load, then share the pointer.
type TaskStore struct {
	repo  repositories.TaskRepository
	now   func() time.Time
	newID func() string

	mu    sync.RWMutex
	tasks []models.Task
}

var _ TaskService = (*TaskStore)(nil)

type Option func(*TaskStore)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *TaskStore) { s.newID = fn }
}

// NewTaskStore creates an empty store backed by repo.
func NewTaskStore(repo repositories.TaskRepository, opts ...Option) *TaskStore {
	s := &TaskStore{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
		tasks: []models.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one, sorted by
// due date. It never fails: unreadable or corrupt data leaves the store empty.
func (s *TaskStore) Load(ctx context.Context) LoadResult {
	res := LoadResult{Outcome: LoadOK}

	// held across the read so no mutation lands between read and replace
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.repo.LoadAll(ctx)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrSlotEmpty):
		res.Outcome = LoadEmpty
	case errors.Is(err, repositories.ErrCorruptData):
		res.Outcome, res.Err = LoadCorrupt, err
		log.Printf("[store][load][warn] slot=%s corrupt, starting empty: %v", s.repo.SlotName(), err)
	default:
		res.Outcome, res.Err = LoadUnavailable, err
		log.Printf("[store][load][warn] slot=%s unreadable, starting empty: %v", s.repo.SlotName(), err)
	}
	if err != nil {
		tasks = nil
	}

	sorted := SortByDueDate(tasks, true)
	s.tasks = sorted

	res.Tasks = slices.Clone(sorted)
	log.Printf("[store][load][ok] slot=%s outcome=%s count=%d", s.repo.SlotName(), res.Outcome, len(sorted))
	return res
}

// Create appends a new task and persists the collection. On a save failure
// the returned task is non-nil and stays in memory; err wraps ErrSaveFailed.
func (s *TaskStore) Create(ctx context.Context, in models.TaskInsert) (*models.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = models.StatusPending
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	task := models.Task{
		ID:          s.uniqueID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks = append(s.tasks, task)

	err := s.persist(ctx)
	return &task, err
}

// Update merges the non-nil fields of upd into the task. An unknown id is a
// no-op and returns (nil, nil).
func (s *TaskStore) Update(ctx context.Context, id string, upd models.TaskUpdate) (*models.Task, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, nil
	}

	t := s.tasks[idx]
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.DueDate != nil {
		t.DueDate = *upd.DueDate
	}

	// updated_at must move forward even if the clock did not
	ts := s.now()
	if !ts.After(t.UpdatedAt) {
		ts = t.UpdatedAt.Add(time.Nanosecond)
	}
	t.UpdatedAt = ts
	s.tasks[idx] = t

	err := s.persist(ctx)
	return &t, err
}

// Delete removes the task if present and persists the collection either way.
// removed reports whether id was in the collection.
func (s *TaskStore) Delete(ctx context.Context, id string) (removed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(id); idx >= 0 {
		s.tasks = slices.Delete(s.tasks, idx, idx+1)
		removed = true
	}
	return removed, s.persist(ctx)
}

// persist must be called with mu held.
func (s *TaskStore) persist(ctx context.Context) error {
	if err := s.repo.SaveAll(ctx, s.tasks); err != nil {
		log.Printf("[store][save][err] slot=%s count=%d: %v", s.repo.SlotName(), len(s.tasks), err)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}

func (s *TaskStore) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

func (s *TaskStore) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

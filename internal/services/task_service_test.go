package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
	"taskboard/internal/repositories"
)

// failingSlot wraps a slot and fails writes while broken is set.
type failingSlot struct {
	repositories.Slot
	broken bool
}

func (s *failingSlot) Write(ctx context.Context, data []byte) error {
	if s.broken {
		return errors.New("disk full")
	}
	return s.Slot.Write(ctx, data)
}

// stepClock advances by one second on every call.
func stepClock() func() time.Time {
	t := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

func newTestStore(t *testing.T, opts ...Option) (*TaskStore, repositories.Slot) {
	t.Helper()
	slot := repositories.NewFileSlot(t.TempDir(), repositories.DefaultSlotName)
	opts = append([]Option{WithClock(stepClock()), WithIDGenerator(sequentialIDs())}, opts...)
	store := NewTaskStore(repositories.NewTaskRepository(slot), opts...)
	return store, slot
}

func insert(title string, due models.Date) models.TaskInsert {
	return models.TaskInsert{Title: title, DueDate: due}
}

func reopen(slot repositories.Slot) *TaskStore {
	return NewTaskStore(repositories.NewTaskRepository(slot))
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestTaskStore_CreateThenLoad(t *testing.T) {
	store, slot := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, models.TaskInsert{
		Title:       "Write report",
		Description: "quarterly numbers",
		Status:      models.StatusInProgress,
		DueDate:     models.NewDate(2024, time.January, 10),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	res := reopen(slot).Load(ctx)
	require.Equal(t, LoadOK, res.Outcome)
	require.NoError(t, res.Err)
	require.Len(t, res.Tasks, 1)

	got := res.Tasks[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, "quarterly numbers", got.Description)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.True(t, got.DueDate.Equal(created.DueDate))
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
}

func TestTaskStore_CreateDefaultsToPending(t *testing.T) {
	store, _ := newTestStore(t)

	task, err := store.Create(context.Background(), insert("Call bank", models.NewDate(2024, 1, 5)))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, "", task.Description)
}

func TestTaskStore_CreateValidation(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Create(context.Background(), models.TaskInsert{Title: " "})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "due_date")
	assert.Empty(t, store.Tasks())
}

func TestTaskStore_CreateAssignsUniqueIDs(t *testing.T) {
	// the generator repeats itself; the store must skip ids already in use
	seq := []string{"dup", "dup", "", "other"}
	i := 0
	store, _ := newTestStore(t, WithIDGenerator(func() string {
		id := seq[i%len(seq)]
		i++
		return id
	}))
	ctx := context.Background()

	a, err := store.Create(ctx, insert("a", models.NewDate(2024, 1, 1)))
	require.NoError(t, err)
	b, err := store.Create(ctx, insert("b", models.NewDate(2024, 1, 1)))
	require.NoError(t, err)

	assert.Equal(t, "dup", a.ID)
	assert.Equal(t, "other", b.ID)
}

func TestTaskStore_UpdateStatusOnly(t *testing.T) {
	store, slot := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, models.TaskInsert{
		Title:       "Write report",
		Description: "draft",
		DueDate:     models.NewDate(2024, 1, 10),
	})
	require.NoError(t, err)

	done := models.StatusCompleted
	updated, err := store.Update(ctx, created.ID, models.TaskUpdate{Status: &done})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.True(t, created.DueDate.Equal(updated.DueDate))
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

	reloaded := reopen(slot).Load(ctx).Tasks
	require.Len(t, reloaded, 1)
	assert.Equal(t, models.StatusCompleted, reloaded[0].Status)
}

func TestTaskStore_UpdateWithFrozenClock(t *testing.T) {
	frozen := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	store, _ := newTestStore(t, WithClock(func() time.Time { return frozen }))
	ctx := context.Background()

	created, err := store.Create(ctx, insert("a", models.NewDate(2024, 1, 1)))
	require.NoError(t, err)

	title := "b"
	first, err := store.Update(ctx, created.ID, models.TaskUpdate{Title: &title})
	require.NoError(t, err)
	second, err := store.Update(ctx, created.ID, models.TaskUpdate{Title: &title})
	require.NoError(t, err)

	assert.True(t, first.UpdatedAt.After(created.UpdatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestTaskStore_EmptyUpdateTouchesTimestamp(t *testing.T) {
	store, slot := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, insert("a", models.NewDate(2024, 1, 1)))
	require.NoError(t, err)

	updated, err := store.Update(ctx, created.ID, models.TaskUpdate{})
	require.NoError(t, err)
	assert.Equal(t, created.Title, updated.Title)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	loaded := reopen(slot).Load(ctx).Tasks
	require.Len(t, loaded, 1)
	assert.True(t, loaded[0].UpdatedAt.Equal(updated.UpdatedAt))
}

func TestTaskStore_UpdateUnknownIsNoop(t *testing.T) {
	store, slot := newTestStore(t)
	ctx := context.Background()

	title := "ghost"
	updated, err := store.Update(ctx, "missing", models.TaskUpdate{Title: &title})
	assert.NoError(t, err)
	assert.Nil(t, updated)

	// nothing was persisted
	_, err = slot.Read(ctx)
	assert.ErrorIs(t, err, repositories.ErrSlotEmpty)
}

func TestTaskStore_UpdateValidation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	created, err := store.Create(ctx, insert("a", models.NewDate(2024, 1, 1)))
	require.NoError(t, err)

	empty := ""
	_, err = store.Update(ctx, created.ID, models.TaskUpdate{Title: &empty})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	got, ok := store.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "a", got.Title)
	assert.True(t, got.UpdatedAt.Equal(created.UpdatedAt))
}

func TestTaskStore_Delete(t *testing.T) {
	store, slot := newTestStore(t)
	ctx := context.Background()

	a, err := store.Create(ctx, insert("a", models.NewDate(2024, 1, 1)))
	require.NoError(t, err)
	b, err := store.Create(ctx, insert("b", models.NewDate(2024, 1, 2)))
	require.NoError(t, err)

	removed, err := store.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []string{b.ID}, ids(store.Tasks()))

	// repeat is a no-op
	removed, err = store.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, []string{b.ID}, ids(store.Tasks()))

	_, found := store.Get(a.ID)
	assert.False(t, found)
	assert.Equal(t, []string{b.ID}, ids(reopen(slot).Load(ctx).Tasks))
}

func TestTaskStore_LoadOutcomes(t *testing.T) {
	ctx := context.Background()

	t.Run("empty slot", func(t *testing.T) {
		store, _ := newTestStore(t)
		res := store.Load(ctx)
		assert.Equal(t, LoadEmpty, res.Outcome)
		assert.NoError(t, res.Err)
		assert.Empty(t, res.Tasks)
	})

	t.Run("corrupt slot", func(t *testing.T) {
		store, slot := newTestStore(t)
		require.NoError(t, slot.Write(ctx, []byte("not json")))

		res := store.Load(ctx)
		assert.Equal(t, LoadCorrupt, res.Outcome)
		assert.ErrorIs(t, res.Err, repositories.ErrCorruptData)
		assert.Empty(t, res.Tasks)
		assert.Empty(t, store.Tasks())
	})

	t.Run("unreadable slot", func(t *testing.T) {
		store := NewTaskStore(repositories.NewTaskRepository(brokenReadSlot{}))
		res := store.Load(ctx)
		assert.Equal(t, LoadUnavailable, res.Outcome)
		assert.Error(t, res.Err)
		assert.Empty(t, store.Tasks())
	})

	t.Run("load replaces previous state", func(t *testing.T) {
		store, slot := newTestStore(t)
		_, err := store.Create(ctx, insert("a", models.NewDate(2024, 1, 1)))
		require.NoError(t, err)
		require.NoError(t, slot.Write(ctx, []byte("{")))

		store.Load(ctx)
		assert.Empty(t, store.Tasks())
	})
}

type brokenReadSlot struct{}

func (brokenReadSlot) Name() string { return "broken" }

func (brokenReadSlot) Read(context.Context) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (brokenReadSlot) Write(context.Context, []byte) error {
	return errors.New("connection refused")
}

func TestTaskStore_LoadSortsByDueDate(t *testing.T) {
	store, slot := newTestStore(t)
	ctx := context.Background()

	a, _ := store.Create(ctx, insert("A", models.NewDate(2024, 1, 10)))
	b, _ := store.Create(ctx, insert("B", models.NewDate(2024, 1, 5)))
	c, _ := store.Create(ctx, insert("C", models.NewDate(2024, 1, 7)))

	// insertion order until reload
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids(store.Tasks()))

	res := reopen(slot).Load(ctx)
	assert.Equal(t, []string{b.ID, c.ID, a.ID}, ids(res.Tasks))
}

func TestTaskStore_SaveFailureKeepsMutation(t *testing.T) {
	slot := &failingSlot{Slot: repositories.NewFileSlot(t.TempDir(), "tasks_storage")}
	store := NewTaskStore(repositories.NewTaskRepository(slot), WithClock(stepClock()))
	ctx := context.Background()

	kept, err := store.Create(ctx, insert("kept", models.NewDate(2024, 1, 1)))
	require.NoError(t, err)

	slot.broken = true

	task, err := store.Create(ctx, insert("unsaved", models.NewDate(2024, 1, 2)))
	assert.ErrorIs(t, err, ErrSaveFailed)
	require.NotNil(t, task)
	_, inMemory := store.Get(task.ID)
	assert.True(t, inMemory)

	done := models.StatusCompleted
	updated, err := store.Update(ctx, kept.ID, models.TaskUpdate{Status: &done})
	assert.ErrorIs(t, err, ErrSaveFailed)
	require.NotNil(t, updated)
	assert.Equal(t, models.StatusCompleted, updated.Status)

	removed, err := store.Delete(ctx, kept.ID)
	assert.ErrorIs(t, err, ErrSaveFailed)
	assert.True(t, removed)
	assert.Equal(t, []string{task.ID}, ids(store.Tasks()))

	// the slot still holds the last good write
	persisted := reopen(slot).Load(ctx).Tasks
	assert.Equal(t, []string{kept.ID}, ids(persisted))
	assert.Equal(t, models.StatusPending, persisted[0].Status)
}

func TestTaskStore_TasksIsASnapshot(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	_, err := store.Create(ctx, insert("a", models.NewDate(2024, 1, 1)))
	require.NoError(t, err)

	snap := store.Tasks()
	snap[0].Title = "mutated"

	assert.Equal(t, "a", store.Tasks()[0].Title)
}

// gatedSlot blocks the first Read until release is closed.
type gatedSlot struct {
	repositories.Slot
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *gatedSlot) Read(ctx context.Context) ([]byte, error) {
	s.once.Do(func() {
		close(s.entered)
		<-s.release
	})
	return s.Slot.Read(ctx)
}

func TestTaskStore_LoadBlocksMutations(t *testing.T) {
	ctx := context.Background()
	slot := &gatedSlot{
		Slot:    repositories.NewFileSlot(t.TempDir(), repositories.DefaultSlotName),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	store := NewTaskStore(repositories.NewTaskRepository(slot), WithClock(stepClock()))

	loaded := make(chan LoadResult)
	go func() { loaded <- store.Load(ctx) }()
	<-slot.entered

	var created *models.Task
	createDone := make(chan error)
	go func() {
		var err error
		created, err = store.Create(ctx, insert("during reload", models.NewDate(2024, 1, 1)))
		createDone <- err
	}()

	select {
	case <-createDone:
		t.Fatal("Create finished while Load was reading the slot")
	case <-time.After(50 * time.Millisecond):
	}

	close(slot.release)
	assert.Equal(t, LoadEmpty, (<-loaded).Outcome)
	require.NoError(t, <-createDone)

	_, found := store.Get(created.ID)
	assert.True(t, found)
	assert.Equal(t, []string{created.ID}, ids(reopen(slot.Slot).Load(ctx).Tasks))
}

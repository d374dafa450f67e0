package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
)

func sampleTask(id, title string, due models.Date) models.Task {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return models.Task{
		ID:        id,
		Title:     title,
		Status:    models.StatusPending,
		DueDate:   due,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestTaskRepository_RoundTrip(t *testing.T) {
	slot := NewFileSlot(t.TempDir(), "tasks_storage")
	repo := NewTaskRepository(slot)
	ctx := context.Background()

	in := []models.Task{
		sampleTask("a", "Write report", models.NewDate(2024, time.January, 10)),
		sampleTask("b", "Call bank", models.NewDate(2024, time.January, 5)),
	}
	in[1].Description = "before noon"
	in[1].Status = models.StatusInProgress

	require.NoError(t, repo.SaveAll(ctx, in))

	out, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
		assert.Equal(t, in[i].Title, out[i].Title)
		assert.Equal(t, in[i].Description, out[i].Description)
		assert.Equal(t, in[i].Status, out[i].Status)
		assert.True(t, in[i].DueDate.Equal(out[i].DueDate))
		assert.True(t, in[i].CreatedAt.Equal(out[i].CreatedAt))
		assert.True(t, in[i].UpdatedAt.Equal(out[i].UpdatedAt))
	}
	assert.Equal(t, "tasks_storage", repo.SlotName())
}

func TestTaskRepository_StoredLayout(t *testing.T) {
	slot := NewFileSlot(t.TempDir(), "tasks_storage")
	repo := NewTaskRepository(slot)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, []models.Task{
		sampleTask("a", "Write report", models.NewDate(2024, time.January, 10)),
	}))

	raw, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": "a",
		"title": "Write report",
		"description": "",
		"status": "Pending",
		"due_date": "2024-01-10",
		"created_at": "2024-01-01T09:00:00Z",
		"updated_at": "2024-01-01T09:00:00Z"
	}]`, string(raw))
}

func TestTaskRepository_SaveNilWritesEmptyArray(t *testing.T) {
	slot := NewFileSlot(t.TempDir(), "tasks_storage")
	require.NoError(t, NewTaskRepository(slot).SaveAll(context.Background(), nil))

	raw, err := slot.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestTaskRepository_LoadEmptySlot(t *testing.T) {
	repo := NewTaskRepository(NewFileSlot(t.TempDir(), "tasks_storage"))
	_, err := repo.LoadAll(context.Background())
	assert.ErrorIs(t, err, ErrSlotEmpty)
}

func TestTaskRepository_LoadCorrupt(t *testing.T) {
	cases := map[string]string{
		"not json":       `{{{`,
		"not an array":   `{"id":"a"}`,
		"bad status":     `[{"id":"a","title":"x","status":"done","due_date":"2024-01-01","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}]`,
		"empty title":    `[{"id":"a","title":"","status":"Pending","due_date":"2024-01-01","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}]`,
		"bad due date":   `[{"id":"a","title":"x","status":"Pending","due_date":"soon","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}]`,
		"duplicate ids":  `[{"id":"a","title":"x","status":"Pending","due_date":"2024-01-01","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"},{"id":"a","title":"y","status":"Pending","due_date":"2024-01-01","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}]`,
		"updated before": `[{"id":"a","title":"x","status":"Pending","due_date":"2024-01-01","created_at":"2024-01-02T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			slot := NewFileSlot(t.TempDir(), "tasks_storage")
			require.NoError(t, slot.Write(context.Background(), []byte(payload)))

			_, err := NewTaskRepository(slot).LoadAll(context.Background())
			assert.ErrorIs(t, err, ErrCorruptData)
		})
	}
}

func TestTaskRepository_LoadBlankPayload(t *testing.T) {
	for _, payload := range []string{"", "  \n", "null", "[]"} {
		slot := NewFileSlot(t.TempDir(), "tasks_storage")
		require.NoError(t, slot.Write(context.Background(), []byte(payload)))

		tasks, err := NewTaskRepository(slot).LoadAll(context.Background())
		require.NoError(t, err, "payload %q", payload)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	}
}

package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"taskboard/internal/models"
)

// TaskRepository persists the whole task collection as one JSON array in a slot.
type TaskRepository interface {
	LoadAll(ctx context.Context) ([]models.Task, error)
	SaveAll(ctx context.Context, tasks []models.Task) error
	SlotName() string
}

type taskRepository struct {
	slot Slot
}

func NewTaskRepository(slot Slot) TaskRepository {
	return &taskRepository{slot: slot}
}

func (r *taskRepository) SlotName() string { return r.slot.Name() }

// LoadAll returns ErrSlotEmpty if nothing was saved yet and an error wrapping
// ErrCorruptData if the payload is not a valid task collection.
func (r *taskRepository) LoadAll(ctx context.Context) ([]models.Task, error) {
	data, err := r.slot.Read(ctx)
	if err != nil {
		return nil, err
	}
	return decodeTasks(data)
}

func (r *taskRepository) SaveAll(ctx context.Context, tasks []models.Task) error {
	data, err := encodeTasks(tasks)
	if err != nil {
		return err
	}
	return r.slot.Write(ctx, data)
}

func encodeTasks(tasks []models.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

func decodeTasks(data []byte) ([]models.Task, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []models.Task{}, nil
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%w: task #%d: %v", ErrCorruptData, i, err)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrCorruptData, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

package repositories

import (
	"context"
	"errors"
)

// DefaultSlotName is the slot the task collection lives in unless configured otherwise.
const DefaultSlotName = "tasks_storage"

var (
	// ErrSlotEmpty is returned by Slot.Read when nothing has been written yet.
	ErrSlotEmpty = errors.New("storage slot is empty")
	// ErrCorruptData is returned when a slot payload cannot be turned back into tasks.
	ErrCorruptData = errors.New("stored tasks are corrupt")
)

// Slot is a single named durable location holding one payload. Write replaces
// the whole payload; readers never observe a partial write.
type Slot interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

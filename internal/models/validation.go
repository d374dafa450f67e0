package models

import (
	"sort"
	"strings"
)

// ValidationError maps a field name to a user-facing message.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Validate checks a new task the way the task form does. Status may be empty
// and is defaulted to Pending by the store.
func (in TaskInsert) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(in.Title) == "" {
		verr.add("title", "Title is required")
	}
	if in.DueDate.IsZero() {
		verr.add("due_date", "Due date is required")
	}
	if in.Status != "" && !in.Status.Valid() {
		verr.add("status", "Status must be one of Pending, In Progress, Completed")
	}
	return verr.orNil()
}

// Validate checks the fields that are present in the update.
func (u TaskUpdate) Validate() error {
	verr := &ValidationError{}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		verr.add("title", "Title is required")
	}
	if u.DueDate != nil && u.DueDate.IsZero() {
		verr.add("due_date", "Due date is required")
	}
	if u.Status != nil && !u.Status.Valid() {
		verr.add("status", "Status must be one of Pending, In Progress, Completed")
	}
	return verr.orNil()
}

// Validate checks a stored task against the collection invariants.
func (t Task) Validate() error {
	verr := &ValidationError{}
	if t.ID == "" {
		verr.add("id", "id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		verr.add("title", "Title is required")
	}
	if !t.Status.Valid() {
		verr.add("status", "unknown status "+string(t.Status))
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		verr.add("updated_at", "updated_at precedes created_at")
	}
	return verr.orNil()
}

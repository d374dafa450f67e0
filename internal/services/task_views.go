package services

import (
	"slices"

	"taskboard/internal/models"
)

// Tasks returns a snapshot of the collection in its current order.
func (s *TaskStore) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

func (s *TaskStore) Get(id string) (*models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, false
	}
	t := s.tasks[idx]
	return &t, true
}

// FilterByStatus keeps the relative order of the collection. StatusAll
// returns everything.
func (s *TaskStore) FilterByStatus(status models.TaskStatus) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterByStatus(s.tasks, status)
}

func (s *TaskStore) SortByDueDate(tasks []models.Task, ascending bool) []models.Task {
	return SortByDueDate(tasks, ascending)
}

// View is the list page: filter by status, then sort by due date.
func (s *TaskStore) View(status models.TaskStatus, ascending bool) []models.Task {
	return SortByDueDate(s.FilterByStatus(status), ascending)
}

// Completed is the completed-tasks page.
func (s *TaskStore) Completed(ascending bool) []models.Task {
	return s.View(models.StatusCompleted, ascending)
}

func (s *TaskStore) Stats() models.TaskStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CountByStatus(s.tasks)
}

// SortByDueDate returns a new slice ordered by due date. Ties keep their
// input order in both directions.
func SortByDueDate(tasks []models.Task, ascending bool) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	slices.SortStableFunc(out, func(a, b models.Task) int {
		if ascending {
			return a.DueDate.Compare(b.DueDate)
		}
		return b.DueDate.Compare(a.DueDate)
	})
	return out
}

// CountByStatus aggregates per-status counts.
func CountByStatus(tasks []models.Task) models.TaskStats {
	st := models.TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.StatusPending:
			st.Pending++
		case models.StatusInProgress:
			st.InProgress++
		case models.StatusCompleted:
			st.Completed++
		}
	}
	return st
}

func filterByStatus(tasks []models.Task, status models.TaskStatus) []models.Task {
	if status == models.StatusAll {
		return slices.Clone(tasks)
	}
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

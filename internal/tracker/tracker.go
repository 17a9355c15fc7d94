// Package tracker implements the task operations over an injected store.
// Every operation is a full load-mutate-save cycle.
package tracker

import (
	"fmt"

	"github.com/taskcli/taskcli/internal/store"
	"github.com/taskcli/taskcli/internal/task"
)

// Tracker runs task operations against a store.
type Tracker struct {
	store store.Store
	now   func() task.Timestamp
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithNow overrides the clock. Tests use this for deterministic timestamps.
func WithNow(now func() task.Timestamp) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// New returns a Tracker over the given store.
func New(s store.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store: s,
		now:   task.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Add creates a new task with the given description. The id is one more
// than the highest existing id, or 1 for an empty store.
func (tr *Tracker) Add(description string) (task.Task, error) {
	tasks, err := tr.store.Load()
	if err != nil {
		return task.Task{}, fmt.Errorf("loading tasks: %w", err)
	}

	now := tr.now()
	newTask := task.Task{
		ID:          task.NextID(tasks),
		Description: description,
		Status:      task.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	tasks = append(tasks, newTask)

	if err := tr.store.Save(tasks); err != nil {
		return task.Task{}, fmt.Errorf("saving tasks: %w", err)
	}
	return newTask, nil
}

// Update overwrites the description of the task with the given id and
// refreshes its updatedAt timestamp.
func (tr *Tracker) Update(id int, description string) (task.Task, error) {
	return tr.mutate(id, func(t *task.Task) {
		t.Description = description
	})
}

// Mark sets the status of the task with the given id. Only the two explicit
// mark targets are accepted; no transition ordering is enforced, so any
// accepted status may be set from any prior state.
func (tr *Tracker) Mark(id int, status task.Status) (task.Task, error) {
	if status != task.StatusInProgress && status != task.StatusDone {
		return task.Task{}, fmt.Errorf("cannot mark task as %q: %w", status, ErrInvalidStatus)
	}
	return tr.mutate(id, func(t *task.Task) {
		t.Status = status
	})
}

// Delete removes the task with the given id. The store is saved only when a
// removal actually occurred.
func (tr *Tracker) Delete(id int) error {
	tasks, err := tr.store.Load()
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}

	remaining := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == len(tasks) {
		return &NotFoundError{ID: id}
	}

	if err := tr.store.Save(remaining); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

// List returns tasks matching the status filter, ascending by id. An empty
// filter returns every task.
func (tr *Tracker) List(filter task.Status) ([]task.Task, error) {
	tasks, err := tr.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	tasks = task.FilterByStatus(tasks, filter)
	task.SortByID(tasks)
	return tasks, nil
}

// mutate applies fn to the task with the given id, refreshes updatedAt, and
// saves the full list.
func (tr *Tracker) mutate(id int, fn func(*task.Task)) (task.Task, error) {
	tasks, err := tr.store.Load()
	if err != nil {
		return task.Task{}, fmt.Errorf("loading tasks: %w", err)
	}

	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		fn(&tasks[i])
		tasks[i].UpdatedAt = tr.now()
		if err := tr.store.Save(tasks); err != nil {
			return task.Task{}, fmt.Errorf("saving tasks: %w", err)
		}
		return tasks[i], nil
	}
	return task.Task{}, &NotFoundError{ID: id}
}

package store

import "github.com/taskcli/taskcli/internal/task"

// MemStore keeps the task list in memory. It substitutes for FileStore in
// tests.
type MemStore struct {
	tasks []task.Task

	// LoadErr and SaveErr, when set, are returned by the corresponding
	// method to exercise error paths.
	LoadErr error
	SaveErr error
}

// NewMemStore returns a store seeded with the given tasks.
func NewMemStore(seed ...task.Task) *MemStore {
	m := &MemStore{}
	m.tasks = append(m.tasks, seed...)
	return m
}

// Load returns a copy of the stored task list.
func (m *MemStore) Load() ([]task.Task, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	tasks := make([]task.Task, len(m.tasks))
	copy(tasks, m.tasks)
	return tasks, nil
}

// Save replaces the stored task list with a copy of tasks.
func (m *MemStore) Save(tasks []task.Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.tasks = make([]task.Task, len(tasks))
	copy(m.tasks, tasks)
	return nil
}

// Tasks returns the stored task list without copying. Test helper.
func (m *MemStore) Tasks() []task.Task {
	return m.tasks
}

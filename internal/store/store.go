// Package store is the persistence boundary for the task list.
package store

import "github.com/taskcli/taskcli/internal/task"

// Store loads and saves the full task list. Every mutation goes through a
// whole load-mutate-save cycle, so the persisted snapshot is always complete
// between operations. There is no locking against concurrent invocations of
// the tool: the last writer wins.
type Store interface {
	Load() ([]task.Task, error)
	Save(tasks []task.Task) error
}

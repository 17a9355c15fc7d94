package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/taskcli/taskcli/internal/task"
)

// FileStore persists the task list as a JSON array in a single file.
//
// Load is deliberately tolerant: a missing file is an empty task list, and a
// corrupt file degrades to an empty task list with a diagnostic instead of
// blocking further use of the tool.
type FileStore struct {
	path   string
	logger *log.Logger
}

// NewFileStore returns a store backed by the file at path. Diagnostics about
// unreadable or malformed content go to logger.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the task list from disk. A missing file yields an empty list.
// Unreadable or undecodable content yields an empty list plus a warning.
// Entries that decode but fail validation are dropped individually with a
// warning rather than failing the whole load.
func (s *FileStore) Load() ([]task.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		s.logger.Warnf("could not read tasks from %s: %v; starting with an empty task list", s.path, err)
		return nil, nil
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.logger.Warnf("could not decode JSON from %s, the file might be corrupted; starting with an empty task list", s.path)
		return nil, nil
	}

	valid := tasks[:0]
	for i := range tasks {
		if err := tasks[i].Validate(); err != nil {
			s.logger.Warnf("dropping malformed task entry %d in %s: %v", i, s.path, err)
			continue
		}
		valid = append(valid, tasks[i])
	}
	return valid, nil
}

// Save writes the full task list, replacing the previous snapshot. The new
// content is written to a temporary file in the same directory and renamed
// into place so a failed write never truncates the existing snapshot.
func (s *FileStore) Save(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write task file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write task file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}

package store

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/taskcli/taskcli/internal/task"
)

func newTestStore(t *testing.T) (*FileStore, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "tasks.json")
	return NewFileStore(path, log.New(&buf)), &buf
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	st, buf := newTestStore(t)

	tasks, err := st.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty task list, got %d tasks", len(tasks))
	}
	if buf.Len() != 0 {
		t.Errorf("missing file should not log a diagnostic, got %q", buf.String())
	}
}

func TestFileStoreSaveLoadRoundTrip(t *testing.T) {
	st, _ := newTestStore(t)
	now := task.Now()
	original := []task.Task{
		{ID: 1, Description: "Buy milk", Status: task.StatusTodo, CreatedAt: now, UpdatedAt: now},
		{ID: 2, Description: "Walk dog", Status: task.StatusDone, CreatedAt: now, UpdatedAt: now},
	}

	if err := st.Save(original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d tasks, want 2", len(loaded))
	}
	if loaded[0].ID != 1 || loaded[0].Description != "Buy milk" || loaded[0].Status != task.StatusTodo {
		t.Errorf("first task mismatch: %+v", loaded[0])
	}
	if loaded[1].ID != 2 || loaded[1].Status != task.StatusDone {
		t.Errorf("second task mismatch: %+v", loaded[1])
	}
}

func TestFileStoreLoadCorruptFile(t *testing.T) {
	st, buf := newTestStore(t)
	if err := os.WriteFile(st.Path(), []byte("{ this is not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	tasks, err := st.Load()
	if err != nil {
		t.Fatalf("corrupt file should not fail the load, got %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty task list, got %d tasks", len(tasks))
	}
	if !strings.Contains(buf.String(), "could not decode JSON") {
		t.Errorf("expected a decode diagnostic, got %q", buf.String())
	}
}

func TestFileStoreLoadDropsMalformedEntries(t *testing.T) {
	st, buf := newTestStore(t)
	snapshot := `[
		{"id": 1, "description": "ok", "status": "todo",
		 "createdAt": "2024-03-01T12:00:00Z", "updatedAt": "2024-03-01T12:00:00Z"},
		{"id": 0, "description": "bad id", "status": "todo",
		 "createdAt": "2024-03-01T12:00:00Z", "updatedAt": "2024-03-01T12:00:00Z"},
		{"id": 3, "description": "bad status", "status": "cancelled",
		 "createdAt": "2024-03-01T12:00:00Z", "updatedAt": "2024-03-01T12:00:00Z"}
	]`
	if err := os.WriteFile(st.Path(), []byte(snapshot), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	tasks, err := st.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1 (malformed entries dropped)", len(tasks))
	}
	if tasks[0].ID != 1 {
		t.Errorf("surviving task id = %d, want 1", tasks[0].ID)
	}
	if !strings.Contains(buf.String(), "malformed task entry") {
		t.Errorf("expected per-entry diagnostics, got %q", buf.String())
	}
}

func TestFileStoreSaveNilWritesEmptyArray(t *testing.T) {
	st, _ := newTestStore(t)
	if err := st.Save(nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(st.Path())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("nil task list should persist as [], got %q", data)
	}
}

func TestFileStoreSaveReplacesSnapshot(t *testing.T) {
	st, _ := newTestStore(t)
	now := task.Now()
	if err := st.Save([]task.Task{{ID: 1, Description: "a", Status: task.StatusTodo, CreatedAt: now, UpdatedAt: now}}); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := st.Save([]task.Task{{ID: 2, Description: "b", Status: task.StatusTodo, CreatedAt: now, UpdatedAt: now}}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != 2 {
		t.Errorf("second save should fully replace the snapshot, got %+v", loaded)
	}

	// No temp files may be left behind.
	entries, err := os.ReadDir(filepath.Dir(st.Path()))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tasks-") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}

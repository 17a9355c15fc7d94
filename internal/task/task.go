// Package task defines the task record and its persisted JSON form.
package task

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Status represents a task status.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus converts a user-supplied token to a Status.
func ParseStatus(token string) (Status, error) {
	s := Status(token)
	if !s.Valid() {
		return "", fmt.Errorf("invalid status %q, must be one of: todo, in-progress, done", token)
	}
	return s, nil
}

// timestampLayouts are accepted on load, most specific first. The second
// layout covers naive ISO 8601 strings written by earlier versions of the
// tool, which carry no zone offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// displayLayout is the human-readable form used in list output.
const displayLayout = "2006-01-02 15:04:05"

// Timestamp is a creation or update time as stored on disk. The raw string
// is kept verbatim so that an entry with an unparseable timestamp survives a
// load/save round trip instead of being rewritten or rejected.
type Timestamp struct {
	raw    string
	parsed time.Time
	valid  bool
}

// Now returns a Timestamp for the current time.
func Now() Timestamp {
	return At(time.Now().UTC())
}

// At returns a Timestamp for the given time.
func At(t time.Time) Timestamp {
	return Timestamp{
		raw:    t.Format(time.RFC3339Nano),
		parsed: t,
		valid:  true,
	}
}

// FromRaw returns a Timestamp holding an arbitrary stored string.
func FromRaw(raw string) Timestamp {
	ts := Timestamp{raw: raw}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ts.parsed = t
			ts.valid = true
			break
		}
	}
	return ts
}

// IsZero reports whether the timestamp holds no value at all.
func (ts Timestamp) IsZero() bool {
	return ts.raw == ""
}

// Time returns the parsed time and whether the raw string was parseable.
func (ts Timestamp) Time() (time.Time, bool) {
	return ts.parsed, ts.valid
}

// String returns the raw stored form.
func (ts Timestamp) String() string {
	return ts.raw
}

// Display returns the timestamp formatted for list output. When the stored
// string is unparseable the raw string is returned unchanged.
func (ts Timestamp) Display() string {
	if !ts.valid {
		if ts.raw == "" {
			return "N/A"
		}
		return ts.raw
	}
	return ts.parsed.Format(displayLayout)
}

// Before reports whether ts is earlier than other. Unparseable timestamps
// compare as not-before.
func (ts Timestamp) Before(other Timestamp) bool {
	if !ts.valid || !other.valid {
		return false
	}
	return ts.parsed.Before(other.parsed)
}

// MarshalJSON writes the raw stored string.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.raw)
}

// UnmarshalJSON reads a JSON string and keeps it verbatim, parsing it when
// possible. A non-string value is an error; a string that fails to parse as
// a time is not.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	*ts = FromRaw(raw)
	return nil
}

// Task is a single tracked task as persisted in the store.
type Task struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// Validate checks the fields of a persisted task entry.
func (t *Task) Validate() error {
	if t.ID <= 0 {
		return &ValidationError{Path: "id", Err: fmt.Errorf("must be a positive integer, got %d", t.ID)}
	}
	if !t.Status.Valid() {
		return &ValidationError{Path: "status", Err: fmt.Errorf("invalid status %q, must be one of: todo, in-progress, done", t.Status)}
	}
	return nil
}

// NextID returns the id to assign to a new task: one more than the highest
// existing id, or 1 when the list is empty.
func NextID(tasks []Task) int {
	next := 1
	for _, t := range tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

// SortByID orders tasks ascending by id in place.
func SortByID(tasks []Task) {
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ID < tasks[j].ID
	})
}

// FilterByStatus returns the tasks matching status. An empty status matches
// everything.
func FilterByStatus(tasks []Task, status Status) []Task {
	if status == "" {
		return tasks
	}
	var filtered []Task
	for _, t := range tasks {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

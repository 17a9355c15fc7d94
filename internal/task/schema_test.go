package task

import (
	"strings"
	"testing"
)

func TestValidateSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		valid   bool
		errPart string
	}{
		{
			name:  "empty array",
			data:  `[]`,
			valid: true,
		},
		{
			name: "valid snapshot",
			data: `[{"id": 1, "description": "Buy milk", "status": "todo",
				"createdAt": "2024-03-01T12:00:00Z", "updatedAt": "2024-03-01T12:00:00Z"}]`,
			valid: true,
		},
		{
			name:    "not an array",
			data:    `{"id": 1}`,
			valid:   false,
			errPart: "array",
		},
		{
			name:    "invalid JSON",
			data:    `[{"id": 1,`,
			valid:   false,
			errPart: "invalid JSON",
		},
		{
			name: "bad status",
			data: `[{"id": 1, "description": "x", "status": "cancelled",
				"createdAt": "2024-03-01T12:00:00Z", "updatedAt": "2024-03-01T12:00:00Z"}]`,
			valid: false,
		},
		{
			name:  "missing fields",
			data:  `[{"id": 1}]`,
			valid: false,
		},
		{
			name: "non-integer id",
			data: `[{"id": "T1", "description": "x", "status": "todo",
				"createdAt": "2024-03-01T12:00:00Z", "updatedAt": "2024-03-01T12:00:00Z"}]`,
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSnapshot([]byte(tt.data))
			if result.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", result.Valid, tt.valid, result.Errors)
			}
			if !tt.valid && len(result.Errors) == 0 {
				t.Fatal("invalid snapshot should report at least one error")
			}
			if tt.errPart == "" {
				return
			}
			found := false
			for _, err := range result.Errors {
				if strings.Contains(err.Error(), tt.errPart) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention %q", result.Errors, tt.errPart)
			}
		})
	}
}

func TestValidateSnapshotErrorPaths(t *testing.T) {
	data := `[
		{"id": 1, "description": "ok", "status": "todo",
		 "createdAt": "2024-03-01T12:00:00Z", "updatedAt": "2024-03-01T12:00:00Z"},
		{"id": 2, "description": "bad", "status": "cancelled",
		 "createdAt": "2024-03-01T12:00:00Z", "updatedAt": "2024-03-01T12:00:00Z"}
	]`
	result := ValidateSnapshot([]byte(data))
	if result.Valid {
		t.Fatal("expected invalid snapshot")
	}
	found := false
	for _, err := range result.Errors {
		if strings.Contains(err.Error(), "[1]") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an error located at entry [1], got %v", result.Errors)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"#/0/status", "[0].status"},
		{"/3/createdAt", "[3].createdAt"},
		{"#/foo/bar", "foo.bar"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("jsonPointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
		}
	}
}

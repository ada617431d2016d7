package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped error",
			err:      errors.New("failed to connect: connection refused"),
			expected: "Error: failed to connect: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("failed to load %s", "classes")
	if got != "Error: failed to load classes" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestStorageWrite(t *testing.T) {
	if StorageWrite("classes", nil) != nil {
		t.Error("StorageWrite(nil) should be nil")
	}

	cause := errors.New("disk full")
	err := StorageWrite("assignments", cause)
	if !errors.Is(err, ErrStorageWrite) {
		t.Error("expected error to match ErrStorageWrite")
	}
	if !errors.Is(err, cause) {
		t.Error("expected error to wrap the cause")
	}

	msg := Format(err)
	if !strings.Contains(msg, "assignments") || !strings.Contains(msg, "not saved") {
		t.Errorf("Format() = %q, want key and not-saved hint", msg)
	}
}

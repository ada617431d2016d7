package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/studyplan/internal/logger"
)

// ErrStorageWrite marks a failed whole-collection write. Writes are not
// retried; the in-memory state is ahead of the store until the next
// successful save.
var ErrStorageWrite = stderrors.New("storage write failed")

// StorageWrite wraps a persistence failure for the given storage key.
func StorageWrite(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorageWrite, key, err)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	if stderrors.Is(err, ErrStorageWrite) {
		return fmt.Sprintf("Error: %v (recent changes were not saved; check disk space and permissions)", err)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
